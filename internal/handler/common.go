package handler // handler defines http handlers

import (
	"errors"  // sentinel values used in getUserID
	"strconv" // string to numeric conversions

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/gameplay-tracker/internal/repository" // data access layer
)

// APIHandler bundles the repositories behind the authenticated /api
// surface plus the directory uploads are written to.
type APIHandler struct {
	Games     *repository.GameRepo          // Games provides game persistence
	Logs      *repository.LogRepo           // Logs provides log persistence
	Types     *repository.CustomLogTypeRepo // Types provides custom log type persistence
	UploadDir string                        // UploadDir is where screenshots land
}

// NewAPIHandler constructs a new APIHandler and panics if any dependency is nil.
func NewAPIHandler(games *repository.GameRepo, logs *repository.LogRepo, types *repository.CustomLogTypeRepo, uploadDir string) *APIHandler {
	if games == nil || logs == nil || types == nil {
		panic("nil repository passed to NewAPIHandler")
	}
	if uploadDir == "" {
		panic("empty upload dir passed to NewAPIHandler")
	}
	return &APIHandler{
		Games:     games,
		Logs:      logs,
		Types:     types,
		UploadDir: uploadDir,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64: // JWT numeric claims decode as float64
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
