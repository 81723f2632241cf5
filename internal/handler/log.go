package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// dayLayout is the wire format of the ?date= filter.
const dayLayout = "2006-01-02"

// ListLogs handles GET /api/logs. With ?date=YYYY-MM-DD it returns the
// caller's logs inside that UTC calendar day; otherwise all the
// caller's logs, optionally narrowed by ?gameId. Both variants order by
// timestamp ascending.
func (h *APIHandler) ListLogs(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if dateStr := c.QueryParam("date"); dateStr != "" {
		day, err := time.ParseInLocation(dayLayout, dateStr, time.UTC)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
		}
		logs, err := h.Logs.ListByDay(ctx, userID, day)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return c.JSON(http.StatusOK, logs)
	}

	var gameID *uint64
	if s := c.QueryParam("gameId"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gameId"})
		}
		gameID = &n
	}
	logs, err := h.Logs.ListByUser(ctx, userID, gameID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, logs)
}

type createLogReq struct {
	GameID       uint64            `json:"gameId"`
	Type         string            `json:"type"`
	Name         string            `json:"name"`
	Subsection   *string           `json:"subsection"`
	Amount       *int64            `json:"amount"`
	ImageURL     *string           `json:"imageUrl"`
	CustomFields map[string]string `json:"customFields"`
}

// CreateLog handles POST /api/logs. The timestamp is server-assigned;
// a missing imageUrl is backfilled from the caller's most recent log of
// the same name and type. When the log's type names a custom log type
// declared for the game, the submitted customFields are checked against
// its field list.
func (h *APIHandler) CreateLog(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createLogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Type = strings.TrimSpace(req.Type)
	req.Name = strings.TrimSpace(req.Name)
	if req.GameID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gameId is required"})
	}
	if req.Type == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and name are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owned, err := h.Games.OwnedBy(ctx, req.GameID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !owned {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown gameId"})
	}

	var customFields *string
	if len(req.CustomFields) > 0 {
		// Validate against the declared schema when one exists for this
		// type; the built-in "reward" type and undeclared names pass
		// through as-is.
		t, err := h.Types.GetByName(ctx, userID, req.GameID, req.Type)
		switch err {
		case nil:
			defs, derr := t.FieldDefs()
			if derr != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt field definitions"})
			}
			if verr := model.ValidateCustomFields(defs, req.CustomFields); verr != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
			}
		case sql.ErrNoRows:
			// no declaration to check against
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		raw, merr := json.Marshal(req.CustomFields)
		if merr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customFields"})
		}
		s := string(raw)
		customFields = &s
	}

	logRow := &model.Log{
		UserID:       userID,
		GameID:       req.GameID,
		Type:         req.Type,
		Name:         req.Name,
		Subsection:   req.Subsection,
		Amount:       req.Amount,
		ImageURL:     req.ImageURL,
		CustomFields: customFields,
	}
	if err := h.Logs.Create(ctx, logRow); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create log"})
	}
	return c.JSON(http.StatusOK, logRow)
}
