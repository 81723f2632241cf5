package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// ListCustomLogTypes handles GET /api/custom-log-types?gameId=N. The
// gameId parameter is mandatory; without it the request fails with 400.
func (h *APIHandler) ListCustomLogTypes(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gameID, err := strconv.ParseUint(c.QueryParam("gameId"), 10, 64)
	if err != nil || gameID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gameId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Types.ListByGame(ctx, userID, gameID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, types)
}

type createCustomLogTypeReq struct {
	GameID uint64           `json:"gameId"`
	Name   string           `json:"name"`
	Fields []model.FieldDef `json:"fields"`
}

// CreateCustomLogType handles POST /api/custom-log-types. Field
// definitions are validated (non-empty unique names, known kinds) and
// serialized to JSON text before storage.
func (h *APIHandler) CreateCustomLogType(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCustomLogTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.GameID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gameId is required"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := model.ValidateFieldDefs(req.Fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
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

	raw, err := json.Marshal(req.Fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields"})
	}
	t := &model.CustomLogType{
		UserID: userID,
		GameID: req.GameID,
		Name:   req.Name,
		Fields: string(raw),
	}
	if err := h.Types.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create custom log type"})
	}
	return c.JSON(http.StatusOK, t)
}
