package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// recentLimit caps the recent-activity slice in the stats response.
const recentLimit = 3

type statsResp struct {
	RewardTotals map[string]int64 `json:"rewardTotals"`
	TodayCount   int64            `json:"todayCount"`
	Recent       []model.Log      `json:"recent"`
}

// Stats handles GET /api/stats: per-item reward totals, the number of
// logs recorded today (UTC) and the latest activity.
func (h *APIHandler) Stats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	totals, err := h.Logs.RewardTotals(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	count, err := h.Logs.CountByDay(ctx, userID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	recent, err := h.Logs.Recent(ctx, userID, recentLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, statsResp{
		RewardTotals: totals,
		TodayCount:   count,
		Recent:       recent,
	})
}
