package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trucklog/joblog-api/internal/core/ports"
)

// StatsHandler serves the aggregated statistics view.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Overview handles GET /v1/stats. The aggregate is recomputed from the full
// job and user sets on every call.
//
// @Summary      Aggregated job statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	stats, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
