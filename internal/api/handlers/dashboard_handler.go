package handlers

import (
	"ledger/internal/service"
	"ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	sessions         *service.SessionStore
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, sessions *service.SessionStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		sessions:         sessions,
		logger:           logger,
	}
}

// GetDashboard godoc
// @Summary Dashboard view
// @Description KPIs, category bars, subscriptions, yield projection and transactions. Shows the sample statement until an analysis completes.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	id, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(h.dashboardService.Build(nil))
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(h.dashboardService.Build(session.Analysis))
}
