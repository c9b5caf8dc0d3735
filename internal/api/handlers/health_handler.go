package handlers

import (
	"context"
	"time"

	"ledger/internal/backend"
	"ledger/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	Version             = "2.0.0"
	backendProbeTimeout = 3 * time.Second
)

type HealthHandler struct {
	client     *backend.Client
	backendURL string
	logger     *zap.Logger
}

func NewHealthHandler(client *backend.Client, backendURL string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		client:     client,
		backendURL: backendURL,
		logger:     logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Status of this service and of the analysis backend
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), backendProbeTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:  "ok",
		Version: Version,
		Backend: dto.BackendHealth{URL: h.backendURL},
	}

	health, err := h.client.Health(ctx)
	if err != nil {
		h.logger.Warn("Backend health check failed", zap.Error(err))
		resp.Backend.Status = "unreachable"
		resp.Backend.Error = err.Error()
		return c.JSON(resp)
	}

	resp.Backend.Status = health.Status
	resp.Backend.AIEnabled = health.AIEnabled
	resp.Backend.Model = health.Model
	resp.Backend.Version = health.Version
	return c.JSON(resp)
}
