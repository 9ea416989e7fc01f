package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granitflow/granitflow-api/internal/application/analytics"
)

// DashboardHandler endpoints do dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats GET /api/dashboard/stats
// Resumo consolidado: contagens, projetos ativos, OS pendentes, estoque baixo e receita.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
