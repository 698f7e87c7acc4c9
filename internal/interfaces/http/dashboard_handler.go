package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/analytics"
	"github.com/aaryaethnics/storefront-api/internal/application/dto"
)

// DashboardHandler serves the admin dashboard summary.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard summary
// @Description  Order counts by status and revenue for today and the current month, plus the top selling products.
// @Tags         admin-dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Security     BearerAuth
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
