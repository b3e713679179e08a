package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/eproc-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del panel principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del panel
// @Description  Conteos reales de proveedores y productos junto con las cifras de requisiciones de demostración.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
