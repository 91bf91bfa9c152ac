package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
)

// OverviewService casos de uso del panel de márgenes.
type OverviewService interface {
	GetOverview(ctx context.Context, tenantID string) (*dto.OverviewDTO, error)
	TodaySchedule(ctx context.Context, tenantID string) ([]dto.TodayOrderDTO, error)
	RenderReport(ctx context.Context, tenantID string) ([]byte, string, error)
	Invalidate(ctx context.Context, tenantID string)
}

// OverviewHandler maneja el panel del dueño y la agenda del día.
type OverviewHandler struct {
	uc OverviewService
}

// NewOverviewHandler construye el handler.
func NewOverviewHandler(uc OverviewService) *OverviewHandler {
	return &OverviewHandler{uc: uc}
}

// Get devuelve el panel de decisión del tenant.
// GET /api/overview[?refresh=true]
//
// refresh=true descarta el panel en caché antes de calcular.
//
// Respuesta: OverviewDTO (kpis, current_period, prior_period, trend_buckets[8],
// referral_leaderboard, top/bottom_services, low_margin_orders[6],
// today_orders, active_clients).
func (h *OverviewHandler) Get(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if c.QueryBool("refresh") {
		h.uc.Invalidate(c.UserContext(), tenantID)
	}
	out, err := h.uc.GetOverview(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report descarga el panel en PDF.
// GET /api/overview/report.pdf
func (h *OverviewHandler) Report(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	pdf, filename, err := h.uc.RenderReport(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Today agenda de hoy.
// GET /api/orders/today
func (h *OverviewHandler) Today(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.TodaySchedule(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}
