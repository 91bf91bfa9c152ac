package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
)

// AgencyService casos de uso de agencias.
type AgencyService interface {
	Create(ctx context.Context, tenantID string, in dto.AgencyFormValues) (*dto.AgencyFormValues, error)
	Update(ctx context.Context, tenantID, id string, in dto.AgencyFormValues) (*dto.AgencyFormValues, error)
	GetForm(ctx context.Context, tenantID, id string) (*dto.AgencyFormValues, error)
	List(ctx context.Context, tenantID string, page dto.PageRequest) ([]dto.AgencyFormValues, error)
	ApplyScrub(ctx context.Context, tenantID, id string, result dto.ScrubResult) (*dto.AgencyFormValues, error)
}

// AgentService casos de uso de agentes.
type AgentService interface {
	Create(ctx context.Context, tenantID string, in dto.AgentFormValues) (*dto.AgentFormValues, error)
	Update(ctx context.Context, tenantID, id string, in dto.AgentFormValues) (*dto.AgentFormValues, error)
	GetForm(ctx context.Context, tenantID, id string) (*dto.AgentFormValues, error)
	ApplyScrub(ctx context.Context, tenantID, id string, result dto.ScrubResult) (*dto.AgentFormValues, error)
}

// ScrubService obtiene perfiles públicos.
type ScrubService interface {
	Scrub(ctx context.Context, tenantID string, in dto.ScrubRequest) (*dto.ScrubResult, error)
}

// AgencyScrubResponse resultado del scrub y el formulario ya fusionado (sin guardar).
type AgencyScrubResponse struct {
	Result dto.ScrubResult      `json:"result"`
	Form   dto.AgencyFormValues `json:"form"`
}

// AgentScrubResponse resultado del scrub y el formulario ya fusionado (sin guardar).
type AgentScrubResponse struct {
	Result dto.ScrubResult     `json:"result"`
	Form   dto.AgentFormValues `json:"form"`
}

// PartnerHandler maneja agencias, agentes y el scrub de perfiles.
type PartnerHandler struct {
	agencies AgencyService
	agents   AgentService
	scrub    ScrubService
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(agencies AgencyService, agents AgentService, scrub ScrubService) *PartnerHandler {
	return &PartnerHandler{agencies: agencies, agents: agents, scrub: scrub}
}

// ── Agencias ──────────────────────────────────────────────────────────────────

// CreateAgency POST /api/agencies
func (h *PartnerHandler) CreateAgency(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AgencyFormValues
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.agencies.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAgencies GET /api/agencies?limit=&offset=
func (h *PartnerHandler) ListAgencies(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	items, err := h.agencies.List(c.UserContext(), tenantID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetAgency GET /api/agencies/:id
func (h *PartnerHandler) GetAgency(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	out, err := h.agencies.GetForm(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAgency PUT /api/agencies/:id
func (h *PartnerHandler) UpdateAgency(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AgencyFormValues
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.agencies.Update(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ScrubAgency POST /api/agencies/:id/scrub {url}
// Devuelve el perfil y el formulario fusionado; el cliente decide si lo guarda.
func (h *PartnerHandler) ScrubAgency(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.ScrubRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	result, err := h.scrub.Scrub(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	form, err := h.agencies.ApplyScrub(c.UserContext(), tenantID, c.Params("id"), *result)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(AgencyScrubResponse{Result: *result, Form: *form})
}

// ── Agentes ───────────────────────────────────────────────────────────────────

// CreateAgent POST /api/agents
func (h *PartnerHandler) CreateAgent(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AgentFormValues
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.agents.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetAgent GET /api/agents/:id
func (h *PartnerHandler) GetAgent(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	out, err := h.agents.GetForm(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAgent PUT /api/agents/:id
func (h *PartnerHandler) UpdateAgent(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AgentFormValues
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.agents.Update(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Scrub POST /api/agents/scrub {url, exclude_photos}
func (h *PartnerHandler) Scrub(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.ScrubRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.scrub.Scrub(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ScrubAgent POST /api/agents/:id/scrub {url}
func (h *PartnerHandler) ScrubAgent(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.ScrubRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	result, err := h.scrub.Scrub(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	form, err := h.agents.ApplyScrub(c.UserContext(), tenantID, c.Params("id"), *result)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(AgentScrubResponse{Result: *result, Form: *form})
}
