package partners

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/contact"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
)

// agencyMatchLimit agencias revisadas al vincular un agente por nombre.
const agencyMatchLimit = 500

// AgentUseCase alta, edición y enriquecimiento de agentes.
type AgentUseCase struct {
	repo       repository.AgentRepository
	agencyRepo repository.AgencyRepository
}

// NewAgentUseCase construye el caso de uso.
func NewAgentUseCase(repo repository.AgentRepository, agencyRepo repository.AgencyRepository) *AgentUseCase {
	return &AgentUseCase{repo: repo, agencyRepo: agencyRepo}
}

// Create valida y persiste un agente nuevo.
func (uc *AgentUseCase) Create(ctx context.Context, tenantID string, in dto.AgentFormValues) (*dto.AgentFormValues, error) {
	now := time.Now()
	a := &entity.Agent{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, a, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAgentForm(a), nil
}

// Update reemplaza los datos de un agente existente.
func (uc *AgentUseCase) Update(ctx context.Context, tenantID, id string, in dto.AgentFormValues) (*dto.AgentFormValues, error) {
	a, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.apply(ctx, a, in, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAgentForm(a), nil
}

// GetForm devuelve el agente como formulario; la dirección guardada en una
// línea se separa de nuevo en partes.
func (uc *AgentUseCase) GetForm(ctx context.Context, tenantID, id string) (*dto.AgentFormValues, error) {
	a, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAgentForm(a), nil
}

// ApplyScrub fusiona un resultado de scrub sobre el agente guardado, sin
// escribir. Si el nombre de agencia coincide con una agencia del tenant, la vincula.
func (uc *AgentUseCase) ApplyScrub(ctx context.Context, tenantID, id string, result dto.ScrubResult) (*dto.AgentFormValues, error) {
	base, err := uc.GetForm(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	out := MergeAgentScrub(*base, result)
	if out.AgencyName != base.AgencyName || out.AgencyID == "" {
		agencyID, err := uc.findAgencyID(ctx, tenantID, out.AgencyName)
		if err != nil {
			return nil, err
		}
		if agencyID != "" {
			out.AgencyID = agencyID
		}
	}
	return out, nil
}

// MergeAgentScrub aplica el scrub sobre un formulario de agente en memoria.
func MergeAgentScrub(base dto.AgentFormValues, result dto.ScrubResult) *dto.AgentFormValues {
	parsed := contact.ParseScrubbedAddress(result.AgencyAddress)
	licenses := strings.Join(result.LicenseNumbers, ", ")
	website := contact.WebsiteFromDomain(result.Domain)

	out := base
	out.Name = contact.MergeField(contact.Normalize(result.Name), base.Name)
	out.Email = contact.MergeField(contact.Normalize(strings.ToLower(result.Email)), base.Email)
	out.Phone = contact.MergeField(contact.Normalize(result.Phone), base.Phone)
	out.LicenseNumber = contact.MergeField(contact.Normalize(licenses), base.LicenseNumber)
	out.Role = contact.MergeField(contact.Normalize(result.Role), base.Role)
	out.PhotoURL = contact.MergeField(contact.Normalize(result.PhotoURL), base.PhotoURL)
	out.AgencyName = contact.MergeField(contact.Normalize(result.AgencyName), base.AgencyName)
	out.AgencyWebsite = contact.MergeField(contact.Normalize(website), base.AgencyWebsite)
	if parsed != nil {
		out.AgencyAddressLine1 = contact.MergeField(&parsed.AddressLine1, base.AgencyAddressLine1)
		out.AgencyAddressLine2 = contact.MergeField(parsed.AddressLine2, base.AgencyAddressLine2)
		out.AgencyCity = contact.MergeField(parsed.City, base.AgencyCity)
		out.AgencyState = contact.MergeField(parsed.State, base.AgencyState)
		out.AgencyZipCode = contact.MergeField(parsed.ZipCode, base.AgencyZipCode)
	}
	return &out
}

func (uc *AgentUseCase) findAgencyID(ctx context.Context, tenantID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	agencies, err := uc.agencyRepo.List(ctx, tenantID, agencyMatchLimit, 0)
	if err != nil {
		return "", err
	}
	for _, a := range agencies {
		if strings.EqualFold(strings.TrimSpace(a.Name), name) {
			return a.ID, nil
		}
	}
	return "", nil
}

func (uc *AgentUseCase) apply(ctx context.Context, a *entity.Agent, in dto.AgentFormValues, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	status, err := partnerStatus(in.Status)
	if err != nil {
		return err
	}

	agencyID := contact.Normalize(in.AgencyID)
	if agencyID != nil {
		agency, err := uc.agencyRepo.GetByID(ctx, a.TenantID, *agencyID)
		if err != nil {
			return err
		}
		if agency == nil {
			return domain.ErrInvalidInput // agencia de otro tenant o inexistente
		}
	}

	a.AgencyID = agencyID
	a.Name = name
	a.Status = status
	a.Email = contact.Normalize(strings.ToLower(in.Email))
	a.Phone = contact.Normalize(in.Phone)
	a.LicenseNumber = contact.Normalize(in.LicenseNumber)
	a.Role = contact.Normalize(in.Role)
	a.PhotoURL = contact.Normalize(in.PhotoURL)
	a.AgencyName = contact.Normalize(in.AgencyName)
	a.AgencyWebsite = contact.NormalizeWebsite(in.AgencyWebsite)
	a.AgencyAddress = contact.BuildAgencyAddress(contact.AgencyAddressFields{
		AddressLine1: in.AgencyAddressLine1,
		AddressLine2: in.AgencyAddressLine2,
		City:         in.AgencyCity,
		State:        strings.ToUpper(in.AgencyState),
		ZipCode:      in.AgencyZipCode,
	})
	a.UpdatedAt = now
	return nil
}

func toAgentForm(a *entity.Agent) *dto.AgentFormValues {
	out := &dto.AgentFormValues{
		ID:            a.ID,
		AgencyID:      deref(a.AgencyID),
		Name:          a.Name,
		Status:        a.Status,
		Email:         deref(a.Email),
		Phone:         deref(a.Phone),
		LicenseNumber: deref(a.LicenseNumber),
		Role:          deref(a.Role),
		PhotoURL:      deref(a.PhotoURL),
		AgencyName:    deref(a.AgencyName),
		AgencyWebsite: deref(a.AgencyWebsite),
	}
	if parsed := contact.ParseScrubbedAddress(deref(a.AgencyAddress)); parsed != nil {
		out.AgencyAddressLine1 = parsed.AddressLine1
		out.AgencyAddressLine2 = deref(parsed.AddressLine2)
		out.AgencyCity = deref(parsed.City)
		out.AgencyState = deref(parsed.State)
		out.AgencyZipCode = deref(parsed.ZipCode)
	}
	return out
}
