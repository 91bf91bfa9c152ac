// Package partners contiene los casos de uso de agencias y agentes inmobiliarios
// (fuentes de referidos del tenant).
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

// AgencyUseCase alta, edición y enriquecimiento de agencias.
type AgencyUseCase struct {
	repo repository.AgencyRepository
	logo contact.LogoLookup
}

// NewAgencyUseCase construye el caso de uso. logo puede ser nil (sin logo.dev).
func NewAgencyUseCase(repo repository.AgencyRepository, logo contact.LogoLookup) *AgencyUseCase {
	return &AgencyUseCase{repo: repo, logo: logo}
}

// Create valida y persiste una agencia nueva.
func (uc *AgencyUseCase) Create(ctx context.Context, tenantID string, in dto.AgencyFormValues) (*dto.AgencyFormValues, error) {
	now := time.Now()
	a := &entity.Agency{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		CreatedAt: now,
	}
	if err := uc.apply(a, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAgencyForm(a), nil
}

// Update reemplaza los datos de una agencia existente.
func (uc *AgencyUseCase) Update(ctx context.Context, tenantID, id string, in dto.AgencyFormValues) (*dto.AgencyFormValues, error) {
	a, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.apply(a, in, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAgencyForm(a), nil
}

// GetForm devuelve la agencia como valores de formulario.
func (uc *AgencyUseCase) GetForm(ctx context.Context, tenantID, id string) (*dto.AgencyFormValues, error) {
	a, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAgencyForm(a), nil
}

// List agencias del tenant paginadas.
func (uc *AgencyUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]dto.AgencyFormValues, error) {
	page.DefaultPage()
	agencies, err := uc.repo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgencyFormValues, len(agencies))
	for i, a := range agencies {
		out[i] = *toAgencyForm(a)
	}
	return out, nil
}

// ApplyScrub fusiona un resultado de scrub sobre la agencia guardada sin
// escribir: devuelve el formulario resultante para que el usuario lo confirme.
// Los valores vacíos del scrub no pisan los existentes.
func (uc *AgencyUseCase) ApplyScrub(ctx context.Context, tenantID, id string, result dto.ScrubResult) (*dto.AgencyFormValues, error) {
	base, err := uc.GetForm(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return uc.MergeScrub(*base, result), nil
}

// MergeScrub aplica el scrub sobre un formulario en memoria.
func (uc *AgencyUseCase) MergeScrub(base dto.AgencyFormValues, result dto.ScrubResult) *dto.AgencyFormValues {
	agencyName := firstNonEmpty(result.AgencyName, result.Name)
	website := contact.NormalizeWebsite(firstNonEmpty(result.URL, result.Domain))
	logo := contact.ResolveLogoForSubmit(result.LogoURL, firstNonEmpty(result.Domain, deref(website)), uc.logo)
	parsed := contact.ParseScrubbedAddress(result.AgencyAddress)

	out := base
	out.Name = contact.MergeField(contact.Normalize(agencyName), base.Name)
	out.LogoURL = contact.MergeField(logo, base.LogoURL)
	out.Phone = contact.MergeField(contact.Normalize(result.Phone), base.Phone)
	out.Website = contact.MergeField(website, base.Website)
	if parsed != nil {
		out.AddressLine1 = contact.MergeField(&parsed.AddressLine1, base.AddressLine1)
		out.AddressLine2 = contact.MergeField(parsed.AddressLine2, base.AddressLine2)
		out.City = contact.MergeField(parsed.City, base.City)
		out.State = contact.MergeField(parsed.State, base.State)
		out.ZipCode = contact.MergeField(parsed.ZipCode, base.ZipCode)
	}
	if len(result.LicenseNumbers) > 0 {
		out.LicenseNumber = contact.MergeField(&result.LicenseNumbers[0], base.LicenseNumber)
	}
	return &out
}

// apply normaliza el formulario sobre la entidad.
func (uc *AgencyUseCase) apply(a *entity.Agency, in dto.AgencyFormValues, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	status, err := partnerStatus(in.Status)
	if err != nil {
		return err
	}
	website := contact.NormalizeWebsite(in.Website)

	a.Name = name
	a.Status = status
	a.Website = website
	a.LogoURL = contact.ResolveLogoForSubmit(in.LogoURL, deref(website), uc.logo)
	a.LicenseNumber = contact.Normalize(in.LicenseNumber)
	a.Phone = contact.Normalize(in.Phone)
	a.AddressLine1 = contact.Normalize(in.AddressLine1)
	a.AddressLine2 = contact.Normalize(in.AddressLine2)
	a.City = contact.Normalize(in.City)
	a.State = upper(contact.Normalize(in.State))
	a.ZipCode = contact.Normalize(in.ZipCode)
	a.Notes = contact.Normalize(in.Notes)
	a.UpdatedAt = now
	return nil
}

func toAgencyForm(a *entity.Agency) *dto.AgencyFormValues {
	return &dto.AgencyFormValues{
		ID:            a.ID,
		Name:          a.Name,
		Status:        a.Status,
		LogoURL:       deref(a.LogoURL),
		LicenseNumber: deref(a.LicenseNumber),
		Phone:         deref(a.Phone),
		Website:       deref(a.Website),
		AddressLine1:  deref(a.AddressLine1),
		AddressLine2:  deref(a.AddressLine2),
		City:          deref(a.City),
		State:         deref(a.State),
		ZipCode:       deref(a.ZipCode),
		Notes:         deref(a.Notes),
	}
}
