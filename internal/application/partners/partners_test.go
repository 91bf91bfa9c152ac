package partners_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/application/partners"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeAgencies struct {
	items map[string]*entity.Agency
	order []string
}

func newFakeAgencies() *fakeAgencies {
	return &fakeAgencies{items: map[string]*entity.Agency{}}
}

func (f *fakeAgencies) Create(_ context.Context, a *entity.Agency) error {
	for _, existing := range f.items {
		if existing.TenantID == a.TenantID && existing.Name == a.Name {
			return domain.ErrDuplicate
		}
	}
	f.items[a.ID] = a
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeAgencies) GetByID(_ context.Context, tenantID, id string) (*entity.Agency, error) {
	a, ok := f.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAgencies) Update(_ context.Context, a *entity.Agency) error {
	if _, ok := f.items[a.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[a.ID] = a
	return nil
}

func (f *fakeAgencies) List(_ context.Context, tenantID string, limit, offset int) ([]*entity.Agency, error) {
	out := make([]*entity.Agency, 0)
	for _, id := range f.order {
		if a := f.items[id]; a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	if offset >= len(out) {
		return []*entity.Agency{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeAgents struct {
	items map[string]*entity.Agent
}

func (f *fakeAgents) Create(_ context.Context, a *entity.Agent) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeAgents) GetByID(_ context.Context, tenantID, id string) (*entity.Agent, error) {
	a, ok := f.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAgents) Update(_ context.Context, a *entity.Agent) error {
	f.items[a.ID] = a
	return nil
}

func fakeLogo(domainOrURL string) *string {
	u := "https://img.logo.dev/" + domainOrURL
	return &u
}

// ── Agencias ──────────────────────────────────────────────────────────────────

func TestAgencyCreate_NormalizaCampos(t *testing.T) {
	repo := newFakeAgencies()
	uc := partners.NewAgencyUseCase(repo, func(d string) *string {
		u := "logo:" + d
		return &u
	})

	out, err := uc.Create(context.Background(), "t-1", dto.AgencyFormValues{
		Name:    "  Keller Realty ",
		Website: "HTTP://KellerRealty.com/",
		Phone:   "   ",
		State:   "tx",
	})
	require.NoError(t, err)

	assert.Equal(t, "Keller Realty", out.Name)
	assert.Equal(t, entity.PartnerStatusActive, out.Status, "estado por defecto")
	assert.Equal(t, "https://kellerrealty.com", out.Website)
	assert.Equal(t, "logo:https://kellerrealty.com", out.LogoURL, "sin logo se deriva del sitio web")
	assert.Equal(t, "TX", out.State)

	stored := repo.items[out.ID]
	require.NotNil(t, stored)
	assert.Nil(t, stored.Phone, "los vacíos se guardan como NULL")
	assert.Nil(t, stored.Notes)
}

func TestAgencyCreate_ConservaLogoInformado(t *testing.T) {
	uc := partners.NewAgencyUseCase(newFakeAgencies(), fakeLogo)

	out, err := uc.Create(context.Background(), "t-1", dto.AgencyFormValues{
		Name: "Keller", Website: "keller.com", LogoURL: " https://cdn.keller.com/logo.png ",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.keller.com/logo.png", out.LogoURL)
}

func TestAgencyCreate_Validaciones(t *testing.T) {
	uc := partners.NewAgencyUseCase(newFakeAgencies(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, "t-1", dto.AgencyFormValues{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre obligatorio")

	_, err = uc.Create(ctx, "t-1", dto.AgencyFormValues{Name: "Acme", Status: "archivada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado inválido")

	_, err = uc.Create(ctx, "t-1", dto.AgencyFormValues{Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "t-1", dto.AgencyFormValues{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAgencyUpdate_NoExisteEnOtroTenant(t *testing.T) {
	repo := newFakeAgencies()
	uc := partners.NewAgencyUseCase(repo, nil)
	created, err := uc.Create(context.Background(), "t-1", dto.AgencyFormValues{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "t-2", created.ID, dto.AgencyFormValues{Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Update(context.Background(), "t-1", created.ID, dto.AgencyFormValues{Name: "Acme Realty", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Realty", out.Name)
	assert.Equal(t, entity.PartnerStatusInactive, out.Status)
}

func TestAgencyApplyScrub_NoPisaConVacios(t *testing.T) {
	repo := newFakeAgencies()
	uc := partners.NewAgencyUseCase(repo, fakeLogo)
	created, err := uc.Create(context.Background(), "t-1", dto.AgencyFormValues{
		Name:    "Keller",
		Phone:   "512-555-0100",
		City:    "Round Rock",
		LogoURL: "https://cdn.keller.com/logo.png",
	})
	require.NoError(t, err)

	out, err := uc.ApplyScrub(context.Background(), "t-1", created.ID, dto.ScrubResult{
		URL:            "https://www.kellerrealty.com/",
		Domain:         "kellerrealty.com",
		Name:           "Jane Doe",
		AgencyName:     "Keller Realty Austin",
		AgencyAddress:  "Office: 500 Congress Ave, Suite 200, Austin, TX 78701",
		LicenseNumbers: []string{"TX-123456"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Keller Realty Austin", out.Name)
	assert.Equal(t, "512-555-0100", out.Phone, "sin teléfono en el scrub se conserva el actual")
	assert.Equal(t, "https://img.logo.dev/kellerrealty.com", out.LogoURL, "el logo derivado del dominio pisa al anterior")
	assert.Equal(t, "https://www.kellerrealty.com", out.Website)
	assert.Equal(t, "500 Congress Ave", out.AddressLine1)
	assert.Equal(t, "Suite 200", out.AddressLine2)
	assert.Equal(t, "Austin", out.City)
	assert.Equal(t, "TX", out.State)
	assert.Equal(t, "78701", out.ZipCode)
	assert.Equal(t, "TX-123456", out.LicenseNumber)

	stored := repo.items[created.ID]
	assert.Equal(t, "Keller", stored.Name, "ApplyScrub no escribe")
}

func TestAgencyMergeScrub_UsaNombreSiNoHayAgencia(t *testing.T) {
	uc := partners.NewAgencyUseCase(newFakeAgencies(), nil)

	out := uc.MergeScrub(dto.AgencyFormValues{Name: "Actual", Website: "https://old.com"}, dto.ScrubResult{Name: "Bright Homes"})
	assert.Equal(t, "Bright Homes", out.Name)
	assert.Equal(t, "https://old.com", out.Website)
	assert.Empty(t, out.LogoURL, "sin dominio ni lookup no hay logo")
}

func TestAgencyList_Paginacion(t *testing.T) {
	uc := partners.NewAgencyUseCase(newFakeAgencies(), nil)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, "t-1", dto.AgencyFormValues{Name: name})
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, "t-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "límite por defecto 20")

	page, err := uc.List(ctx, "t-1", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Name)
}

// ── Agentes ───────────────────────────────────────────────────────────────────

func TestAgentCreate_GuardaDireccionEnUnaLinea(t *testing.T) {
	agents := &fakeAgents{items: map[string]*entity.Agent{}}
	uc := partners.NewAgentUseCase(agents, newFakeAgencies())

	out, err := uc.Create(context.Background(), "t-1", dto.AgentFormValues{
		Name:               "Jane Doe",
		Email:              " Jane@Keller.com ",
		AgencyWebsite:      "keller.com/",
		AgencyAddressLine1: "500 Congress Ave",
		AgencyAddressLine2: "Suite 200",
		AgencyCity:         "Austin",
		AgencyState:        "tx",
		AgencyZipCode:      "78701",
	})
	require.NoError(t, err)

	stored := agents.items[out.ID]
	require.NotNil(t, stored.AgencyAddress)
	assert.Equal(t, "500 Congress Ave, Suite 200, Austin, TX 78701", *stored.AgencyAddress)
	assert.Equal(t, "jane@keller.com", *stored.Email)
	assert.Equal(t, "https://keller.com", *stored.AgencyWebsite)

	assert.Equal(t, "500 Congress Ave", out.AgencyAddressLine1, "el formulario vuelve a separar la dirección")
	assert.Equal(t, "Suite 200", out.AgencyAddressLine2)
	assert.Equal(t, "Austin", out.AgencyCity)
	assert.Equal(t, "TX", out.AgencyState)
	assert.Equal(t, "78701", out.AgencyZipCode)
}

func TestAgentCreate_AgenciaDeOtroTenant(t *testing.T) {
	agencies := newFakeAgencies()
	agencyUC := partners.NewAgencyUseCase(agencies, nil)
	other, err := agencyUC.Create(context.Background(), "t-2", dto.AgencyFormValues{Name: "Ajena"})
	require.NoError(t, err)

	uc := partners.NewAgentUseCase(&fakeAgents{items: map[string]*entity.Agent{}}, agencies)
	_, err = uc.Create(context.Background(), "t-1", dto.AgentFormValues{Name: "Jane", AgencyID: other.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAgentApplyScrub_VinculaAgenciaPorNombre(t *testing.T) {
	agencies := newFakeAgencies()
	agencyUC := partners.NewAgencyUseCase(agencies, nil)
	keller, err := agencyUC.Create(context.Background(), "t-1", dto.AgencyFormValues{Name: "Keller Williams"})
	require.NoError(t, err)

	agents := &fakeAgents{items: map[string]*entity.Agent{}}
	uc := partners.NewAgentUseCase(agents, agencies)
	created, err := uc.Create(context.Background(), "t-1", dto.AgentFormValues{Name: "J. Doe", Phone: "512-555-0100"})
	require.NoError(t, err)

	out, err := uc.ApplyScrub(context.Background(), "t-1", created.ID, dto.ScrubResult{
		Domain:         "kw.com",
		Name:           "Jane Doe",
		Email:          "JANE@KW.COM",
		Role:           "Realtor",
		LicenseNumbers: []string{"0123456", "TX-99"},
		AgencyName:     "keller williams",
		AgencyAddress:  "1 Main St, Austin, TX 78701, USA",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.Name)
	assert.Equal(t, "jane@kw.com", out.Email)
	assert.Equal(t, "512-555-0100", out.Phone)
	assert.Equal(t, "Realtor", out.Role)
	assert.Equal(t, "0123456, TX-99", out.LicenseNumber)
	assert.Equal(t, "https://kw.com", out.AgencyWebsite)
	assert.Equal(t, keller.ID, out.AgencyID)
	assert.Equal(t, "1 Main St", out.AgencyAddressLine1)
	assert.Equal(t, "Austin", out.AgencyCity)
	assert.Equal(t, "TX", out.AgencyState)
	assert.Equal(t, "78701", out.AgencyZipCode)
}

func TestAgentGetForm_NoExiste(t *testing.T) {
	uc := partners.NewAgentUseCase(&fakeAgents{items: map[string]*entity.Agent{}}, newFakeAgencies())

	_, err := uc.GetForm(context.Background(), "t-1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
