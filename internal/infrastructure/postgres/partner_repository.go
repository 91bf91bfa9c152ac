package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
)

var (
	_ repository.AgencyRepository = (*AgencyRepo)(nil)
	_ repository.AgentRepository  = (*AgentRepo)(nil)
)

// ── Agencias ──────────────────────────────────────────────────────────────────

// AgencyRepo implementación del puerto AgencyRepository sobre PostgreSQL.
type AgencyRepo struct {
	q Querier
}

// NewAgencyRepository construye el adaptador.
func NewAgencyRepository(q Querier) *AgencyRepo {
	return &AgencyRepo{q: q}
}

const agencyColumns = `id, tenant_id, name, status, logo_url, license_number, phone, website,
	address_line1, address_line2, city, state, zip_code, notes, created_at, updated_at`

// Create persiste una agencia. Nombre repetido en el tenant → domain.ErrDuplicate.
func (r *AgencyRepo) Create(ctx context.Context, a *entity.Agency) error {
	query := `INSERT INTO agencies (` + agencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.Name, a.Status, a.LogoURL, a.LicenseNumber, a.Phone, a.Website,
		a.AddressLine1, a.AddressLine2, a.City, a.State, a.ZipCode, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agency: %w", err)
	}
	return nil
}

// GetByID obtiene una agencia del tenant; (nil, nil) si no existe.
func (r *AgencyRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE tenant_id = $1 AND id = $2`
	a, err := scanAgency(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agency by id: %w", err)
	}
	return a, nil
}

// Update reemplaza los datos editables de la agencia.
func (r *AgencyRepo) Update(ctx context.Context, a *entity.Agency) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE agencies SET name = $3, status = $4, logo_url = $5, license_number = $6, phone = $7,
		    website = $8, address_line1 = $9, address_line2 = $10, city = $11, state = $12,
		    zip_code = $13, notes = $14, updated_at = $15
		WHERE tenant_id = $1 AND id = $2`,
		a.TenantID, a.ID, a.Name, a.Status, a.LogoURL, a.LicenseNumber, a.Phone,
		a.Website, a.AddressLine1, a.AddressLine2, a.City, a.State,
		a.ZipCode, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update agency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List agencias del tenant ordenadas por nombre.
func (r *AgencyRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Agency, 0)
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agency: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAgency(row pgx.Row) (*entity.Agency, error) {
	var a entity.Agency
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Status, &a.LogoURL, &a.LicenseNumber, &a.Phone, &a.Website,
		&a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.ZipCode, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ── Agentes ───────────────────────────────────────────────────────────────────

// AgentRepo implementación del puerto AgentRepository sobre PostgreSQL.
type AgentRepo struct {
	q Querier
}

// NewAgentRepository construye el adaptador.
func NewAgentRepository(q Querier) *AgentRepo {
	return &AgentRepo{q: q}
}

const agentColumns = `id, tenant_id, agency_id, name, email, phone, license_number, role, photo_url,
	agency_name, agency_address, agency_website, status, created_at, updated_at`

// Create persiste un agente.
func (r *AgentRepo) Create(ctx context.Context, a *entity.Agent) error {
	query := `INSERT INTO agents (` + agentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.AgencyID, a.Name, a.Email, a.Phone, a.LicenseNumber, a.Role, a.PhotoURL,
		a.AgencyName, a.AgencyAddress, a.AgencyWebsite, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// GetByID obtiene un agente del tenant; (nil, nil) si no existe.
func (r *AgentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE tenant_id = $1 AND id = $2`
	var a entity.Agent
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.AgencyID, &a.Name, &a.Email, &a.Phone, &a.LicenseNumber, &a.Role, &a.PhotoURL,
		&a.AgencyName, &a.AgencyAddress, &a.AgencyWebsite, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent by id: %w", err)
	}
	return &a, nil
}

// Update reemplaza los datos editables del agente.
func (r *AgentRepo) Update(ctx context.Context, a *entity.Agent) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE agents SET agency_id = $3, name = $4, email = $5, phone = $6, license_number = $7,
		    role = $8, photo_url = $9, agency_name = $10, agency_address = $11, agency_website = $12,
		    status = $13, updated_at = $14
		WHERE tenant_id = $1 AND id = $2`,
		a.TenantID, a.ID, a.AgencyID, a.Name, a.Email, a.Phone, a.LicenseNumber,
		a.Role, a.PhotoURL, a.AgencyName, a.AgencyAddress, a.AgencyWebsite,
		a.Status, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
