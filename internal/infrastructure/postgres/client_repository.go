package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inspectos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo lectura de clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// CountActive cuenta los clientes no archivados del tenant.
func (r *ClientRepo) CountActive(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE tenant_id = $1 AND archived_at IS NULL`,
		tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active clients: %w", err)
	}
	return n, nil
}
