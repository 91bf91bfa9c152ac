package repository

import (
	"context"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// AgencyRepository define el puerto de persistencia para Agency.
// GetByID devuelve (nil, nil) si no existe en el tenant.
type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Agency, error)
	Update(ctx context.Context, agency *entity.Agency) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Agency, error)
}

// AgentRepository define el puerto de persistencia para Agent.
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Agent, error)
	Update(ctx context.Context, agent *entity.Agent) error
}
