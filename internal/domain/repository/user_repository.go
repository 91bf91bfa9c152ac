package repository

import (
	"context"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error)
}
