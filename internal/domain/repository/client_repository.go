package repository

import "context"

// ClientRepository puerto de lectura de clientes.
type ClientRepository interface {
	// CountActive cantidad de clientes no archivados del tenant.
	CountActive(ctx context.Context, tenantID string) (int, error)
}
