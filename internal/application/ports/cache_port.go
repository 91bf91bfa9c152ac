package ports

import (
	"context"
	"time"
)

// Cache puerto de caché clave/valor (JSON serializado por el caso de uso).
// Get devuelve (nil, false, nil) cuando la clave no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
