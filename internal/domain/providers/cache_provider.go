package providers

import "context"

// CacheProvider defines the interface for caching operations.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// SetNX stores the value only if the key is absent, returning whether
	// the write happened. Used to claim enrichment work for an area.
	SetNX(ctx context.Context, key string, value []byte, expirationSeconds int) (bool, error)
}
