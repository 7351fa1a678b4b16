package port

import "context"

// UpdateFunc receives the stored bytes (found=false when the key is absent) and
// returns the bytes to store. A returned error aborts the update.
type UpdateFunc func(prev []byte, found bool) ([]byte, error)

type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) (bool, error)
}
