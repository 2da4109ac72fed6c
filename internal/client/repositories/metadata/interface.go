package metadata

import (
	"context"
)

// Repository is the on-device key/value store. Get returns (nil, nil) for
// an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys atomically; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
