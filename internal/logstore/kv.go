package logstore

import "context"

// KV is the on-device slot storage the engine is given. It mirrors the
// mobile storage contract: whole values only, no partial updates.
// Get returns (nil, nil) for a key that was never set.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Remove(ctx context.Context, keys ...string) error
}
