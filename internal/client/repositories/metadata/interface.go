// Package metadata is the key/value store behind the client's persisted
// session (token, server URL, last username).
package metadata

import "context"

// Repository reads and writes session values by key. Get returns
// common.ErrorNotFound for an unknown key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
}
