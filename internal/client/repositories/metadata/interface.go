// Package metadata is the CLI's local key/value store. It holds the
// persisted auth snapshot and the gateway's session secret.
package metadata

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("metadata key is empty")

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key and Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
