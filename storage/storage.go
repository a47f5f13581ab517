// Package storage provides the key-value slots the cart is persisted into.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store holds one opaque value per key. Set always overwrites.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
