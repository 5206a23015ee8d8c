// Package session holds the signed-in vendor's credentials behind a swappable key/value store.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key is absent
var ErrNotFound = errors.New("session: key not found")

// Store persists session values.
// Remove of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
