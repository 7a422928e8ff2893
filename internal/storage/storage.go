package storage

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is the minimal durable key-value store the cart persists into.
// Implementations must treat a missing key as ErrNotFound, not as an
// empty value.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
