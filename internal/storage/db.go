// Package storage provides the key-value store behind the module
// discovery cache.
package storage

import "errors"

// ErrNotFound is returned by Get for absent keys.
var ErrNotFound = errors.New("key not found")

// DB is the interface for key-value storage.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	// ForEach iterates over all keys with the given prefix.
	// The callback receives a copy of the key and value.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}

// Key prefixes partition the database.
var (
	// PrefixModules holds the cached module list per backend name.
	PrefixModules = []byte("modules/")
)

// ModulesKey returns the cache key for a backend's module list.
func ModulesKey(backendName string) []byte {
	return append(append([]byte{}, PrefixModules...), backendName...)
}
