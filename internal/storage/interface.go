package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNotLoaded is returned when a provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a durable string key-value store.
//
// Providers are not safe for use by several processes at once; see the lock
// package for the single-writer guard.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// BatchSetter is implemented by providers that can write several keys
// atomically.
type BatchSetter interface {
	SetMany(entries map[string]string) error
}

// Open brings an existing provider up, creating it on first use.
func Open(p Provider) error {
	err := p.Load()
	if errors.Is(err, ErrNotInitialized) {
		return p.Init()
	}
	return err
}
