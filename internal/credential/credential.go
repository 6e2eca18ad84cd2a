// Package credential persists the bearer token the API client attaches to requests.
package credential

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store holds a single bearer credential under a fixed key.
// Credential returns "" with a nil error when nothing is stored.
type Store interface {
	Close() error
	Credential(ctx context.Context) (string, error)
	SaveCredential(token string) error
	ClearCredential() error
}

// Options controls where and for how long the credential is kept.
type Options struct {
	// Key is the fixed storage key for the token.
	Key string
	// TTL expires a stored token; zero keeps it until cleared.
	TTL time.Duration
}

const defaultKey = "authToken"

// NewStore creates the configured credential backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return NewMemoryStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt credential store requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported credential store type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	opts.Key = strings.TrimSpace(opts.Key)
	if opts.Key == "" {
		opts.Key = defaultKey
	}
	if opts.TTL < 0 {
		opts.TTL = 0
	}
	return opts
}

// MemoryStore keeps the credential in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Credential(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) SaveCredential(token string) error {
	m.mu.Lock()
	m.token = strings.TrimSpace(token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ClearCredential() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

type noopStore struct{}

func (noopStore) Close() error                               { return nil }
func (noopStore) Credential(context.Context) (string, error) { return "", nil }
func (noopStore) SaveCredential(string) error                { return nil }
func (noopStore) ClearCredential() error                     { return nil }
