// Package credstore holds the single bearer token of the current session.
//
// Every backend keeps an in-memory snapshot that serves reads without locking,
// so reading the token on the request path never waits on storage. Writes are
// serialized and written through to the backing medium; persistence failures
// are logged and swallowed, never returned to the caller.
package credstore

import (
	"sync"
	"sync/atomic"
)

// Store persists one opaque token.
type Store interface {
	// Save replaces any stored token.
	Save(token string)
	// Read returns the stored token, or false when there is none.
	Read() (string, bool)
	// Delete removes the token. Deleting an empty store is a no-op.
	Delete()
}

// snapshot is the lock-free read side shared by all backends.
type snapshot struct {
	mu    sync.Mutex // serializes writers
	value atomic.Pointer[string]
}

func (s *snapshot) Read() (string, bool) {
	p := s.value.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}

func (s *snapshot) set(token string) {
	s.value.Store(&token)
}

func (s *snapshot) clear() {
	s.value.Store(nil)
}

// Memory is a process-local store.
type Memory struct {
	snapshot
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(token)
}

func (m *Memory) Delete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear()
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*Redis)(nil)
)
