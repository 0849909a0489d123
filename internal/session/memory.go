package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	e, ok := m.entries[key(token)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.now().Before(e.expiresAt) {
		return decode(token, e.data)
	}

	// The entry may have been replaced since the read lock was released.
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok = m.entries[key(token)]
	if !ok {
		return nil, nil
	}
	if m.now().Before(e.expiresAt) {
		return decode(token, e.data)
	}
	delete(m.entries, key(token))
	return nil, nil
}

func (m *MemoryStore) Put(_ context.Context, sess Session) error {
	if sess.Token == "" {
		return errEmptyToken
	}
	data, err := encode(sess.Account)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key(sess.Token)] = entry{data: data, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.entries, key(token))
	m.mu.Unlock()
	return nil
}
