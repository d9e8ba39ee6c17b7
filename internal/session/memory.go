package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory. Sessions are stored encoded
// so callers never share a mutable value.
type MemoryStore struct {
	items   *cache.Cache
	ttl     time.Duration
	lockTTL time.Duration
}

func NewMemoryStore(ttl, lockTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		items:   cache.New(ttl, ttl/2),
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := m.items.Add(s.ID, data, m.ttl); err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	v, ok := m.items.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("session %s holds %T", id, v)
	}
	return decode(data)
}

// Save replaces a live session and restarts its TTL.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := m.items.Replace(s.ID, data, m.ttl); err != nil {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.items.Delete(id)
	return nil
}

func (m *MemoryStore) Acquire(ctx context.Context, id, action string) (func(), error) {
	key := lockKey(id, action)
	if err := m.items.Add(key, struct{}{}, m.lockTTL); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionInFlight, action)
	}
	return func() { m.items.Delete(key) }, nil
}
