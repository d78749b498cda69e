package store

import (
	"context"
	"sync"

	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
)

// MemoryOrderStore is the default process-local backend. All state is lost
// on restart, including issued but unredeemed activation keys.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.PendingOrder
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]domain.PendingOrder)}
}

func (s *MemoryOrderStore) Put(_ context.Context, key string, order domain.PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[key] = order
	return nil
}

func (s *MemoryOrderStore) Get(_ context.Context, key string) (domain.PendingOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[key]
	if !ok {
		return domain.PendingOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *MemoryOrderStore) Take(_ context.Context, key string) (domain.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[key]
	if !ok {
		return domain.PendingOrder{}, domain.ErrOrderNotFound
	}
	delete(s.orders, key)
	return order, nil
}

func (s *MemoryOrderStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, key)
	return nil
}

type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]domain.ActivationKey
}

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string]domain.ActivationKey)}
}

func (s *MemoryKeyStore) Put(_ context.Context, code string, key domain.ActivationKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[code] = key
	return nil
}

func (s *MemoryKeyStore) Get(_ context.Context, code string) (domain.ActivationKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[code]
	if !ok {
		return domain.ActivationKey{}, domain.ErrKeyNotFound
	}
	return key, nil
}

func (s *MemoryKeyStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, code)
	return nil
}
