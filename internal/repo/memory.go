package repo

import (
	"context"
	"sync"

	"github.com/dforst25/week9-docker/internal/models"
)

// MemoryStore хранит коллекцию только в оперативной памяти; удобно для тестов.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.Record
	created bool
}

// NewMemoryStore создаёт пустое in-memory хранилище; коллекция появляется после EnsureExists.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// EnsureExists создаёт пустую коллекцию, если её ещё нет.
func (s *MemoryStore) EnsureExists(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		s.records = []models.Record{}
		s.created = true
	}
	return nil
}

// Load возвращает копию коллекции.
func (s *MemoryStore) Load(_ context.Context) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return nil, models.ErrStoreMissing
	}
	return models.CloneRecords(s.records), nil
}

// Save заменяет коллекцию целиком.
func (s *MemoryStore) Save(_ context.Context, records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = models.CloneRecords(records)
	s.created = true
	return nil
}

func (s *MemoryStore) Close() error { return nil }
