// Package store provides the favourite store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shaadi/internal/favourites"
	"shaadi/pkg/platform/sentinel"
)

type compositeKey struct {
	userEmail string
	biodataID int64
}

// Memory is a thread-safe in-memory favourite store.
type Memory struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]favourites.Favourite
	byKey map[compositeKey]uuid.UUID
}

func NewMemory() *Memory {
	return &Memory{
		byID:  make(map[uuid.UUID]favourites.Favourite),
		byKey: make(map[compositeKey]uuid.UUID),
	}
}

func (m *Memory) Exists(_ context.Context, userEmail string, biodataID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byKey[compositeKey{userEmail, biodataID}]
	return ok, nil
}

func (m *Memory) Insert(_ context.Context, record *favourites.Favourite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := compositeKey{record.UserEmail, record.BiodataID}
	if _, ok := m.byKey[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	m.byID[record.ID] = *record
	m.byKey[key] = record.ID
	return nil
}

func (m *Memory) ListByUser(_ context.Context, userEmail string) ([]favourites.Favourite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []favourites.Favourite
	for _, record := range m.byID {
		if record.UserEmail == userEmail {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byKey, compositeKey{record.UserEmail, record.BiodataID})
	return nil
}
