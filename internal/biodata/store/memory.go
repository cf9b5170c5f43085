// Package store provides the biodata store implementations.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"shaadi/internal/biodata"
	"shaadi/pkg/platform/sentinel"
)

// Memory is a thread-safe in-memory biodata store.
type Memory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]biodata.Biodata
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[uuid.UUID]biodata.Biodata)}
}

func (m *Memory) Insert(_ context.Context, record *biodata.Biodata) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if existing.BiodataID == record.BiodataID {
			return sentinel.ErrAlreadyUsed
		}
	}
	m.byID[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*biodata.Biodata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

func (m *Memory) List(_ context.Context, ownerEmail string) ([]biodata.Biodata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []biodata.Biodata
	for _, record := range m.byID {
		if ownerEmail == "" || record.OwnerEmail == ownerEmail {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BiodataID < out[j].BiodataID })
	return out, nil
}

func (m *Memory) ReplaceProfile(_ context.Context, id uuid.UUID, profile json.RawMessage, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	record.Profile = profile
	record.UpdatedAt = now
	m.byID[id] = record
	return nil
}

// MaxBiodataID returns the highest allocated identifier, for allocator seeding
// in single-process runs.
func (m *Memory) MaxBiodataID(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var max int64
	for _, record := range m.byID {
		if record.BiodataID > max {
			max = record.BiodataID
		}
	}
	return max, nil
}
