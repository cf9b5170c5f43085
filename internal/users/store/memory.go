// Package store provides the user store implementations: Postgres for
// production and an in-memory map for tests and local runs.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shaadi/internal/users"
	"shaadi/pkg/platform/sentinel"
)

// Memory is a thread-safe in-memory user store.
type Memory struct {
	mu      sync.RWMutex
	byEmail map[string]users.User
}

func NewMemory() *Memory {
	return &Memory{byEmail: make(map[string]users.User)}
}

func (m *Memory) CreateIfEmailAvailable(_ context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return sentinel.ErrAlreadyUsed
	}
	m.byEmail[user.Email] = *user
	return nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &user, nil
}

func (m *Memory) List(_ context.Context) ([]users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]users.User, 0, len(m.byEmail))
	for _, user := range m.byEmail {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) Promote(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, user := range m.byEmail {
		if user.ID == id {
			user.Role = users.RoleAdmin
			m.byEmail[email] = user
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (m *Memory) PromoteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byEmail[email]
	if !ok {
		return sentinel.ErrNotFound
	}
	user.Role = users.RoleAdmin
	m.byEmail[email] = user
	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, user := range m.byEmail {
		if user.ID == id {
			delete(m.byEmail, email)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (m *Memory) AdminExists(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.byEmail {
		if user.Role == users.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}
