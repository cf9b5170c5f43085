//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"shaadi/internal/users"
	"shaadi/internal/users/store"
	"shaadi/pkg/platform/sentinel"
	"shaadi/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

// TestConcurrentRegistration verifies that concurrent creates with the same
// email result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentRegistration() {
	ctx := context.Background()
	email := "race@example.com"
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.CreateIfEmailAvailable(ctx, &users.User{
				ID:        uuid.New(),
				Email:     email,
				Role:      users.RoleMember,
				CreatedAt: time.Now(),
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case s.ErrorIs(err, sentinel.ErrAlreadyUsed):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *PostgresStoreSuite) TestPromoteAndAdminExists() {
	ctx := context.Background()

	exists, err := s.store.AdminExists(ctx)
	s.Require().NoError(err)
	s.False(exists)

	user := &users.User{ID: uuid.New(), Email: "admin@example.com", Role: users.RoleMember, CreatedAt: time.Now()}
	s.Require().NoError(s.store.CreateIfEmailAvailable(ctx, user))
	s.Require().NoError(s.store.Promote(ctx, user.ID))

	found, err := s.store.FindByEmail(ctx, user.Email)
	s.Require().NoError(err)
	s.Equal(users.RoleAdmin, found.Role)

	exists, err = s.store.AdminExists(ctx)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PostgresStoreSuite) TestDeleteMissingUser() {
	err := s.store.Delete(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
