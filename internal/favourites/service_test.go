package favourites_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaadi/internal/favourites"
	"shaadi/internal/favourites/store"
	dErrors "shaadi/pkg/domain-errors"
)

func newService(t *testing.T) *favourites.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return favourites.NewService(store.NewMemory(), logger)
}

func TestAddFavourite(t *testing.T) {
	svc := newService(t)

	record, err := svc.Add(context.Background(), "a@example.com", 7)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", record.UserEmail)
	assert.Equal(t, int64(7), record.BiodataID)
}

func TestAddDuplicateConflicts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "a@example.com", 7)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "a@example.com", 7)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, "Biodata already in favourites", dErrors.MessageOf(err))
}

func TestAddSameBiodataDifferentUsers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "a@example.com", 7)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "b@example.com", 7)
	assert.NoError(t, err, "uniqueness is per (user, biodata) pair")
}

func TestAddValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "", 7)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = svc.Add(ctx, "a@example.com", 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestListOwnIsScopedToUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "a@example.com", 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "a@example.com", 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "b@example.com", 1)
	require.NoError(t, err)

	out, err := svc.ListOwn(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRemove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Add(ctx, "a@example.com", 7)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, record.ID))

	err = svc.Remove(ctx, record.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRemoveFreesThePair(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	record, err := svc.Add(ctx, "a@example.com", 7)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, record.ID))

	_, err = svc.Add(ctx, "a@example.com", 7)
	assert.NoError(t, err, "pair is reusable after removal")
}

func TestRemoveUnknownID(t *testing.T) {
	svc := newService(t)

	err := svc.Remove(context.Background(), uuid.New())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
