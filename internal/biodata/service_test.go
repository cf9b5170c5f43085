package biodata_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaadi/internal/biodata"
	"shaadi/internal/biodata/sequence"
	"shaadi/internal/biodata/store"
	dErrors "shaadi/pkg/domain-errors"
)

func newService(t *testing.T, seed int64) *biodata.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return biodata.NewService(store.NewMemory(), sequence.NewMemory(seed), logger)
}

func TestCreateAllocatesSequentialIDs(t *testing.T) {
	svc := newService(t, 0)
	ctx := context.Background()

	first, err := svc.Create(ctx, "a@example.com", json.RawMessage(`{"age":30}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.BiodataID)

	second, err := svc.Create(ctx, "b@example.com", json.RawMessage(`{"age":25}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.BiodataID)
}

func TestCreateContinuesFromSeed(t *testing.T) {
	svc := newService(t, 7)

	record, err := svc.Create(context.Background(), "a@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), record.BiodataID)
}

func TestCreateRequiresOwner(t *testing.T) {
	svc := newService(t, 0)

	_, err := svc.Create(context.Background(), "", json.RawMessage(`{}`))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestCreateDefaultsEmptyProfile(t *testing.T) {
	svc := newService(t, 0)

	record, err := svc.Create(context.Background(), "a@example.com", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(record.Profile))
}

func TestCreateConflictWhenAllocatorBehind(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := store.NewMemory()
	ctx := context.Background()

	// Two services over the same store with overlapping counters simulate a
	// counter that fell behind the data.
	ahead := biodata.NewService(mem, sequence.NewMemory(0), logger)
	behind := biodata.NewService(mem, sequence.NewMemory(0), logger)

	_, err := ahead.Create(ctx, "a@example.com", nil)
	require.NoError(t, err)

	_, err = behind.Create(ctx, "b@example.com", nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestListFiltersByOwner(t *testing.T) {
	svc := newService(t, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, "a@example.com", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b@example.com", nil)
	require.NoError(t, err)

	own, err := svc.List(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "a@example.com", own[0].OwnerEmail)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetUnknownID(t *testing.T) {
	svc := newService(t, 0)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReplaceProfileKeepsIdentity(t *testing.T) {
	svc := newService(t, 0)
	ctx := context.Background()

	record, err := svc.Create(ctx, "a@example.com", json.RawMessage(`{"age":30}`))
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceProfile(ctx, record.ID, json.RawMessage(`{"age":31}`)))

	updated, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":31}`, string(updated.Profile))
	assert.Equal(t, record.BiodataID, updated.BiodataID)
	assert.Equal(t, record.OwnerEmail, updated.OwnerEmail)
}

func TestReplaceProfileValidation(t *testing.T) {
	svc := newService(t, 0)

	err := svc.ReplaceProfile(context.Background(), uuid.New(), nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = svc.ReplaceProfile(context.Background(), uuid.New(), json.RawMessage(`{}`))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
