package favourites

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence port for favourite records. Implementations enforce
// the composite-key uniqueness and return sentinel.ErrAlreadyUsed on
// violation, so the application-level existence check is a fast path, not the
// only line of defense.
type Store interface {
	// Exists reports whether the composite key is already present.
	Exists(ctx context.Context, userEmail string, biodataID int64) (bool, error)

	// Insert persists a new record. Returns sentinel.ErrAlreadyUsed when the
	// composite key is taken.
	Insert(ctx context.Context, record *Favourite) error

	// ListByUser returns the caller's favourites.
	ListByUser(ctx context.Context, userEmail string) ([]Favourite, error)

	// Delete removes the record with the given storage id.
	// Returns sentinel.ErrNotFound when no record matches.
	Delete(ctx context.Context, id uuid.UUID) error
}
