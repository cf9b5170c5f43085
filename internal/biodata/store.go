package biodata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence port for biodata records. Implementations return
// sentinel errors for factual store states.
type Store interface {
	// Insert persists a new record. Returns sentinel.ErrAlreadyUsed when the
	// sequential biodata id is already taken.
	Insert(ctx context.Context, record *Biodata) error

	// FindByID returns sentinel.ErrNotFound when no record exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Biodata, error)

	// List returns records, optionally filtered by owner email. An empty
	// filter returns everything.
	List(ctx context.Context, ownerEmail string) ([]Biodata, error)

	// ReplaceProfile swaps the profile document of an existing record.
	// BiodataID and OwnerEmail are never touched.
	ReplaceProfile(ctx context.Context, id uuid.UUID, profile json.RawMessage, now time.Time) error
}
