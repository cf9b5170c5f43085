package users

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence port for user records. Implementations return
// sentinel errors (pkg/platform/sentinel) for factual store states; the
// service translates them into domain errors.
type Store interface {
	// CreateIfEmailAvailable inserts the user unless the email is taken, in
	// which case it returns sentinel.ErrAlreadyUsed.
	CreateIfEmailAvailable(ctx context.Context, user *User) error

	// FindByEmail returns sentinel.ErrNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns all user records.
	List(ctx context.Context) ([]User, error)

	// Promote sets the admin role on the record with the given storage id.
	// Returns sentinel.ErrNotFound when no record matches.
	Promote(ctx context.Context, id uuid.UUID) error

	// PromoteByEmail sets the admin role on the record with the given email.
	PromoteByEmail(ctx context.Context, email string) error

	// Delete removes the record with the given storage id.
	// Returns sentinel.ErrNotFound when no record matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdminExists reports whether any record already holds the admin role.
	AdminExists(ctx context.Context) (bool, error)
}
