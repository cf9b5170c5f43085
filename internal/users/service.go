// Package users owns account records: idempotent registration, role lookups
// and the admin management surface.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"shaadi/internal/audit"
	"shaadi/internal/platform/metrics"
	dErrors "shaadi/pkg/domain-errors"
	pkgemail "shaadi/pkg/email"
	"shaadi/pkg/platform/sentinel"
)

// Service orchestrates user account operations over the store.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAudit attaches an audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithMetrics attaches the application metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock sets the clock function for testability.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the account unless the email is already taken. A repeat
// registration is a soft success: it returns a nil id and no error, matching
// the idempotent create-if-absent contract.
func (s *Service) Register(ctx context.Context, email, name string) (*uuid.UUID, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = pkgemail.DeriveName(email)
	}

	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Role:      RoleMember,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.CreateIfEmailAvailable(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not register user")
	}

	s.emit(ctx, audit.EventUserRegistered, email)
	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	return &user.ID, nil
}

// List returns every account. Admin gating happens in the guard chain.
func (s *Service) List(ctx context.Context) ([]User, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not list users")
	}
	return out, nil
}

// IsAdmin reports whether the account with the given email holds the admin
// role. A missing account is simply not an admin.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not look up user")
	}
	return user.IsAdmin(), nil
}

// Promote grants the admin role to the account with the given storage id.
func (s *Service) Promote(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Promote(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not promote user")
	}
	s.emit(ctx, audit.EventUserPromoted, id.String())
	return nil
}

// Delete removes the account with the given storage id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not delete user")
	}
	s.emit(ctx, audit.EventUserDeleted, id.String())
	return nil
}

// Bootstrap promotes the named account to admin, but only while no admin
// exists yet. It resolves the first-admin problem without opening a
// self-promotion path.
func (s *Service) Bootstrap(ctx context.Context, email string) error {
	exists, err := s.store.AdminExists(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not check admin state")
	}
	if exists {
		return dErrors.New(dErrors.CodeConflict, "an admin already exists")
	}

	if err := s.store.PromoteByEmail(ctx, email); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not promote user")
	}
	s.emit(ctx, audit.EventUserPromoted, email)
	return nil
}

func (s *Service) emit(ctx context.Context, eventType audit.EventType, subject string) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, eventType, subject)
	}
}
