// Package favourites owns the favourite marks: dedup-guarded creation, per-user
// listing and removal.
package favourites

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"shaadi/internal/audit"
	"shaadi/internal/platform/metrics"
	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/sentinel"
)

// Service orchestrates favourite operations over the store.
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

// Add creates a favourite unless the (user, biodata) pair already exists. The
// existence check gives the common case a clean conflict; the store's unique
// constraint catches the concurrent race the check cannot.
func (s *Service) Add(ctx context.Context, userEmail string, biodataID int64) (*Favourite, error) {
	if userEmail == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}
	if biodataID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "biodata id is required")
	}

	exists, err := s.store.Exists(ctx, userEmail, biodataID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not check favourites")
	}
	if exists {
		return nil, dErrors.New(dErrors.CodeConflict, "Biodata already in favourites")
	}

	record := &Favourite{
		ID:        uuid.New(),
		UserEmail: userEmail,
		BiodataID: biodataID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "Biodata already in favourites")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not add favourite")
	}

	s.emit(ctx, audit.EventFavouriteAdded, strconv.FormatInt(biodataID, 10))
	if s.metrics != nil {
		s.metrics.FavouritesCreated.Inc()
	}
	return record, nil
}

// ListOwn returns the caller's favourites.
func (s *Service) ListOwn(ctx context.Context, userEmail string) ([]Favourite, error) {
	out, err := s.store.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not list favourites")
	}
	return out, nil
}

// Remove deletes a favourite by its own storage id.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "favourite not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not delete favourite")
	}
	s.emit(ctx, audit.EventFavouriteRemoved, id.String())
	return nil
}

func (s *Service) emit(ctx context.Context, eventType audit.EventType, subject string) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, eventType, subject)
	}
}
