// Package biodata owns the profile records: creation with sequential id
// allocation, listing, retrieval and profile replacement.
package biodata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"shaadi/internal/audit"
	"shaadi/internal/biodata/sequence"
	"shaadi/internal/platform/metrics"
	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/sentinel"
)

// Service orchestrates biodata operations over the store and the allocator.
type Service struct {
	store     Store
	allocator sequence.Allocator
	auditor   *audit.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
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

func NewService(store Store, allocator sequence.Allocator, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		allocator: allocator,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates the next sequential identifier and persists the record.
// The owner is the authenticated caller; the profile document is stored as-is.
func (s *Service) Create(ctx context.Context, ownerEmail string, profile json.RawMessage) (*Biodata, error) {
	if ownerEmail == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access")
	}
	if len(profile) == 0 {
		profile = json.RawMessage("{}")
	}

	biodataID, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not allocate biodata id")
	}

	now := s.now().UTC()
	record := &Biodata{
		ID:         uuid.New(),
		BiodataID:  biodataID,
		OwnerEmail: ownerEmail,
		Profile:    profile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			// Only possible when the counter is behind the data, e.g. after a
			// botched restore. Surfaced rather than retried.
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "biodata id already allocated")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not create biodata")
	}

	s.emit(ctx, audit.EventBiodataCreated, strconv.FormatInt(biodataID, 10))
	if s.metrics != nil {
		s.metrics.BiodatasCreated.Inc()
	}
	return record, nil
}

// List returns records filtered by owner email; an empty filter returns all.
func (s *Service) List(ctx context.Context, ownerEmail string) ([]Biodata, error) {
	out, err := s.store.List(ctx, ownerEmail)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not list biodata")
	}
	return out, nil
}

// Get fetches a single record by storage id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Biodata, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "biodata not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not fetch biodata")
	}
	return record, nil
}

// ReplaceProfile swaps the profile document of an existing record. The
// sequential id and owner are immutable.
func (s *Service) ReplaceProfile(ctx context.Context, id uuid.UUID, profile json.RawMessage) error {
	if len(profile) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "profile is required")
	}

	if err := s.store.ReplaceProfile(ctx, id, profile, s.now().UTC()); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "biodata not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not update biodata")
	}

	s.emit(ctx, audit.EventBiodataUpdated, id.String())
	return nil
}

func (s *Service) emit(ctx context.Context, eventType audit.EventType, subject string) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, eventType, subject)
	}
}
