// Package audit captures structured events for the operations that change
// accounts or records. Services emit through the Publisher; a background worker
// drains the buffer into a pluggable sink so request latency never depends on
// the sink.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shaadi/pkg/requestcontext"
)

// Sink receives drained audit events.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Publisher buffers audit events for the worker. Emission never blocks a
// request: when the buffer is full the event is dropped and counted in logs.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with the given buffer size.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit records an event, stamping identity, client metadata and time from the
// request context.
func (p *Publisher) Emit(ctx context.Context, eventType EventType, subject string) {
	event := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Actor:     requestcontext.Email(ctx),
		Subject:   subject,
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    requestcontext.Device(ctx),
		Timestamp: time.Now().UTC(),
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event", "type", eventType, "subject", subject)
	}
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// SlogSink writes audit events to the structured log. It is the default sink
// when no broker is configured.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Write(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"event_id", event.ID,
		"type", event.Type,
		"actor", event.Actor,
		"subject", event.Subject,
		"client_ip", event.ClientIP,
		"device", event.Device,
	)
	return nil
}

// MemorySink collects events in memory so tests can assert on them.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything written so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
