package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher's buffer into the sink. Sink failures are logged
// and the worker keeps going; losing an audit event must never take the
// process down.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.inbox:
			if err := w.sink.Write(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink write failed",
					"error", err,
					"type", event.Type,
					"event_id", event.ID,
				)
			}
		}
	}
}
