package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. A failed
// append is logged and skipped; audit is best-effort and must never take the
// session flow down with it.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(ctx)
			return ctx.Err()
		case event := <-w.inbox:
			w.append(ctx, event)
		}
	}
}

// drain flushes whatever is still buffered at shutdown.
func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event := <-w.inbox:
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.Error("failed to persist audit event",
			"action", event.Action,
			"session_id", event.SessionID,
			"error", err)
	}
}
