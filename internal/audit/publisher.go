// Package audit records what happened to each onboarding session. Events
// flow from domain logic through a buffered channel into a background worker
// so emitting never blocks a request.
package audit

import (
	"log/slog"
	"time"
)

// Publisher accepts audit events from domain code. Emit is non-blocking: if
// the inbox is full the event is dropped with a warning rather than stalling
// the session.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
	now    func() time.Time
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger, now: time.Now}
}

func (p *Publisher) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit inbox full, dropping event",
			"action", event.Action,
			"session_id", event.SessionID)
	}
}
