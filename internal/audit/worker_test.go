package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWorkerPersistsEvents(t *testing.T) {
	store := NewMemoryStore()
	inbox := make(chan Event, 8)
	worker := NewWorker(store, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	pub := NewPublisher(inbox, discardLogger())
	pub.Emit(Event{SessionID: "sess-1", Action: ActionSessionStarted})
	pub.Emit(Event{SessionID: "sess-1", Action: ActionChallengeIssued, Detail: "sms"})

	require.Eventually(t, func() bool {
		return len(store.BySession("sess-1")) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	events := store.BySession("sess-1")
	require.Equal(t, ActionSessionStarted, events[0].Action)
	require.Equal(t, ActionChallengeIssued, events[1].Action)
	require.Equal(t, "sms", events[1].Detail)
	require.False(t, events[0].Timestamp.IsZero())
}

func TestWorkerDrainsInboxOnShutdown(t *testing.T) {
	store := NewMemoryStore()
	inbox := make(chan Event, 8)
	worker := NewWorker(store, inbox, discardLogger())

	inbox <- Event{SessionID: "sess-1", Action: ActionSessionAuthorized}
	inbox <- Event{SessionID: "sess-1", Action: ActionSessionFailed}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := worker.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, store.BySession("sess-1"), 2)
}

type failingStore struct{ calls int }

func (f *failingStore) Append(context.Context, Event) error {
	f.calls++
	return errors.New("sink down")
}

func TestWorkerSurvivesSinkFailures(t *testing.T) {
	store := &failingStore{}
	inbox := make(chan Event, 8)
	worker := NewWorker(store, inbox, discardLogger())

	inbox <- Event{SessionID: "sess-1", Action: ActionSessionStarted}
	inbox <- Event{SessionID: "sess-1", Action: ActionContextReady}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, worker.Run(ctx), context.Canceled)

	require.Equal(t, 2, store.calls)
}

func TestPublisherDropsWhenInboxFull(t *testing.T) {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, discardLogger())

	pub.Emit(Event{SessionID: "sess-1", Action: ActionSessionStarted})
	pub.Emit(Event{SessionID: "sess-1", Action: ActionContextReady})

	require.Len(t, inbox, 1)
}

func TestPublisherStampsTimestamp(t *testing.T) {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, discardLogger())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pub.now = func() time.Time { return fixed }

	pub.Emit(Event{SessionID: "sess-1", Action: ActionSessionStarted})

	got := <-inbox
	require.Equal(t, fixed, got.Timestamp)
}
