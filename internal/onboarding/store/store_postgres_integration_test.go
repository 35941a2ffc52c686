//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/flow"
	"bifrost/internal/onboarding/requirement"
	"bifrost/pkg/sentinel"
	"bifrost/pkg/testutil/containers"
)

func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	pg := containers.NewPostgresContainer(t)
	t.Cleanup(func() {
		pg.Pool.Close()
		_ = pg.Container.Terminate(context.Background())
	})

	_, err := pg.Pool.Exec(context.Background(), Schema)
	require.NoError(t, err)

	return NewPostgresStore(pg.Pool)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupPostgresStore(t)

	rec := newRecord()
	rec.FlowCurrent = &requirement.Requirement{Kind: requirement.KindLiveness}
	require.NoError(t, store.Create(ctx, rec))

	found, err := store.Find(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Ctx, found.Ctx)
	require.Equal(t, rec.FlowCurrent, found.FlowCurrent)
	require.False(t, found.CreatedAt.IsZero())
}

func TestPostgresStoreDuplicateCreate(t *testing.T) {
	ctx := context.Background()
	store := setupPostgresStore(t)

	rec := newRecord()
	require.NoError(t, store.Create(ctx, rec))
	require.ErrorIs(t, store.Create(ctx, rec), sentinel.ErrConflict)
}

func TestPostgresStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := setupPostgresStore(t)

	rec := newRecord()
	require.NoError(t, store.Create(ctx, rec))

	rec.FlowPhase = flow.PhaseAuthorized
	rec.ChallengeState = challenge.StateSuccess
	require.NoError(t, store.Update(ctx, rec))

	found, err := store.Find(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseAuthorized, found.FlowPhase)
	require.Equal(t, challenge.StateSuccess, found.ChallengeState)

	require.NoError(t, store.Delete(ctx, rec.ID))
	_, err = store.Find(ctx, rec.ID)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStoreUnknown(t *testing.T) {
	ctx := context.Background()
	store := setupPostgresStore(t)

	_, err := store.Find(ctx, "missing")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	require.ErrorIs(t, store.Update(ctx, newRecord()), sentinel.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, "missing"), sentinel.ErrNotFound)
}
