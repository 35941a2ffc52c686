//go:build integration

package revocation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bifrost/pkg/testutil/containers"
)

func setupPostgresList(t *testing.T) *PostgresList {
	t.Helper()

	pg := containers.NewPostgresContainer(t)
	t.Cleanup(func() {
		pg.Pool.Close()
		_ = pg.Container.Terminate(context.Background())
	})

	db, err := sql.Open("postgres", pg.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(context.Background(), Schema)
	require.NoError(t, err)

	return NewPostgresList(db)
}

func TestPostgresListRevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	list := setupPostgresList(t)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "jti-unknown")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestPostgresListUpsertExtendsExpiry(t *testing.T) {
	ctx := context.Background()
	list := setupPostgresList(t)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Second))
	require.NoError(t, list.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestPostgresListExpiredEntriesNotRevoked(t *testing.T) {
	ctx := context.Background()
	pastClock := func() time.Time { return time.Now().Add(-2 * time.Hour) }

	pg := containers.NewPostgresContainer(t)
	t.Cleanup(func() {
		pg.Pool.Close()
		_ = pg.Container.Terminate(context.Background())
	})

	db, err := sql.Open("postgres", pg.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, Schema)
	require.NoError(t, err)

	// Revoke with a clock in the past so the entry is already expired
	// when checked against the real clock.
	writer := NewPostgresList(db, WithPostgresClock(pastClock))
	require.NoError(t, writer.Revoke(ctx, "jti-old", time.Hour))

	reader := NewPostgresList(db)
	revoked, err := reader.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	require.False(t, revoked)

	purged, err := reader.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)
}
