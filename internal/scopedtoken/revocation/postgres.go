package revocation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresList persists revoked scoped-token JTIs in PostgreSQL.
type PostgresList struct {
	db    *sql.DB
	clock Clock
}

// PostgresListOption configures a PostgresList instance.
type PostgresListOption func(*PostgresList)

// WithPostgresClock sets the clock function for testability.
func WithPostgresClock(clock Clock) PostgresListOption {
	return func(l *PostgresList) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewPostgresList constructs a PostgreSQL-backed revocation list.
func NewPostgresList(db *sql.DB, opts ...PostgresListOption) *PostgresList {
	l := &PostgresList{db: db, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Schema is the DDL the list expects. Applied by migrations, kept here so
// integration tests can bootstrap a bare database.
const Schema = `
CREATE TABLE IF NOT EXISTS scoped_token_revocations (
	jti        TEXT PRIMARY KEY,
	expires_at TIMESTAMPTZ NOT NULL
)`

func (l *PostgresList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	expiresAt := l.clock().Add(ttl)
	query := `
		INSERT INTO scoped_token_revocations (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO UPDATE SET
			expires_at = EXCLUDED.expires_at
	`
	if _, err := l.db.ExecContext(ctx, query, jti, expiresAt); err != nil {
		return fmt.Errorf("revoke scoped token: %w", err)
	}
	return nil
}

func (l *PostgresList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM scoped_token_revocations
			WHERE jti = $1 AND expires_at > $2
		)
	`
	var revoked bool
	if err := l.db.QueryRowContext(ctx, query, jti, l.clock()).Scan(&revoked); err != nil {
		return false, fmt.Errorf("check scoped token revocation: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes rows past their expiry; run periodically.
func (l *PostgresList) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(ctx,
		`DELETE FROM scoped_token_revocations WHERE expires_at <= $1`, l.clock())
	if err != nil {
		return 0, fmt.Errorf("purge scoped token revocations: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
