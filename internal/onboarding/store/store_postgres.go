package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bifrost/pkg/sentinel"
)

// Schema is the DDL the store expects. Applied by migrations, kept here so
// integration tests can bootstrap a bare database.
const Schema = `
CREATE TABLE IF NOT EXISTS onboarding_sessions (
	id         TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore is a PostgreSQL-backed session store. The full record is
// kept as JSONB: session snapshots are read and written whole, never
// queried by inner field.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO onboarding_sessions (id, record, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.ID, payload, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create session record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, id string) (*Record, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM onboarding_sessions WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Update(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = s.now()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE onboarding_sessions
		 SET record = $2, updated_at = $3
		 WHERE id = $1`,
		rec.ID, payload, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update session record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM onboarding_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
