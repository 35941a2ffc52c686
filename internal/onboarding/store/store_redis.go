package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bifrost/pkg/sentinel"
)

const sessionKeyPrefix = "ob:session:"

// RedisStore is a Redis-backed session store. Records expire with the
// session TTL so abandoned onboarding attempts clean themselves up.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store. ttl bounds how long an
// untouched session record survives; every write refreshes it.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func (s *RedisStore) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(rec.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session record: %w", err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, id string) (*Record, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Update(ctx context.Context, rec *Record) error {
	existing, err := s.Find(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = s.now()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	// XX keeps update from resurrecting a record that expired between the
	// read above and this write.
	ok, err := s.client.SetXX(ctx, sessionKey(rec.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("update session record: %w", err)
	}
	if !ok {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
