// Package revocation tracks scoped tokens that were discarded mid-flight
// (polling error, explicit reset) so a potentially invalidated credential is
// never accepted again, even within its JWT lifetime.
package revocation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidTTL rejects revocations that could never expire from the list.
var ErrInvalidTTL = errors.New("ttl must be positive")

// Clock abstracts time.Now for tests.
type Clock func() time.Time

// List is the revocation surface the onboarding service consumes.
type List interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryList keeps revoked JTIs in memory, expiring lazily on read.
type MemoryList struct {
	mu    sync.RWMutex
	jtis  map[string]time.Time
	clock Clock
}

// NewMemoryList constructs an in-memory revocation list.
func NewMemoryList() *MemoryList {
	return &MemoryList{jtis: make(map[string]time.Time), clock: time.Now}
}

// WithClock overrides the clock; returns the receiver for chaining in tests.
func (l *MemoryList) WithClock(clock Clock) *MemoryList {
	if clock != nil {
		l.clock = clock
	}
	return l
}

func (l *MemoryList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jtis[jti] = l.clock().Add(ttl)
	return nil
}

func (l *MemoryList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.RLock()
	expiresAt, ok := l.jtis[jti]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if l.clock().After(expiresAt) {
		l.mu.Lock()
		delete(l.jtis, jti)
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}
