// Package store persists onboarding session records. Three implementations
// ship: in-memory for tests and single-instance development, Redis for
// distributed deployments with natural TTL expiry, and PostgreSQL where an
// audit-friendly durable copy is required.
package store

import (
	"context"
	"time"

	"bifrost/internal/api"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/flow"
	"bifrost/internal/onboarding/requirement"
	"bifrost/internal/onboarding/sessionctx"
)

// Record is the persisted snapshot of one onboarding session: the three
// machine states plus the bookkeeping the resolver needs between polls.
type Record struct {
	ID string `json:"id"`

	CtxState sessionctx.State   `json:"ctx_state"`
	Ctx      sessionctx.Context `json:"ctx"`

	Flags requirement.SessionFlags `json:"flags"`

	FlowPhase   flow.Phase                `json:"flow_phase"`
	FlowCurrent *requirement.Requirement  `json:"flow_current,omitempty"`
	FlowQueued  []requirement.Requirement `json:"flow_queued,omitempty"`

	ChallengeState challenge.State   `json:"challenge_state"`
	ChallengeCtx   challenge.Context `json:"challenge_ctx"`

	// Identification bookkeeping between identify, verify and resend.
	Identifier       api.Identifier     `json:"identifier,omitzero"`
	UserFound        bool               `json:"user_found,omitempty"`
	PendingChallenge *api.ChallengeData `json:"pending_challenge,omitempty"`

	// ValidationToken is minted at authorization and handed back to the
	// embedding tenant.
	ValidationToken string `json:"validation_token,omitempty"`

	// HandoffSecretHash is the bcrypt hash of the secret the registration
	// tab must present alongside its scoped token.
	HandoffSecretHash string `json:"handoff_secret_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the session persistence contract. Implementations return
// sentinel.ErrNotFound for unknown IDs and sentinel.ErrConflict when
// creating an ID that already exists.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	Find(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}
