package audit

import "time"

// Action names what happened to a session.
type Action string

const (
	ActionSessionStarted       Action = "session_started"
	ActionContextReady         Action = "context_ready"
	ActionContextReset         Action = "context_reset"
	ActionChallengeIssued      Action = "challenge_issued"
	ActionChallengeVerified    Action = "challenge_verified"
	ActionChallengeResent      Action = "challenge_resent"
	ActionLivenessSkipped      Action = "liveness_skipped"
	ActionRequirementCompleted Action = "requirement_completed"
	ActionSessionAuthorized    Action = "session_authorized"
	ActionSessionFailed        Action = "session_failed"
)

// Event is emitted from domain logic to capture key session actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	TenantPK  string    `json:"tenant_pk,omitempty"`
	Action    Action    `json:"action"`

	// Detail carries action-specific context, e.g. the requirement kind
	// completed or the challenge kind issued.
	Detail string `json:"detail,omitempty"`
}
