package api

import (
	"time"

	"bifrost/internal/onboarding/requirement"
)

// ChallengeKind discriminates the two supported authentication challenges.
type ChallengeKind string

const (
	ChallengeKindSMS       ChallengeKind = "sms"
	ChallengeKindBiometric ChallengeKind = "biometric"
)

// Identifier is the contact point used to look a user up. Exactly one of the
// fields is set.
type Identifier struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ChallengeData is one in-flight authentication challenge. It is replaced
// wholesale whenever a new challenge is initiated; never merged.
type ChallengeData struct {
	ChallengeKind          ChallengeKind `json:"challenge_kind"`
	ChallengeToken         string        `json:"challenge_token"`
	BiometricChallengeJSON string        `json:"biometric_challenge_json,omitempty"`
	RetryDisabledUntil     time.Time     `json:"retry_disabled_until,omitzero"`
}

// IdentifyRequest asks the remote API whether an account exists for the
// identifier, requesting a challenge of the preferred kind when it does.
type IdentifyRequest struct {
	Identifier             Identifier    `json:"identifier"`
	PreferredChallengeKind ChallengeKind `json:"preferred_challenge_kind"`
}

// IdentifyResponse reports whether a user was found and, if so, the issued
// challenge.
type IdentifyResponse struct {
	UserFound     bool           `json:"user_found"`
	ChallengeData *ChallengeData `json:"challenge_data,omitempty"`
}

// IdentifyVerifyRequest submits a challenge response for verification.
type IdentifyVerifyRequest struct {
	ChallengeResponse string `json:"challenge_response"`
	ChallengeToken    string `json:"challenge_token"`
	TenantPK          string `json:"tenant_pk,omitempty"`
}

// IdentifyVerifyResponse carries the session auth token minted on success.
type IdentifyVerifyResponse struct {
	AuthToken string `json:"auth_token"`
}

// LoginChallengeRequest re-requests a challenge for a known user.
type LoginChallengeRequest struct {
	Identifier             Identifier    `json:"identifier"`
	PreferredChallengeKind ChallengeKind `json:"preferred_challenge_kind"`
}

// SignupChallengeRequest requests a challenge for a brand-new user, keyed by
// phone only.
type SignupChallengeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// ChallengeResponse wraps the challenge data returned by the login/signup
// challenge endpoints.
type ChallengeResponse struct {
	ChallengeData ChallengeData `json:"challenge_data"`
}

// OnboardingStatusResponse is the full requirement snapshot for a session.
type OnboardingStatusResponse struct {
	AllRequirements []requirement.Requirement `json:"all_requirements"`
	ObConfiguration map[string]any            `json:"ob_configuration,omitempty"`
}

// AuthorizeResponse carries the validation token minted when the user
// authorizes the tenant's data access.
type AuthorizeResponse struct {
	ValidationToken string `json:"validation_token"`
}

// UserEmailRequest submits the collected email for verification-email
// dispatch.
type UserEmailRequest struct {
	Data struct {
		Email string `json:"email"`
	} `json:"data"`
}
