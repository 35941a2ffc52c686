package challenge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bifrost/internal/api"
	dErrors "bifrost/pkg/domain-errors"
)

// SuccessVisualDelay is the presentational pause the UI shows between a
// verified code and advancing the flow. It is returned to clients, never
// slept on server-side.
const SuccessVisualDelay = 1500 * time.Millisecond

// Verifier submits one-time-code responses and drives challenge resends.
type Verifier struct {
	api            api.Client
	logger         *slog.Logger
	resendCooldown time.Duration
	now            func() time.Time
}

// NewVerifier wires a verifier. cooldown is the client-side resend rate
// limit applied when the server does not dictate one.
func NewVerifier(client api.Client, logger *slog.Logger, cooldown time.Duration) *Verifier {
	return &Verifier{
		api:            client,
		logger:         logger,
		resendCooldown: cooldown,
		now:            time.Now,
	}
}

// VerifyInput is one code-verification attempt.
type VerifyInput struct {
	Code           string
	ChallengeToken string
	TenantPK       string

	// UserExisted distinguishes login from signup: new users additionally
	// get their collected email submitted for verification-mail dispatch.
	UserExisted bool
	Email       string
}

// VerifyCode submits the code. On success it returns the minted auth token;
// on a rejected or expired code it returns a coded domain error and the
// caller surfaces an explicit failed event (no automatic retry).
//
// For new users the email dispatch is best-effort: a missing email or a
// failed call is logged and the verification still succeeds. Blocking
// onboarding on a secondary side effect is deliberately avoided.
func (v *Verifier) VerifyCode(ctx context.Context, in VerifyInput) (string, error) {
	resp, err := v.api.IdentifyVerify(ctx, api.IdentifyVerifyRequest{
		ChallengeResponse: in.Code,
		ChallengeToken:    in.ChallengeToken,
		TenantPK:          in.TenantPK,
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "challenge verification failed")
	}

	if !in.UserExisted {
		v.dispatchEmail(ctx, resp.AuthToken, in.Email)
	}

	return resp.AuthToken, nil
}

func (v *Verifier) dispatchEmail(ctx context.Context, authToken, email string) {
	if email == "" {
		v.logger.WarnContext(ctx, "no email collected for new user, skipping verification mail")
		return
	}
	if err := v.api.UserEmail(ctx, authToken, email); err != nil {
		v.logger.WarnContext(ctx, "verification mail dispatch failed", "error", err.Error())
	}
}

// ResendInput selects the resend path.
type ResendInput struct {
	Email       string
	PhoneNumber string

	// UserFound selects login-challenge (known account) versus
	// signup-challenge (new account, phone only).
	UserFound bool
}

// Resend requests a fresh challenge, preferring the identifier class that
// succeeded originally: email when known, else phone. The returned data
// replaces any in-flight challenge wholesale and carries a reset cooldown.
func (v *Verifier) Resend(ctx context.Context, in ResendInput) (*api.ChallengeData, error) {
	var (
		resp *api.ChallengeResponse
		err  error
	)

	switch {
	case in.UserFound && in.Email != "":
		resp, err = v.api.LoginChallenge(ctx, api.LoginChallengeRequest{
			Identifier:             api.Identifier{Email: in.Email},
			PreferredChallengeKind: api.ChallengeKindSMS,
		})
	case in.UserFound && in.PhoneNumber != "":
		resp, err = v.api.LoginChallenge(ctx, api.LoginChallengeRequest{
			Identifier:             api.Identifier{PhoneNumber: in.PhoneNumber},
			PreferredChallengeKind: api.ChallengeKindSMS,
		})
	case !in.UserFound && in.PhoneNumber != "":
		resp, err = v.api.SignupChallenge(ctx, api.SignupChallengeRequest{
			PhoneNumber: in.PhoneNumber,
		})
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "no identifier available for resend")
	}
	if err != nil {
		return nil, fmt.Errorf("resend challenge: %w", err)
	}

	data := resp.ChallengeData
	if data.RetryDisabledUntil.IsZero() {
		data.RetryDisabledUntil = v.now().Add(v.resendCooldown)
	}
	return &data, nil
}
