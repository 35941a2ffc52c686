package service

import (
	"context"

	"bifrost/internal/audit"
	"bifrost/internal/device"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/store"
	"bifrost/internal/scopedtoken"
	dErrors "bifrost/pkg/domain-errors"
)

// LivenessHandoff is what the primary context needs to spawn a registration
// tab: the scoped token it authenticates with and the one-time secret it
// must echo back.
type LivenessHandoff struct {
	Record          *store.Record
	ScopedAuthToken string
	HandoffSecret   string

	// Skipped is set when the device cannot run biometric registration and
	// the machine routed to the fallback instead.
	Skipped bool
}

// BeginLiveness feeds the device capability snapshot into the registration
// machine. Capable devices get a scoped token and handoff secret minted;
// everything else falls back to skipLiveness.
func (s *Service) BeginLiveness(ctx context.Context, id, userAgent string) (*LivenessHandoff, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	dev := device.FromUserAgent(userAgent)
	m := challenge.Restore(rec.ChallengeState, rec.ChallengeCtx)
	state := m.Apply(challenge.Event{Kind: challenge.EventContextReceived, Device: dev})

	handoff := &LivenessHandoff{Record: rec}

	switch state {
	case challenge.StateNewTabRequest:
		token, err := s.tokens.Generate(rec.ID, rec.Ctx.TenantPK)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not mint scoped token")
		}
		secret, err := scopedtoken.GenerateSecret()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not generate handoff secret")
		}
		hash, err := scopedtoken.HashSecret(secret)
		if err != nil {
			return nil, err
		}

		state = m.Apply(challenge.Event{Kind: challenge.EventScopedAuthTokenGenerated, ScopedAuthToken: token})
		rec.HandoffSecretHash = hash
		handoff.ScopedAuthToken = token
		handoff.HandoffSecret = secret

	case challenge.StateSkipLiveness:
		s.metrics.LivenessFallbacks.Inc()
		s.audit.Emit(audit.Event{
			SessionID: rec.ID,
			TenantPK:  rec.Ctx.TenantPK,
			Action:    audit.ActionLivenessSkipped,
			Detail:    string(dev.Type),
		})
		handoff.Skipped = true
	}

	rec.ChallengeState = state
	rec.ChallengeCtx = m.Context()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return handoff, nil
}

// NotifyTabOpened records the spawned registration tab handle.
func (s *Service) NotifyTabOpened(ctx context.Context, id, tab string) (*store.Record, error) {
	return s.applyChallengeEvent(ctx, id, challenge.Event{Kind: challenge.EventNewTabOpened, Tab: tab})
}

// CompleteLivenessRegistration resolves the registration attempt with one of
// the terminal-or-retry events reported by the registration tab or the
// status poller.
func (s *Service) CompleteLivenessRegistration(ctx context.Context, id string, kind challenge.EventKind) (*store.Record, error) {
	switch kind {
	case challenge.EventNewTabRegisterSucceeded,
		challenge.EventNewTabRegisterFailed,
		challenge.EventNewTabRegisterCanceled,
		challenge.EventStatusPollingErrored,
		challenge.EventLivenessSkipped:
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown registration event")
	}
	return s.applyChallengeEvent(ctx, id, challenge.Event{Kind: kind})
}

// ValidateHandoff authenticates a registration tab joining the session. The
// scoped token must verify, must not be revoked, must belong to this session
// and the tab must present the original handoff secret.
func (s *Service) ValidateHandoff(ctx context.Context, id, token, secret string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.SessionID != rec.ID {
		return nil, dErrors.New(dErrors.CodeForbidden, "token does not belong to this session")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not check token revocation")
	}
	if revoked {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "scoped token has been revoked")
	}

	if err := scopedtoken.VerifySecret(secret, rec.HandoffSecretHash); err != nil {
		return nil, err
	}
	return rec, nil
}

// applyChallengeEvent routes one event into the registration machine and
// persists the snapshot. A polling error additionally revokes the scoped
// token the machine just discarded.
func (s *Service) applyChallengeEvent(ctx context.Context, id string, ev challenge.Event) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m := challenge.Restore(rec.ChallengeState, rec.ChallengeCtx)
	prior := m.Context().ScopedAuthToken
	state := m.Apply(ev)

	if ev.Kind == challenge.EventStatusPollingErrored && prior != "" && m.Context().ScopedAuthToken == "" {
		s.revokeScopedToken(ctx, rec.ID, prior)
		rec.HandoffSecretHash = ""
	}

	if ev.Kind == challenge.EventLivenessSkipped && state == challenge.StateFailure {
		s.metrics.LivenessFallbacks.Inc()
		s.audit.Emit(audit.Event{
			SessionID: rec.ID,
			TenantPK:  rec.Ctx.TenantPK,
			Action:    audit.ActionLivenessSkipped,
		})
	}

	rec.ChallengeState = state
	rec.ChallengeCtx = m.Context()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// revokeScopedToken best-effort inserts the discarded token into the
// revocation list for the remainder of its lifetime.
func (s *Service) revokeScopedToken(ctx context.Context, sessionID, token string) {
	jti, err := s.tokens.JTIOf(token)
	if err != nil {
		s.logger.WarnContext(ctx, "could not extract jti from discarded scoped token",
			"session_id", sessionID, "error", err.Error())
		return
	}
	if err := s.revocations.Revoke(ctx, jti, s.tokens.TTL()); err != nil {
		s.logger.WarnContext(ctx, "could not revoke discarded scoped token",
			"session_id", sessionID, "error", err.Error())
	}
}
