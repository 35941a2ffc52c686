package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bifrost/internal/api"
	"bifrost/internal/audit"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/flow"
	"bifrost/internal/onboarding/requirement"
	"bifrost/internal/onboarding/service/mocks"
	"bifrost/internal/onboarding/sessionctx"
	"bifrost/internal/onboarding/store"
	"bifrost/internal/platform/metrics"
	"bifrost/internal/scopedtoken"
	"bifrost/internal/scopedtoken/revocation"
	dErrors "bifrost/pkg/domain-errors"
)

const (
	uaIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaLinux  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type stubCreds struct {
	assertion string
	err       error
}

func (s stubCreds) Assert(context.Context, string) (string, error) {
	return s.assertion, s.err
}

type harness struct {
	client      *mocks.MockClient
	store       *store.MemoryStore
	inbox       chan audit.Event
	tokens      *scopedtoken.Service
	revocations *revocation.MemoryList
	svc         *Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		client:      mocks.NewMockClient(ctrl),
		store:       store.NewMemoryStore(),
		inbox:       make(chan audit.Event, 32),
		tokens:      scopedtoken.NewService("test-key", time.Minute),
		revocations: revocation.NewMemoryList(),
	}
	logger := slog.New(slog.DiscardHandler)
	h.svc = New(Config{
		API:              h.client,
		Store:            h.store,
		Credentials:      stubCreds{assertion: "assertion"},
		Tokens:           h.tokens,
		Revocations:      h.revocations,
		Audit:            audit.NewPublisher(h.inbox, logger),
		Metrics:          metrics.New(prometheus.NewRegistry()),
		Logger:           logger,
		ResendCooldown:   30 * time.Second,
		BootstrapTimeout: time.Minute,
	})
	return h
}

// auditActions drains everything emitted so far.
func (h *harness) auditActions() []audit.Action {
	var out []audit.Action
	for {
		select {
		case ev := <-h.inbox:
			out = append(out, ev.Action)
		default:
			return out
		}
	}
}

// readySession starts a session and completes its bootstrap.
func (h *harness) readySession(t *testing.T) *store.Record {
	t.Helper()
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{
		AuthToken: "tok_session",
		TenantPK:  "org_test",
		ObConfig:  &sessionctx.Config{ID: "obc_1", Name: "default"},
	})
	require.NoError(t, err)
	require.Equal(t, sessionctx.StateReady, rec.CtxState)
	return rec
}

func TestStartSession(t *testing.T) {
	h := newHarness(t)

	rec, err := h.svc.StartSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, sessionctx.StateInit, rec.CtxState)
	require.Equal(t, flow.PhaseInit, rec.FlowPhase)
	require.Equal(t, challenge.StateInit, rec.ChallengeState)

	found, err := h.svc.GetSession(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, found.ID)

	require.Equal(t, []audit.Action{audit.ActionSessionStarted}, h.auditActions())
}

func TestGetSessionUnknown(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.GetSession(context.Background(), "missing")
	require.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestUpdateContextConvergesToReady(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{AuthToken: "tok_1"})
	require.NoError(t, err)
	require.Equal(t, sessionctx.StateInit, rec.CtxState)
	require.Equal(t, flow.PhaseInit, rec.FlowPhase)

	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{
		ObConfig: &sessionctx.Config{ID: "obc_1"},
	})
	require.NoError(t, err)
	require.Equal(t, sessionctx.StateReady, rec.CtxState)
	require.Equal(t, flow.PhaseAwaitingRequirements, rec.FlowPhase)

	actions := h.auditActions()
	require.Contains(t, actions, audit.ActionContextReady)
}

func TestUpdateContextTransferContinuationSticky(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{TransferContinuation: true})
	require.NoError(t, err)
	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{AuthToken: "tok_1"})
	require.NoError(t, err)

	require.True(t, rec.Flags.TransferContinuation)
	require.True(t, rec.Ctx.TransferContinuation)
}

func TestResetContext(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	rec, err := h.svc.ResetContext(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, sessionctx.StateInit, rec.CtxState)
	require.Empty(t, rec.Ctx.AuthToken)
	require.Equal(t, flow.PhaseInit, rec.FlowPhase)
	require.Equal(t, requirement.SessionFlags{}, rec.Flags)
	require.Nil(t, rec.PendingChallenge)

	require.Contains(t, h.auditActions(), audit.ActionContextReset)
}

func TestIdentifySMSPath(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	data := &api.ChallengeData{
		ChallengeKind:  api.ChallengeKindSMS,
		ChallengeToken: "ct_1",
	}
	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: true, ChallengeData: data}, nil)

	rec, outcome, err := h.svc.Identify(ctx, rec.ID, api.Identifier{Email: "u@example.com"}, uaLinux)
	require.NoError(t, err)
	require.Equal(t, challenge.OutcomeUserFound, outcome.Kind)
	require.True(t, rec.UserFound)
	require.Equal(t, "ct_1", rec.PendingChallenge.ChallengeToken)
	require.Equal(t, "u@example.com", rec.Identifier.Email)

	require.Contains(t, h.auditActions(), audit.ActionChallengeIssued)
}

func TestIdentifyUserNotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: false}, nil)

	rec, outcome, err := h.svc.Identify(ctx, rec.ID, api.Identifier{PhoneNumber: "+15551234567"}, uaLinux)
	require.NoError(t, err)
	require.Equal(t, challenge.OutcomeUserNotFound, outcome.Kind)
	require.False(t, rec.UserFound)
	require.Nil(t, rec.PendingChallenge)
}

func TestIdentifyBiometricAuthenticated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)
	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{
		ObConfig: &sessionctx.Config{ID: "obc_1"},
	})
	require.NoError(t, err)

	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: true, ChallengeData: &api.ChallengeData{
			ChallengeKind:          api.ChallengeKindBiometric,
			ChallengeToken:         "ct_bio",
			BiometricChallengeJSON: `{"challenge":"abc"}`,
		}}, nil)
	h.client.EXPECT().
		IdentifyVerify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyVerifyResponse{AuthToken: "tok_bio"}, nil)

	rec, outcome, err := h.svc.Identify(ctx, rec.ID, api.Identifier{Email: "u@example.com"}, uaIPhone)
	require.NoError(t, err)
	require.Equal(t, challenge.OutcomeBiometricAuthenticated, outcome.Kind)

	// The minted token completed bootstrap, so the flow started.
	require.Equal(t, "tok_bio", rec.Ctx.AuthToken)
	require.Equal(t, sessionctx.StateReady, rec.CtxState)
	require.Equal(t, flow.PhaseAwaitingRequirements, rec.FlowPhase)
}

func TestVerifyCodeSuccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)
	rec, err = h.svc.UpdateContext(ctx, rec.ID, sessionctx.Update{
		TenantPK: "org_test",
		ObConfig: &sessionctx.Config{ID: "obc_1"},
	})
	require.NoError(t, err)

	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: true, ChallengeData: &api.ChallengeData{
			ChallengeKind:  api.ChallengeKindSMS,
			ChallengeToken: "ct_1",
		}}, nil)
	_, _, err = h.svc.Identify(ctx, rec.ID, api.Identifier{Email: "u@example.com"}, uaLinux)
	require.NoError(t, err)

	h.client.EXPECT().
		IdentifyVerify(gomock.Any(), api.IdentifyVerifyRequest{
			ChallengeResponse: "123456",
			ChallengeToken:    "ct_1",
			TenantPK:          "org_test",
		}).
		Return(&api.IdentifyVerifyResponse{AuthToken: "tok_sms"}, nil)

	rec, err = h.svc.VerifyCode(ctx, rec.ID, "123456")
	require.NoError(t, err)
	require.Nil(t, rec.PendingChallenge)
	require.Equal(t, "tok_sms", rec.Ctx.AuthToken)
	require.Equal(t, sessionctx.StateReady, rec.CtxState)

	require.Contains(t, h.auditActions(), audit.ActionChallengeVerified)
}

func TestVerifyCodeRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: true, ChallengeData: &api.ChallengeData{
			ChallengeKind:  api.ChallengeKindSMS,
			ChallengeToken: "ct_1",
		}}, nil)
	_, _, err := h.svc.Identify(ctx, rec.ID, api.Identifier{Email: "u@example.com"}, uaLinux)
	require.NoError(t, err)

	h.client.EXPECT().
		IdentifyVerify(gomock.Any(), gomock.Any()).
		Return(nil, api.ErrInvalidChallenge)

	_, err = h.svc.VerifyCode(ctx, rec.ID, "000000")
	require.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestVerifyCodeWithoutPendingChallenge(t *testing.T) {
	h := newHarness(t)
	rec := h.readySession(t)

	_, err := h.svc.VerifyCode(context.Background(), rec.ID, "123456")
	require.Equal(t, dErrors.CodeInvalidState, dErrors.CodeOf(err))
}

func TestResendChallenge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		Identify(gomock.Any(), gomock.Any()).
		Return(&api.IdentifyResponse{UserFound: true, ChallengeData: &api.ChallengeData{
			ChallengeKind:  api.ChallengeKindSMS,
			ChallengeToken: "ct_1",
		}}, nil)
	_, _, err := h.svc.Identify(ctx, rec.ID, api.Identifier{Email: "u@example.com"}, uaLinux)
	require.NoError(t, err)

	h.client.EXPECT().
		LoginChallenge(gomock.Any(), gomock.Any()).
		Return(&api.ChallengeResponse{ChallengeData: api.ChallengeData{
			ChallengeKind:  api.ChallengeKindSMS,
			ChallengeToken: "ct_2",
		}}, nil)

	rec, err = h.svc.ResendChallenge(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "ct_2", rec.PendingChallenge.ChallengeToken)
	require.Contains(t, h.auditActions(), audit.ActionChallengeResent)
}

func TestPollRequirementsNotReady(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = h.svc.PollRequirements(ctx, rec.ID)
	require.Equal(t, dErrors.CodeInvalidState, dErrors.CodeOf(err))
}

func TestPollRequirementsBootstrapTimeout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rec, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	h.svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = h.svc.PollRequirements(ctx, rec.ID)
	require.Equal(t, dErrors.CodeExpired, dErrors.CodeOf(err))
}

func TestPollRequirementsEntersStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), "tok_session", "org_test").
		Return(&api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
			{Kind: requirement.KindCollectKYCData, IsMet: false},
			{Kind: requirement.KindLiveness, IsMet: false},
			{Kind: requirement.KindAuthorize, IsMet: false},
		}}, nil)

	rec, err := h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseStep, rec.FlowPhase)
	require.Equal(t, requirement.KindCollectKYCData, rec.FlowCurrent.Kind)
	require.Len(t, rec.FlowQueued, 2)
	require.True(t, rec.Flags.StartedDataCollection)
	require.True(t, rec.Flags.CollectedKYCDataShown)
}

func TestPollRequirementsMetKYCQueuedBehindUnmet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), "tok_session", "org_test").
		Return(&api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
			{Kind: requirement.KindLiveness, IsMet: false},
			{Kind: requirement.KindCollectKYCData, IsMet: true},
		}}, nil)

	rec, err := h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseStep, rec.FlowPhase)
	require.Equal(t, requirement.KindLiveness, rec.FlowCurrent.Kind)
	// KYC is only queued, not on screen; its show-once window stays open.
	require.False(t, rec.Flags.CollectedKYCDataShown)

	_, err = h.svc.CompleteStep(ctx, rec.ID)
	require.NoError(t, err)

	// Liveness is met server-side now; the met KYC step must still surface
	// exactly once before the session can authorize.
	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), "tok_session", "org_test").
		Return(&api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
			{Kind: requirement.KindLiveness, IsMet: true},
			{Kind: requirement.KindCollectKYCData, IsMet: true},
		}}, nil)

	rec, err = h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseStep, rec.FlowPhase)
	require.Equal(t, requirement.KindCollectKYCData, rec.FlowCurrent.Kind)
	require.True(t, rec.Flags.CollectedKYCDataShown)
}

func TestPollRequirementsAuthorizes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	// Flags past the show-once window so an all-met list resolves empty.
	stored, err := h.store.Find(ctx, rec.ID)
	require.NoError(t, err)
	stored.Flags = requirement.SessionFlags{StartedDataCollection: true, CollectedKYCDataShown: true}
	require.NoError(t, h.store.Update(ctx, stored))

	allMet := &api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
		{Kind: requirement.KindCollectKYCData, IsMet: true},
		{Kind: requirement.KindLiveness, IsMet: true},
		{Kind: requirement.KindAuthorize, IsMet: true},
	}}
	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), "tok_session", "org_test").
		Return(allMet, nil).
		Times(2)
	h.client.EXPECT().
		OnboardingAuthorize(gomock.Any(), "tok_session", "org_test").
		Return(&api.AuthorizeResponse{ValidationToken: "vt_1"}, nil)

	rec, err = h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseAuthorized, rec.FlowPhase)
	require.Equal(t, "vt_1", rec.ValidationToken)
	require.Contains(t, h.auditActions(), audit.ActionSessionAuthorized)
}

func TestCompleteStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
			{Kind: requirement.KindCollectKYCData, IsMet: false},
		}}, nil)
	rec, err := h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseStep, rec.FlowPhase)

	rec, err = h.svc.CompleteStep(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, flow.PhaseAwaitingRequirements, rec.FlowPhase)
	require.Contains(t, h.auditActions(), audit.ActionRequirementCompleted)
}

func TestCompleteStepOutsideStep(t *testing.T) {
	h := newHarness(t)
	rec := h.readySession(t)

	_, err := h.svc.CompleteStep(context.Background(), rec.ID)
	require.Equal(t, dErrors.CodeInvalidState, dErrors.CodeOf(err))
}

func TestFailStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	h.client.EXPECT().
		GetOnboardingStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&api.OnboardingStatusResponse{AllRequirements: []requirement.Requirement{
			{Kind: requirement.KindLiveness, IsMet: false},
		}}, nil)
	rec, err := h.svc.PollRequirements(ctx, rec.ID)
	require.NoError(t, err)

	rec, err = h.svc.FailStep(ctx, rec.ID, "document capture failed")
	require.NoError(t, err)
	require.Equal(t, flow.PhaseFailed, rec.FlowPhase)
	require.Contains(t, h.auditActions(), audit.ActionSessionFailed)
}

func TestBeginLivenessOnCapableDevice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	handoff, err := h.svc.BeginLiveness(ctx, rec.ID, uaIPhone)
	require.NoError(t, err)
	require.False(t, handoff.Skipped)
	require.NotEmpty(t, handoff.ScopedAuthToken)
	require.NotEmpty(t, handoff.HandoffSecret)
	require.Equal(t, challenge.StateNewTabRequest, handoff.Record.ChallengeState)
	require.NotEmpty(t, handoff.Record.HandoffSecretHash)

	claims, err := h.tokens.Validate(handoff.ScopedAuthToken)
	require.NoError(t, err)
	require.Equal(t, rec.ID, claims.SessionID)
}

func TestBeginLivenessFallsBackOnDesktop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	handoff, err := h.svc.BeginLiveness(ctx, rec.ID, uaLinux)
	require.NoError(t, err)
	require.True(t, handoff.Skipped)
	require.Empty(t, handoff.ScopedAuthToken)
	require.Equal(t, challenge.StateSkipLiveness, handoff.Record.ChallengeState)
	require.Contains(t, h.auditActions(), audit.ActionLivenessSkipped)
}

func TestLivenessRegistrationSucceeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	_, err := h.svc.BeginLiveness(ctx, rec.ID, uaIPhone)
	require.NoError(t, err)

	updated, err := h.svc.NotifyTabOpened(ctx, rec.ID, "tab-1")
	require.NoError(t, err)
	require.Equal(t, challenge.StateNewTabProcessing, updated.ChallengeState)

	updated, err = h.svc.CompleteLivenessRegistration(ctx, rec.ID, challenge.EventNewTabRegisterSucceeded)
	require.NoError(t, err)
	require.Equal(t, challenge.StateSuccess, updated.ChallengeState)
}

func TestLivenessPollingErrorRevokesToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	handoff, err := h.svc.BeginLiveness(ctx, rec.ID, uaIPhone)
	require.NoError(t, err)
	_, err = h.svc.NotifyTabOpened(ctx, rec.ID, "tab-1")
	require.NoError(t, err)

	updated, err := h.svc.CompleteLivenessRegistration(ctx, rec.ID, challenge.EventStatusPollingErrored)
	require.NoError(t, err)
	require.Equal(t, challenge.StateNewTabRequest, updated.ChallengeState)
	require.Empty(t, updated.ChallengeCtx.ScopedAuthToken)
	require.Empty(t, updated.HandoffSecretHash)

	jti, err := h.tokens.JTIOf(handoff.ScopedAuthToken)
	require.NoError(t, err)
	revoked, err := h.revocations.IsRevoked(ctx, jti)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestCompleteLivenessRejectsUnknownEvent(t *testing.T) {
	h := newHarness(t)
	rec := h.readySession(t)

	_, err := h.svc.CompleteLivenessRegistration(context.Background(), rec.ID, "bogus")
	require.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
}

func TestValidateHandoff(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.readySession(t)

	handoff, err := h.svc.BeginLiveness(ctx, rec.ID, uaIPhone)
	require.NoError(t, err)

	t.Run("accepts valid token and secret", func(t *testing.T) {
		got, err := h.svc.ValidateHandoff(ctx, rec.ID, handoff.ScopedAuthToken, handoff.HandoffSecret)
		require.NoError(t, err)
		require.Equal(t, rec.ID, got.ID)
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		_, err := h.svc.ValidateHandoff(ctx, rec.ID, handoff.ScopedAuthToken, "wrong")
		require.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	t.Run("rejects token minted for another session", func(t *testing.T) {
		other, err := h.tokens.Generate("other-session", "org_test")
		require.NoError(t, err)
		_, err = h.svc.ValidateHandoff(ctx, rec.ID, other, handoff.HandoffSecret)
		require.Equal(t, dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	t.Run("rejects revoked token", func(t *testing.T) {
		jti, err := h.tokens.JTIOf(handoff.ScopedAuthToken)
		require.NoError(t, err)
		require.NoError(t, h.revocations.Revoke(ctx, jti, time.Minute))

		_, err = h.svc.ValidateHandoff(ctx, rec.ID, handoff.ScopedAuthToken, handoff.HandoffSecret)
		require.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})
}
