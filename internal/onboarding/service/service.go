// Package service orchestrates onboarding sessions. It owns the machine
// snapshots persisted per session, drives them with events arriving over the
// transport, and performs the side effects the machines themselves stay pure
// of: API calls, token minting, audit and metrics.
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks bifrost/internal/api Client

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bifrost/internal/api"
	"bifrost/internal/audit"
	"bifrost/internal/device"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/flow"
	"bifrost/internal/onboarding/requirement"
	"bifrost/internal/onboarding/sessionctx"
	"bifrost/internal/onboarding/store"
	"bifrost/internal/platform/metrics"
	"bifrost/internal/scopedtoken"
	"bifrost/internal/scopedtoken/revocation"
	dErrors "bifrost/pkg/domain-errors"
)

// Service drives onboarding sessions end to end.
type Service struct {
	api         api.Client
	store       store.Store
	dispatcher  *challenge.Dispatcher
	verifier    *challenge.Verifier
	tokens      *scopedtoken.Service
	revocations revocation.List
	audit       *audit.Publisher
	metrics     *metrics.Metrics
	logger      *slog.Logger

	// bootstrapTimeout bounds how long a session may sit in init waiting
	// for context updates before requirement polls report it expired.
	bootstrapTimeout time.Duration

	now func() time.Time
}

// Config wires a Service.
type Config struct {
	API              api.Client
	Store            store.Store
	Credentials      challenge.CredentialProvider
	Tokens           *scopedtoken.Service
	Revocations      revocation.List
	Audit            *audit.Publisher
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
	ResendCooldown   time.Duration
	BootstrapTimeout time.Duration
}

func New(cfg Config) *Service {
	return &Service{
		api:              cfg.API,
		store:            cfg.Store,
		dispatcher:       challenge.NewDispatcher(cfg.API, cfg.Credentials, cfg.Logger),
		verifier:         challenge.NewVerifier(cfg.API, cfg.Logger, cfg.ResendCooldown),
		tokens:           cfg.Tokens,
		revocations:      cfg.Revocations,
		audit:            cfg.Audit,
		metrics:          cfg.Metrics,
		logger:           cfg.Logger,
		bootstrapTimeout: cfg.BootstrapTimeout,
		now:              time.Now,
	}
}

// StartSession creates a new session with all machines at their initial
// state and returns its record.
func (s *Service) StartSession(ctx context.Context) (*store.Record, error) {
	rec := &store.Record{
		ID:             uuid.NewString(),
		CtxState:       sessionctx.StateInit,
		FlowPhase:      flow.PhaseInit,
		ChallengeState: challenge.StateInit,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create session")
	}

	s.metrics.SessionsStarted.Inc()
	s.audit.Emit(audit.Event{SessionID: rec.ID, Action: audit.ActionSessionStarted})
	s.logger.InfoContext(ctx, "onboarding session started", "session_id", rec.ID)
	return rec, nil
}

// GetSession returns the current session record.
func (s *Service) GetSession(ctx context.Context, id string) (*store.Record, error) {
	return s.load(ctx, id)
}

// UpdateContext merges one bootstrap update into the session context. When
// the update completes bootstrap the flow machine is started.
func (s *Service) UpdateContext(ctx context.Context, id string, u sessionctx.Update) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m := sessionctx.Restore(rec.CtxState, rec.Ctx)
	wasReady := m.State() == sessionctx.StateReady
	state := m.Apply(u)

	rec.CtxState = state
	rec.Ctx = m.Context()
	if u.TransferContinuation {
		rec.Flags.TransferContinuation = true
	}

	if !wasReady && state == sessionctx.StateReady {
		fm := s.flowMachine(rec)
		rec.FlowPhase = fm.Apply(flow.Event{Kind: flow.EventStarted})
		s.audit.Emit(audit.Event{
			SessionID: rec.ID,
			TenantPK:  rec.Ctx.TenantPK,
			Action:    audit.ActionContextReady,
		})
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ResetContext discards everything bootstrap accumulated. The session
// returns to init and waits for a fresh set of updates.
func (s *Service) ResetContext(ctx context.Context, id string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m := sessionctx.Restore(rec.CtxState, rec.Ctx)
	m.Reset()
	rec.CtxState = m.State()
	rec.Ctx = m.Context()

	// The flow cannot outlive the bootstrap data it was started with.
	rec.Flags = requirement.SessionFlags{}
	rec.FlowPhase = flow.PhaseInit
	rec.FlowCurrent = nil
	rec.FlowQueued = nil
	rec.PendingChallenge = nil

	s.audit.Emit(audit.Event{SessionID: rec.ID, Action: audit.ActionContextReset})

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Identify resolves the user by email or phone and either completes a
// biometric login inline or leaves an SMS challenge pending on the record.
func (s *Service) Identify(ctx context.Context, id string, identifier api.Identifier, userAgent string) (*store.Record, challenge.Outcome, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, challenge.Outcome{}, err
	}

	dev := device.FromUserAgent(userAgent)
	outcome, err := s.dispatcher.Run(ctx, identifier, dev)
	if err != nil {
		return nil, challenge.Outcome{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "identification failed")
	}

	rec.Identifier = identifier
	rec.UserFound = outcome.Kind != challenge.OutcomeUserNotFound
	rec.PendingChallenge = outcome.Challenge

	switch outcome.Kind {
	case challenge.OutcomeBiometricAuthenticated:
		s.applyAuthToken(rec, outcome.AuthToken)
		s.metrics.ChallengesVerified.WithLabelValues(string(api.ChallengeKindBiometric), "success").Inc()
	case challenge.OutcomeUserFound, challenge.OutcomeBiometricFailed:
		if outcome.Challenge != nil {
			s.metrics.ChallengesIssued.WithLabelValues(string(outcome.Challenge.ChallengeKind)).Inc()
			s.audit.Emit(audit.Event{
				SessionID: rec.ID,
				Action:    audit.ActionChallengeIssued,
				Detail:    string(outcome.Challenge.ChallengeKind),
			})
		}
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, challenge.Outcome{}, err
	}
	return rec, outcome, nil
}

// VerifyCode submits the one-time code for the pending challenge. On success
// the minted auth token is merged into the session context.
func (s *Service) VerifyCode(ctx context.Context, id, code string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PendingChallenge == nil {
		return nil, dErrors.New(dErrors.CodeInvalidState, "no challenge pending")
	}

	kind := string(rec.PendingChallenge.ChallengeKind)
	token, err := s.verifier.VerifyCode(ctx, challenge.VerifyInput{
		Code:           code,
		ChallengeToken: rec.PendingChallenge.ChallengeToken,
		TenantPK:       rec.Ctx.TenantPK,
		UserExisted:    rec.UserFound,
		Email:          rec.Identifier.Email,
	})
	if err != nil {
		s.metrics.ChallengesVerified.WithLabelValues(kind, "failure").Inc()
		return nil, err
	}

	s.metrics.ChallengesVerified.WithLabelValues(kind, "success").Inc()
	s.audit.Emit(audit.Event{
		SessionID: rec.ID,
		Action:    audit.ActionChallengeVerified,
		Detail:    kind,
	})

	rec.PendingChallenge = nil
	s.applyAuthToken(rec, token)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ResendChallenge requests a fresh challenge for the identifier on record.
func (s *Service) ResendChallenge(ctx context.Context, id string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.verifier.Resend(ctx, challenge.ResendInput{
		Email:       rec.Identifier.Email,
		PhoneNumber: rec.Identifier.PhoneNumber,
		UserFound:   rec.UserFound,
	})
	if err != nil {
		return nil, err
	}

	rec.PendingChallenge = data
	s.metrics.ChallengeResends.Inc()
	s.audit.Emit(audit.Event{
		SessionID: rec.ID,
		Action:    audit.ActionChallengeResent,
		Detail:    string(data.ChallengeKind),
	})

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// applyAuthToken merges a freshly minted auth token into the session
// context, starting the flow if that completes bootstrap.
func (s *Service) applyAuthToken(rec *store.Record, token string) {
	m := sessionctx.Restore(rec.CtxState, rec.Ctx)
	wasReady := m.State() == sessionctx.StateReady
	state := m.Apply(sessionctx.Update{AuthToken: token})
	rec.CtxState = state
	rec.Ctx = m.Context()

	if !wasReady && state == sessionctx.StateReady {
		fm := s.flowMachine(rec)
		rec.FlowPhase = fm.Apply(flow.Event{Kind: flow.EventStarted})
		s.audit.Emit(audit.Event{
			SessionID: rec.ID,
			TenantPK:  rec.Ctx.TenantPK,
			Action:    audit.ActionContextReady,
		})
	}
}

// flowMachine restores the flow machine and rebinds its snapshot into rec on
// the way back out via the returned machine's accessors. Callers must copy
// phase, current and queued back after applying events.
func (s *Service) flowMachine(rec *store.Record) *boundFlow {
	return &boundFlow{
		m:   flow.Restore(rec.FlowPhase, rec.FlowCurrent, rec.FlowQueued),
		rec: rec,
	}
}

// boundFlow keeps the record's flow snapshot in sync with the machine.
type boundFlow struct {
	m   *flow.Machine
	rec *store.Record
}

func (b *boundFlow) Apply(ev flow.Event) flow.Phase {
	phase := b.m.Apply(ev)
	b.rec.FlowPhase = phase
	b.rec.FlowCurrent = b.m.Current()
	b.rec.FlowQueued = b.m.Queued()
	return phase
}

func (s *Service) load(ctx context.Context, id string) (*store.Record, error) {
	rec, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "session not found")
	}
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec *store.Record) error {
	if err := s.store.Update(ctx, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not persist session")
	}
	return nil
}
