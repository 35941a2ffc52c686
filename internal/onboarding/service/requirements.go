package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bifrost/internal/api"
	"bifrost/internal/audit"
	"bifrost/internal/onboarding/flow"
	"bifrost/internal/onboarding/requirement"
	"bifrost/internal/onboarding/sessionctx"
	"bifrost/internal/onboarding/store"
	dErrors "bifrost/pkg/domain-errors"
)

// PollRequirements fetches the server's requirement list, resolves it
// against the session's presentation state and feeds the result to the flow
// machine. An empty resolution authorizes the session.
func (s *Service) PollRequirements(ctx context.Context, id string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireReady(rec); err != nil {
		return nil, err
	}

	status, err := s.api.GetOnboardingStatus(ctx, rec.Ctx.AuthToken, rec.Ctx.TenantPK)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not fetch onboarding status")
	}

	resolved := requirement.Resolve(rec.Flags, status.AllRequirements)
	s.metrics.RequirementsResolved.Observe(float64(len(resolved)))

	// The first poll ends the "first check" window; subsequent polls only
	// surface unmet requirements.
	rec.Flags.StartedDataCollection = true

	fm := s.flowMachine(rec)
	phase := fm.Apply(flow.Event{Kind: flow.EventRequirementsResolved, Resolved: resolved})

	// A show-once requirement counts as shown only once it is the step the
	// user is actually on. Queued entries are re-resolved on the next poll.
	if rec.FlowCurrent != nil && rec.FlowCurrent.Kind == requirement.KindCollectKYCData {
		rec.Flags.CollectedKYCDataShown = true
	}

	if phase == flow.PhaseAuthorized {
		if err := s.authorize(ctx, rec); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CompleteStep marks the requirement currently being worked as done and
// sends the flow back to another status poll.
func (s *Service) CompleteStep(ctx context.Context, id string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.FlowPhase != flow.PhaseStep {
		return nil, dErrors.New(dErrors.CodeInvalidState, "no step in progress")
	}

	var detail string
	if rec.FlowCurrent != nil {
		detail = string(rec.FlowCurrent.Kind)
	}

	fm := s.flowMachine(rec)
	fm.Apply(flow.Event{Kind: flow.EventStepCompleted})

	s.audit.Emit(audit.Event{
		SessionID: rec.ID,
		TenantPK:  rec.Ctx.TenantPK,
		Action:    audit.ActionRequirementCompleted,
		Detail:    detail,
	})

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// FailStep terminates the session: a step failure is not retried.
func (s *Service) FailStep(ctx context.Context, id, reason string) (*store.Record, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fm := s.flowMachine(rec)
	phase := fm.Apply(flow.Event{Kind: flow.EventStepFailed})
	if phase == flow.PhaseFailed {
		s.metrics.SessionsFailed.Inc()
		s.audit.Emit(audit.Event{
			SessionID: rec.ID,
			TenantPK:  rec.Ctx.TenantPK,
			Action:    audit.ActionSessionFailed,
			Detail:    reason,
		})
	}

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// authorize finishes the session: the validation token and the final status
// snapshot are fetched concurrently, then the record is stamped.
func (s *Service) authorize(ctx context.Context, rec *store.Record) error {
	var (
		authResp *api.AuthorizeResponse
		status   *api.OnboardingStatusResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authResp, err = s.api.OnboardingAuthorize(gctx, rec.Ctx.AuthToken, rec.Ctx.TenantPK)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = s.api.GetOnboardingStatus(gctx, rec.Ctx.AuthToken, rec.Ctx.TenantPK)
		return err
	})
	if err := g.Wait(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "authorization failed")
	}

	for _, r := range status.AllRequirements {
		if !r.IsMet {
			return dErrors.New(dErrors.CodeInvalidState, "requirement still unmet at authorization")
		}
	}

	rec.ValidationToken = authResp.ValidationToken
	s.metrics.SessionsAuthorized.Inc()
	s.audit.Emit(audit.Event{
		SessionID: rec.ID,
		TenantPK:  rec.Ctx.TenantPK,
		Action:    audit.ActionSessionAuthorized,
	})
	s.logger.InfoContext(ctx, "onboarding session authorized", "session_id", rec.ID)
	return nil
}

// requireReady gates requirement polling on completed bootstrap. A session
// stuck in init past the bootstrap timeout is reported expired rather than
// merely not ready.
func (s *Service) requireReady(rec *store.Record) error {
	if rec.CtxState == sessionctx.StateReady {
		return nil
	}
	if s.bootstrapTimeout > 0 && s.now().After(rec.CreatedAt.Add(s.bootstrapTimeout)) {
		return dErrors.New(dErrors.CodeExpired, "session bootstrap timed out")
	}
	return dErrors.New(dErrors.CodeInvalidState, "session context not ready")
}
