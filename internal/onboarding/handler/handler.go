// Package handler exposes the onboarding session API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bifrost/internal/api"
	"bifrost/internal/onboarding/challenge"
	"bifrost/internal/onboarding/requirement"
	"bifrost/internal/onboarding/service"
	"bifrost/internal/onboarding/sessionctx"
	"bifrost/internal/onboarding/store"
	"bifrost/internal/platform/metrics"
	"bifrost/internal/platform/middleware"
	"bifrost/internal/transport/http/shared"
	dErrors "bifrost/pkg/domain-errors"
)

// Service is the orchestration surface the handler delegates to.
type Service interface {
	StartSession(ctx context.Context) (*store.Record, error)
	GetSession(ctx context.Context, id string) (*store.Record, error)
	UpdateContext(ctx context.Context, id string, u sessionctx.Update) (*store.Record, error)
	ResetContext(ctx context.Context, id string) (*store.Record, error)
	Identify(ctx context.Context, id string, identifier api.Identifier, userAgent string) (*store.Record, challenge.Outcome, error)
	VerifyCode(ctx context.Context, id, code string) (*store.Record, error)
	ResendChallenge(ctx context.Context, id string) (*store.Record, error)
	PollRequirements(ctx context.Context, id string) (*store.Record, error)
	CompleteStep(ctx context.Context, id string) (*store.Record, error)
	FailStep(ctx context.Context, id, reason string) (*store.Record, error)
	BeginLiveness(ctx context.Context, id, userAgent string) (*service.LivenessHandoff, error)
	NotifyTabOpened(ctx context.Context, id, tab string) (*store.Record, error)
	CompleteLivenessRegistration(ctx context.Context, id string, kind challenge.EventKind) (*store.Record, error)
	ValidateHandoff(ctx context.Context, id, token, secret string) (*store.Record, error)
}

// Handler handles onboarding session endpoints.
type Handler struct {
	svc     Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates an onboarding Handler.
func New(svc Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{svc: svc, logger: logger, metrics: metrics}
}

// Register mounts the session routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics.RequestLatencySeconds))

	router.Post("/onboarding/sessions", h.handleStartSession)
	router.Route("/onboarding/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.handleGetSession)
		r.Post("/context", h.handleUpdateContext)
		r.Post("/context/reset", h.handleResetContext)
		r.Post("/identify", h.handleIdentify)
		r.Post("/identify/verify", h.handleVerify)
		r.Post("/challenge/resend", h.handleResend)
		r.Post("/requirements/poll", h.handlePollRequirements)
		r.Post("/steps/complete", h.handleCompleteStep)
		r.Post("/steps/fail", h.handleFailStep)
		r.Post("/liveness", h.handleBeginLiveness)
		r.Post("/liveness/tab", h.handleTabOpened)
		r.Post("/liveness/result", h.handleLivenessResult)
		r.Post("/liveness/handoff", h.handleHandoff)
	})

	r.Mount("/", router)
}

// sessionResponse is the session state view returned by every endpoint.
type sessionResponse struct {
	ID                 string                    `json:"id"`
	ContextState       sessionctx.State          `json:"context_state"`
	FlowPhase          string                    `json:"flow_phase"`
	CurrentRequirement *requirement.Requirement  `json:"current_requirement,omitempty"`
	QueuedRequirements []requirement.Requirement `json:"queued_requirements,omitempty"`
	ChallengeState     challenge.State           `json:"challenge_state"`
	PendingChallenge   *api.ChallengeData        `json:"pending_challenge,omitempty"`
	ValidationToken    string                    `json:"validation_token,omitempty"`
}

func toSessionResponse(rec *store.Record) sessionResponse {
	return sessionResponse{
		ID:                 rec.ID,
		ContextState:       rec.CtxState,
		FlowPhase:          string(rec.FlowPhase),
		CurrentRequirement: rec.FlowCurrent,
		QueuedRequirements: rec.FlowQueued,
		ChallengeState:     rec.ChallengeState,
		PendingChallenge:   rec.PendingChallenge,
		ValidationToken:    rec.ValidationToken,
	}
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.StartSession(r.Context())
	if err != nil {
		h.writeError(w, r, "failed to start session", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toSessionResponse(rec))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, "failed to load session", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

// updateContextRequest mirrors one contextUpdated event.
type updateContextRequest struct {
	AuthToken            string               `json:"auth_token,omitempty"`
	TenantPK             string               `json:"tenant_pk,omitempty"`
	Tenant               *sessionctx.TenantInfo `json:"tenant,omitempty"`
	ObConfig             *sessionctx.Config   `json:"ob_config,omitempty"`
	Seed                 *sessionctx.SeedData `json:"seed,omitempty"`
	TransferContinuation bool                 `json:"transfer_continuation,omitempty"`
}

func (h *Handler) handleUpdateContext(w http.ResponseWriter, r *http.Request) {
	var req updateContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.svc.UpdateContext(r.Context(), chi.URLParam(r, "sessionID"), sessionctx.Update{
		AuthToken:            req.AuthToken,
		TenantPK:             req.TenantPK,
		Tenant:               req.Tenant,
		ObConfig:             req.ObConfig,
		Seed:                 req.Seed,
		TransferContinuation: req.TransferContinuation,
	})
	if err != nil {
		h.writeError(w, r, "failed to update context", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

func (h *Handler) handleResetContext(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.ResetContext(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, "failed to reset context", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

type identifyRequest struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type identifyResponse struct {
	Outcome challenge.OutcomeKind `json:"outcome"`
	Session sessionResponse       `json:"session"`
}

func (h *Handler) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" && req.PhoneNumber == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email or phone number required"))
		return
	}

	rec, outcome, err := h.svc.Identify(r.Context(), chi.URLParam(r, "sessionID"),
		api.Identifier{Email: req.Email, PhoneNumber: req.PhoneNumber},
		r.UserAgent())
	if err != nil {
		h.writeError(w, r, "identification failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, identifyResponse{
		Outcome: outcome.Kind,
		Session: toSessionResponse(rec),
	})
}

type verifyRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "code required"))
		return
	}

	rec, err := h.svc.VerifyCode(r.Context(), chi.URLParam(r, "sessionID"), req.Code)
	if err != nil {
		h.writeError(w, r, "verification failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

func (h *Handler) handleResend(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.ResendChallenge(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, "resend failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

func (h *Handler) handlePollRequirements(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.PollRequirements(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, "requirement poll failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

func (h *Handler) handleCompleteStep(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.CompleteStep(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, r, "failed to complete step", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

type failStepRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) handleFailStep(w http.ResponseWriter, r *http.Request) {
	var req failStepRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	rec, err := h.svc.FailStep(r.Context(), chi.URLParam(r, "sessionID"), req.Reason)
	if err != nil {
		h.writeError(w, r, "failed to record step failure", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

type livenessResponse struct {
	Skipped         bool            `json:"skipped"`
	ScopedAuthToken string          `json:"scoped_auth_token,omitempty"`
	HandoffSecret   string          `json:"handoff_secret,omitempty"`
	Session         sessionResponse `json:"session"`
}

func (h *Handler) handleBeginLiveness(w http.ResponseWriter, r *http.Request) {
	handoff, err := h.svc.BeginLiveness(r.Context(), chi.URLParam(r, "sessionID"), r.UserAgent())
	if err != nil {
		h.writeError(w, r, "failed to begin liveness registration", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, livenessResponse{
		Skipped:         handoff.Skipped,
		ScopedAuthToken: handoff.ScopedAuthToken,
		HandoffSecret:   handoff.HandoffSecret,
		Session:         toSessionResponse(handoff.Record),
	})
}

type tabOpenedRequest struct {
	Tab string `json:"tab"`
}

func (h *Handler) handleTabOpened(w http.ResponseWriter, r *http.Request) {
	var req tabOpenedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tab == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tab handle required"))
		return
	}

	rec, err := h.svc.NotifyTabOpened(r.Context(), chi.URLParam(r, "sessionID"), req.Tab)
	if err != nil {
		h.writeError(w, r, "failed to record tab", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

type livenessResultRequest struct {
	Event challenge.EventKind `json:"event"`
}

func (h *Handler) handleLivenessResult(w http.ResponseWriter, r *http.Request) {
	var req livenessResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Event == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "event required"))
		return
	}

	rec, err := h.svc.CompleteLivenessRegistration(r.Context(), chi.URLParam(r, "sessionID"), req.Event)
	if err != nil {
		h.writeError(w, r, "failed to record registration result", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

type handoffRequest struct {
	ScopedAuthToken string `json:"scoped_auth_token"`
	HandoffSecret   string `json:"handoff_secret"`
}

func (h *Handler) handleHandoff(w http.ResponseWriter, r *http.Request) {
	var req handoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.ScopedAuthToken == "" || req.HandoffSecret == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "scoped token and secret required"))
		return
	}

	rec, err := h.svc.ValidateHandoff(r.Context(), chi.URLParam(r, "sessionID"),
		req.ScopedAuthToken, req.HandoffSecret)
	if err != nil {
		h.writeError(w, r, "handoff validation failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSessionResponse(rec))
}

// writeError logs server faults and hands the translation to shared.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := dErrors.CodeOf(err)
	logFn := h.logger.WarnContext
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		logFn = h.logger.ErrorContext
	}
	logFn(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"session_id", chi.URLParam(r, "sessionID"),
		"error", err.Error(),
	)
	shared.WriteError(w, err)
}
