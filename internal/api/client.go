// Package api is the client for the remote verification API that owns
// identify/challenge issuance, onboarding status, and authorization. The
// orchestration core treats it as an external collaborator: shapes only, no
// wire-format ownership.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"bifrost/pkg/sentinel"
)

// ErrInvalidChallenge is returned when the remote rejects a challenge
// response as wrong or expired. Callers surface it as a retryable failure,
// never as a terminal one.
var ErrInvalidChallenge = errors.New("invalid or expired challenge")

// Client is the operation surface the orchestration core consumes.
type Client interface {
	Identify(ctx context.Context, req IdentifyRequest) (*IdentifyResponse, error)
	IdentifyVerify(ctx context.Context, req IdentifyVerifyRequest) (*IdentifyVerifyResponse, error)
	LoginChallenge(ctx context.Context, req LoginChallengeRequest) (*ChallengeResponse, error)
	SignupChallenge(ctx context.Context, req SignupChallengeRequest) (*ChallengeResponse, error)
	GetOnboardingStatus(ctx context.Context, authToken, tenantPK string) (*OnboardingStatusResponse, error)
	OnboardingAuthorize(ctx context.Context, authToken, tenantPK string) (*AuthorizeResponse, error)
	UserEmail(ctx context.Context, authToken, email string) error
}

// HTTPClient implements Client against the real API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewHTTPClient creates a client for the API at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tracer: otel.Tracer("bifrost/api"),
	}
}

func (c *HTTPClient) Identify(ctx context.Context, req IdentifyRequest) (*IdentifyResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.identify")
	defer span.End()

	var resp IdentifyResponse
	if err := c.post(ctx, "/hosted/identify", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) IdentifyVerify(ctx context.Context, req IdentifyVerifyRequest) (*IdentifyVerifyResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.identify_verify")
	defer span.End()

	var resp IdentifyVerifyResponse
	if err := c.post(ctx, "/hosted/identify/verify", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) LoginChallenge(ctx context.Context, req LoginChallengeRequest) (*ChallengeResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.login_challenge")
	defer span.End()

	var resp ChallengeResponse
	if err := c.post(ctx, "/hosted/identify/login_challenge", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SignupChallenge(ctx context.Context, req SignupChallengeRequest) (*ChallengeResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.signup_challenge")
	defer span.End()

	var resp ChallengeResponse
	if err := c.post(ctx, "/hosted/identify/signup_challenge", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetOnboardingStatus(ctx context.Context, authToken, tenantPK string) (*OnboardingStatusResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.onboarding_status")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hosted/onboarding/status", nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	c.authHeaders(req, authToken, tenantPK)

	var resp OnboardingStatusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) OnboardingAuthorize(ctx context.Context, authToken, tenantPK string) (*AuthorizeResponse, error) {
	ctx, span := c.tracer.Start(ctx, "api.onboarding_authorize")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hosted/onboarding/authorize", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build authorize request: %w", err)
	}
	c.authHeaders(req, authToken, tenantPK)

	var resp AuthorizeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UserEmail(ctx context.Context, authToken, email string) error {
	ctx, span := c.tracer.Start(ctx, "api.user_email")
	defer span.End()

	var body UserEmailRequest
	body.Data.Email = email
	return c.post(ctx, "/hosted/user/email", authToken, body, nil)
}

func (c *HTTPClient) post(ctx context.Context, path, authToken string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("X-Fp-Authorization", authToken)
	}

	return c.do(req, out)
}

func (c *HTTPClient) authHeaders(req *http.Request, authToken, tenantPK string) {
	req.Header.Set("X-Fp-Authorization", authToken)
	if tenantPK != "" {
		req.Header.Set("X-Onboarding-Config-Key", tenantPK)
	}
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s: %w", req.URL.Path, string(body), ErrInvalidChallenge)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", req.URL.Path, resp.StatusCode, string(body))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
