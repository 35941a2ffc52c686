package challenge

import (
	"context"
	"log/slog"
	"testing"

	"bifrost/internal/api"
)

// fakeAPI is a hand-rolled api.Client for unit tests. Each response field is
// returned verbatim; err fields short-circuit the corresponding call.
type fakeAPI struct {
	identifyResp *api.IdentifyResponse
	identifyErr  error

	verifyResp *api.IdentifyVerifyResponse
	verifyErr  error

	loginResp  *api.ChallengeResponse
	loginErr   error
	signupResp *api.ChallengeResponse
	signupErr  error

	emailErr error

	// Recorded inputs.
	identifyReqs []api.IdentifyRequest
	verifyReqs   []api.IdentifyVerifyRequest
	loginReqs    []api.LoginChallengeRequest
	signupReqs   []api.SignupChallengeRequest
	emailCalls   []string
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Identify(_ context.Context, req api.IdentifyRequest) (*api.IdentifyResponse, error) {
	f.identifyReqs = append(f.identifyReqs, req)
	if f.identifyErr != nil {
		return nil, f.identifyErr
	}
	return f.identifyResp, nil
}

func (f *fakeAPI) IdentifyVerify(_ context.Context, req api.IdentifyVerifyRequest) (*api.IdentifyVerifyResponse, error) {
	f.verifyReqs = append(f.verifyReqs, req)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyResp, nil
}

func (f *fakeAPI) LoginChallenge(_ context.Context, req api.LoginChallengeRequest) (*api.ChallengeResponse, error) {
	f.loginReqs = append(f.loginReqs, req)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) SignupChallenge(_ context.Context, req api.SignupChallengeRequest) (*api.ChallengeResponse, error) {
	f.signupReqs = append(f.signupReqs, req)
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return f.signupResp, nil
}

func (f *fakeAPI) GetOnboardingStatus(context.Context, string, string) (*api.OnboardingStatusResponse, error) {
	return &api.OnboardingStatusResponse{}, nil
}

func (f *fakeAPI) OnboardingAuthorize(context.Context, string, string) (*api.AuthorizeResponse, error) {
	return &api.AuthorizeResponse{}, nil
}

func (f *fakeAPI) UserEmail(_ context.Context, _ string, email string) error {
	f.emailCalls = append(f.emailCalls, email)
	return f.emailErr
}

// fakeCreds is a CredentialProvider returning a fixed assertion.
type fakeCreds struct {
	assertion string
	err       error
	payloads  []string
}

func (f *fakeCreds) Assert(_ context.Context, payload string) (string, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return "", f.err
	}
	return f.assertion, nil
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.DiscardHandler)
}
