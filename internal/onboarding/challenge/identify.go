package challenge

import (
	"context"
	"fmt"
	"log/slog"

	"bifrost/internal/api"
	"bifrost/internal/device"
)

// CredentialProvider generates a platform credential assertion from a
// server-issued challenge payload. Implementations are opaque capabilities
// (WebAuthn bridge, native biometric); they return a serialized assertion or
// fail.
type CredentialProvider interface {
	Assert(ctx context.Context, biometricChallengeJSON string) (string, error)
}

// OutcomeKind classifies what identify dispatch concluded.
type OutcomeKind string

const (
	// OutcomeBiometricAuthenticated: the user was found, asserted a platform
	// credential and verification succeeded. AuthToken is set.
	OutcomeBiometricAuthenticated OutcomeKind = "biometricAuthenticated"

	// OutcomeBiometricFailed: a biometric challenge was attempted and either
	// assertion or verification failed. The caller decides whether to fall
	// back to SMS.
	OutcomeBiometricFailed OutcomeKind = "biometricFailed"

	// OutcomeUserFound: the user exists; Challenge carries the SMS challenge
	// for the caller to drive an OTP entry step.
	OutcomeUserFound OutcomeKind = "userFound"

	// OutcomeUserNotFound: no account matched; the caller proceeds to
	// registration.
	OutcomeUserNotFound OutcomeKind = "userNotFound"
)

// Outcome is the result of one identify dispatch.
type Outcome struct {
	Kind      OutcomeKind
	AuthToken string
	Challenge *api.ChallengeData
}

// Dispatcher runs identifier resolution and routes the returned challenge to
// the right authentication path.
type Dispatcher struct {
	api    api.Client
	creds  CredentialProvider
	logger *slog.Logger
}

// NewDispatcher wires an identify dispatcher.
func NewDispatcher(client api.Client, creds CredentialProvider, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{api: client, creds: creds, logger: logger}
}

// Run identifies the user by email or phone and, when the device supports it
// and the server issued one, completes a biometric challenge inline. SMS
// challenges are handed back for the caller to drive.
func (d *Dispatcher) Run(ctx context.Context, identifier api.Identifier, dev device.Device) (Outcome, error) {
	resp, err := d.api.Identify(ctx, api.IdentifyRequest{
		Identifier:             identifier,
		PreferredChallengeKind: PreferredKind(dev),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("identify: %w", err)
	}

	if !resp.UserFound {
		return Outcome{Kind: OutcomeUserNotFound}, nil
	}

	if resp.ChallengeData != nil && resp.ChallengeData.ChallengeKind == api.ChallengeKindBiometric {
		if resp.ChallengeData.BiometricChallengeJSON == "" {
			// The server claimed a biometric challenge but sent no payload.
			// Degrade to the phone branch instead of hanging on assertion.
			d.logger.WarnContext(ctx, "biometric challenge missing payload, degrading to sms path")
			return Outcome{Kind: OutcomeUserFound, Challenge: resp.ChallengeData}, nil
		}
		return d.runBiometric(ctx, resp.ChallengeData)
	}

	return Outcome{Kind: OutcomeUserFound, Challenge: resp.ChallengeData}, nil
}

func (d *Dispatcher) runBiometric(ctx context.Context, data *api.ChallengeData) (Outcome, error) {
	assertion, err := d.creds.Assert(ctx, data.BiometricChallengeJSON)
	if err != nil {
		d.logger.WarnContext(ctx, "platform credential assertion failed", "error", err.Error())
		return Outcome{Kind: OutcomeBiometricFailed, Challenge: data}, nil
	}

	verified, err := d.api.IdentifyVerify(ctx, api.IdentifyVerifyRequest{
		ChallengeResponse: assertion,
		ChallengeToken:    data.ChallengeToken,
	})
	if err != nil {
		d.logger.WarnContext(ctx, "biometric login failed", "error", err.Error())
		return Outcome{Kind: OutcomeBiometricFailed, Challenge: data}, nil
	}

	return Outcome{Kind: OutcomeBiometricAuthenticated, AuthToken: verified.AuthToken}, nil
}
