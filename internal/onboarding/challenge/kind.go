// Package challenge drives identifier resolution to a completed
// authentication challenge: kind selection, the biometric new-tab
// registration machine, identify dispatch, and code verification/resend.
package challenge

import (
	"bifrost/internal/api"
	"bifrost/internal/device"
)

// PreferredKind selects the challenge kind to request for a device.
// Biometric is preferred only on mobile devices with platform authenticator
// support; everything else gets SMS.
func PreferredKind(d device.Device) api.ChallengeKind {
	if d.Type == device.TypeMobile && d.HasSupportForWebauthn {
		return api.ChallengeKindBiometric
	}
	return api.ChallengeKindSMS
}
