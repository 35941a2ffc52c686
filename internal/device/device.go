// Package device derives the capability info the challenge machinery needs
// from a client User-Agent string.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Type is the coarse device class relevant to challenge selection.
type Type string

const (
	TypeMobile  Type = "mobile"
	TypeDesktop Type = "desktop"
)

// Device is the capability snapshot supplied to the machines at start.
type Device struct {
	Type                  Type `json:"type"`
	HasSupportForWebauthn bool `json:"has_support_for_webauthn"`
}

// FromUserAgent classifies a User-Agent string. Platform authenticator
// support cannot be probed server-side, so it is approximated from the OS
// family: iOS and Android ship platform authenticators, and the widget
// overrides this with the client-reported value when one arrives in the
// bootstrap payload.
func FromUserAgent(ua string) Device {
	parsed := useragent.New(ua)

	d := Device{Type: TypeDesktop}
	if parsed.Mobile() {
		d.Type = TypeMobile
	}

	os := strings.ToLower(parsed.OS())
	if strings.Contains(os, "iphone") || strings.Contains(os, "ios") ||
		strings.Contains(os, "android") || strings.Contains(os, "mac os") {
		d.HasSupportForWebauthn = true
	}
	return d
}
