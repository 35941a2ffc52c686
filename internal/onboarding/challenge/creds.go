package challenge

import (
	"context"
	"errors"
)

// PassthroughCredentials is the server-side default credential provider.
// Platform credential assertion can only happen on the client; when no
// client-asserted response was relayed, dispatch degrades to the SMS path.
type PassthroughCredentials struct{}

func (PassthroughCredentials) Assert(context.Context, string) (string, error) {
	return "", errors.New("platform credential assertion requires a client-provided response")
}

// RelayedCredentials returns a client-asserted response as-is. The widget
// performs the WebAuthn ceremony and relays the serialized assertion.
type RelayedCredentials struct {
	Response string
}

func (c RelayedCredentials) Assert(context.Context, string) (string, error) {
	if c.Response == "" {
		return "", errors.New("empty relayed assertion")
	}
	return c.Response, nil
}
