package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bifrost/internal/device"
)

var (
	mobileWithWebauthn = device.Device{Type: device.TypeMobile, HasSupportForWebauthn: true}
	desktop            = device.Device{Type: device.TypeDesktop, HasSupportForWebauthn: true}
	mobileNoWebauthn   = device.Device{Type: device.TypeMobile}
)

func startedMachine(t *testing.T, d device.Device) *Machine {
	t.Helper()
	m := NewMachine()
	m.Apply(Event{Kind: EventContextReceived, Device: d})
	return m
}

func TestDeviceSupportRouting(t *testing.T) {
	t.Run("mobile with webauthn goes to newTabRequest", func(t *testing.T) {
		m := startedMachine(t, mobileWithWebauthn)
		assert.Equal(t, StateNewTabRequest, m.State())
	})

	t.Run("desktop falls back to skipLiveness", func(t *testing.T) {
		m := startedMachine(t, desktop)
		assert.Equal(t, StateSkipLiveness, m.State())
	})

	t.Run("mobile without webauthn falls back to skipLiveness", func(t *testing.T) {
		m := startedMachine(t, mobileNoWebauthn)
		assert.Equal(t, StateSkipLiveness, m.State())
	})
}

func TestNewTabEventsArriveInEitherOrder(t *testing.T) {
	t.Run("token then tab", func(t *testing.T) {
		m := startedMachine(t, mobileWithWebauthn)
		m.Apply(Event{Kind: EventScopedAuthTokenGenerated, ScopedAuthToken: "scoped_1"})
		assert.Equal(t, StateNewTabRequest, m.State())

		st := m.Apply(Event{Kind: EventNewTabOpened, Tab: "tab_1"})
		assert.Equal(t, StateNewTabProcessing, st)
		assert.Equal(t, "scoped_1", m.Context().ScopedAuthToken)
		assert.Equal(t, "tab_1", m.Context().Tab)
	})

	t.Run("tab then token", func(t *testing.T) {
		m := startedMachine(t, mobileWithWebauthn)
		m.Apply(Event{Kind: EventNewTabOpened, Tab: "tab_1"})
		require.Equal(t, StateNewTabProcessing, m.State())

		m.Apply(Event{Kind: EventScopedAuthTokenGenerated, ScopedAuthToken: "scoped_1"})
		assert.Equal(t, StateNewTabProcessing, m.State())
		assert.Equal(t, "scoped_1", m.Context().ScopedAuthToken)
	})
}

func TestProcessingExits(t *testing.T) {
	processing := func(t *testing.T) *Machine {
		m := startedMachine(t, mobileWithWebauthn)
		m.Apply(Event{Kind: EventScopedAuthTokenGenerated, ScopedAuthToken: "scoped_1"})
		m.Apply(Event{Kind: EventNewTabOpened, Tab: "tab_1"})
		require.Equal(t, StateNewTabProcessing, m.State())
		return m
	}

	t.Run("register succeeded terminates in success", func(t *testing.T) {
		m := processing(t)
		assert.Equal(t, StateSuccess, m.Apply(Event{Kind: EventNewTabRegisterSucceeded}))
		assert.True(t, m.State().Terminal())
	})

	t.Run("register failed falls back without retry", func(t *testing.T) {
		m := processing(t)
		assert.Equal(t, StateSkipLiveness, m.Apply(Event{Kind: EventNewTabRegisterFailed}))
	})

	t.Run("cancel returns to a re-requestable state", func(t *testing.T) {
		m := processing(t)
		assert.Equal(t, StateNewTabRequest, m.Apply(Event{Kind: EventNewTabRegisterCanceled}))
		// The scoped token survives a plain cancel.
		assert.Equal(t, "scoped_1", m.Context().ScopedAuthToken)
	})

	t.Run("polling error returns to request and clears the scoped token", func(t *testing.T) {
		m := processing(t)
		assert.Equal(t, StateNewTabRequest, m.Apply(Event{Kind: EventStatusPollingErrored}))
		assert.Equal(t, "", m.Context().ScopedAuthToken)
	})
}

func TestCancelThenPollingErrorScenario(t *testing.T) {
	m := startedMachine(t, mobileWithWebauthn)
	m.Apply(Event{Kind: EventScopedAuthTokenGenerated, ScopedAuthToken: "scoped_1"})
	m.Apply(Event{Kind: EventNewTabOpened, Tab: "tab_1"})

	m.Apply(Event{Kind: EventNewTabRegisterCanceled})
	require.Equal(t, StateNewTabRequest, m.State())

	// The poll that was running when the user canceled errors afterwards;
	// the token must still be discarded.
	m.Apply(Event{Kind: EventStatusPollingErrored})
	assert.Equal(t, StateNewTabRequest, m.State())
	assert.Equal(t, "", m.Context().ScopedAuthToken)
}

func TestSkipLivenessToFailure(t *testing.T) {
	m := startedMachine(t, desktop)
	require.Equal(t, StateSkipLiveness, m.State())
	assert.Equal(t, StateFailure, m.Apply(Event{Kind: EventLivenessSkipped}))
	assert.True(t, m.State().Terminal())
}

func TestIrrelevantEventsAreIgnored(t *testing.T) {
	m := startedMachine(t, mobileWithWebauthn)
	// Processing-only events in newTabRequest do nothing.
	m.Apply(Event{Kind: EventNewTabRegisterSucceeded})
	m.Apply(Event{Kind: EventLivenessSkipped})
	assert.Equal(t, StateNewTabRequest, m.State())

	// Terminal states absorb everything.
	m.Apply(Event{Kind: EventNewTabOpened, Tab: "tab"})
	m.Apply(Event{Kind: EventNewTabRegisterSucceeded})
	require.Equal(t, StateSuccess, m.State())
	m.Apply(Event{Kind: EventStatusPollingErrored})
	assert.Equal(t, StateSuccess, m.State())
}
