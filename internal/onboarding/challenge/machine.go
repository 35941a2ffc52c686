package challenge

import "bifrost/internal/device"

// Biometric enrollment on mobile web usually cannot run inside the embedding
// iframe: platform authenticator APIs are restricted there, so registration
// escapes into a secondary top-level tab driven by a scoped auth token. The
// machine below tolerates that tab being closed, erroring mid-poll, or
// succeeding. Every processing state has an explicit exit to either retry or
// fall back; the flow never sticks.

// State is the liveness-registration machine state.
type State string

const (
	StateInit               State = "init"
	StateDeviceSupportCheck State = "deviceSupportCheck"
	StateNewTabRequest      State = "newTabRequest"
	StateNewTabProcessing   State = "newTabProcessing"
	StateSkipLiveness       State = "skipLiveness"
	StateSuccess            State = "success"
	StateFailure            State = "failure"
)

// Terminal reports whether no further events can move the machine.
func (s State) Terminal() bool { return s == StateSuccess || s == StateFailure }

// EventKind discriminates machine events.
type EventKind string

const (
	EventContextReceived          EventKind = "contextReceived"
	EventScopedAuthTokenGenerated EventKind = "scopedAuthTokenGenerated"
	EventNewTabOpened             EventKind = "newTabOpened"
	EventNewTabRegisterSucceeded  EventKind = "newTabRegisterSucceeded"
	EventNewTabRegisterFailed     EventKind = "newTabRegisterFailed"
	EventNewTabRegisterCanceled   EventKind = "newTabRegisterCanceled"
	EventStatusPollingErrored     EventKind = "statusPollingErrored"
	EventLivenessSkipped          EventKind = "livenessSkipped"
)

// Event is one externally delivered machine event. Only the fields relevant
// to the kind are read.
type Event struct {
	Kind EventKind

	// EventContextReceived
	Device device.Device

	// EventScopedAuthTokenGenerated
	ScopedAuthToken string

	// EventNewTabOpened: opaque handle to the spawned registration tab.
	Tab string
}

// Context is the machine's accumulated data.
type Context struct {
	Device          device.Device
	ScopedAuthToken string
	Tab             string
}

// Machine is the liveness-registration state machine. One instance per
// session; side effects (token generation, polling) belong to the caller,
// performed in response to the states this machine enters.
type Machine struct {
	state State
	ctx   Context
}

// NewMachine returns a machine in init.
func NewMachine() *Machine {
	return &Machine{state: StateInit}
}

// Restore rebuilds a machine from a persisted snapshot.
func Restore(state State, ctx Context) *Machine {
	return &Machine{state: state, ctx: ctx}
}

func (m *Machine) State() State     { return m.state }
func (m *Machine) Context() Context { return m.ctx }

// Apply advances the machine by one event and returns the new state.
// Events that are not meaningful in the current state are ignored: discrete
// UI events can race terminal transitions and must not wedge the machine.
func (m *Machine) Apply(ev Event) State {
	m.state, m.ctx = transition(m.state, m.ctx, ev)
	// deviceSupportCheck is transient: the capability snapshot is available
	// synchronously, so the guard routes in the same step.
	if m.state == StateDeviceSupportCheck {
		if m.ctx.Device.Type == device.TypeMobile && m.ctx.Device.HasSupportForWebauthn {
			m.state = StateNewTabRequest
		} else {
			m.state = StateSkipLiveness
		}
	}
	return m.state
}

// transition is the pure state/transition table.
func transition(s State, c Context, ev Event) (State, Context) {
	switch s {
	case StateInit:
		if ev.Kind == EventContextReceived {
			c.Device = ev.Device
			return StateDeviceSupportCheck, c
		}

	case StateNewTabRequest:
		switch ev.Kind {
		case EventScopedAuthTokenGenerated:
			c.ScopedAuthToken = ev.ScopedAuthToken
			return StateNewTabRequest, c
		case EventNewTabOpened:
			c.Tab = ev.Tab
			return StateNewTabProcessing, c
		case EventStatusPollingErrored:
			// A poll started before a cancel can error after the machine is
			// already back here; the token is stale either way.
			c.ScopedAuthToken = ""
			return StateNewTabRequest, c
		}

	case StateNewTabProcessing:
		switch ev.Kind {
		case EventScopedAuthTokenGenerated:
			// Token and tab handle may arrive in either order.
			c.ScopedAuthToken = ev.ScopedAuthToken
			return StateNewTabProcessing, c
		case EventNewTabRegisterSucceeded:
			return StateSuccess, c
		case EventNewTabRegisterFailed:
			// Registration was attempted and failed: no automatic retry.
			return StateSkipLiveness, c
		case EventNewTabRegisterCanceled:
			// User closed the tab; allow a fresh request.
			c.Tab = ""
			return StateNewTabRequest, c
		case EventStatusPollingErrored:
			// The scoped token may have been invalidated mid-poll; discard
			// it so a retry regenerates before reuse.
			c.ScopedAuthToken = ""
			c.Tab = ""
			return StateNewTabRequest, c
		}

	case StateSkipLiveness:
		if ev.Kind == EventLivenessSkipped {
			return StateFailure, c
		}
	}

	return s, c
}
