// Package flow holds the top-level onboarding orchestrator: it walks the
// resolved requirement list one step at a time, re-polling status between
// steps, and terminates in authorized or failed.
package flow

import (
	"bifrost/internal/onboarding/requirement"
)

// Phase is the coarse flow state. While in PhaseStep, Current() names the
// requirement being worked.
type Phase string

const (
	PhaseInit                  Phase = "init"
	PhaseAwaitingRequirements  Phase = "awaitingRequirements"
	PhaseStep                  Phase = "step"
	PhaseAuthorized            Phase = "authorized"
	PhaseFailed                Phase = "failed"
)

// Terminal reports whether the flow has ended.
func (p Phase) Terminal() bool { return p == PhaseAuthorized || p == PhaseFailed }

// EventKind discriminates flow events.
type EventKind string

const (
	// EventStarted: the session context reached ready; fetch requirements.
	EventStarted EventKind = "started"

	// EventRequirementsResolved delivers one resolution pass. An empty list
	// means nothing is left to present: the flow is authorized.
	EventRequirementsResolved EventKind = "requirementsResolved"

	// EventStepCompleted: the current requirement's sub-flow finished.
	// Status is re-polled before the next step.
	EventStepCompleted EventKind = "stepCompleted"

	// EventStepFailed: the current requirement's sub-flow hit an
	// unrecoverable failure (recoverable ones are handled inside the
	// sub-flow and never surface here).
	EventStepFailed EventKind = "stepFailed"
)

// Event is one externally delivered flow event.
type Event struct {
	Kind     EventKind
	Resolved []requirement.Requirement
}

// Machine is the flow state machine. One instance per session. Side effects
// (status polls, sub-flow drives) are the service's job, performed in
// response to the phases this machine enters.
type Machine struct {
	phase   Phase
	current *requirement.Requirement
	queued  []requirement.Requirement
}

// NewMachine returns a machine in init.
func NewMachine() *Machine {
	return &Machine{phase: PhaseInit}
}

// Restore rebuilds a machine from a persisted snapshot.
func Restore(phase Phase, current *requirement.Requirement, queued []requirement.Requirement) *Machine {
	return &Machine{phase: phase, current: current, queued: queued}
}

func (m *Machine) Phase() Phase { return m.phase }

// Current returns the requirement being worked, or nil outside PhaseStep.
func (m *Machine) Current() *requirement.Requirement { return m.current }

// Queued returns the requirements resolved behind the current one. They are
// informative only: status is re-polled after every step and the next pass
// supersedes this list wholesale.
func (m *Machine) Queued() []requirement.Requirement { return m.queued }

// Apply advances the flow by one event and returns the new phase. Events
// not meaningful in the current phase are ignored.
func (m *Machine) Apply(ev Event) Phase {
	switch m.phase {
	case PhaseInit:
		if ev.Kind == EventStarted {
			m.phase = PhaseAwaitingRequirements
		}

	case PhaseAwaitingRequirements:
		if ev.Kind == EventRequirementsResolved {
			if len(ev.Resolved) == 0 {
				m.phase = PhaseAuthorized
				m.current = nil
				m.queued = nil
				break
			}
			first := ev.Resolved[0]
			m.current = &first
			m.queued = ev.Resolved[1:]
			m.phase = PhaseStep
		}

	case PhaseStep:
		switch ev.Kind {
		case EventStepCompleted:
			m.current = nil
			m.queued = nil
			m.phase = PhaseAwaitingRequirements
		case EventStepFailed:
			m.current = nil
			m.queued = nil
			m.phase = PhaseFailed
		}
	}

	return m.phase
}
