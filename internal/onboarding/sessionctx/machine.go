// Package sessionctx accumulates the bootstrap data an onboarding session
// needs before the flow may begin. Updates arrive asynchronously from several
// sources (URL fragment, parent frame, deep link) in any order; the machine
// merges them field by field and only leaves init once everything required is
// present.
package sessionctx

// State is the machine state: Init until the readiness predicate holds,
// Ready afterwards.
type State string

const (
	StateInit  State = "init"
	StateReady State = "ready"
)

// TenantInfo is the tenant metadata delivered during bootstrap.
type TenantInfo struct {
	Name      string   `json:"name"`
	PublicKey string   `json:"public_key"`
	CanAccess []string `json:"can_access,omitempty"`
	IsSandbox bool     `json:"is_sandbox,omitempty"`
}

// Config is the onboarding configuration the tenant published for this flow.
type Config struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MustCollect []string `json:"must_collect,omitempty"`
	IsLive      bool     `json:"is_live,omitempty"`
}

// SeedData carries optional inviter/invitee prefill (e.g. business
// beneficial-owner invitations).
type SeedData struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	BOToken     string `json:"bo_token,omitempty"`
}

// Context is the bootstrap accumulator. A field, once set, is only replaced
// by an explicit newer value; partial updates never blank out known fields.
type Context struct {
	AuthToken string
	TenantPK  string
	Tenant    *TenantInfo
	ObConfig  *Config
	Seed      *SeedData

	// TransferContinuation marks a session handed off from another context.
	TransferContinuation bool
}

// Update is the payload of one contextUpdated event. Nil pointers and empty
// strings mean "no new value for this field".
type Update struct {
	AuthToken string
	TenantPK  string
	Tenant    *TenantInfo
	ObConfig  *Config
	Seed      *SeedData

	// TransferContinuation only ever flips to true; a handoff cannot be
	// un-declared by a later partial update.
	TransferContinuation bool
}

// Machine is the session context state machine. One instance per session.
type Machine struct {
	state State
	ctx   Context
}

// New returns a machine in init with an empty context.
func New() *Machine {
	return &Machine{state: StateInit}
}

// Restore rebuilds a machine from a persisted snapshot.
func Restore(state State, ctx Context) *Machine {
	return &Machine{state: state, ctx: ctx}
}

// State returns the current machine state.
func (m *Machine) State() State { return m.state }

// Context returns a copy of the accumulated context.
func (m *Machine) Context() Context { return m.ctx }

// Apply merges one contextUpdated event and re-evaluates readiness. Updates
// are accepted in any state and in any order; applying the same update twice
// is a no-op.
func (m *Machine) Apply(u Update) State {
	m.ctx = merge(m.ctx, u)
	if ready(m.ctx) {
		m.state = StateReady
	}
	return m.state
}

// Reset returns the machine to init with a cleared context. Reset is total:
// no field survives.
func (m *Machine) Reset() {
	m.state = StateInit
	m.ctx = Context{}
}

// merge applies field-level coalescing: a field in the update wins only when
// it carries a value.
func merge(c Context, u Update) Context {
	if u.AuthToken != "" {
		c.AuthToken = u.AuthToken
	}
	if u.TenantPK != "" {
		c.TenantPK = u.TenantPK
	}
	if u.Tenant != nil {
		c.Tenant = u.Tenant
	}
	if u.ObConfig != nil {
		c.ObConfig = u.ObConfig
	}
	if u.Seed != nil {
		c.Seed = u.Seed
	}
	if u.TransferContinuation {
		c.TransferContinuation = true
	}
	return c
}

// ready is the readiness predicate: an auth token (session or ob-config
// grant) and the onboarding configuration must both be present.
func ready(c Context) bool {
	return c.AuthToken != "" && c.ObConfig != nil
}
