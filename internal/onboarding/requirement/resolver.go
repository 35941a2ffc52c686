package requirement

// ShowOnceKinds is the allowlist of requirement kinds that are presented
// exactly once per session even when the server already reports them met.
// Met requirements of any other kind are never re-shown. Extend here if
// product decides KYB (or anything else) should behave the same way.
var ShowOnceKinds = map[Kind]bool{
	KindCollectKYCData: true,
}

// SessionFlags carries the per-session presentation state threaded through
// resolution. The resolver itself is pure; the caller owns these flags.
type SessionFlags struct {
	// StartedDataCollection is false only on the very first status check of
	// a session.
	StartedDataCollection bool

	// CollectedKYCDataShown records that the KYC collection step has already
	// been surfaced this session.
	CollectedKYCDataShown bool

	// TransferContinuation marks a session resumed from another context
	// (e.g. desktop-to-mobile handoff); such sessions never re-show steps
	// completed in the prior leg.
	TransferContinuation bool
}

// alreadyShown reports whether the show-once step for kind has been surfaced
// this session. Kinds outside the allowlist never track display state.
func (f SessionFlags) alreadyShown(k Kind) bool {
	switch k {
	case KindCollectKYCData:
		return f.CollectedKYCDataShown
	default:
		return false
	}
}

// Resolve computes the ordered subset of requirements to present, given the
// full server-declared list and the session flags.
//
// Server order is authoritative and preserved: the result is always a
// subsequence of all. A requirement is included when it is unmet, or when it
// is met but belongs to the show-once allowlist, has not been shown yet, and
// the session is not a transfer continuation.
//
// If this is the session's first check and nothing is unmet, the user already
// satisfies the configuration and no steps are shown at all.
func Resolve(flags SessionFlags, all []Requirement) []Requirement {
	unmet := 0
	for _, r := range all {
		if !r.IsMet {
			unmet++
		}
	}
	if !flags.StartedDataCollection && unmet == 0 {
		return nil
	}

	out := make([]Requirement, 0, len(all))
	for _, r := range all {
		switch {
		case !r.IsMet:
			out = append(out, r)
		case ShowOnceKinds[r.Kind] && !flags.alreadyShown(r.Kind) && !flags.TransferContinuation:
			out = append(out, r)
		}
	}
	return out
}
