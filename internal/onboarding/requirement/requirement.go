// Package requirement models the server-declared units of work that gate
// completion of an onboarding session, and the resolution of those units into
// the ordered steps actually presented to the user.
package requirement

// Kind enumerates the requirement kinds the remote API may declare.
type Kind string

const (
	KindCollectKYCData   Kind = "collect_kyc_data"
	KindCollectKYBData   Kind = "collect_kyb_data"
	KindIdentityDocument Kind = "identity_document"
	KindLiveness         Kind = "liveness"
	KindAuthorize        Kind = "authorize"
)

// Requirement is one unit of work demanded by the remote API before
// authorization. Requirements are immutable snapshots: each status poll
// supersedes the previous list wholesale, and resolution only filters and
// never mutates.
type Requirement struct {
	Kind  Kind `json:"kind"`
	IsMet bool `json:"is_met"`

	// Kind-specific payloads. Only the field matching Kind is populated.
	CollectData  *CollectDataPayload  `json:"collect_data,omitempty"`
	DocumentInfo *DocumentPayload     `json:"document,omitempty"`
	Authorize    *AuthorizePayload    `json:"authorize,omitempty"`
}

// CollectDataPayload describes the attribute state for KYC/KYB collection.
type CollectDataPayload struct {
	MissingAttributes   []string `json:"missing_attributes"`
	OptionalAttributes  []string `json:"optional_attributes,omitempty"`
	PopulatedAttributes []string `json:"populated_attributes,omitempty"`
}

// DocumentPayload carries the country-to-document-type support map for
// identity document capture.
type DocumentPayload struct {
	SupportedCountryDocs map[string][]string `json:"supported_country_docs"`
}

// AuthorizePayload lists the data fields the tenant will be granted access to.
type AuthorizePayload struct {
	FieldsToAuthorize []string `json:"fields_to_authorize"`
}
