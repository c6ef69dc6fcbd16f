package tdh

import "github.com/danmuck/tdhctl/internal/wire"

// Source is the external metadata authority. Every method follows the
// two-phase size protocol: called with a nil or undersized buffer it
// writes the required size through size and answers
// StatusInsufficientBuffer; called with a large enough buffer it fills
// the buffer and answers StatusSuccess.
type Source interface {
	// EnumerateProviders fills the provider enumeration layout.
	EnumerateProviders(buf []byte, size *uint32) wire.Status

	// EnumerateEvents fills the event descriptor layout for one
	// provider, identified by canonical textual GUID.
	EnumerateEvents(providerGUID string, buf []byte, size *uint32) wire.Status

	// EventDetail fills the detailed schema layout for one descriptor of
	// one provider.
	EventDetail(providerGUID string, desc EventDescriptor, buf []byte, size *uint32) wire.Status
}

// Operation names used in negotiation errors and as metric label values.
const (
	OpEnumerateProviders = "enumerate_providers"
	OpEnumerateEvents    = "enumerate_events"
	OpEventDetail        = "event_detail"
)
