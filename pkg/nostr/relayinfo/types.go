// Package relayinfo is the NIP-11 relay information document.
package relayinfo

import (
	"sort"
)

// MIME is the Accept header value that requests the document.
const MIME = "application/nostr+json"

// NIP numbers the relay can advertise.
const (
	BasicProtocol    = 1
	EventDeletion    = 9
	RelayInformation = 11
	SearchCapability = 50
)

// T provides the information for a relay on the network as regards to
// versions, NIP support, contact and policies.
type T struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PubKey        string   `json:"pubkey"`
	Contact       string   `json:"contact"`
	SupportedNIPs []int    `json:"supported_nips"`
	Software      string   `json:"software"`
	Version       string   `json:"version"`
	Limitation    *Limits  `json:"limitation,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	PostingPolicy string   `json:"posting_policy,omitempty"`
	Icon          string   `json:"icon"`
}

// AddSupportedNIP adds a NIP number, keeping the list sorted and free of
// repeats.
func (ri *T) AddSupportedNIP(n int) {
	idx := sort.SearchInts(ri.SupportedNIPs, n)
	if idx < len(ri.SupportedNIPs) && ri.SupportedNIPs[idx] == n {
		return
	}
	ri.SupportedNIPs = append(ri.SupportedNIPs, 0)
	copy(ri.SupportedNIPs[idx+1:], ri.SupportedNIPs[idx:])
	ri.SupportedNIPs[idx] = n
}

// Limits specifies the various restrictions and limitations that apply to
// interactions with a given relay.
type Limits struct {
	MaxMessageLength int  `json:"max_message_length,omitempty"`
	MaxSubscriptions int  `json:"max_subscriptions,omitempty"`
	MaxFilters       int  `json:"max_filters,omitempty"`
	MaxLimit         int  `json:"max_limit,omitempty"`
	DefaultLimit     int  `json:"default_limit,omitempty"`
	AuthRequired     bool `json:"auth_required"`
	PaymentRequired  bool `json:"payment_required"`
	RestrictedWrites bool `json:"restricted_writes"`
}
