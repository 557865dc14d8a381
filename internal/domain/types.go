package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID is the identifier assigned to a property at registration.
// Identifiers are dense and allocated from zero in registration order.
type TokenID uint64

// String returns the decimal representation of the token ID
func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseTokenID parses a decimal token ID
func ParseTokenID(s string) (TokenID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	return TokenID(v), nil
}

// Identity is an opaque owner or caller identity.
// Hex addresses are kept in their EIP-55 checksum form so that
// identities compare equal regardless of the casing they arrived with.
type Identity string

// NormalizeIdentity trims the raw value and checksums it when it is a hex address
func NormalizeIdentity(raw string) Identity {
	s := strings.TrimSpace(raw)
	if (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) && common.IsHexAddress(s) {
		return Identity(common.HexToAddress(s).String())
	}
	return Identity(s)
}

// NormalizeIdentities normalizes a list of identities
func NormalizeIdentities(raw []string) []Identity {
	identities := make([]Identity, len(raw))
	for i, r := range raw {
		identities[i] = NormalizeIdentity(r)
	}
	return identities
}

// String returns the identity as a string
func (i Identity) String() string {
	return string(i)
}

// IsEmpty reports whether the identity carries no value
func (i Identity) IsEmpty() bool {
	return i == ""
}

// Valid reports whether the identity may hold a token
func (i Identity) Valid() bool {
	if i.IsEmpty() {
		return false
	}
	return NormalizeIdentity(string(i)) != Identity(ZERO_ADDRESS)
}

// PropertyInfo holds the descriptive fields of a property.
// Hash values are opaque content references and are never validated.
type PropertyInfo struct {
	Description  string `json:"description"`
	Location     string `json:"location"`
	MediaHash    string `json:"mediaHash"`
	DocumentHash string `json:"documentHash"`
}

// Property is the full record of a registered token
type Property struct {
	TokenID          TokenID      `json:"tokenId"`
	Info             PropertyInfo `json:"info"`
	CurrentOwner     Identity     `json:"currentOwner"`
	OwnershipHistory []Identity   `json:"ownershipHistory"`
	RegisteredAt     time.Time    `json:"registeredAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the property
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	c.OwnershipHistory = append([]Identity(nil), p.OwnershipHistory...)
	return &c
}

// Details returns the descriptive view of the property
func (p *Property) Details() PropertyDetails {
	return PropertyDetails{
		TokenID:      p.TokenID,
		Info:         p.Info,
		CurrentOwner: p.CurrentOwner,
	}
}

// PropertyDetails is the descriptive fields of a property plus its current owner
type PropertyDetails struct {
	TokenID      TokenID      `json:"tokenId"`
	Info         PropertyInfo `json:"info"`
	CurrentOwner Identity     `json:"currentOwner"`
}

// EventType is the type of a registry event
type EventType string

const (
	EventTypePropertyRegistered   EventType = "property.registered"
	EventTypePropertyTransferred  EventType = "property.transferred"
	EventTypeRegistrarTransferred EventType = "registrar.transferred"
)

// Valid reports whether the event type is known
func (t EventType) Valid() bool {
	switch t {
	case EventTypePropertyRegistered, EventTypePropertyTransferred, EventTypeRegistrarTransferred:
		return true
	default:
		return false
	}
}

// Event is an entry of the registry journal.
// IDs are dense from 1 and follow commit order.
type Event struct {
	ID         uint64    `json:"id"`
	Type       EventType `json:"type"`
	TokenID    *TokenID  `json:"tokenId,omitempty"`
	From       Identity  `json:"from,omitempty"`
	To         Identity  `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RegistryInfo describes the registry itself
type RegistryInfo struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Registrar   Identity `json:"registrar"`
	TotalSupply uint64   `json:"totalSupply"`
}
