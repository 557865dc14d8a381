package webhook

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/property-registry/internal/domain"
)

// Event type constants
const (
	// EventTypePropertyRegistered is fired when a new property token is registered
	EventTypePropertyRegistered = string(domain.EventTypePropertyRegistered)

	// EventTypePropertyTransferred is fired when a property changes owner
	EventTypePropertyTransferred = string(domain.EventTypePropertyTransferred)

	// EventTypeRegistrarTransferred is fired when the registrar capability moves to a new identity
	EventTypeRegistrarTransferred = string(domain.EventTypeRegistrarTransferred)

	// EventTypeWildcard is a special filter that matches all event types
	EventTypeWildcard = "*"
)

// WebhookEvent represents a webhook event to be delivered to clients
type WebhookEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "property.transferred")
	EventType string `json:"event_type"`
	// Timestamp is when the registry committed the change
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload
type EventData struct {
	// JournalID is the registry journal entry the event was built from
	JournalID uint64 `json:"journal_id"`
	// TokenID is the property token, absent for registrar events
	TokenID *string `json:"token_id,omitempty"`
	// From is the previous holder, absent for registrations
	From string `json:"from,omitempty"`
	// To is the new holder
	To string `json:"to"`
}

// NewWebhookEvent builds the webhook payload of a registry journal entry
func NewWebhookEvent(eventID string, event domain.Event) WebhookEvent {
	data := EventData{
		JournalID: event.ID,
		From:      event.From.String(),
		To:        event.To.String(),
	}
	if event.TokenID != nil {
		tokenID := event.TokenID.String()
		data.TokenID = &tokenID
	}

	return WebhookEvent{
		EventID:   eventID,
		EventType: string(event.Type),
		Timestamp: event.OccurredAt,
		Data:      data,
	}
}

// EventIDFor derives the ULID of the webhook event carrying a journal entry.
// The ID is stable, so a journal entry relayed twice yields the same event ID.
func EventIDFor(event domain.Event) (string, error) {
	entropy := make([]byte, 10)
	binary.BigEndian.PutUint64(entropy[2:], event.ID)

	id, err := ulid.New(ulid.Timestamp(event.OccurredAt), bytes.NewReader(entropy))
	if err != nil {
		return "", fmt.Errorf("failed to generate event id: %w", err)
	}
	return id.String(), nil
}

// ValidateEventFilters checks that every filter is a known event type or the wildcard
func ValidateEventFilters(filters []string) error {
	if len(filters) == 0 {
		return fmt.Errorf("at least one event filter is required")
	}
	for _, f := range filters {
		if f == EventTypeWildcard {
			continue
		}
		if !domain.EventType(f).Valid() {
			return fmt.Errorf("unknown event type: %s", f)
		}
	}
	return nil
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
