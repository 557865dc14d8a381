package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/store/schema"
)

const (
	// Keys in key_value_store owned by the registry
	KEY_REGISTRAR     = "registry:registrar"
	KEY_NEXT_TOKEN_ID = "registry:next_token_id"
	KEY_NEXT_EVENT_ID = "registry:next_event_id"

	// MAX_EVENT_QUERY_LIMIT caps a single journal read
	MAX_EVENT_QUERY_LIMIT = 1000

	// MAX_OWNER_QUERY_LIMIT caps a single page of properties by owner
	MAX_OWNER_QUERY_LIMIT = 100
)

// Store defines the persistence contract of the registry.
// Every mutating method is atomic: it either commits the state change and its
// journal event together, or leaves the store untouched.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	KeyValueStore

	// GetRegistrar returns the registrar identity, or an empty identity if none is set
	GetRegistrar(ctx context.Context) (domain.Identity, error)
	// InitializeRegistrar sets the registrar if none is set and returns the effective registrar
	InitializeRegistrar(ctx context.Context, registrar domain.Identity) (domain.Identity, error)
	// TransferRegistrar hands the registrar capability to a new identity.
	// Returns domain.ErrUnauthorized if the stored registrar is not input.Expected.
	TransferRegistrar(ctx context.Context, input TransferRegistrarInput) (*domain.Event, error)

	// CreateProperty allocates the next token ID and records the property with its first owner.
	// Returns domain.ErrUnauthorized if input.Registrar no longer holds the capability.
	CreateProperty(ctx context.Context, input CreatePropertyInput) (*domain.Property, *domain.Event, error)
	// TransferProperty moves a token from input.From to input.To and appends to its history.
	// Returns domain.ErrTokenNotFound or domain.ErrOwnerMismatch.
	TransferProperty(ctx context.Context, input TransferPropertyInput) (*domain.Property, *domain.Event, error)
	// GetProperty returns the full record of a token, or domain.ErrTokenNotFound
	GetProperty(ctx context.Context, tokenID domain.TokenID) (*domain.Property, error)
	// GetOwnershipHistory returns the owners of a token in acquisition order, or domain.ErrTokenNotFound
	GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) ([]domain.Identity, error)
	// GetPropertiesByOwner returns the tokens currently held by owner, ordered by token ID, and the total count.
	// A limit of zero or above MAX_OWNER_QUERY_LIMIT reads MAX_OWNER_QUERY_LIMIT rows; a negative offset reads from the start.
	GetPropertiesByOwner(ctx context.Context, owner domain.Identity, limit int, offset int) ([]domain.PropertyDetails, uint64, error)
	// CountProperties returns the number of registered tokens
	CountProperties(ctx context.Context) (uint64, error)

	// GetEvents returns journal events after filter.AfterID in ascending ID order
	GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.Event, error)

	// CreateWebhookClient creates a new webhook client
	CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error)
	// GetActiveWebhookClientsByEventType returns active clients subscribed to eventType or to the wildcard
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)
	// GetWebhookClientByID returns a webhook client, or nil if it does not exist
	GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error)
	// CreateWebhookDelivery records a delivery attempt; delivery.ID is set on return
	CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error
	// UpdateWebhookDeliveryStatus updates the status and result of a delivery
	UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error
}

// KeyValueStore stores small pieces of process state such as relay cursors
type KeyValueStore interface {
	// GetKeyValue returns the value for key, or an empty string if the key is absent
	GetKeyValue(ctx context.Context, key string) (string, error)
	// SetKeyValue upserts the value for key
	SetKeyValue(ctx context.Context, key string, value string) error
}

// CreatePropertyInput is the input of Store.CreateProperty
type CreatePropertyInput struct {
	Registrar domain.Identity
	Recipient domain.Identity
	Info      domain.PropertyInfo
	Timestamp time.Time
}

// TransferPropertyInput is the input of Store.TransferProperty
type TransferPropertyInput struct {
	TokenID   domain.TokenID
	From      domain.Identity
	To        domain.Identity
	Timestamp time.Time
}

// TransferRegistrarInput is the input of Store.TransferRegistrar
type TransferRegistrarInput struct {
	Expected  domain.Identity
	New       domain.Identity
	Timestamp time.Time
}

// EventQueryFilter selects journal events
type EventQueryFilter struct {
	// AfterID excludes events with an ID lower than or equal to it
	AfterID uint64
	// TokenID restricts the result to one token when set
	TokenID *domain.TokenID
	// Limit caps the result; zero or values above MAX_EVENT_QUERY_LIMIT use MAX_EVENT_QUERY_LIMIT
	Limit int
}

// EffectiveLimit returns the limit applied to the query
func (f EventQueryFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > MAX_EVENT_QUERY_LIMIT {
		return MAX_EVENT_QUERY_LIMIT
	}
	return f.Limit
}

// NormalizePage applies the GetPropertiesByOwner paging rules
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > MAX_OWNER_QUERY_LIMIT {
		limit = MAX_OWNER_QUERY_LIMIT
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// CreateWebhookClientInput is the input of Store.CreateWebhookClient
type CreateWebhookClientInput struct {
	ClientID         string
	WebhookURL       string
	WebhookSecret    string
	EventFilters     datatypes.JSON
	IsActive         bool
	RetryMaxAttempts int
}
