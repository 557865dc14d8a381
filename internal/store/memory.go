package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/store/schema"
)

// memoryStore implements Store in process memory.
//
// Mutations serialize on writeMu. Each property is published as an immutable
// snapshot, so readers load a whole record without taking writeMu and can never
// observe a half-applied transfer.
type memoryStore struct {
	writeMu sync.Mutex

	// properties maps domain.TokenID to *domain.Property snapshots
	properties sync.Map
	// supply is the next token ID; it is bumped after the snapshot is stored
	supply atomic.Uint64

	mu             sync.RWMutex
	registrar      domain.Identity
	events         []*domain.Event
	keyValues      map[string]string
	clients        []*schema.WebhookClient
	deliveries     map[uint64]*schema.WebhookDelivery
	nextClientID   uint64
	nextDeliveryID uint64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		keyValues:  make(map[string]string),
		deliveries: make(map[uint64]*schema.WebhookDelivery),
	}
}

func (s *memoryStore) load(tokenID domain.TokenID) (*domain.Property, bool) {
	v, ok := s.properties.Load(tokenID)
	if !ok {
		return nil, false
	}
	return v.(*domain.Property), true
}

// appendEvent must be called with writeMu held
func (s *memoryStore) appendEvent(event domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uint64(len(s.events)) + 1
	stored := event
	s.events = append(s.events, &stored)

	out := stored
	return &out
}

// =============================================================================
// Registrar
// =============================================================================

func (s *memoryStore) GetRegistrar(ctx context.Context) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrar, nil
}

func (s *memoryStore) InitializeRegistrar(ctx context.Context, registrar domain.Identity) (domain.Identity, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registrar.IsEmpty() {
		s.registrar = registrar
	}
	return s.registrar, nil
}

func (s *memoryStore) TransferRegistrar(ctx context.Context, input TransferRegistrarInput) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	current := s.registrar
	if current.IsEmpty() || current != input.Expected {
		s.mu.Unlock()
		return nil, domain.ErrUnauthorized
	}
	s.registrar = input.New
	s.mu.Unlock()

	return s.appendEvent(domain.Event{
		Type:       domain.EventTypeRegistrarTransferred,
		From:       current,
		To:         input.New,
		OccurredAt: input.Timestamp,
	}), nil
}

// =============================================================================
// Properties
// =============================================================================

func (s *memoryStore) CreateProperty(ctx context.Context, input CreatePropertyInput) (*domain.Property, *domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	registrar := s.registrar
	s.mu.RUnlock()
	if registrar.IsEmpty() || registrar != input.Registrar {
		return nil, nil, domain.ErrUnauthorized
	}

	tokenID := domain.TokenID(s.supply.Load())
	property := &domain.Property{
		TokenID:          tokenID,
		Info:             input.Info,
		CurrentOwner:     input.Recipient,
		OwnershipHistory: []domain.Identity{input.Recipient},
		RegisteredAt:     input.Timestamp,
		UpdatedAt:        input.Timestamp,
	}
	s.properties.Store(tokenID, property)
	s.supply.Add(1)

	event := s.appendEvent(domain.Event{
		Type:       domain.EventTypePropertyRegistered,
		TokenID:    &tokenID,
		To:         input.Recipient,
		OccurredAt: input.Timestamp,
	})

	return property.Clone(), event, nil
}

func (s *memoryStore) TransferProperty(ctx context.Context, input TransferPropertyInput) (*domain.Property, *domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.load(input.TokenID)
	if !ok {
		return nil, nil, domain.ErrTokenNotFound
	}
	if current.CurrentOwner != input.From {
		return nil, nil, domain.ErrOwnerMismatch
	}

	next := current.Clone()
	next.CurrentOwner = input.To
	next.OwnershipHistory = append(next.OwnershipHistory, input.To)
	next.UpdatedAt = input.Timestamp
	s.properties.Store(input.TokenID, next)

	tokenID := input.TokenID
	event := s.appendEvent(domain.Event{
		Type:       domain.EventTypePropertyTransferred,
		TokenID:    &tokenID,
		From:       input.From,
		To:         input.To,
		OccurredAt: input.Timestamp,
	})

	return next.Clone(), event, nil
}

func (s *memoryStore) GetProperty(ctx context.Context, tokenID domain.TokenID) (*domain.Property, error) {
	property, ok := s.load(tokenID)
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return property.Clone(), nil
}

func (s *memoryStore) GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) ([]domain.Identity, error) {
	property, ok := s.load(tokenID)
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return append([]domain.Identity(nil), property.OwnershipHistory...), nil
}

func (s *memoryStore) GetPropertiesByOwner(ctx context.Context, owner domain.Identity, limit int, offset int) ([]domain.PropertyDetails, uint64, error) {
	limit, offset = NormalizePage(limit, offset)
	supply := s.supply.Load()

	var total uint64
	details := []domain.PropertyDetails{}
	for id := uint64(0); id < supply; id++ {
		property, ok := s.load(domain.TokenID(id))
		if !ok || property.CurrentOwner != owner {
			continue
		}
		total++
		if total <= uint64(offset) { //nolint:gosec,G115
			continue
		}
		if len(details) >= limit {
			continue
		}
		details = append(details, property.Details())
	}

	return details, total, nil
}

func (s *memoryStore) CountProperties(ctx context.Context) (uint64, error) {
	return s.supply.Load(), nil
}

// =============================================================================
// Journal
// =============================================================================

func (s *memoryStore) GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.EffectiveLimit()
	events := []*domain.Event{}
	// Event IDs are positions in the journal plus one
	for i := filter.AfterID; i < uint64(len(s.events)) && len(events) < limit; i++ {
		e := s.events[i]
		if filter.TokenID != nil && (e.TokenID == nil || *e.TokenID != *filter.TokenID) {
			continue
		}
		out := *e
		events = append(events, &out)
	}
	return events, nil
}

// =============================================================================
// Key-Value Store
// =============================================================================

func (s *memoryStore) SetKeyValue(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyValues[key] = value
	return nil
}

func (s *memoryStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyValues[key], nil
}

// =============================================================================
// Webhooks
// =============================================================================

func (s *memoryStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.ClientID == input.ClientID {
			return nil, fmt.Errorf("failed to create webhook client: client %s already exists", input.ClientID)
		}
	}

	s.nextClientID++
	now := time.Now()
	client := &schema.WebhookClient{
		ID:               s.nextClientID,
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     input.EventFilters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.clients = append(s.clients, client)

	out := *client
	return &out, nil
}

func (s *memoryStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var clients []*schema.WebhookClient
	for _, c := range s.clients {
		if !c.IsActive {
			continue
		}

		var filters []string
		if err := json.Unmarshal(c.EventFilters, &filters); err != nil {
			return nil, fmt.Errorf("failed to parse event filters of client %s: %w", c.ClientID, err)
		}
		for _, f := range filters {
			if f == eventType || f == "*" {
				out := *c
				clients = append(clients, &out)
				break
			}
		}
	}
	return clients, nil
}

func (s *memoryStore) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.ClientID == clientID {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := false
	for _, c := range s.clients {
		if c.ClientID == delivery.ClientID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("failed to create webhook delivery: unknown client %s", delivery.ClientID)
	}

	s.nextDeliveryID++
	now := time.Now()
	delivery.ID = s.nextDeliveryID
	delivery.CreatedAt = now
	delivery.UpdatedAt = now

	stored := *delivery
	s.deliveries[stored.ID] = &stored
	return nil
}

func (s *memoryStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delivery, ok := s.deliveries[deliveryID]
	if !ok {
		// Matches an UPDATE that affects no rows
		return nil
	}

	now := time.Now()
	delivery.DeliveryStatus = status
	delivery.Attempts = attempts
	delivery.ResponseBody = responseBody
	delivery.LastAttemptAt = &now
	delivery.UpdatedAt = now
	if responseStatus != nil {
		code := *responseStatus
		delivery.ResponseStatus = &code
	}
	if errorMessage != "" {
		delivery.ErrorMessage = truncateErrorMessage(errorMessage)
	}
	return nil
}
