package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/store"
)

// Registry owns every state transition of the property registry
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=Registry=MockRegistry,Listener=MockListener
type Registry interface {
	// Initialize sets the registrar if the store has none and returns the effective registrar
	Initialize(ctx context.Context, registrar domain.Identity) (domain.Identity, error)

	// Register creates a property owned by input.Recipient. Only the registrar may register.
	Register(ctx context.Context, caller domain.Identity, input RegisterInput) (domain.TokenID, error)
	// RegisterProperty is Register returning the record as committed
	RegisterProperty(ctx context.Context, caller domain.Identity, input RegisterInput) (*domain.Property, error)
	// Transfer moves tokenID from its current owner to another identity. Only the owner may transfer.
	Transfer(ctx context.Context, caller, from, to domain.Identity, tokenID domain.TokenID) error
	// TransferProperty is Transfer returning the record as committed
	TransferProperty(ctx context.Context, caller, from, to domain.Identity, tokenID domain.TokenID) (*domain.Property, error)

	// GetProperty returns the full record of a token
	GetProperty(ctx context.Context, tokenID domain.TokenID) (*domain.Property, error)
	// GetPropertyDetails returns the descriptive fields and current owner of a token
	GetPropertyDetails(ctx context.Context, tokenID domain.TokenID) (*domain.PropertyDetails, error)
	// GetOwnershipHistory returns every owner of a token in acquisition order
	GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) ([]domain.Identity, error)
	// OwnerOf returns the current owner of a token
	OwnerOf(ctx context.Context, tokenID domain.TokenID) (domain.Identity, error)
	// PropertiesOf returns the tokens currently held by owner and their total count
	PropertiesOf(ctx context.Context, owner domain.Identity, limit, offset int) ([]domain.PropertyDetails, uint64, error)
	// TotalSupply returns the number of registered tokens
	TotalSupply(ctx context.Context) (uint64, error)

	// Registrar returns the holder of the registrar capability
	Registrar(ctx context.Context) (domain.Identity, error)
	// TransferRegistrar hands the registrar capability to another identity
	TransferRegistrar(ctx context.Context, caller, newRegistrar domain.Identity) error
	// Info describes the registry
	Info(ctx context.Context) (*domain.RegistryInfo, error)

	// Changes reads the event journal
	Changes(ctx context.Context, query ChangesQuery) ([]*domain.Event, error)
	// Subscribe adds a listener notified after every committed mutation
	Subscribe(listener Listener)
}

// Listener receives registry events after they are committed.
// Listeners run synchronously in subscription order; an error is logged and
// never undoes the committed mutation.
type Listener interface {
	HandleEvent(ctx context.Context, event domain.Event) error
}

// ListenerFunc adapts a function to a Listener
type ListenerFunc func(ctx context.Context, event domain.Event) error

// HandleEvent calls f(ctx, event)
func (f ListenerFunc) HandleEvent(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// RegisterInput holds the fields of a new property
type RegisterInput struct {
	Recipient    domain.Identity
	Description  string
	Location     string
	MediaHash    string
	DocumentHash string
}

// ChangesQuery selects journal events
type ChangesQuery struct {
	AfterID uint64
	TokenID *domain.TokenID
	Limit   int
}

// Config holds the descriptive settings of a registry
type Config struct {
	Name   string
	Symbol string
}

type registry struct {
	store  store.Store
	clock  adapter.Clock
	config Config

	mu        sync.RWMutex
	listeners []Listener
}

// New creates a registry on top of the given store
func New(st store.Store, clock adapter.Clock, cfg Config) Registry {
	if cfg.Name == "" {
		cfg.Name = domain.DEFAULT_REGISTRY_NAME
	}
	if cfg.Symbol == "" {
		cfg.Symbol = domain.DEFAULT_REGISTRY_SYMBOL
	}
	return &registry{
		store:  st,
		clock:  clock,
		config: cfg,
	}
}

// now returns the commit timestamp; microsecond precision matches timestamptz
func (r *registry) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Microsecond)
}

// Initialize sets the registrar if the store has none and returns the effective registrar
func (r *registry) Initialize(ctx context.Context, registrar domain.Identity) (domain.Identity, error) {
	registrar = domain.NormalizeIdentity(string(registrar))
	if !registrar.IsEmpty() && !registrar.Valid() {
		return "", domain.ErrInvalidRecipient
	}

	effective, err := r.store.InitializeRegistrar(ctx, registrar)
	if err != nil {
		return "", fmt.Errorf("failed to initialize registrar: %w", err)
	}

	if effective.IsEmpty() {
		logger.WarnCtx(ctx, "Registry has no registrar; registrations will be rejected")
	} else if effective != registrar && !registrar.IsEmpty() {
		logger.InfoCtx(ctx, "Keeping stored registrar",
			zap.String("registrar", effective.String()),
			zap.String("configured", registrar.String()))
	}

	return effective, nil
}

// Register creates a property owned by input.Recipient
func (r *registry) Register(ctx context.Context, caller domain.Identity, input RegisterInput) (domain.TokenID, error) {
	property, err := r.RegisterProperty(ctx, caller, input)
	if err != nil {
		return 0, err
	}
	return property.TokenID, nil
}

func (r *registry) RegisterProperty(ctx context.Context, caller domain.Identity, input RegisterInput) (*domain.Property, error) {
	caller = domain.NormalizeIdentity(string(caller))
	recipient := domain.NormalizeIdentity(string(input.Recipient))

	if !recipient.Valid() {
		return nil, domain.ErrInvalidRecipient
	}
	if caller.IsEmpty() {
		return nil, domain.ErrUnauthorized
	}

	// The registrar check runs inside the store transaction
	property, event, err := r.store.CreateProperty(ctx, store.CreatePropertyInput{
		Registrar: caller,
		Recipient: recipient,
		Info: domain.PropertyInfo{
			Description:  input.Description,
			Location:     input.Location,
			MediaHash:    input.MediaHash,
			DocumentHash: input.DocumentHash,
		},
		Timestamp: r.now(),
	})
	if err != nil {
		return nil, wrapStoreError("register property", err)
	}

	logger.InfoCtx(ctx, "Property registered",
		zap.Uint64("tokenID", uint64(property.TokenID)),
		zap.String("owner", recipient.String()))

	r.notify(ctx, event)
	return property, nil
}

// Transfer moves tokenID from from to to.
//
// Checks run in a fixed order: stateless argument checks (InvalidRecipient),
// then the caller (Unauthorized), then the stored record (TokenNotFound,
// OwnerMismatch) atomically with the write.
func (r *registry) Transfer(ctx context.Context, caller, from, to domain.Identity, tokenID domain.TokenID) error {
	_, err := r.TransferProperty(ctx, caller, from, to, tokenID)
	return err
}

func (r *registry) TransferProperty(ctx context.Context, caller, from, to domain.Identity, tokenID domain.TokenID) (*domain.Property, error) {
	caller = domain.NormalizeIdentity(string(caller))
	from = domain.NormalizeIdentity(string(from))
	to = domain.NormalizeIdentity(string(to))

	if !to.Valid() || to == from {
		return nil, domain.ErrInvalidRecipient
	}
	if caller.IsEmpty() || caller != from {
		return nil, domain.ErrUnauthorized
	}

	property, event, err := r.store.TransferProperty(ctx, store.TransferPropertyInput{
		TokenID:   tokenID,
		From:      from,
		To:        to,
		Timestamp: r.now(),
	})
	if err != nil {
		return nil, wrapStoreError("transfer property", err)
	}

	logger.InfoCtx(ctx, "Property transferred",
		zap.Uint64("tokenID", uint64(tokenID)),
		zap.String("from", from.String()),
		zap.String("to", to.String()))

	r.notify(ctx, event)
	return property, nil
}

func (r *registry) GetProperty(ctx context.Context, tokenID domain.TokenID) (*domain.Property, error) {
	property, err := r.store.GetProperty(ctx, tokenID)
	if err != nil {
		return nil, wrapStoreError("get property", err)
	}
	return property, nil
}

func (r *registry) GetPropertyDetails(ctx context.Context, tokenID domain.TokenID) (*domain.PropertyDetails, error) {
	property, err := r.GetProperty(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	details := property.Details()
	return &details, nil
}

func (r *registry) GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) ([]domain.Identity, error) {
	history, err := r.store.GetOwnershipHistory(ctx, tokenID)
	if err != nil {
		return nil, wrapStoreError("get ownership history", err)
	}
	return history, nil
}

func (r *registry) OwnerOf(ctx context.Context, tokenID domain.TokenID) (domain.Identity, error) {
	property, err := r.GetProperty(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return property.CurrentOwner, nil
}

func (r *registry) PropertiesOf(ctx context.Context, owner domain.Identity, limit, offset int) ([]domain.PropertyDetails, uint64, error) {
	owner = domain.NormalizeIdentity(string(owner))
	details, total, err := r.store.GetPropertiesByOwner(ctx, owner, limit, offset)
	if err != nil {
		return nil, 0, wrapStoreError("get properties by owner", err)
	}
	return details, total, nil
}

func (r *registry) TotalSupply(ctx context.Context) (uint64, error) {
	count, err := r.store.CountProperties(ctx)
	if err != nil {
		return 0, wrapStoreError("count properties", err)
	}
	return count, nil
}

func (r *registry) Registrar(ctx context.Context) (domain.Identity, error) {
	registrar, err := r.store.GetRegistrar(ctx)
	if err != nil {
		return "", wrapStoreError("get registrar", err)
	}
	return registrar, nil
}

// TransferRegistrar hands the registrar capability from caller to newRegistrar
func (r *registry) TransferRegistrar(ctx context.Context, caller, newRegistrar domain.Identity) error {
	caller = domain.NormalizeIdentity(string(caller))
	newRegistrar = domain.NormalizeIdentity(string(newRegistrar))

	if !newRegistrar.Valid() {
		return domain.ErrInvalidRecipient
	}
	if caller.IsEmpty() {
		return domain.ErrUnauthorized
	}

	event, err := r.store.TransferRegistrar(ctx, store.TransferRegistrarInput{
		Expected:  caller,
		New:       newRegistrar,
		Timestamp: r.now(),
	})
	if err != nil {
		return wrapStoreError("transfer registrar", err)
	}

	logger.InfoCtx(ctx, "Registrar transferred",
		zap.String("from", caller.String()),
		zap.String("to", newRegistrar.String()))

	r.notify(ctx, event)
	return nil
}

func (r *registry) Info(ctx context.Context) (*domain.RegistryInfo, error) {
	registrar, err := r.Registrar(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := r.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.RegistryInfo{
		Name:        r.config.Name,
		Symbol:      r.config.Symbol,
		Registrar:   registrar,
		TotalSupply: supply,
	}, nil
}

func (r *registry) Changes(ctx context.Context, query ChangesQuery) ([]*domain.Event, error) {
	events, err := r.store.GetEvents(ctx, store.EventQueryFilter{
		AfterID: query.AfterID,
		TokenID: query.TokenID,
		Limit:   query.Limit,
	})
	if err != nil {
		return nil, wrapStoreError("get changes", err)
	}
	return events, nil
}

func (r *registry) Subscribe(listener Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// notify runs the listeners for a committed event
func (r *registry) notify(ctx context.Context, event *domain.Event) {
	if event == nil {
		return
	}

	r.mu.RLock()
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.RUnlock()

	for _, l := range listeners {
		if err := l.HandleEvent(ctx, *event); err != nil {
			logger.WarnCtx(ctx, "Registry listener failed",
				zap.Error(err),
				zap.Uint64("eventID", event.ID),
				zap.String("eventType", string(event.Type)))
		}
	}
}

// wrapStoreError passes registry errors through and adds context to infrastructure errors
func wrapStoreError(op string, err error) error {
	if isRegistryError(err) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isRegistryError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrInvalidRecipient) ||
		errors.Is(err, domain.ErrTokenNotFound) ||
		errors.Is(err, domain.ErrOwnerMismatch)
}
