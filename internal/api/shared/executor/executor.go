package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/property-registry/internal/api/shared/constants"
	"github.com/feral-file/property-registry/internal/api/shared/dto"
	apierrors "github.com/feral-file/property-registry/internal/api/shared/errors"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/registry"
	"github.com/feral-file/property-registry/internal/store"
	"github.com/feral-file/property-registry/internal/webhook"
)

// Executor is the interface for the API executor.
// Caller identities are the authenticated subjects; registry errors are returned unchanged.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetRegistryInfo returns the registry name, symbol, registrar and total supply
	GetRegistryInfo(ctx context.Context) (*dto.RegistryInfoResponse, error)
	// TransferRegistrar hands the registrar capability from caller to newRegistrar
	TransferRegistrar(ctx context.Context, caller domain.Identity, newRegistrar string) (*dto.RegistryInfoResponse, error)

	// RegisterProperty registers a property on behalf of caller and returns it
	RegisterProperty(ctx context.Context, caller domain.Identity, req dto.RegisterPropertyRequest) (*dto.PropertyResponse, error)
	// TransferProperty transfers tokenID from `from` to `to` on behalf of caller
	TransferProperty(ctx context.Context, caller domain.Identity, from, to string, tokenID domain.TokenID) (*dto.OwnerResponse, error)

	// GetProperty returns the details and current owner of a property
	GetProperty(ctx context.Context, tokenID domain.TokenID) (*dto.PropertyResponse, error)
	// GetPropertyOwner returns the current owner of a property
	GetPropertyOwner(ctx context.Context, tokenID domain.TokenID) (*dto.OwnerResponse, error)
	// GetOwnershipHistory returns every owner of a property in acquisition order
	GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) (*dto.OwnershipHistoryResponse, error)
	// ListPropertiesByOwner returns a page of the properties currently held by owner
	ListPropertiesByOwner(ctx context.Context, owner string, limit, offset int) (*dto.PropertyListResponse, error)

	// GetChanges returns journal events after anchor, optionally for one token
	GetChanges(ctx context.Context, anchor uint64, tokenID *domain.TokenID, limit int) (*dto.ChangeListResponse, error)

	// CreateWebhookClient creates a webhook client with a freshly generated secret
	CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error)
}

type executor struct {
	registry registry.Registry
	store    store.Store
}

func NewExecutor(reg registry.Registry, st store.Store) Executor {
	return &executor{registry: reg, store: st}
}

func (e *executor) GetRegistryInfo(ctx context.Context) (*dto.RegistryInfoResponse, error) {
	info, err := e.registry.Info(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MapRegistryInfoToDTO(info), nil
}

func (e *executor) TransferRegistrar(ctx context.Context, caller domain.Identity, newRegistrar string) (*dto.RegistryInfoResponse, error) {
	if err := e.registry.TransferRegistrar(ctx, caller, domain.Identity(newRegistrar)); err != nil {
		return nil, err
	}

	info, err := e.registry.Info(ctx)
	if err != nil {
		return nil, err
	}
	info.Registrar = domain.NormalizeIdentity(newRegistrar)
	return dto.MapRegistryInfoToDTO(info), nil
}

func (e *executor) RegisterProperty(ctx context.Context, caller domain.Identity, req dto.RegisterPropertyRequest) (*dto.PropertyResponse, error) {
	property, err := e.registry.RegisterProperty(ctx, caller, registry.RegisterInput{
		Recipient:    domain.Identity(req.Recipient),
		Description:  req.Description,
		Location:     req.Location,
		MediaHash:    req.MediaHash,
		DocumentHash: req.DocumentHash,
	})
	if err != nil {
		return nil, err
	}

	// Built from the committed record; a read here could hit a lagging replica
	response := dto.MapPropertyToDTO(property.Details())
	return &response, nil
}

func (e *executor) TransferProperty(ctx context.Context, caller domain.Identity, from, to string, tokenID domain.TokenID) (*dto.OwnerResponse, error) {
	if from == "" {
		from = caller.String()
	}
	property, err := e.registry.TransferProperty(ctx, caller, domain.Identity(from), domain.Identity(to), tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerResponse{TokenID: uint64(property.TokenID), Owner: property.CurrentOwner.String()}, nil
}

func (e *executor) GetProperty(ctx context.Context, tokenID domain.TokenID) (*dto.PropertyResponse, error) {
	details, err := e.registry.GetPropertyDetails(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	property := dto.MapPropertyToDTO(*details)
	return &property, nil
}

func (e *executor) GetPropertyOwner(ctx context.Context, tokenID domain.TokenID) (*dto.OwnerResponse, error) {
	owner, err := e.registry.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerResponse{TokenID: uint64(tokenID), Owner: owner.String()}, nil
}

func (e *executor) GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) (*dto.OwnershipHistoryResponse, error) {
	history, err := e.registry.GetOwnershipHistory(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	owners := make([]string, len(history))
	for i, owner := range history {
		owners[i] = owner.String()
	}
	return &dto.OwnershipHistoryResponse{TokenID: uint64(tokenID), Owners: owners}, nil
}

func (e *executor) ListPropertiesByOwner(ctx context.Context, owner string, limit, offset int) (*dto.PropertyListResponse, error) {
	if owner == "" {
		return nil, apierrors.NewValidationError("owner is required")
	}

	details, total, err := e.registry.PropertiesOf(ctx, domain.Identity(owner), limit, offset)
	if err != nil {
		return nil, err
	}

	properties := make([]dto.PropertyResponse, len(details))
	for i, d := range details {
		properties[i] = dto.MapPropertyToDTO(d)
	}
	return &dto.PropertyListResponse{
		Properties: properties,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (e *executor) GetChanges(ctx context.Context, anchor uint64, tokenID *domain.TokenID, limit int) (*dto.ChangeListResponse, error) {
	events, err := e.registry.Changes(ctx, registry.ChangesQuery{
		AfterID: anchor,
		TokenID: tokenID,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	changes := make([]dto.ChangeResponse, len(events))
	for i, event := range events {
		changes[i] = dto.MapChangeToDTO(event)
	}

	response := &dto.ChangeListResponse{Changes: changes}
	if len(events) > 0 {
		next := events[len(events)-1].ID
		response.NextAnchor = &next
	}
	return response, nil
}

func (e *executor) CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error) {
	if err := webhook.ValidateEventFilters(eventFilters); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	if retryMaxAttempts <= 0 {
		retryMaxAttempts = constants.DEFAULT_RETRY_MAX_ATTEMPTS
	}

	secret, err := webhook.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate webhook secret: %w", err)
	}

	filtersJSON, err := json.Marshal(eventFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event filters: %w", err)
	}

	client, err := e.store.CreateWebhookClient(ctx, store.CreateWebhookClientInput{
		ClientID:         uuid.New().String(),
		WebhookURL:       webhookURL,
		WebhookSecret:    secret,
		EventFilters:     datatypes.JSON(filtersJSON),
		IsActive:         true,
		RetryMaxAttempts: retryMaxAttempts,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create webhook client: %v", err))
	}

	return &dto.CreateWebhookClientResponse{
		ClientID:         client.ClientID,
		WebhookURL:       client.WebhookURL,
		WebhookSecret:    client.WebhookSecret,
		EventFilters:     eventFilters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	}, nil
}
