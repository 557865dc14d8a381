package dto

import (
	"time"

	"github.com/feral-file/property-registry/internal/domain"
)

// RegistryInfoResponse describes the registry
type RegistryInfoResponse struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Registrar   string `json:"registrar"`
	TotalSupply uint64 `json:"total_supply"`
}

// PropertyResponse represents a property and its current owner
type PropertyResponse struct {
	TokenID      uint64 `json:"token_id"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	MediaHash    string `json:"media_hash"`
	DocumentHash string `json:"document_hash"`
	CurrentOwner string `json:"current_owner"`
}

// PropertyListResponse represents a page of properties held by an owner
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      uint64             `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// OwnerResponse represents the current owner of a property
type OwnerResponse struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

// OwnershipHistoryResponse lists every owner of a property in acquisition order
type OwnershipHistoryResponse struct {
	TokenID uint64   `json:"token_id"`
	Owners  []string `json:"owners"`
}

// ChangeResponse represents one journal event
type ChangeResponse struct {
	ID         uint64    `json:"id"`
	Type       string    `json:"type"`
	TokenID    *uint64   `json:"token_id,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangeListResponse represents a page of journal events.
// NextAnchor is the anchor to pass to fetch the following page.
type ChangeListResponse struct {
	Changes    []ChangeResponse `json:"changes"`
	NextAnchor *uint64          `json:"next_anchor,omitempty"`
}

// CreateWebhookClientResponse represents the response for creating a webhook client
type CreateWebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	WebhookURL       string    `json:"webhook_url"`
	WebhookSecret    string    `json:"webhook_secret"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MapRegistryInfoToDTO maps registry info to its response
func MapRegistryInfoToDTO(info *domain.RegistryInfo) *RegistryInfoResponse {
	return &RegistryInfoResponse{
		Name:        info.Name,
		Symbol:      info.Symbol,
		Registrar:   info.Registrar.String(),
		TotalSupply: info.TotalSupply,
	}
}

// MapPropertyToDTO maps property details to a response
func MapPropertyToDTO(details domain.PropertyDetails) PropertyResponse {
	return PropertyResponse{
		TokenID:      uint64(details.TokenID),
		Description:  details.Info.Description,
		Location:     details.Info.Location,
		MediaHash:    details.Info.MediaHash,
		DocumentHash: details.Info.DocumentHash,
		CurrentOwner: details.CurrentOwner.String(),
	}
}

// MapChangeToDTO maps a journal event to a response
func MapChangeToDTO(event *domain.Event) ChangeResponse {
	change := ChangeResponse{
		ID:         event.ID,
		Type:       string(event.Type),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.TokenID != nil {
		tokenID := uint64(*event.TokenID)
		change.TokenID = &tokenID
	}
	return change
}
