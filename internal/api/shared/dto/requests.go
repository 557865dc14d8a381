package dto

import (
	"fmt"
	"net/url"

	"github.com/feral-file/property-registry/internal/api/shared/constants"
	apierrors "github.com/feral-file/property-registry/internal/api/shared/errors"
	"github.com/feral-file/property-registry/internal/webhook"
)

// RegisterPropertyRequest represents the request body for registering a property
type RegisterPropertyRequest struct {
	Recipient    string `json:"recipient"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	MediaHash    string `json:"media_hash"`
	DocumentHash string `json:"document_hash"`
}

// Validate validates the request body.
// The recipient is checked by the registry so that an invalid recipient is reported the same way everywhere.
func (r *RegisterPropertyRequest) Validate() error {
	fields := map[string]string{
		"description":   r.Description,
		"location":      r.Location,
		"media_hash":    r.MediaHash,
		"document_hash": r.DocumentHash,
	}
	for name, value := range fields {
		if len(value) > constants.MAX_PROPERTY_FIELD_LENGTH {
			return apierrors.NewValidationError(fmt.Sprintf("%s must be at most %d bytes", name, constants.MAX_PROPERTY_FIELD_LENGTH))
		}
	}
	return nil
}

// TransferPropertyRequest represents the request body for transferring a property.
// From defaults to the authenticated caller.
type TransferPropertyRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

// TransferRegistrarRequest represents the request body for handing over the registrar capability
type TransferRegistrarRequest struct {
	NewRegistrar string `json:"new_registrar"`
}

// CreateWebhookClientRequest represents the request body for creating a webhook client
type CreateWebhookClientRequest struct {
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts,omitempty"`
}

// Validate validates the request body
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	// Validate: webhook URL must be provided
	if r.WebhookURL == "" {
		return apierrors.NewValidationError("webhook_url is required")
	}

	// Validate: webhook URL must be valid, and HTTPS outside debug mode
	u, err := url.ParseRequestURI(r.WebhookURL)
	if err != nil || u.Host == "" {
		return apierrors.NewValidationError("webhook_url must be a valid URL")
	}
	if !debug && u.Scheme != "https" {
		return apierrors.NewValidationError("webhook_url must be a valid HTTPS URL")
	}
	if debug && u.Scheme != "https" && u.Scheme != "http" {
		return apierrors.NewValidationError("webhook_url must be a valid URL")
	}

	if err := webhook.ValidateEventFilters(r.EventFilters); err != nil {
		return apierrors.NewValidationError(err.Error())
	}

	if r.RetryMaxAttempts != nil {
		if *r.RetryMaxAttempts < 0 || *r.RetryMaxAttempts > constants.MAX_RETRY_MAX_ATTEMPTS {
			return apierrors.NewValidationError(fmt.Sprintf("retry_max_attempts must be between 0 and %d", constants.MAX_RETRY_MAX_ATTEMPTS))
		}
	}

	return nil
}
