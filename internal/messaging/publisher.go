package messaging

import (
	"context"

	"github.com/feral-file/property-registry/internal/domain"
)

// Publisher defines the interface for publishing registry events to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// EnsureStream creates or updates the stream that receives registry events
	EnsureStream(ctx context.Context) error
	// PublishEvent publishes a registry event to the message broker
	PublishEvent(ctx context.Context, event domain.Event) error
	// Close closes the connection
	Close()
}
