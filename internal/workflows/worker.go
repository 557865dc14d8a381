package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/property-registry/internal/webhook"
)

// WorkerWebhook defines the workflows that fan registry events out to webhook clients
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_webhook.go -package=mocks -mock_names=WorkerWebhook=MockWorkerWebhook
type WorkerWebhook interface {
	// NotifyWebhookClients starts one delivery workflow per client subscribed to the event type
	NotifyWebhookClients(ctx workflow.Context, event webhook.WebhookEvent) error

	// DeliverWebhook delivers an event to a single client, retrying with exponential backoff
	DeliverWebhook(ctx workflow.Context, clientID string, event webhook.WebhookEvent) error
}

// WorkerWebhookConfig holds the tunables of the webhook workflows
type WorkerWebhookConfig struct {
	// DeliveryRunTimeout bounds a delivery workflow including all of its retries
	DeliveryRunTimeout time.Duration
	// DeliveryInitialInterval is the delay before the first retry
	DeliveryInitialInterval time.Duration
}

// DefaultWorkerWebhookConfig returns the delivery settings used in production
func DefaultWorkerWebhookConfig() WorkerWebhookConfig {
	return WorkerWebhookConfig{
		DeliveryRunTimeout:      time.Hour,
		DeliveryInitialInterval: 5 * time.Second,
	}
}

// workerWebhook is the concrete implementation of WorkerWebhook
type workerWebhook struct {
	config   WorkerWebhookConfig
	executor Executor
}

// NewWorkerWebhook creates a new webhook worker instance.
// A nil executor is allowed when the instance is only used to reference workflow functions.
func NewWorkerWebhook(executor Executor, config WorkerWebhookConfig) WorkerWebhook {
	return &workerWebhook{
		executor: executor,
		config:   config,
	}
}
