package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/messaging"
	"github.com/feral-file/property-registry/internal/providers/temporal"
	"github.com/feral-file/property-registry/internal/webhook"
	"github.com/feral-file/property-registry/internal/workflows"
)

const (
	SINK_JETSTREAM = "jetstream"
	SINK_WEBHOOK   = "webhook"
)

type jetStreamSink struct {
	publisher messaging.Publisher
}

// NewJetStreamSink publishes journal entries to NATS JetStream
func NewJetStreamSink(publisher messaging.Publisher) Sink {
	return &jetStreamSink{publisher: publisher}
}

func (s *jetStreamSink) Name() string {
	return SINK_JETSTREAM
}

func (s *jetStreamSink) Deliver(ctx context.Context, event domain.Event) error {
	return s.publisher.PublishEvent(ctx, event)
}

type webhookSink struct {
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
}

// NewWebhookSink starts the webhook notification workflow for every journal entry
func NewWebhookSink(orchestrator temporal.TemporalOrchestrator, taskQueue string) Sink {
	return &webhookSink{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
	}
}

func (s *webhookSink) Name() string {
	return SINK_WEBHOOK
}

func (s *webhookSink) Deliver(ctx context.Context, event domain.Event) error {
	eventID, err := webhook.EventIDFor(event)
	if err != nil {
		return err
	}
	webhookEvent := webhook.NewWebhookEvent(eventID, event)

	opts := client.StartWorkflowOptions{
		ID:                                       workflows.NotifyWorkflowID(event.ID),
		TaskQueue:                                s.taskQueue,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
		WorkflowRunTimeout:                       time.Hour,
	}

	// Only used to reference the workflow function
	w := workflows.NewWorkerWebhook(nil, workflows.DefaultWorkerWebhookConfig())

	_, err = s.orchestrator.ExecuteWorkflow(ctx, opts, w.NotifyWebhookClients, webhookEvent)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			logger.DebugCtx(ctx, "Webhook notification already started",
				zap.Uint64("eventID", event.ID),
				zap.String("workflowID", opts.ID))
			return nil
		}
		return fmt.Errorf("failed to start webhook notification: %w", err)
	}

	logger.InfoCtx(ctx, "Webhook notification started",
		zap.Uint64("eventID", event.ID),
		zap.String("webhookEventID", eventID),
		zap.String("eventType", string(event.Type)))

	return nil
}
