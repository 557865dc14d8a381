package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/property-registry/internal/domain"
)

type auditListener struct {
	log *zap.Logger
}

// NewAuditListener writes one structured log line per committed mutation
func NewAuditListener(log *zap.Logger) Listener {
	return &auditListener{log: log}
}

func (l *auditListener) HandleEvent(ctx context.Context, event domain.Event) error {
	fields := []zap.Field{
		zap.Uint64("eventID", event.ID),
		zap.String("eventType", string(event.Type)),
		zap.String("to", event.To.String()),
		zap.Time("occurredAt", event.OccurredAt),
	}
	if event.TokenID != nil {
		fields = append(fields, zap.Uint64("tokenID", uint64(*event.TokenID)))
	}
	if !event.From.IsEmpty() {
		fields = append(fields, zap.String("from", event.From.String()))
	}

	l.log.Info("Registry change committed", fields...)
	return nil
}
