package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/events"
)

// StartAuditLog records every committed store change at debug level.
func StartAuditLog(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	dispatcher.SubscribeAll(func(_ context.Context, e events.Event) error {
		audit.Debug("store change",
			zap.String("event_id", e.ID),
			zap.String("event_type", string(e.Type)),
			zap.String("entity_id", e.EntityID),
			zap.Time("at", e.Timestamp))
		return nil
	})
}
