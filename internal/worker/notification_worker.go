// Package worker starts background consumers of store events.
package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the store's
// event dispatcher. Handlers run synchronously inside Publish.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
}
