package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventAnnouncementPublished, n.handleAnnouncementPublished)
	n.dispatcher.Subscribe(events.EventServiceRequestFiled, n.handleServiceRequestFiled)
	n.dispatcher.Subscribe(events.EventServiceRequestUpdated, n.handleServiceRequestUpdated)
	n.dispatcher.Subscribe(events.EventBidSubmissionReceived, n.handleBidSubmissionReceived)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	user, ok := event.Payload.(domain.User)
	if !ok || user.Role != domain.RoleResident || user.Approved {
		return nil
	}
	n.logger.Info("ResidentAwaitingApproval", zap.String("user_id", event.EntityID), zap.String("email", user.Email))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAnnouncementPublished(ctx context.Context, event events.Event) error {
	ann, ok := event.Payload.(domain.Announcement)
	if !ok {
		return nil
	}
	n.logger.Info("AnnouncementPublished", zap.String("announcement_id", event.EntityID), zap.Bool("urgent", ann.IsUrgent))
	if ann.IsUrgent {
		n.sendEmailNotificationStub(ctx, event)
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleServiceRequestFiled(ctx context.Context, event events.Event) error {
	n.logger.Info("ServiceRequestFiled", zap.String("request_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleServiceRequestUpdated(ctx context.Context, event events.Event) error {
	req, ok := event.Payload.(domain.ServiceRequest)
	if !ok {
		return nil
	}
	n.logger.Info("ServiceRequestUpdated", zap.String("request_id", event.EntityID), zap.String("status", string(req.Status)))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBidSubmissionReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("BidSubmissionReceived", zap.String("submission_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
