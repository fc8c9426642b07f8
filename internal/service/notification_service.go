package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rabiijabrour/workers-production-system/internal/events"
)

// NotificationService logs notifications for domain events and carries the
// hourly production reminder.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventWorkerAdded, n.handleWorkerAdded)
	n.dispatcher.Subscribe(events.EventProductionRecorded, n.handleProductionRecorded)
}

// SendProductionReminder emits the hourly reminder to record piece-counts.
// Delivery beyond the log line is left to the floor displays.
func (n *NotificationService) SendProductionReminder(ctx context.Context) {
	n.logger.Info("sending production reminder notification")
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleWorkerAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkerAdded", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleProductionRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("ProductionRecorded", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}
