package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rabiijabrour/workers-production-system/internal/config"
	"github.com/rabiijabrour/workers-production-system/internal/service"
)

// ReminderWorker runs the scheduled production reminder.
type ReminderWorker struct {
	cron          *cron.Cron
	notifications *service.NotificationService
	cfg           config.ReminderConfig
	logger        *zap.Logger
}

// NewReminderWorker builds the worker.
func NewReminderWorker(cfg config.ReminderConfig, notifications *service.NotificationService, logger *zap.Logger) *ReminderWorker {
	return &ReminderWorker{
		cron:          cron.New(),
		notifications: notifications,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start schedules the reminder job and begins the cron loop.
func (w *ReminderWorker) Start() error {
	if !w.cfg.Enabled {
		w.logger.Info("production reminder disabled")
		return nil
	}

	if _, err := w.cron.AddFunc(w.cfg.CronSpec, func() {
		w.notifications.SendProductionReminder(context.Background())
	}); err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("production reminder scheduled", zap.String("spec", w.cfg.CronSpec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (w *ReminderWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}
