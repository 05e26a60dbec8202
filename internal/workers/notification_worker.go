package workers

import (
	"context"
	"fmt"
	"time"

	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/services"

	"gorm.io/gorm"
)

const notificationWorkerName = "notification_cleanup"

// NotificationWorker периодически удаляет прочитанные уведомления старше retention
type NotificationWorker struct {
	db        *gorm.DB
	service   services.NotificationService
	interval  time.Duration
	retention time.Duration
}

func NewNotificationWorker(db *gorm.DB, service services.NotificationService, interval, retention time.Duration) *NotificationWorker {
	return &NotificationWorker{
		db:        db,
		service:   service,
		interval:  interval,
		retention: retention,
	}
}

// Run блокируется до отмены ctx. Первая очистка выполняется сразу.
func (w *NotificationWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("%s: interval must be positive, got %s", notificationWorkerName, w.interval)
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return nil
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce - один проход очистки
func (w *NotificationWorker) RunOnce() int64 {
	deleted, err := w.service.CleanOldNotifications(w.db, w.retention)
	logger.WorkerLog(notificationWorkerName, "clean_read_notifications", deleted, err)
	return deleted
}
