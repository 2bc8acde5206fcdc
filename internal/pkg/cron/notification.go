package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/domain/notification"
)

// NotificationJobs sweeps old read notifications.
type NotificationJobs struct {
	notificationRepo notification.Repository
	retention        time.Duration
}

func NewNotificationJobs(notificationRepo notification.Repository, retention time.Duration) *NotificationJobs {
	return &NotificationJobs{
		notificationRepo: notificationRepo,
		retention:        retention,
	}
}

// SweepOldNotifications deletes read notifications older than the retention window.
func (j *NotificationJobs) SweepOldNotifications(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.retention)

	deleted, err := j.notificationRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to sweep notifications: %w", err)
	}

	if deleted > 0 {
		slog.Info("Swept old notifications", "count", deleted, "cutoff", cutoff)
	}

	return nil
}
