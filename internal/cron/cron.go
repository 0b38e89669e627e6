package cron

import (
	"context"
	"log"
	"time"

	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/application/builder"
)

// StartCleanupTask deletes audit logs older than retentionDays now and then
// once a day until ctx is done.
func StartCleanupTask(ctx context.Context, auditService *application.AuditService, retentionDays int) {
	go func() {
		log.Printf("[Cron] starting audit cleanup task (retention: %d days)", retentionDays)

		if _, err := auditService.CleanupOldLogs(retentionDays); err != nil {
			log.Printf("[Cron] failed to cleanup old audit logs: %v", err)
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Println("[Cron] running scheduled audit log cleanup...")
				if n, err := auditService.CleanupOldLogs(retentionDays); err != nil {
					log.Printf("[Cron] failed to cleanup old audit logs: %v", err)
				} else {
					log.Printf("[Cron] audit log cleanup removed %d entries", n)
				}
			}
		}
	}()
}

// StartSessionSweeper closes editing sessions left idle for longer than idle.
func StartSessionSweeper(ctx context.Context, registry *builder.Registry, idle time.Duration) {
	interval := idle / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.Sweep(ctx, idle); n > 0 {
					log.Printf("[Cron] closed %d idle editing sessions", n)
				}
			}
		}
	}()
}
