// File: internal/jobs/content_sync.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"propmatics_backend/internal/config"
	"propmatics_backend/internal/property"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ContentSyncJob retries properties whose mirror to the remote content
// store is still pending.
type ContentSyncJob struct {
	propertyService property.Service
	logger          *zap.Logger
	cfg             *config.Config
	cronScheduler   *cron.Cron
}

// NewContentSyncJob creates a new ContentSyncJob.
func NewContentSyncJob(
	propertyService property.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *ContentSyncJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ContentSyncJob{
		propertyService: propertyService,
		logger:          logger.Named("ContentSyncJob"),
		cfg:             cfg,
		cronScheduler:   scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ContentSyncJob) SetupAndStart() error {
	jobSpec := j.cfg.ContentSyncJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Content sync job schedule not defined (CONTENT_SYNC_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule content sync job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Content sync job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *ContentSyncJob) runJob() {
	j.logger.Info("Starting content sync job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	syncedCount, err := j.propertyService.SyncPendingProperties(ctx)
	if err != nil {
		j.logger.Error("Content sync job run failed", zap.Error(err))
	} else {
		j.logger.Info("Content sync job run completed", zap.Int("properties_synced", syncedCount))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *ContentSyncJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping content sync job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Content sync job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Content sync job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
