// Package scheduler runs background maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/config"
	"agrosense/crop-advisor-backend/internal/recommend"
)

const purgeTimeout = 5 * time.Minute

// RetentionJob periodically purges recommendations older than the
// configured retention window.
type RetentionJob struct {
	cron   *cron.Cron
	repo   recommend.Repository
	cfg    config.RetentionConfig
	logger *zap.Logger
}

// NewRetentionJob creates the purge job.
func NewRetentionJob(repo recommend.Repository, cfg config.RetentionConfig, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		cron:   cron.New(),
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Start schedules the job. A retention config with an empty cron spec
// or a non-positive max age disables it.
func (j *RetentionJob) Start() error {
	if j.cfg.CronSpec == "" || j.cfg.MaxAge <= 0 {
		j.logger.Info("recommendation retention job disabled")
		return nil
	}

	if _, err := j.cron.AddFunc(j.cfg.CronSpec, j.purge); err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("recommendation retention job scheduled",
		zap.String("cron", j.cfg.CronSpec),
		zap.Int("max_age_days", j.cfg.MaxAge))
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *RetentionJob) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.cfg.MaxAge)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("failed to purge old recommendations", zap.Error(err))
		return
	}

	j.logger.Info("purged old recommendations",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff))
}
