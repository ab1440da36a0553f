package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// HistoryPurgeSchedule runs the purge at the top of every hour.
const HistoryPurgeSchedule = "0 0 * * * *"

// HistoryPurgeJob deletes past orders older than the retention.
type HistoryPurgeJob struct {
	handler commands.PurgeOrderHistoryCommandHandler
	cmd     commands.PurgeOrderHistoryCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewHistoryPurgeJob(
	handler commands.PurgeOrderHistoryCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) (*HistoryPurgeJob, error) {
	cmd, err := commands.NewPurgeOrderHistoryCommand(retention)
	if err != nil {
		return nil, err
	}
	return &HistoryPurgeJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "history_purge_job"),
	}, nil
}

// Run executes one purge and returns the number of deleted orders.
func (j *HistoryPurgeJob) Run(ctx context.Context) int {
	deleted, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order history purge failed", "error", err)
		return 0
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Order history purged", "deleted", deleted)
	}
	return deleted
}

// Start schedules the purge hourly.
func (j *HistoryPurgeJob) Start() error {
	_, err := j.cron.AddFunc(HistoryPurgeSchedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order history purge job started (running hourly)")
	return nil
}

func (j *HistoryPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order history purge job stopped")
}
