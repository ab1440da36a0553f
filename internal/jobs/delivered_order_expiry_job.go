package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveredOrderExpiryJob clears the active order once it has been delivered
// for longer than the retention. Runs every second.
type DeliveredOrderExpiryJob struct {
	handler commands.ExpireDeliveredOrderCommandHandler
	cmd     commands.ExpireDeliveredOrderCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewDeliveredOrderExpiryJob(
	handler commands.ExpireDeliveredOrderCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) (*DeliveredOrderExpiryJob, error) {
	cmd, err := commands.NewExpireDeliveredOrderCommand(retention)
	if err != nil {
		return nil, err
	}
	return &DeliveredOrderExpiryJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivered_order_expiry_job"),
	}, nil
}

// Run executes one expiry pass.
func (j *DeliveredOrderExpiryJob) Run(ctx context.Context) {
	cleared, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivered order expiry failed", "error", err)
		return
	}
	if cleared {
		j.logger.InfoContext(ctx, "Delivered order expired", "retention", j.cmd.Retention().String())
	}
}

// Start begins the expiry job to run every second.
func (j *DeliveredOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivered order expiry job started (running every second)")
	return nil
}

func (j *DeliveredOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivered order expiry job stopped")
}
