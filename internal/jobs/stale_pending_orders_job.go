package jobs

import (
	"context"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StalePendingOrdersJob periodically scans the pending queue for orders no
// delivery partner has accepted within the configured threshold and logs a
// warning for each. The job is read-only.
type StalePendingOrdersJob struct {
	uowFactory ports.UnitOfWorkFactory
	threshold  time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewStalePendingOrdersJob creates the stale-order sweep. threshold is how
// long an order may stay pending before it is flagged.
func NewStalePendingOrdersJob(
	uowFactory ports.UnitOfWorkFactory,
	threshold time.Duration,
	logger *zap.Logger,
) *StalePendingOrdersJob {
	return &StalePendingOrdersJob{
		uowFactory: uowFactory,
		threshold:  threshold,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With(zap.String("component", "stale_pending_orders_job")),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *StalePendingOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale pending orders job started (running every minute)",
		zap.Duration("threshold", j.threshold))
	return nil
}

func (j *StalePendingOrdersJob) sweep(ctx context.Context) {
	repo := j.uowFactory.Create().OrderRepository()

	cutoff := time.Now().UTC().Add(-j.threshold)
	stale, err := repo.GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Stale pending orders sweep failed", zap.Error(err))
		return
	}

	for _, aggregate := range stale {
		j.logger.Warn("Order has been pending past the acceptance threshold",
			zap.String("orderId", aggregate.ID().String()),
			zap.String("product", aggregate.Product()),
			zap.String("location", aggregate.Location()),
			zap.Duration("age", time.Since(aggregate.CreatedAt())))
	}
}

// Stop stops the sweep.
func (j *StalePendingOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Stale pending orders job stopped")
}
