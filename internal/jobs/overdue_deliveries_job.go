package jobs

import (
	"context"

	"depot/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueOrdersLister lists orders matching a filter.
type OverdueOrdersLister interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
}

// OverdueDeliveriesJob reports open orders whose expected delivery date has
// passed, one warning per order.
type OverdueDeliveriesJob struct {
	handler  OverdueOrdersLister
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOverdueDeliveriesJob creates the job. schedule is a six-field cron
// expression (seconds first).
func NewOverdueDeliveriesJob(handler OverdueOrdersLister, schedule string, logger *zap.Logger) *OverdueDeliveriesJob {
	return &OverdueDeliveriesJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "overdue_deliveries_job")),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *OverdueDeliveriesJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue deliveries job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *OverdueDeliveriesJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue deliveries job stopped")
}

// Run performs one check.
func (j *OverdueDeliveriesJob) Run(ctx context.Context) {
	query, err := queries.NewListOrdersQuery(queries.OrderFilter{OnlyOverdue: true})
	if err != nil {
		j.logger.Error("Overdue deliveries job failed", zap.Error(err))
		return
	}

	resp, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Overdue deliveries job failed", zap.Error(err))
		return
	}

	for _, o := range resp.Orders {
		j.logger.Warn("Delivery is overdue",
			zap.String("order_number", o.Number),
			zap.String("school", o.SchoolName),
			zap.String("status", o.Status.String()),
			zap.String("expected_date", o.ExpectedDate.String()),
			zap.String("responsible", o.Responsible),
		)
	}
	j.logger.Info("Overdue deliveries checked", zap.Int("overdue", len(resp.Orders)))
}
