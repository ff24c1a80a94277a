package jobs

import (
	"context"

	"depot/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LowStockLister lists products at or below their minimum stock.
type LowStockLister interface {
	Handle(ctx context.Context, query queries.ListLowStockProductsQuery) ([]queries.ProductStockView, error)
}

// LowStockJob reports products that need replenishing.
type LowStockJob struct {
	handler  LowStockLister
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewLowStockJob(handler LowStockLister, schedule string, logger *zap.Logger) *LowStockJob {
	return &LowStockJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "low_stock_job")),
	}
}

func (j *LowStockJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Low stock job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *LowStockJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Low stock job stopped")
}

// Run performs one check.
func (j *LowStockJob) Run(ctx context.Context) {
	products, err := j.handler.Handle(ctx, queries.NewListLowStockProductsQuery())
	if err != nil {
		j.logger.Error("Low stock job failed", zap.Error(err))
		return
	}

	for _, p := range products {
		j.logger.Warn("Product stock is low",
			zap.String("sku", p.SKU),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock),
			zap.Int("min_stock", p.MinStock),
			zap.String("stock_status", string(p.Status)),
		)
	}
	j.logger.Info("Low stock checked", zap.Int("products", len(products)))
}
