package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedules holds the cron expressions of the scheduled jobs.
type Schedules struct {
	OverdueDeliveries string
	LowStock          string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueDeliveriesJob *OverdueDeliveriesJob
	lowStockJob          *LowStockJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	overdueOrders OverdueOrdersLister,
	lowStock LowStockLister,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		overdueDeliveriesJob: NewOverdueDeliveriesJob(overdueOrders, schedules.OverdueDeliveries, logger),
		lowStockJob:          NewLowStockJob(lowStock, schedules.LowStock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueDeliveriesJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue deliveries job: %w", err)
	}

	if err := jm.lowStockJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.overdueDeliveriesJob.Stop()
		return fmt.Errorf("failed to start low stock job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueDeliveriesJob.Stop()
	jm.lowStockJob.Stop()
}
