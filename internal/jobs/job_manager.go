package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	reconciliation *PaymentReconciliationJob
}

func NewJobManager(reconciler paymentReconciler, schedule string, batchSize int, logger *slog.Logger) *JobManager {
	return &JobManager{
		reconciliation: NewPaymentReconciliationJob(reconciler, schedule, batchSize, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.reconciliation.Start(); err != nil {
		return fmt.Errorf("failed to start payment reconciliation job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.reconciliation.Stop()
}
