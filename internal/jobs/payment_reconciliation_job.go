package jobs

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs a reconciliation pass every 30 seconds.
const DefaultReconcileSchedule = "@every 30s"

type paymentReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcilePaymentsCommand) (int, error)
}

// PaymentReconciliationJob periodically propagates stored card payments to
// orders left unpaid by an interrupted payment.
type PaymentReconciliationJob struct {
	handler   paymentReconciler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPaymentReconciliationJob(
	handler paymentReconciler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	logger = logger.With("component", "payment_reconciliation_job")

	// Passes never overlap; a slow one makes the next tick a no-op.
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &PaymentReconciliationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *PaymentReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Payment reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *PaymentReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Payment reconciliation job stopped")
}

func (j *PaymentReconciliationJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewReconcilePaymentsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment reconciliation job misconfigured", "error", err)
		return
	}

	repaired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment reconciliation job failed", "error", err)
		return
	}
	if repaired > 0 {
		j.logger.InfoContext(ctx, "Payment reconciliation repaired orders", "count", repaired)
	}
}
