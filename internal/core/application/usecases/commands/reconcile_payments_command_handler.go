package commands

import (
	"context"
	"time"

	"laundry/internal/core/ports"
)

// ReconcilePaymentsCommandHandler repairs the Payment-then-Order write
// sequence after a crash between the two writes. Re-applying paid is
// idempotent, so overlapping passes are harmless.
type ReconcilePaymentsCommandHandler struct {
	uowFactory UoWFactory
	events     ports.OrderEventPublisher
}

func NewReconcilePaymentsCommandHandler(uowFactory UoWFactory, events ports.OrderEventPublisher) ReconcilePaymentsCommandHandler {
	return ReconcilePaymentsCommandHandler{uowFactory: uowFactory, events: events}
}

// Handle returns how many orders were repaired.
func (h *ReconcilePaymentsCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	payments, err := uow.PaymentRepository().ListUnpropagated(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	now := time.Now()
	events := make([]ports.OrderChanged, 0, len(payments))
	for _, p := range payments {
		o, getErr := orderRepo.GetForUpdate(ctx, p.OrderID())
		if getErr != nil {
			return 0, getErr
		}

		if err = o.MarkPaid(p.ID(), p.UserID(), now); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}

		events = append(events, orderChanged(o, ports.OrderPaid, p.UserID(), now))
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	publish(ctx, h.events, events...)
	return len(events), nil
}
