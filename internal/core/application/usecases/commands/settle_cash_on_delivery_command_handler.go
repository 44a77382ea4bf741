package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// SettleCashOnDeliveryCommandHandler marks a cash payment collected and
// propagates paid to its order, payment first. Settling twice re-applies
// paid without a second history entry.
type SettleCashOnDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	events     ports.OrderEventPublisher
}

func NewSettleCashOnDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	events ports.OrderEventPublisher,
) SettleCashOnDeliveryCommandHandler {
	return SettleCashOnDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     events,
	}
}

// Handle fails with errs.ErrForbidden unless the actor is an admin or the
// order's assigned deliverer, and with errs.ErrInvalidState if the payment
// is not cash-on-delivery.
func (h *SettleCashOnDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd SettleCashOnDeliveryCommand,
) (PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	p, err := paymentRepo.GetForUpdate(ctx, cmd.PaymentID())
	if err != nil {
		return PaymentResult{}, err
	}

	o, err := orderRepo.GetForUpdate(ctx, p.OrderID())
	if err != nil {
		return PaymentResult{}, err
	}

	actor := cmd.Actor()
	if err = h.policy.Authorize(actor, services.ActionSettleCOD, o); err != nil {
		return PaymentResult{}, err
	}

	now := time.Now()
	if err = p.SettleCash(now); err != nil {
		return PaymentResult{}, err
	}

	if err = paymentRepo.Update(ctx, p); err != nil {
		return PaymentResult{}, err
	}

	if err = o.MarkPaid(p.ID(), actor.ID(), now); err != nil {
		return PaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return PaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PaymentResult{}, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderPaid, actor.ID(), now))
	return PaymentResult{Payment: p, Order: o}, nil
}
