package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// RequestCashOnDeliveryCommandHandler creates a pending cash payment and
// switches the order to cash-on-delivery.
type RequestCashOnDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	events     ports.OrderEventPublisher
}

func NewRequestCashOnDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy services.AuthorizationPolicy,
	events ports.OrderEventPublisher,
) RequestCashOnDeliveryCommandHandler {
	return RequestCashOnDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     events,
	}
}

// Handle fails with errs.ErrInvalidState unless the order's payment status
// is pending, and with errs.ErrConflict if an active payment exists.
func (h *RequestCashOnDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd RequestCashOnDeliveryCommand,
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

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return PaymentResult{}, err
	}

	actor := cmd.Actor()
	if err = h.policy.Authorize(actor, services.ActionPay, o); err != nil {
		return PaymentResult{}, err
	}

	now := time.Now()
	if err = o.RequestCashOnDelivery(cmd.PaymentID(), actor.ID(), now); err != nil {
		return PaymentResult{}, err
	}

	active, err := paymentRepo.FindActiveByOrder(ctx, o.ID())
	if err != nil {
		return PaymentResult{}, err
	}
	if active != nil {
		return PaymentResult{}, errs.NewConflictError("order already has an active payment")
	}

	p, err := payment.NewCashOnDeliveryPayment(cmd.PaymentID(), o, now)
	if err != nil {
		return PaymentResult{}, err
	}

	if err = paymentRepo.Add(ctx, p); err != nil {
		return PaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return PaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PaymentResult{}, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderStatusChanged, actor.ID(), now))
	return PaymentResult{Payment: p, Order: o}, nil
}
