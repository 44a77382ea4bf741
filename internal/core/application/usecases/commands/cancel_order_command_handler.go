package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// CancelOrderCommandHandler cancels a pending or confirmed order on behalf
// of its owner or an admin.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AuthorizationPolicy
	events     ports.OrderEventPublisher
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AuthorizationPolicy,
	events ports.OrderEventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     events,
	}
}

// Handle fails with errs.ErrInvalidTransition ("cannot cancel at this
// stage") once the order has been picked up; history is left untouched.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if err = h.policy.Authorize(actor, services.ActionCancel, o); err != nil {
		return nil, err
	}

	now := time.Now()
	if err = o.Cancel(actor.ID(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderStatusChanged, actor.ID(), now))
	return o, nil
}
