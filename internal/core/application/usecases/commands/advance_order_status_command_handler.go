package commands

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler applies one status transition.
//
// Checks run in this order: order exists, actor may update its status,
// target token is known, transition table (terminal guard included).
// Targeting cancelled additionally needs the cancel permission.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AuthorizationPolicy
	events     ports.OrderEventPublisher
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AuthorizationPolicy,
	events ports.OrderEventPublisher,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     events,
	}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
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
	if err = h.policy.Authorize(actor, services.ActionUpdateStatus, o); err != nil {
		return nil, err
	}

	target, err := order.ParseStatus(cmd.Target())
	if err != nil {
		return nil, errs.NewInvalidTransitionError(fmt.Sprintf("unknown status %q", cmd.Target()))
	}

	if target == order.Cancelled {
		if err = h.policy.Authorize(actor, services.ActionCancel, o); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err = o.Advance(target, actor.ID(), now); err != nil {
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
