package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AssignStaffCommandHandler overwrites an order's worker or deliverer.
// Assignment does not depend on status and is not historized.
type AssignStaffCommandHandler struct {
	uowFactory    OrderUoWFactory
	policy        services.AuthorizationPolicy
	directory     ports.UserDirectory
	events        ports.OrderEventPublisher
	lookupTimeout time.Duration
}

func NewAssignStaffCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AuthorizationPolicy,
	directory ports.UserDirectory,
	events ports.OrderEventPublisher,
	lookupTimeout time.Duration,
) AssignStaffCommandHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return AssignStaffCommandHandler{
		uowFactory:    uowFactory,
		policy:        policy,
		directory:     directory,
		events:        events,
		lookupTimeout: lookupTimeout,
	}
}

// Handle fails with errs.ErrObjectNotFound when the staff member does not
// exist or does not hold the requested role.
func (h *AssignStaffCommandHandler) Handle(ctx context.Context, cmd AssignStaffCommand) (*order.Order, error) {
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
	if err = h.policy.Authorize(actor, services.ActionAssign, o); err != nil {
		return nil, err
	}

	if err = h.ensureRole(ctx, cmd.StaffID(), cmd.Role()); err != nil {
		return nil, err
	}

	now := time.Now()
	if cmd.Role() == identity.RoleWorker {
		err = o.AssignWorker(cmd.StaffID(), now)
	} else {
		err = o.AssignDeliverer(cmd.StaffID(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderAssigned, actor.ID(), now))
	return o, nil
}

func (h *AssignStaffCommandHandler) ensureRole(ctx context.Context, id kernel.UUID, want identity.Role) error {
	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	role, err := h.directory.ResolveUser(lookupCtx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewUpstreamUnavailableError("user directory", err)
		}
		return err
	}

	if role != want {
		return errs.NewObjectNotFoundError(want.String(), id.String())
	}
	return nil
}
