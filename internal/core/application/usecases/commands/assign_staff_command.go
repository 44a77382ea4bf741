package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAssignStaffCommandIsNotConstructed = errors.New(
	"AssignStaffCommand must be created via NewAssignStaffCommand constructor",
)

// AssignStaffCommand sets the worker or the deliverer of an order; role
// selects which slot.
//
// Example:
//
//	cmd, err := NewAssignStaffCommand(manager, orderID, workerID, identity.RoleWorker)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type AssignStaffCommand struct { //nolint:recvcheck //using for validation
	actor   identity.Actor
	orderID kernel.UUID
	staffID kernel.UUID
	role    identity.Role

	guard guard.ConstructorGuard
}

func NewAssignStaffCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	staffID kernel.UUID,
	role identity.Role,
) (AssignStaffCommand, error) {
	cmd := AssignStaffCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		staffID.Validate(),
		cmd.setRole(role),
	); err != nil {
		return AssignStaffCommand{}, err
	}

	cmd.actor = actor
	cmd.orderID = orderID
	cmd.staffID = staffID
	return cmd, nil
}

func (c AssignStaffCommand) Validate() error {
	return c.guard.Validate(ErrAssignStaffCommandIsNotConstructed)
}

func (c AssignStaffCommand) Actor() identity.Actor { return c.actor }
func (c AssignStaffCommand) OrderID() kernel.UUID  { return c.orderID }
func (c AssignStaffCommand) StaffID() kernel.UUID  { return c.staffID }
func (c AssignStaffCommand) Role() identity.Role   { return c.role }

func (c *AssignStaffCommand) setRole(role identity.Role) error {
	if role != identity.RoleWorker && role != identity.RoleDeliverer {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment role is invalid",
			fmt.Errorf("%q is neither worker nor deliverer", role.String()),
		)
	}
	c.role = role
	return nil
}
