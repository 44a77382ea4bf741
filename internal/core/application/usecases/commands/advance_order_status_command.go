package commands

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order along the fulfillment pipeline.
// The target is kept as the raw token: an unknown token is a transition
// failure, reported only after the actor is authorized for the order.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   identity.Actor
	orderID kernel.UUID
	target  string

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(actor identity.Actor, orderID kernel.UUID, target string) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return AdvanceOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) Actor() identity.Actor { return c.actor }
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID  { return c.orderID }
func (c AdvanceOrderStatusCommand) Target() string        { return c.target }
