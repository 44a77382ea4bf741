package commands

import (
	"errors"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand replaces the quantity of a line already in the cart.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	packageID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(actor identity.Actor, packageID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	cmd := UpdateCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		packageID.Validate(),
		cart.ValidateQuantity(quantity),
	); err != nil {
		return UpdateCartItemCommand{}, err
	}

	cmd.actor = actor
	cmd.packageID = packageID
	cmd.quantity = quantity
	return cmd, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) Actor() identity.Actor  { return c.actor }
func (c UpdateCartItemCommand) PackageID() kernel.UUID { return c.packageID }
func (c UpdateCartItemCommand) Quantity() int          { return c.quantity }
