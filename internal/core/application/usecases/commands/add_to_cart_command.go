package commands

import (
	"errors"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrAddToCartCommandIsNotConstructed = errors.New(
	"AddToCartCommand must be created via NewAddToCartCommand constructor",
)

// AddToCartCommand adds a package to the actor's own cart.
//
// Example:
//
//	cmd, err := NewAddToCartCommand(actor, packageID, 0) // quantity defaults to 1
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//	c, err := handler.Handle(ctx, cmd)
type AddToCartCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	packageID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddToCartCommand creates the command. A zero quantity means
// cart.DefaultQuantity; a negative one is rejected.
func NewAddToCartCommand(actor identity.Actor, packageID kernel.UUID, quantity int) (AddToCartCommand, error) {
	cmd := AddToCartCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setPackageID(packageID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddToCartCommand{}, err
	}

	return cmd, nil
}

func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

func (c AddToCartCommand) Actor() identity.Actor  { return c.actor }
func (c AddToCartCommand) PackageID() kernel.UUID { return c.packageID }
func (c AddToCartCommand) Quantity() int          { return c.quantity }

func (c *AddToCartCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AddToCartCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *AddToCartCommand) setQuantity(quantity int) error {
	if quantity == 0 {
		quantity = cart.DefaultQuantity
	}
	if err := cart.ValidateQuantity(quantity); err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}
