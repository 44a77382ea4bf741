package commands

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrRemoveFromCartCommandIsNotConstructed = errors.New(
		"RemoveFromCartCommand must be created via NewRemoveFromCartCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// RemoveFromCartCommand drops one package line from the actor's cart.
type RemoveFromCartCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveFromCartCommand(actor identity.Actor, packageID kernel.UUID) (RemoveFromCartCommand, error) {
	if err := errors.Join(actor.Validate(), packageID.Validate()); err != nil {
		return RemoveFromCartCommand{}, err
	}

	return RemoveFromCartCommand{
		actor:     actor,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveFromCartCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromCartCommandIsNotConstructed)
}

func (c RemoveFromCartCommand) Actor() identity.Actor  { return c.actor }
func (c RemoveFromCartCommand) PackageID() kernel.UUID { return c.packageID }

// ClearCartCommand empties the actor's cart.
type ClearCartCommand struct {
	actor identity.Actor
	guard guard.ConstructorGuard
}

func NewClearCartCommand(actor identity.Actor) (ClearCartCommand, error) {
	if err := actor.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) Actor() identity.Actor { return c.actor }
