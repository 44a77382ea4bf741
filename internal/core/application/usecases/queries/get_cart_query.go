package queries

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the actor's own cart.
type GetCartQuery struct {
	actor identity.Actor

	guard guard.ConstructorGuard
}

func NewGetCartQuery(actor identity.Actor) (GetCartQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) Actor() identity.Actor { return q.actor }

// CartItemView is a cart line priced at read time. Available is false when
// the package left the catalog; such lines carry no price and are left
// out of the total, and checkout will reject them.
type CartItemView struct {
	PackageID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
	Available bool
}

type GetCartQueryResponse struct {
	UserID      kernel.UUID
	Items       []CartItemView
	TotalAmount kernel.Money
}
