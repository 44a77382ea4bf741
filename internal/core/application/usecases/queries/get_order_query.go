package queries

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderQuery reads one order as the actor is permitted to see it.
//
// Example:
//
//	query, err := NewGetOrderQuery(actor, orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query) // Forbidden unless the policy allows "read"
type GetOrderQuery struct {
	actor   identity.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor identity.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() identity.Actor { return q.actor }
func (q GetOrderQuery) OrderID() kernel.UUID  { return q.orderID }

// GetOrderHistoryQuery reads the status history of one order.
type GetOrderHistoryQuery struct {
	actor   identity.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(actor identity.Actor, orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Actor() identity.Actor { return q.actor }
func (q GetOrderHistoryQuery) OrderID() kernel.UUID  { return q.orderID }
