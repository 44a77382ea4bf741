package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/pkg/guard"
)

var ErrGetPaymentByOrderQueryIsNotConstructed = errors.New(
	"GetPaymentByOrderQuery must be created via NewGetPaymentByOrderQuery constructor",
)

type GetPaymentByOrderQuery struct {
	actor   identity.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPaymentByOrderQuery(actor identity.Actor, orderID kernel.UUID) (GetPaymentByOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetPaymentByOrderQuery{}, err
	}
	return GetPaymentByOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPaymentByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentByOrderQueryIsNotConstructed)
}

func (q GetPaymentByOrderQuery) Actor() identity.Actor { return q.actor }
func (q GetPaymentByOrderQuery) OrderID() kernel.UUID  { return q.orderID }

type PaymentView struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	UserID      kernel.UUID
	Amount      kernel.Money
	Method      order.PaymentMethod
	Status      payment.Status
	Reference   string
	Gateway     string
	CardLast4   string
	CardBrand   string
	ExpiryMonth string
	ExpiryYear  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
