package commands

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrRequestCashOnDeliveryCommandIsNotConstructed = errors.New(
		"RequestCashOnDeliveryCommand must be created via NewRequestCashOnDeliveryCommand constructor",
	)
	ErrSettleCashOnDeliveryCommandIsNotConstructed = errors.New(
		"SettleCashOnDeliveryCommand must be created via NewSettleCashOnDeliveryCommand constructor",
	)
)

// RequestCashOnDeliveryCommand defers settlement of an order to delivery.
type RequestCashOnDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	orderID   kernel.UUID
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestCashOnDeliveryCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	paymentID kernel.UUID,
) (RequestCashOnDeliveryCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), paymentID.Validate()); err != nil {
		return RequestCashOnDeliveryCommand{}, err
	}

	return RequestCashOnDeliveryCommand{
		actor:     actor,
		orderID:   orderID,
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RequestCashOnDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRequestCashOnDeliveryCommandIsNotConstructed)
}

func (c RequestCashOnDeliveryCommand) Actor() identity.Actor  { return c.actor }
func (c RequestCashOnDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c RequestCashOnDeliveryCommand) PaymentID() kernel.UUID { return c.paymentID }

// SettleCashOnDeliveryCommand records that the cash was collected.
type SettleCashOnDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSettleCashOnDeliveryCommand(actor identity.Actor, paymentID kernel.UUID) (SettleCashOnDeliveryCommand, error) {
	if err := errors.Join(actor.Validate(), paymentID.Validate()); err != nil {
		return SettleCashOnDeliveryCommand{}, err
	}

	return SettleCashOnDeliveryCommand{
		actor:     actor,
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SettleCashOnDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSettleCashOnDeliveryCommandIsNotConstructed)
}

func (c SettleCashOnDeliveryCommand) Actor() identity.Actor  { return c.actor }
func (c SettleCashOnDeliveryCommand) PaymentID() kernel.UUID { return c.paymentID }
