package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand charges the order total to a card.
//
// Example:
//
//	cmd, err := NewPayOrderCommand(owner, orderID, kernel.NewUUID(), order.MethodCreditCard, "tok_visa")
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	// res.Payment.Status() == payment.StatusSuccessful, res.Order.PaymentStatus() == order.PaymentPaid
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	actor     identity.Actor
	orderID   kernel.UUID
	paymentID kernel.UUID
	method    order.PaymentMethod
	token     string

	guard guard.ConstructorGuard
}

// NewPayOrderCommand creates the command. An empty method means the
// order's own card method, or credit-card if the order was placed for
// another method.
func NewPayOrderCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	paymentID kernel.UUID,
	method order.PaymentMethod,
	token string,
) (PayOrderCommand, error) {
	cmd := PayOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		paymentID.Validate(),
		cmd.setMethod(method),
		cmd.setToken(token),
	); err != nil {
		return PayOrderCommand{}, err
	}

	cmd.actor = actor
	cmd.orderID = orderID
	cmd.paymentID = paymentID
	return cmd, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) Actor() identity.Actor       { return c.actor }
func (c PayOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c PayOrderCommand) PaymentID() kernel.UUID      { return c.paymentID }
func (c PayOrderCommand) Method() order.PaymentMethod { return c.method }
func (c PayOrderCommand) Token() string               { return c.token }

func (c *PayOrderCommand) setMethod(method order.PaymentMethod) error {
	if method == "" {
		return nil
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if !method.IsCard() {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%s is not a card method", method))
	}
	c.method = method
	return nil
}

func (c *PayOrderCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("payment token")
	}
	c.token = token
	return nil
}
