package commands

import (
	"errors"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns the actor's cart into a new order.
//
// Example:
//
//	address, _ := kernel.NewAddress("12 Elm St", "Springfield", "IL", "62701", "US")
//	info, _ := order.NewDeliveryInfo(pickupAt, deliverAt, address, "ring twice")
//	cmd, err := NewCheckoutCommand(actor, kernel.NewUUID(), info, order.MethodCashOnDelivery)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	actor    identity.Actor
	orderID  kernel.UUID
	delivery order.DeliveryInfo
	method   order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates the command. An empty method means
// order.DefaultPaymentMethod.
func NewCheckoutCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	delivery order.DeliveryInfo,
	method order.PaymentMethod,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setDelivery(delivery),
		cmd.setMethod(method),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Actor() identity.Actor              { return c.actor }
func (c CheckoutCommand) OrderID() kernel.UUID               { return c.orderID }
func (c CheckoutCommand) Delivery() order.DeliveryInfo       { return c.delivery }
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod { return c.method }

func (c *CheckoutCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setDelivery(delivery order.DeliveryInfo) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	c.delivery = delivery
	return nil
}

func (c *CheckoutCommand) setMethod(method order.PaymentMethod) error {
	if method == "" {
		method = order.DefaultPaymentMethod
	}
	if err := method.Validate(); err != nil {
		return err
	}
	c.method = method
	return nil
}
