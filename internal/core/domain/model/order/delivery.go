package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrDeliveryInfoIsNotConstructed = errors.New("DeliveryInfo must be created via NewDeliveryInfo constructor")

// maxInstructionsLength bounds free-text delivery instructions.
const maxInstructionsLength = 500

// DeliveryInfo is what the customer supplies at checkout besides the cart.
type DeliveryInfo struct { //nolint:recvcheck //using for validation
	pickupAt     time.Time
	deliverAt    time.Time
	address      kernel.Address
	instructions string
	guard        guard.ConstructorGuard
}

func NewDeliveryInfo(pickupAt, deliverAt time.Time, address kernel.Address, instructions string) (DeliveryInfo, error) {
	info := DeliveryInfo{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		info.setDates(pickupAt, deliverAt),
		info.setAddress(address),
		info.setInstructions(instructions),
	); err != nil {
		return DeliveryInfo{}, err
	}

	return info, nil
}

func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

func (d DeliveryInfo) PickupAt() time.Time     { return d.pickupAt }
func (d DeliveryInfo) DeliverAt() time.Time    { return d.deliverAt }
func (d DeliveryInfo) Address() kernel.Address { return d.address }
func (d DeliveryInfo) Instructions() string    { return d.instructions }

func (d *DeliveryInfo) setDates(pickupAt, deliverAt time.Time) error {
	if pickupAt.IsZero() {
		return errs.NewValueIsRequiredError("pickupDate")
	}
	if deliverAt.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	if deliverAt.Before(pickupAt) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryDate is invalid", errors.New("delivery cannot precede pickup"))
	}
	d.pickupAt = pickupAt.UTC()
	d.deliverAt = deliverAt.UTC()
	return nil
}

func (d *DeliveryInfo) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	d.address = address
	return nil
}

func (d *DeliveryInfo) setInstructions(instructions string) error {
	instructions = strings.TrimSpace(instructions)
	if len(instructions) > maxInstructionsLength {
		return errs.NewValueIsOutOfRangeError("deliveryInstructions length", len(instructions), 0, maxInstructionsLength)
	}
	d.instructions = instructions
	return nil
}

// String is used in log lines only.
func (d DeliveryInfo) String() string {
	return fmt.Sprintf("pickup %s, deliver %s, %s", d.pickupAt.Format(time.DateOnly), d.deliverAt.Format(time.DateOnly), d.address.City())
}
