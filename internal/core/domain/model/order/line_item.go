package order

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a frozen copy of one cart line: the unit price is the catalog
// price at checkout and is never re-read afterwards.
type LineItem struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

func NewLineItem(packageID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setPackageID(packageID),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) PackageID() kernel.UUID  { return i.packageID }
func (i LineItem) Quantity() int           { return i.quantity }
func (i LineItem) UnitPrice() kernel.Money { return i.unitPrice }

func (i LineItem) LineTotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

func (i *LineItem) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.packageID = id
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
