// Package cart implements the per-user shopping cart that feeds checkout.
package cart

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

const (
	// DefaultQuantity is used when an add request omits the quantity.
	DefaultQuantity = 1
	// MaxQuantity bounds a single line, including the sum of merged adds.
	MaxQuantity = 1000
)

// Line is one package in the cart.
type Line struct {
	packageID kernel.UUID
	quantity  int
}

func NewLine(packageID kernel.UUID, quantity int) (Line, error) {
	if err := packageID.Validate(); err != nil {
		return Line{}, err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return Line{}, err
	}
	return Line{packageID: packageID, quantity: quantity}, nil
}

func (l Line) PackageID() kernel.UUID { return l.packageID }
func (l Line) Quantity() int          { return l.quantity }

// Cart holds at most one line per package. It is created lazily and
// cleared, not deleted, on checkout.
type Cart struct {
	userID    kernel.UUID
	lines     []Line
	updatedAt time.Time

	isConstructed bool
}

func NewCart(userID kernel.UUID, at time.Time) (*Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return &Cart{userID: userID, updatedAt: at.UTC(), isConstructed: true}, nil
}

// RestoreCart rebuilds a cart from persistence. Duplicate package lines are merged.
func RestoreCart(userID kernel.UUID, lines []Line, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(userID, updatedAt)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if err := c.merge(l.packageID, l.quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) UserID() kernel.UUID  { return c.userID }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsEmpty() bool        { return len(c.lines) == 0 }

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Quantity returns the quantity of packageID, or 0 when absent.
func (c *Cart) Quantity(packageID kernel.UUID) int {
	if i := c.indexOf(packageID); i >= 0 {
		return c.lines[i].quantity
	}
	return 0
}

// Add increments an existing line or appends a new one. A merge that would
// push the line past MaxQuantity is rejected and leaves the cart unchanged.
func (c *Cart) Add(packageID kernel.UUID, quantity int, at time.Time) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	if err := c.merge(packageID, quantity); err != nil {
		return err
	}
	c.updatedAt = at.UTC()
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(packageID kernel.UUID, quantity int, at time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	i := c.indexOf(packageID)
	if i < 0 {
		return errs.NewObjectNotFoundError("cart item", packageID.String())
	}

	c.lines[i].quantity = quantity
	c.updatedAt = at.UTC()
	return nil
}

// Remove drops the line for packageID. Removing an absent package is a no-op.
func (c *Cart) Remove(packageID kernel.UUID, at time.Time) {
	if i := c.indexOf(packageID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		c.updatedAt = at.UTC()
	}
}

func (c *Cart) Clear(at time.Time) {
	c.lines = nil
	c.updatedAt = at.UTC()
}

func (c *Cart) merge(packageID kernel.UUID, quantity int) error {
	i := c.indexOf(packageID)
	if i < 0 {
		c.lines = append(c.lines, Line{packageID: packageID, quantity: quantity})
		return nil
	}
	// Both operands are already within 1..MaxQuantity, so the sum cannot overflow.
	sum := c.lines[i].quantity + quantity
	if sum > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", sum, 1, MaxQuantity)
	}
	c.lines[i].quantity = sum
	return nil
}

func (c *Cart) indexOf(packageID kernel.UUID) int {
	for i, l := range c.lines {
		if l.packageID.IsEqual(packageID) {
			return i
		}
	}
	return -1
}

// ValidateQuantity rejects quantities outside 1..MaxQuantity.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 1", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	return nil
}
