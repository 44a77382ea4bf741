// Package cartrepo persists the per-user cart.
package cartrepo

import (
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO is keyed by user: every user has at most one cart.
type CartDTO struct {
	UserID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UpdatedAt time.Time     `gorm:"not null"`
	Lines     []CartLineDTO `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartLineDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

func (CartLineDTO) TableName() string {
	return "cart_items"
}

func linesFromDomain(c *cart.Cart) []CartLineDTO {
	userID := c.UserID().Bytes()
	lines := make([]CartLineDTO, 0, len(c.Lines()))
	for i, l := range c.Lines() {
		lines = append(lines, CartLineDTO{
			UserID:    userID,
			PackageID: l.PackageID().Bytes(),
			Position:  i,
			Quantity:  l.Quantity(),
		})
	}
	return lines
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		packageID, idErr := kernel.UUIDFromBytes(l.PackageID[:])
		if idErr != nil {
			return nil, idErr
		}
		line, lineErr := cart.NewLine(packageID, l.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(userID, lines, dto.UpdatedAt)
}
