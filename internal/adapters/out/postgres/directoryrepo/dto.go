// Package directoryrepo reads the user directory and the service package
// catalog owned by the surrounding account and catalog modules.
package directoryrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255)"`
	Email string    `gorm:"type:varchar(255);uniqueIndex"`
	Role  string    `gorm:"type:varchar(16);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

// PackageDTO is a catalog entry. Inactive packages cannot be ordered.
type PackageDTO struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name   string          `gorm:"type:varchar(255);not null"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Active bool            `gorm:"not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}
