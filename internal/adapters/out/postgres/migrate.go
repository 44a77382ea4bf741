package postgres

import (
	"fmt"

	"laundry/internal/adapters/out/postgres/cartrepo"
	"laundry/internal/adapters/out/postgres/directoryrepo"
	"laundry/internal/adapters/out/postgres/feedbackrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/paymentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns or reads.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&directoryrepo.UserDTO{},
		&directoryrepo.PackageDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryEntryDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
		&paymentrepo.PaymentDTO{},
		&feedbackrepo.FeedbackDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
