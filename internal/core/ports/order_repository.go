// Package ports defines the contracts between the laundry core and its
// infrastructure: repositories, the unit of work, and external collaborators.
package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Line items are written once with the order; status history is insert-only.
type OrderRepository interface {
	// Add persists a new order with its line items and initial history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, assignment and payment fields and appends
	// unsaved history entries. The write only succeeds if the stored
	// version equals aggregate.Version(); otherwise errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and history.
	// Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
