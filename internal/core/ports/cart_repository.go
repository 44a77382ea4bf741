package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/kernel"
)

// CartRepository persists the single cart of each user.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one on first access.
	GetOrCreate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error)

	// GetOrCreateForUpdate is GetOrCreate with the cart row locked until the
	// transaction ends. Concurrent mutations of one cart serialize here.
	GetOrCreateForUpdate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error)

	// Save replaces the stored lines with the cart's lines.
	Save(ctx context.Context, aggregate *cart.Cart) error
}
