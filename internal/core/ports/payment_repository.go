package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// FindActiveByOrder returns the non-failed payment of an order, or nil
	// when there is none.
	FindActiveByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// ListUnpropagated returns successful payments whose order still reports
	// a pending payment status, oldest first.
	ListUnpropagated(ctx context.Context, limit int) ([]*payment.Payment, error)
}
