package ports

import (
	"context"

	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/kernel"
)

// FeedbackRepository persists feedback. At most one feedback exists per
// (user, order); Add reports a duplicate as errs.ErrConflict.
type FeedbackRepository interface {
	Add(ctx context.Context, aggregate *feedback.Feedback) error
	Update(ctx context.Context, aggregate *feedback.Feedback) error
	Get(ctx context.Context, id kernel.UUID) (*feedback.Feedback, error)
	Delete(ctx context.Context, id kernel.UUID) error

	// ExistsForOrder reports whether userID already rated orderID.
	ExistsForOrder(ctx context.Context, userID, orderID kernel.UUID) (bool, error)
}
