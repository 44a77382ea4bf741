package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained
// after Begin share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if there is no active transaction.
	Commit(ctx context.Context) error

	// Rollback returns an error if there is no active transaction.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CartRepository() CartRepository
	PaymentRepository() PaymentRepository
	FeedbackRepository() FeedbackRepository
}
