// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit
// of work, load and lock the aggregates, apply domain behavior, persist,
// commit, and only then publish order change events.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces narrow the transaction to the repositories a
// handler actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (status changes, cancellation, assignment).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartUoW manages transactions for cart-only operations.
	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// UoW spans every aggregate. Used by checkout, settlement and feedback,
	// which coordinate changes across aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   err = uow.PaymentRepository().Add(ctx, p)
	//   err = uow.OrderRepository().Update(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		PaymentRepoFactory
		FeedbackRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
