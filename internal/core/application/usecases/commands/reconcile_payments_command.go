package commands

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// DefaultReconcileBatchSize is how many payments one reconciliation pass
// examines.
const DefaultReconcileBatchSize = 100

var ErrReconcilePaymentsCommandIsNotConstructed = errors.New(
	"ReconcilePaymentsCommand must be created via NewReconcilePaymentsCommand constructor",
)

// ReconcilePaymentsCommand re-applies paid to orders whose successful
// payment was stored without the order update that should follow it.
type ReconcilePaymentsCommand struct { //nolint:recvcheck //using for validation
	batchSize int
	guard     guard.ConstructorGuard
}

func NewReconcilePaymentsCommand(batchSize int) (ReconcilePaymentsCommand, error) {
	if batchSize == 0 {
		batchSize = DefaultReconcileBatchSize
	}
	if batchSize < 0 {
		return ReconcilePaymentsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size is invalid", fmt.Errorf("%d is negative", batchSize),
		)
	}
	return ReconcilePaymentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcilePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentsCommandIsNotConstructed)
}

func (c ReconcilePaymentsCommand) BatchSize() int { return c.batchSize }
