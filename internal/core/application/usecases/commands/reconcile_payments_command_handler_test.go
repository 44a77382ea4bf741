package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewReconcilePaymentsCommand(t *testing.T) {
	cmd, err := commands.NewReconcilePaymentsCommand(0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultReconcileBatchSize, cmd.BatchSize())

	_, err = commands.NewReconcilePaymentsCommand(-1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestReconcilePaymentsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	owner := newActor(identity.RoleUser)

	// A successful card payment whose order update was lost.
	o := newOrder(t, owner.ID(), order.Pending)
	p, err := payment.NewCardPayment(kernel.NewUUID(), o, order.MethodCreditCard, "ch_9", "stripe", payment.CardDetails{}, time.Now())
	require.NoError(t, err)

	f := newPaymentFixture()
	publisher := new(MockPublisher)
	mock.InOrder(
		f.payments.On("ListUnpropagated", ctx, 10).Return([]*payment.Payment{p}, nil).Once(),
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
	)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []ports.OrderChanged) bool {
		return len(events) == 1 && events[0].OrderID == o.ID() && events[0].ActorID == owner.ID()
	})).Return(nil).Once()

	cmd, err := commands.NewReconcilePaymentsCommand(10)
	require.NoError(t, err)

	h := commands.NewReconcilePaymentsCommandHandler(f.factory, publisher)
	n, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	assert.Equal(t, order.Confirmed, o.Status())
	require.NotNil(t, o.PaymentID())
	assert.Equal(t, p.ID(), *o.PaymentID())
	f.uow.AssertCalled(t, "Commit", ctx)
	publisher.AssertExpectations(t)
}

func TestReconcilePaymentsCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()

	f := newPaymentFixture()
	f.payments.On("ListUnpropagated", ctx, commands.DefaultReconcileBatchSize).Return(nil, nil).Once()
	publisher := new(MockPublisher)

	cmd, _ := commands.NewReconcilePaymentsCommand(0)
	h := commands.NewReconcilePaymentsCommandHandler(f.factory, publisher)
	n, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
