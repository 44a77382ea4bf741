package paymentrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/paymentrepo"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PaymentRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *paymentrepo.GormPaymentRepository
	orders     *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = paymentrepo.NewGormPaymentRepository(suite.database.DB, suite.tracker)
	suite.orders = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *PaymentRepositoryIntegrationTestSuite) storedOrder() *order.Order {
	address, err := kernel.NewAddress("12 Elm St", "Springfield", "IL", "62701", "US")
	suite.Require().NoError(err)
	now := time.Now()
	info, err := order.NewDeliveryInfo(now.Add(time.Hour), now.Add(24*time.Hour), address, "")
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney("20.00"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, info, "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *PaymentRepositoryIntegrationTestSuite) cardPayment(o *order.Order, at time.Time) *payment.Payment {
	p, err := payment.NewCardPayment(kernel.NewUUID(), o, order.MethodCreditCard, "ch_"+o.ID().String(), "stripe",
		payment.CardDetails{Last4: "4242", Brand: "visa", ExpiryMonth: "12", ExpiryYear: "2030"}, at)
	suite.Require().NoError(err)
	return p
}

func (suite *PaymentRepositoryIntegrationTestSuite) failedPayment(o *order.Order) *payment.Payment {
	now := time.Now()
	p, err := payment.RestorePayment(kernel.NewUUID(), o.ID(), o.UserID(), o.Total(), order.MethodCreditCard,
		payment.StatusFailed, "", "stripe", payment.CardDetails{}, now, now)
	suite.Require().NoError(err)
	return p
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsPayment() {
	ctx := context.Background()
	o := suite.storedOrder()
	original := suite.cardPayment(o, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, original))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.OrderID())
	suite.Equal(o.UserID(), got.UserID())
	suite.Equal("40.00", got.Amount().String())
	suite.Equal(order.MethodCreditCard, got.Method())
	suite.Equal(payment.StatusSuccessful, got.Status())
	suite.Equal("stripe", got.Gateway())
	suite.Equal("4242", got.Details().Last4)
	suite.Equal("2030", got.Details().ExpiryYear)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_SecondActivePayment_ReturnsConflict() {
	ctx := context.Background()
	o := suite.storedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, suite.cardPayment(o, time.Now())))

	cod, err := payment.NewCashOnDeliveryPayment(kernel.NewUUID(), o, time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, cod)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_FailedAttemptsDoNotBlockNewPayment() {
	ctx := context.Background()
	o := suite.storedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, suite.failedPayment(o)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.failedPayment(o)))

	active, err := suite.repository.FindActiveByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(active)

	suite.Require().NoError(suite.repository.Add(ctx, suite.cardPayment(o, time.Now())))

	active, err = suite.repository.FindActiveByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.Equal(payment.StatusSuccessful, active.Status())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestUpdate_SettlesCash() {
	ctx := context.Background()
	o := suite.storedOrder()
	cod, err := payment.NewCashOnDeliveryPayment(kernel.NewUUID(), o, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, cod))

	locked, err := suite.repository.GetForUpdate(ctx, cod.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.SettleCash(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, locked))

	got, err := suite.repository.Get(ctx, cod.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatusSuccessful, got.Status())
	suite.Equal(payment.CashGateway, got.Gateway())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	o := suite.storedOrder()

	err := suite.repository.Update(context.Background(), suite.cardPayment(o, time.Now()))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestListUnpropagated_ReturnsSuccessfulPaymentsOfPendingOrders() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	// Paid order: payment already propagated.
	paid := suite.storedOrder()
	paidPayment := suite.cardPayment(paid, base)
	suite.Require().NoError(suite.repository.Add(ctx, paidPayment))
	suite.Require().NoError(paid.MarkPaid(paidPayment.ID(), paid.UserID(), time.Now()))
	suite.Require().NoError(suite.orders.Update(ctx, paid))

	// Pending cash payment: not successful yet.
	cashOrder := suite.storedOrder()
	cod, err := payment.NewCashOnDeliveryPayment(kernel.NewUUID(), cashOrder, base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, cod))

	older := suite.storedOrder()
	olderPayment := suite.cardPayment(older, base.Add(time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, olderPayment))

	newer := suite.storedOrder()
	newerPayment := suite.cardPayment(newer, base.Add(2*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, newerPayment))

	got, err := suite.repository.ListUnpropagated(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(olderPayment.ID(), got[0].ID())
	suite.Equal(newerPayment.ID(), got[1].ID())

	limited, err := suite.repository.ListUnpropagated(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.Equal(olderPayment.ID(), limited[0].ID())
}

func TestPaymentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(PaymentRepositoryIntegrationTestSuite))
}
