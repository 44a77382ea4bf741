package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	address, err := kernel.NewAddress("12 Elm St", "Springfield", "IL", "62701", "US")
	suite.Require().NoError(err)
	now := time.Now().Truncate(time.Microsecond)
	info, err := order.NewDeliveryInfo(now.Add(time.Hour), now.Add(48*time.Hour), address, "ring twice")
	suite.Require().NoError(err)

	shirts, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney("20.00"))
	suite.Require().NoError(err)
	duvet, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.MustMoney("15.50"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{shirts, duvet}, info, "", now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAggregate() {
	ctx := context.Background()
	original := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, original))
	suite.Equal(1, original.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), got.ID())
	suite.Equal(original.UserID(), got.UserID())
	suite.Equal("55.50", got.Total().String())
	suite.Equal(order.Pending, got.Status())
	suite.Equal(order.PaymentPending, got.PaymentStatus())
	suite.Equal(order.MethodCreditCard, got.PaymentMethod())
	suite.Nil(got.AssignedWorker())
	suite.Equal(1, got.Version())

	items := got.Items()
	suite.Require().Len(items, 2)
	suite.Equal(original.Items()[0].PackageID(), items[0].PackageID())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("15.50", items[1].UnitPrice().String())

	suite.Equal("ring twice", got.Delivery().Instructions())
	suite.Equal("Springfield", got.Delivery().Address().City())
	suite.Require().Len(got.History(), 1)
	suite.Equal(order.Pending, got.History()[0].Status())
	suite.Empty(got.UnsavedHistory())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	worker := kernel.NewUUID()
	now := time.Now()
	suite.Require().NoError(o.Advance(order.Confirmed, o.UserID(), now))
	suite.Require().NoError(o.Advance(order.PickedUp, worker, now))
	suite.Require().NoError(o.AssignWorker(worker, now))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(2, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.PickedUp, got.Status())
	suite.Require().NotNil(got.AssignedWorker())
	suite.Equal(worker, *got.AssignedWorker())

	history := got.History()
	suite.Require().Len(history, 3)
	suite.Equal([]order.Status{order.Pending, order.Confirmed, order.PickedUp},
		[]order.Status{history[0].Status(), history[1].Status(), history[2].Status()})
	suite.Equal(worker, history[2].ActorID())

	var itemCount int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderItemDTO{}).Where("order_id = ?", o.ID().Bytes()).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Advance(order.Confirmed, first.UserID(), time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel(second.UserID(), time.Now()))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Equal(errs.KindConflict, errs.KindOf(err))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
	suite.Len(got.History(), 2)
}

// Two transactions advancing the same order serialize on the row lock;
// the loser re-reads the committed state and its transition is rejected.
func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentWriters() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.database.DB.Transaction(func(tx *gorm.DB) error {
				repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
				locked, err := repo.GetForUpdate(ctx, o.ID())
				if err != nil {
					return err
				}
				time.Sleep(50 * time.Millisecond)
				if err = locked.Advance(order.Confirmed, locked.UserID(), time.Now()); err != nil {
					return err
				}
				return repo.Update(ctx, locked)
			})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.KindOf(err) == errs.KindInvalidTransition:
			rejected++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, rejected)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(got.History(), 2)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
