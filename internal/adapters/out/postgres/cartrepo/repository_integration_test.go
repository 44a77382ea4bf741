package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/cartrepo"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/kernel"
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

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = cartrepo.NewGormCartRepository(suite.database.DB, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetOrCreate_CreatesEmptyCartOnce() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	first, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	suite.True(first.IsEmpty())

	second, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	suite.Equal(userID, second.UserID())

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&cartrepo.CartDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ReplacesLinesInOrder() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	shirts, towels := kernel.NewUUID(), kernel.NewUUID()

	c, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(c.Add(shirts, 2, time.Now()))
	suite.Require().NoError(c.Add(towels, 1, time.Now()))
	suite.Require().NoError(suite.repository.Save(ctx, c))

	got, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	lines := got.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal(shirts, lines[0].PackageID())
	suite.Equal(2, lines[0].Quantity())
	suite.Equal(towels, lines[1].PackageID())

	got.Remove(shirts, time.Now())
	suite.Require().NoError(suite.repository.Save(ctx, got))

	again, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	suite.Require().Len(again.Lines(), 1)
	suite.Equal(0, again.Quantity(shirts))
	suite.Equal(1, again.Quantity(towels))

	again.Clear(time.Now())
	suite.Require().NoError(suite.repository.Save(ctx, again))

	cleared, err := suite.repository.GetOrCreate(ctx, userID, time.Now())
	suite.Require().NoError(err)
	suite.True(cleared.IsEmpty())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_UnknownCart_ReturnsNotFound() {
	ctx := context.Background()
	other := cartrepo.NewGormCartRepository(suite.database.DB, suite.tracker)

	c, err := other.GetOrCreate(ctx, kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.database.Truncate())

	err = suite.repository.Save(ctx, c)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
