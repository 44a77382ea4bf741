package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/directoryrepo"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	uow       ports.UnitOfWork
	directory *directoryrepo.GormDirectory
	policy    services.AuthorizationPolicy
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.directory = directoryrepo.NewGormDirectory(database.DB)
	suite.policy = services.NewAuthorizationPolicy()
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.uow = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB).Create()
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

// storeOrder persists an order for owner priced at unit x quantity,
// created at the given instant.
func (suite *QueryHandlersIntegrationTestSuite) storeOrder(owner kernel.UUID, unit string, quantity int, at time.Time) *order.Order {
	address, err := kernel.NewAddress("12 Elm St", "Springfield", "IL", "62701", "US")
	suite.Require().NoError(err)
	info, err := order.NewDeliveryInfo(at.Add(time.Hour), at.Add(24*time.Hour), address, "leave at door")
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), quantity, kernel.MustMoney(unit))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), owner, []order.LineItem{item}, info, "", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) update(o *order.Order) {
	suite.Require().NoError(suite.uow.OrderRepository().Update(context.Background(), o))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_OwnerSeesItemsAndHistory() {
	ctx := context.Background()
	owner := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	o := suite.storeOrder(owner.ID(), "20.00", 2, time.Now())
	suite.Require().NoError(o.Advance(order.Confirmed, owner.ID(), time.Now()))
	suite.update(o)

	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.policy)
	query, err := queries.NewGetOrderQuery(owner, o.ID())
	suite.Require().NoError(err)

	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), view.ID)
	suite.Equal("40.00", view.TotalAmount.String())
	suite.Equal(order.Confirmed, view.Status)
	suite.Equal(order.PaymentPending, view.PaymentStatus)
	suite.Equal("leave at door", view.Instructions)
	suite.Equal("Springfield", view.Address.City)
	suite.Require().Len(view.Items, 1)
	suite.Equal(2, view.Items[0].Quantity)
	suite.Equal("40.00", view.Items[0].LineTotal.String())
	suite.Require().Len(view.History, 2)
	suite.Equal(order.Pending, view.History[0].Status)
	suite.Equal(order.Confirmed, view.History[1].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_Authorization() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	worker := identity.MustActor(kernel.NewUUID(), identity.RoleWorker)
	o := suite.storeOrder(owner, "10.00", 1, time.Now())
	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.policy)

	read := func(actor identity.Actor, id kernel.UUID) error {
		query, err := queries.NewGetOrderQuery(actor, id)
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, query)
		return err
	}

	suite.Require().ErrorIs(read(identity.MustActor(kernel.NewUUID(), identity.RoleUser), o.ID()), errs.ErrForbidden)
	suite.Require().ErrorIs(read(worker, o.ID()), errs.ErrForbidden)
	suite.Require().ErrorIs(read(worker, kernel.NewUUID()), errs.ErrObjectNotFound)
	suite.Require().NoError(read(identity.MustActor(kernel.NewUUID(), identity.RoleManager), o.ID()))

	suite.Require().NoError(o.AssignWorker(worker.ID(), time.Now()))
	suite.update(o)
	suite.Require().NoError(read(worker, o.ID()))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderHistory_ReturnsEntriesOldestFirst() {
	ctx := context.Background()
	owner := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	admin := identity.MustActor(kernel.NewUUID(), identity.RoleAdmin)
	o := suite.storeOrder(owner.ID(), "10.00", 1, time.Now())

	now := time.Now()
	suite.Require().NoError(o.Advance(order.Confirmed, owner.ID(), now))
	suite.Require().NoError(o.Advance(order.PickedUp, admin.ID(), now))
	suite.update(o)

	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.policy)
	query, err := queries.NewGetOrderHistoryQuery(owner, o.ID())
	suite.Require().NoError(err)

	history, err := handler.HandleHistory(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal(order.PickedUp, history[2].Status)
	suite.Equal(admin.ID(), history[2].ActorID)

	stranger, err := queries.NewGetOrderHistoryQuery(identity.MustActor(kernel.NewUUID(), identity.RoleUser), o.ID())
	suite.Require().NoError(err)
	_, err = handler.HandleHistory(ctx, stranger)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_ScopesBeforePaging() {
	ctx := context.Background()
	customer := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	worker := identity.MustActor(kernel.NewUUID(), identity.RoleWorker)
	admin := identity.MustActor(kernel.NewUUID(), identity.RoleAdmin)

	base := time.Now().Add(-time.Hour)
	var own []*order.Order
	for i := range 3 {
		own = append(own, suite.storeOrder(customer.ID(), "10.00", i+1, base.Add(time.Duration(i)*time.Minute)))
	}
	others := suite.storeOrder(kernel.NewUUID(), "99.00", 1, base.Add(10*time.Minute))
	suite.Require().NoError(others.AssignWorker(worker.ID(), time.Now()))
	suite.update(others)

	handler := queries.NewListOrdersQueryHandler(suite.database.DB, suite.policy)
	list := func(actor identity.Actor, status, sort string, page, limit int) queries.ListOrdersQueryResponse {
		query, err := queries.NewListOrdersQuery(actor, status, sort, page, limit)
		suite.Require().NoError(err)
		resp, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		return resp
	}

	mine := list(customer, "", "", 1, 2)
	suite.Equal(int64(3), mine.Pagination.Total)
	suite.Equal(2, mine.Pagination.Pages)
	suite.Require().NotNil(mine.Pagination.NextPage)
	suite.Nil(mine.Pagination.PrevPage)
	suite.Require().Len(mine.Orders, 2)
	suite.Equal(own[2].ID(), mine.Orders[0].ID)
	suite.Equal(own[1].ID(), mine.Orders[1].ID)

	second := list(customer, "", "", 2, 2)
	suite.Require().Len(second.Orders, 1)
	suite.Equal(own[0].ID(), second.Orders[0].ID)
	suite.Nil(second.Pagination.NextPage)

	assigned := list(worker, "", "", 0, 0)
	suite.Require().Len(assigned.Orders, 1)
	suite.Equal(others.ID(), assigned.Orders[0].ID)

	all := list(admin, "", "-totalAmount", 0, 0)
	suite.Equal(int64(4), all.Pagination.Total)
	suite.Equal("99.00", all.Orders[0].TotalAmount.String())
	suite.Equal("10.00", all.Orders[3].TotalAmount.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_StatusFilterAppliesToCount() {
	ctx := context.Background()
	customer := identity.MustActor(kernel.NewUUID(), identity.RoleUser)

	confirmed := suite.storeOrder(customer.ID(), "10.00", 1, time.Now())
	suite.Require().NoError(confirmed.Advance(order.Confirmed, customer.ID(), time.Now()))
	suite.update(confirmed)
	suite.storeOrder(customer.ID(), "10.00", 1, time.Now())
	suite.storeOrder(customer.ID(), "10.00", 1, time.Now())

	handler := queries.NewListOrdersQueryHandler(suite.database.DB, suite.policy)
	query, err := queries.NewListOrdersQuery(customer, "confirmed", "createdAt", 1, 1)
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(1), resp.Pagination.Total)
	suite.Nil(resp.Pagination.NextPage)
	suite.Require().Len(resp.Orders, 1)
	suite.Equal(confirmed.ID(), resp.Orders[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetPaymentByOrder() {
	ctx := context.Background()
	owner := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	o := suite.storeOrder(owner.ID(), "25.00", 1, time.Now())
	handler := queries.NewGetPaymentByOrderQueryHandler(suite.database.DB, suite.policy)

	get := func(actor identity.Actor) (queries.PaymentView, error) {
		query, err := queries.NewGetPaymentByOrderQuery(actor, o.ID())
		suite.Require().NoError(err)
		return handler.Handle(ctx, query)
	}

	_, err := get(owner)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	now := time.Now()
	failed, err := payment.RestorePayment(kernel.NewUUID(), o.ID(), owner.ID(), o.Total(), order.MethodCreditCard,
		payment.StatusFailed, "", "stripe", payment.CardDetails{}, now.Add(time.Minute), now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.PaymentRepository().Add(ctx, failed))

	cod, err := payment.NewCashOnDeliveryPayment(kernel.NewUUID(), o, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.PaymentRepository().Add(ctx, cod))

	view, err := get(owner)
	suite.Require().NoError(err)
	suite.Equal(cod.ID(), view.ID)
	suite.Equal(payment.StatusPending, view.Status)
	suite.Equal(order.MethodCashOnDelivery, view.Method)
	suite.Equal("25.00", view.Amount.String())

	_, err = get(identity.MustActor(kernel.NewUUID(), identity.RoleManager))
	suite.Require().NoError(err)

	_, err = get(identity.MustActor(kernel.NewUUID(), identity.RoleWorker))
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_PricesLinesAtReadTime() {
	ctx := context.Background()
	actor := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	handler := queries.NewGetCartQueryHandler(suite.uow.CartRepository(), suite.directory, time.Second)

	query, err := queries.NewGetCartQuery(actor)
	suite.Require().NoError(err)

	empty, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(empty.Items)
	suite.Equal("0.00", empty.TotalAmount.String())

	shirts, retired := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.directory.SavePackage(ctx, shirts, "Shirts", kernel.MustMoney("4.50"), true))
	suite.Require().NoError(suite.directory.SavePackage(ctx, retired, "Retired", kernel.MustMoney("9.00"), false))

	c, err := suite.uow.CartRepository().GetOrCreate(ctx, actor.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(c.Add(shirts, 3, time.Now()))
	suite.Require().NoError(c.Add(retired, 1, time.Now()))
	suite.Require().NoError(suite.uow.CartRepository().Save(ctx, c))

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 2)
	suite.True(resp.Items[0].Available)
	suite.Equal("Shirts", resp.Items[0].Name)
	suite.Equal("13.50", resp.Items[0].LineTotal.String())
	suite.False(resp.Items[1].Available)
	suite.Equal("13.50", resp.TotalAmount.String())

	suite.Require().NoError(suite.directory.SavePackage(ctx, shirts, "Shirts", kernel.MustMoney("5.00"), true))
	repriced, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("15.00", repriced.TotalAmount.String())
}

func (suite *QueryHandlersIntegrationTestSuite) storeFeedback(author kernel.UUID, o *order.Order, at time.Time) *feedback.Feedback {
	content, err := feedback.NewContent(4, "good job", nil, nil, nil, nil)
	suite.Require().NoError(err)
	f, err := feedback.RestoreFeedback(kernel.NewUUID(), author, o.ID(), content, nil, at, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.FeedbackRepository().Add(context.Background(), f))
	return f
}

func (suite *QueryHandlersIntegrationTestSuite) TestFeedbackQueries() {
	ctx := context.Background()
	author := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	admin := identity.MustActor(kernel.NewUUID(), identity.RoleAdmin)
	stranger := identity.MustActor(kernel.NewUUID(), identity.RoleUser)
	handler := queries.NewFeedbackQueryHandler(suite.database.DB, suite.policy)

	base := time.Now().Add(-time.Hour)
	first := suite.storeFeedback(author.ID(), suite.storeOrder(author.ID(), "12.00", 1, base), base)
	second := suite.storeFeedback(author.ID(), suite.storeOrder(author.ID(), "8.00", 1, base), base.Add(time.Minute))
	suite.storeFeedback(stranger.ID(), suite.storeOrder(stranger.ID(), "8.00", 1, base), base.Add(2*time.Minute))

	suite.Require().NoError(first.Respond("thanks!", admin.ID(), time.Now()))
	suite.Require().NoError(suite.uow.FeedbackRepository().Update(ctx, first))

	getQuery, err := queries.NewGetFeedbackQuery(author, first.ID())
	suite.Require().NoError(err)
	view, err := handler.HandleGet(ctx, getQuery)
	suite.Require().NoError(err)
	suite.Equal(4, view.Rating)
	suite.True(view.IsPublic)
	suite.Equal("12.00", view.OrderTotal.String())
	suite.Equal(order.Pending, view.OrderStatus)
	suite.Require().NotNil(view.Response)
	suite.Equal("thanks!", view.Response.Comment)
	suite.Equal(admin.ID(), view.Response.RespondedBy)

	strangerGet, err := queries.NewGetFeedbackQuery(stranger, first.ID())
	suite.Require().NoError(err)
	_, err = handler.HandleGet(ctx, strangerGet)
	suite.Require().ErrorIs(err, errs.ErrForbidden)

	missing, err := queries.NewGetFeedbackQuery(admin, kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.HandleGet(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	mineQuery, err := queries.NewListMyFeedbackQuery(author, 0, 0)
	suite.Require().NoError(err)
	mine, err := handler.HandleList(ctx, mineQuery)
	suite.Require().NoError(err)
	suite.Equal(int64(2), mine.Pagination.Total)
	suite.Require().Len(mine.Feedback, 2)
	suite.Equal(second.ID(), mine.Feedback[0].ID)

	allQuery, err := queries.NewListAllFeedbackQuery(admin, 0, 0)
	suite.Require().NoError(err)
	all, err := handler.HandleList(ctx, allQuery)
	suite.Require().NoError(err)
	suite.Equal(int64(3), all.Pagination.Total)

	notAdmin, err := queries.NewListAllFeedbackQuery(author, 0, 0)
	suite.Require().NoError(err)
	_, err = handler.HandleList(ctx, notAdmin)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
