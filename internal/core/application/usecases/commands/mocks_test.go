package commands_test

import (
	"context"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetOrCreate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error) {
	args := m.Called(ctx, userID, at)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) GetOrCreateForUpdate(ctx context.Context, userID kernel.UUID, at time.Time) (*cart.Cart, error) {
	args := m.Called(ctx, userID, at)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

func (m *MockPaymentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

func (m *MockPaymentRepository) FindActiveByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

func (m *MockPaymentRepository) ListUnpropagated(ctx context.Context, limit int) ([]*payment.Payment, error) {
	args := m.Called(ctx, limit)
	p, _ := args.Get(0).([]*payment.Payment)
	return p, args.Error(1)
}

type MockFeedbackRepository struct{ mock.Mock }

func (m *MockFeedbackRepository) Add(ctx context.Context, f *feedback.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, f *feedback.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFeedbackRepository) Get(ctx context.Context, id kernel.UUID) (*feedback.Feedback, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*feedback.Feedback)
	return f, args.Error(1)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFeedbackRepository) ExistsForOrder(ctx context.Context, userID, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work shape used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.Called().Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) FeedbackRepository() ports.FeedbackRepository {
	return m.Called().Get(0).(ports.FeedbackRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	return m.Called().Get(0).(commands.CartUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ResolvePackage(ctx context.Context, id kernel.UUID) (ports.Package, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(ports.Package)
	return p, args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) ResolveUser(ctx context.Context, id kernel.UUID) (identity.Role, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(identity.Role)
	return r, args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.ChargeResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(ports.ChargeResult)
	return r, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...ports.OrderChanged) error {
	return m.Called(ctx, events).Error(0)
}
