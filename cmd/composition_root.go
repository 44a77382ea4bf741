package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/gateway"
	"laundry/internal/adapters/out/kafka"
	"laundry/internal/adapters/out/lookup"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/directoryrepo"
	"laundry/internal/adapters/out/redis"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"
	"laundry/internal/pkg/retry"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.AuthorizationPolicy

	directory ports.UserDirectory
	catalog   ports.PackageCatalog
	pricing   ports.PackageCatalog
	gateway   ports.CardGateway
	events    ports.OrderEventPublisher
	closers   []func() error

	lookupTimeout     time.Duration
	chargeTimeout     time.Duration
	reconcileSchedule string
	logger            *slog.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which
// case cart lookups go straight to the database. Checkout always does.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *goredis.Client, logger *slog.Logger) (*CompositionRoot, error) {
	lookupTimeout, err := cfg.Lookup()
	if err != nil {
		return nil, err
	}
	chargeTimeout, err := cfg.ChargeTimeout()
	if err != nil {
		return nil, err
	}
	cacheTTL, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:            services.NewAuthorizationPolicy(),
		lookupTimeout:     lookupTimeout,
		chargeTimeout:     chargeTimeout,
		reconcileSchedule: cfg.ReconcileSchedule,
		logger:            logger,
	}

	db := directoryrepo.NewGormDirectory(gormDB)
	c.directory = lookup.NewRetryingDirectory(db, retry.DefaultPolicy(), logger)

	// Checkout prices from the database so an order never carries a cached price.
	c.pricing = lookup.NewRetryingCatalog(db, retry.DefaultPolicy(), logger)
	c.catalog = c.pricing
	if redisClient != nil {
		cache := redis.NewCatalogCache(redisClient, db, cacheTTL, logger)
		c.catalog = lookup.NewRetryingCatalog(cache, retry.DefaultPolicy(), logger)
	}

	cardGateway, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.GatewayURL,
		APIKey:  cfg.GatewayAPIKey,
		Timeout: chargeTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("card gateway: %w", err)
	}
	c.gateway = cardGateway

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher, err := kafka.NewOrderPublisher(brokers, cfg.OrderChangedTopic(), logger)
		if err != nil {
			return nil, fmt.Errorf("order publisher: %w", err)
		}
		c.events = publisher
		c.closers = append(c.closers, publisher.Close)
	} else {
		logger.Warn("KAFKA_HOST is not set, order change events are only logged")
		c.events = kafka.NewLogPublisher(logger)
	}

	return c, nil
}

// Close releases the adapters that hold connections.
func (c *CompositionRoot) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Error("close adapter", "error", err)
		}
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateAddToCartCommandHandler() commands.AddToCartCommandHandler {
	return commands.NewAddToCartCommandHandler(c.cartUoWFactory(), c.catalog, c.lookupTimeout)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveFromCartCommandHandler() commands.RemoveFromCartCommandHandler {
	return commands.NewRemoveFromCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.fullUoWFactory(), c.pricing, c.events, c.lookupTimeout)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory(), c.policy, c.events)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.policy, c.events)
}

func (c *CompositionRoot) CreateAssignStaffCommandHandler() commands.AssignStaffCommandHandler {
	return commands.NewAssignStaffCommandHandler(c.orderUoWFactory(), c.policy, c.directory, c.events, c.lookupTimeout)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.fullUoWFactory(), c.policy, c.gateway, c.events, c.chargeTimeout)
}

func (c *CompositionRoot) CreateRequestCashOnDeliveryCommandHandler() commands.RequestCashOnDeliveryCommandHandler {
	return commands.NewRequestCashOnDeliveryCommandHandler(c.fullUoWFactory(), c.policy, c.events)
}

func (c *CompositionRoot) CreateSettleCashOnDeliveryCommandHandler() commands.SettleCashOnDeliveryCommandHandler {
	return commands.NewSettleCashOnDeliveryCommandHandler(c.fullUoWFactory(), c.policy, c.events)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	return commands.NewSubmitFeedbackCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateManageFeedbackCommandHandler() commands.ManageFeedbackCommandHandler {
	return commands.NewManageFeedbackCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateReconcilePaymentsCommandHandler() commands.ReconcilePaymentsCommandHandler {
	return commands.NewReconcilePaymentsCommandHandler(c.fullUoWFactory(), c.events)
}

// CreateGetCartQueryHandler reads carts outside a transaction. The unit of
// work is never begun, so its repository runs on the pool.
func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.uowFactory.CreateGorm().CartRepository(), c.catalog, c.lookupTimeout)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetPaymentByOrderQueryHandler() queries.GetPaymentByOrderQueryHandler {
	return queries.NewGetPaymentByOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateFeedbackQueryHandler() queries.FeedbackQueryHandler {
	return queries.NewFeedbackQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) NewServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		AddToCart:       c.CreateAddToCartCommandHandler(),
		UpdateCartItem:  c.CreateUpdateCartItemCommandHandler(),
		RemoveFromCart:  c.CreateRemoveFromCartCommandHandler(),
		Checkout:        c.CreateCheckoutCommandHandler(),
		AdvanceStatus:   c.CreateAdvanceOrderStatusCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		AssignStaff:     c.CreateAssignStaffCommandHandler(),
		PayOrder:        c.CreatePayOrderCommandHandler(),
		RequestCOD:      c.CreateRequestCashOnDeliveryCommandHandler(),
		SettleCOD:       c.CreateSettleCashOnDeliveryCommandHandler(),
		SubmitFeedback:  c.CreateSubmitFeedbackCommandHandler(),
		ManageFeedback:  c.CreateManageFeedbackCommandHandler(),
		GetCart:         c.CreateGetCartQueryHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		ListOrders:      c.CreateListOrdersQueryHandler(),
		GetPayment:      c.CreateGetPaymentByOrderQueryHandler(),
		FeedbackQueries: c.CreateFeedbackQueryHandler(),
	})
}

// NewEcho builds the HTTP server around NewServer.
func (c *CompositionRoot) NewEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpin.LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	return httpin.NewEcho(c.NewServer(), httpin.EchoConfig{
		Doc:           doc,
		Directory:     c.directory,
		LookupTimeout: c.lookupTimeout,
		Logger:        c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	handler := c.CreateReconcilePaymentsCommandHandler()
	return jobs.NewJobManager(&handler, c.reconcileSchedule, commands.DefaultReconcileBatchSize, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
