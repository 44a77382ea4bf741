package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// DefaultLookupTimeout bounds catalog and user directory lookups when the
// handler is built with a zero timeout.
const DefaultLookupTimeout = 5 * time.Second

// CheckoutCommandHandler snapshots catalog prices into a new order and
// clears the cart in one transaction. The cart row stays locked from the
// first read until commit, so a concurrent add either lands before the
// snapshot or in the emptied cart.
type CheckoutCommandHandler struct {
	uowFactory    UoWFactory
	catalog       ports.PackageCatalog
	events        ports.OrderEventPublisher
	lookupTimeout time.Duration
}

func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	catalog ports.PackageCatalog,
	events ports.OrderEventPublisher,
	lookupTimeout time.Duration,
) CheckoutCommandHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return CheckoutCommandHandler{
		uowFactory:    uowFactory,
		catalog:       catalog,
		events:        events,
		lookupTimeout: lookupTimeout,
	}
}

// Handle fails with errs.ErrInvalidState on an empty cart. Any failure,
// including a catalog timeout, rolls back: the cart keeps its lines and no
// order exists.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	userID := cmd.Actor().ID()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetOrCreateForUpdate(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errs.NewInvalidStateError("cart is empty")
	}

	items, err := h.priceLines(ctx, c.Lines())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), userID, items, cmd.Delivery(), cmd.PaymentMethod(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	c.Clear(now)
	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.events, orderChanged(o, ports.OrderCreated, userID, now))
	return o, nil
}

// priceLines resolves every line's price exactly once, concurrently, under
// one deadline. The first failure cancels the remaining lookups.
func (h *CheckoutCommandHandler) priceLines(ctx context.Context, lines []cart.Line) ([]order.LineItem, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	items := make([]order.LineItem, len(lines))
	g, gctx := errgroup.WithContext(lookupCtx)
	for i, line := range lines {
		g.Go(func() error {
			pkg, err := h.catalog.ResolvePackage(gctx, line.PackageID())
			if err != nil {
				return err
			}

			item, err := order.NewLineItem(line.PackageID(), line.Quantity(), pkg.Price)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.NewUpstreamUnavailableError("catalog", err)
		}
		return nil, err
	}

	return items, nil
}
