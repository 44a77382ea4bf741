package queries

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const defaultLookupTimeout = 5 * time.Second

// GetCartQueryHandler returns the cart with live catalog prices. The cart
// row is created on first access.
type GetCartQueryHandler struct {
	carts         ports.CartRepository
	catalog       ports.PackageCatalog
	lookupTimeout time.Duration
}

func NewGetCartQueryHandler(
	carts ports.CartRepository,
	catalog ports.PackageCatalog,
	lookupTimeout time.Duration,
) GetCartQueryHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return GetCartQueryHandler{carts: carts, catalog: catalog, lookupTimeout: lookupTimeout}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	c, err := h.carts.GetOrCreate(ctx, query.Actor().ID(), time.Now())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	lines := c.Lines()
	items := make([]CartItemView, len(lines))
	g, gctx := errgroup.WithContext(lookupCtx)
	for i, line := range lines {
		g.Go(func() error {
			items[i] = CartItemView{PackageID: line.PackageID(), Quantity: line.Quantity()}

			pkg, lookupErr := h.catalog.ResolvePackage(gctx, line.PackageID())
			if errors.Is(lookupErr, errs.ErrObjectNotFound) {
				return nil
			}
			if lookupErr != nil {
				return lookupErr
			}

			items[i].Name = pkg.Name
			items[i].UnitPrice = pkg.Price
			items[i].LineTotal = pkg.Price.Times(line.Quantity())
			items[i].Available = true
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return GetCartQueryResponse{}, errs.NewUpstreamUnavailableError("catalog", err)
		}
		return GetCartQueryResponse{}, err
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}

	return GetCartQueryResponse{UserID: c.UserID(), Items: items, TotalAmount: total}, nil
}
