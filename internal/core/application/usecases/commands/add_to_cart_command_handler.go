package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AddToCartCommandHandler merges a package into the actor's cart. The
// package is checked against the catalog before the cart row is locked.
type AddToCartCommandHandler struct {
	uowFactory    CartUoWFactory
	catalog       ports.PackageCatalog
	lookupTimeout time.Duration
}

func NewAddToCartCommandHandler(
	uowFactory CartUoWFactory,
	catalog ports.PackageCatalog,
	lookupTimeout time.Duration,
) AddToCartCommandHandler {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return AddToCartCommandHandler{
		uowFactory:    uowFactory,
		catalog:       catalog,
		lookupTimeout: lookupTimeout,
	}
}

// Handle returns the cart after the merge. Concurrent adds for the same user
// serialize on the cart row, so no increment is lost.
func (h *AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.resolvePackage(ctx, cmd.PackageID()); err != nil {
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
	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetOrCreateForUpdate(ctx, cmd.Actor().ID(), now)
	if err != nil {
		return nil, err
	}

	if err = c.Add(cmd.PackageID(), cmd.Quantity(), now); err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// resolvePackage bounds the catalog lookup so a hung catalog cannot hold the
// request open. A timeout surfaces as an unavailable catalog.
func (h *AddToCartCommandHandler) resolvePackage(ctx context.Context, id kernel.UUID) error {
	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	if _, err := h.catalog.ResolvePackage(lookupCtx, id); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewUpstreamUnavailableError("catalog", err)
		}
		return err
	}
	return nil
}
