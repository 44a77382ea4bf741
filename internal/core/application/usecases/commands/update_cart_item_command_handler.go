package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/cart"
)

type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrObjectNotFound if the package is not in the cart.
func (h *UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
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
	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetOrCreateForUpdate(ctx, cmd.Actor().ID(), now)
	if err != nil {
		return nil, err
	}

	if err = c.SetQuantity(cmd.PackageID(), cmd.Quantity(), now); err != nil {
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
