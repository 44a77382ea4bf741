package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/cart"
	"laundry/internal/core/domain/model/kernel"
)

// RemoveFromCartCommandHandler handles both single-line removal and
// clearing. Neither fails when the line or the cart does not exist yet.
type RemoveFromCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveFromCartCommandHandler(uowFactory CartUoWFactory) RemoveFromCartCommandHandler {
	return RemoveFromCartCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveFromCartCommandHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.Actor().ID(), func(c *cart.Cart, at time.Time) {
		c.Remove(cmd.PackageID(), at)
	})
}

func (h *RemoveFromCartCommandHandler) HandleClear(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.Actor().ID(), func(c *cart.Cart, at time.Time) {
		c.Clear(at)
	})
}

func (h *RemoveFromCartCommandHandler) mutate(
	ctx context.Context,
	userID kernel.UUID,
	apply func(c *cart.Cart, at time.Time),
) (*cart.Cart, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetOrCreateForUpdate(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	apply(c, now)

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
