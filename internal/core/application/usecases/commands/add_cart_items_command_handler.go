package commands

import (
	"context"

	"evashoes/internal/core/domain/model/cart"
)

// AddCartItemsCommandHandler merges the request's lines in memory and then upserts each
// merged line. Two concurrent requests for the same key both land: the stored quantity
// is incremented in place rather than overwritten.
type AddCartItemsCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemsCommandHandler(uowFactory CartUoWFactory) AddCartItemsCommandHandler {
	return AddCartItemsCommandHandler{uowFactory: uowFactory}
}

func (h *AddCartItemsCommandHandler) Handle(ctx context.Context, cmd AddCartItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := cart.NewCart(cmd.UserID())
	if err != nil {
		return err
	}
	if err = c.Add(cmd.Lines()...); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartRepository().UpsertLines(ctx, c.UserID(), c.Lines()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
