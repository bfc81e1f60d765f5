package commands

import (
	"context"
	"time"

	"evashoes/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new pending order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order in pending status with a pending payment. When the command
// carries no code, one of the form ORD<unix millis><0..9999> is generated.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	code := cmd.CodeOrder()
	if code == "" {
		code = order.NewCode(now)
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.Items(),
		cmd.TotalPrice(),
		cmd.PaymentMethod(),
		cmd.ShippingAddress(),
		cmd.Notes(),
		code,
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
