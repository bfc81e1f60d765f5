package commands

import (
	"errors"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand is the generic order update. It cannot carry a status:
// lifecycle changes go through UpdateOrderStatusCommand only.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailsCommand(orderID kernel.UUID, details order.Details) (UpdateOrderDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}
	if details.Notes == nil && details.ShippingAddress == nil &&
		details.PaymentMethod == nil && details.CodeOrder == nil {
		return UpdateOrderDetailsCommand{}, errs.NewValueIsRequiredError("at least one field to update")
	}

	return UpdateOrderDetailsCommand{
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderDetailsCommand) Details() order.Details { return c.details }
