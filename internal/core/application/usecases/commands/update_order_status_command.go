package commands

import (
	"errors"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)

	// ErrStatusChangeIsForbidden is returned when a customer tries to change an order that
	// is not theirs, or to move their own order anywhere but cancelled.
	ErrStatusChangeIsForbidden = errors.New("status change is forbidden for this user")
)

// Actor is the authenticated caller of a command.
type Actor struct {
	UserID  kernel.UUID
	IsAdmin bool
}

// UpdateOrderStatusCommand moves an order to a new lifecycle status.
//
// Example:
//
//	reason := "customer changed mind"
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Cancelled, &reason, Actor{UserID: userID})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to update status: %w", err)
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	status       order.Status
	cancelReason *string
	actor        Actor

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	cancelReason *string,
	actor Actor,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		cancelReason: cancelReason,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

// CancelReason is only used when Status is cancelled.
func (c UpdateOrderStatusCommand) CancelReason() *string { return c.cancelReason }

func (c UpdateOrderStatusCommand) Actor() Actor { return c.actor }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor Actor) error {
	if err := actor.UserID.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
