package commands

import (
	"errors"
	"strings"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for a customer.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, 2, kernel.MustMoney(100), "red", &size)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), userID, []order.LineItem{item},
//	    kernel.MustMoney(200), order.CashOnDelivery, address, "", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	userID          kernel.UUID
	items           []order.LineItem
	totalPrice      kernel.Money
	paymentMethod   order.PaymentMethod
	shippingAddress order.ShippingAddress
	notes           string
	codeOrder       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout data. An empty codeOrder is generated
// by the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	items []order.LineItem,
	totalPrice kernel.Money,
	paymentMethod order.PaymentMethod,
	shippingAddress order.ShippingAddress,
	notes string,
	codeOrder string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalPrice:      totalPrice,
		shippingAddress: shippingAddress,
		notes:           notes,
		codeOrder:       strings.TrimSpace(codeOrder),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItems(items),
		cmd.setPaymentMethod(paymentMethod),
		shippingAddress.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateOrderCommand) UserID() kernel.UUID { return c.userID }

func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) TotalPrice() kernel.Money { return c.totalPrice }

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c CreateOrderCommand) ShippingAddress() order.ShippingAddress { return c.shippingAddress }

func (c CreateOrderCommand) Notes() string { return c.notes }

func (c CreateOrderCommand) CodeOrder() string { return c.codeOrder }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
