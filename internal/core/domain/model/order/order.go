package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentMethodIsLocked is returned when the payment method is changed after the
	// payment was settled or failed.
	ErrPaymentMethodIsLocked = errors.New("payment method can only change while payment is pending")
)

// Order is the aggregate root for a placed checkout.
//
// Order follows these invariants:
//   - Must have a valid identifier and a valid customer identifier
//   - Holds at least one valid line item
//   - Status changes only through ChangeStatus, which consults the transition table
//   - cancelAt/cancelReason are only set by a move to Cancelled, deliveredAt only by a
//     move to Delivered
type Order struct {
	id              kernel.UUID
	userID          kernel.UUID
	items           []LineItem
	totalPrice      kernel.Money
	status          Status
	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	shippingAddress ShippingAddress
	notes           string
	codeOrder       string
	cancelAt        *time.Time
	cancelReason    *string
	deliveredAt     *time.Time
	createdAt       time.Time

	isConstructed bool
}

// State is the full persisted form of an order, used to rebuild the aggregate from
// storage with RestoreOrder.
type State struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Items           []LineItem
	TotalPrice      kernel.Money
	Status          Status
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	ShippingAddress ShippingAddress
	Notes           string
	CodeOrder       string
	CancelAt        *time.Time
	CancelReason    *string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
}

// StatusChange describes an accepted transition. Handlers use it for events and metrics.
type StatusChange struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}

// NewOrder places a new order in Pending status with a pending payment.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, 2, kernel.MustMoney(100), "red", &size)
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{item},
//	    kernel.MustMoney(200), order.CashOnDelivery, address, "", "", time.Now())
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []LineItem,
	totalPrice kernel.Money,
	paymentMethod PaymentMethod,
	shippingAddress ShippingAddress,
	notes string,
	codeOrder string,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(State{
		ID:              id,
		UserID:          userID,
		Items:           items,
		TotalPrice:      totalPrice,
		Status:          Pending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentPending,
		ShippingAddress: shippingAddress,
		Notes:           notes,
		CodeOrder:       codeOrder,
		CreatedAt:       createdAt,
	})
}

// RestoreOrder rebuilds an order from its persisted state, validating it as thoroughly
// as NewOrder does.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		totalPrice:    state.TotalPrice,
		notes:         strings.TrimSpace(state.Notes),
		codeOrder:     strings.TrimSpace(state.CodeOrder),
		cancelAt:      state.CancelAt,
		cancelReason:  state.CancelReason,
		deliveredAt:   state.DeliveredAt,
		createdAt:     state.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setUserID(state.UserID),
		o.setItems(state.Items),
		o.setStatus(state.Status),
		o.setPaymentMethod(state.PaymentMethod),
		o.setPaymentStatus(state.PaymentStatus),
		o.setShippingAddress(state.ShippingAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) UserID() kernel.UUID { return o.userID }

// Items returns a copy of the line items in checkout order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalPrice() kernel.Money { return o.totalPrice }

func (o *Order) Status() Status { return o.status }

func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }

func (o *Order) Notes() string { return o.notes }

func (o *Order) CodeOrder() string { return o.codeOrder }

func (o *Order) CancelAt() *time.Time { return o.cancelAt }

func (o *Order) CancelReason() *string { return o.cancelReason }

func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ItemsSubtotal is Σ price × quantity over all lines.
func (o *Order) ItemsSubtotal() kernel.Money {
	sum := kernel.Zero()
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// ChangeStatus moves the order to target if the transition table allows it and applies
// the order-level consequences:
//   - Cancelled: cancelAt = now, paymentStatus = failed, cancelReason = reason or nil
//     when the reason is absent or blank
//   - Delivered: deliveredAt = now, paymentStatus = paid
//   - any other target: only the status changes
//
// On error the order is left untouched.
func (o *Order) ChangeStatus(target Status, cancelReason *string, now time.Time) (StatusChange, error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{
		OrderID: o.id,
		From:    o.status,
		To:      newStatus,
		At:      now,
	}

	switch newStatus {
	case Cancelled:
		at := now
		o.cancelAt = &at
		o.paymentStatus = PaymentFailed
		o.cancelReason = normalizeReason(cancelReason)
	case Delivered:
		at := now
		o.deliveredAt = &at
		o.paymentStatus = PaymentPaid
	case Unknown, Pending, Confirmed, Shipped:
	}

	o.status = newStatus
	return change, nil
}

// Details carries the fields the generic update may touch. Nil fields are left alone.
type Details struct {
	Notes           *string
	ShippingAddress *ShippingAddress
	PaymentMethod   *PaymentMethod
	CodeOrder       *string
}

// UpdateDetails applies a generic update. Status and fulfillment fields are not part of
// Details and can only change through ChangeStatus.
func (o *Order) UpdateDetails(details Details) error {
	if details.ShippingAddress != nil {
		if err := details.ShippingAddress.Validate(); err != nil {
			return err
		}
	}
	if details.PaymentMethod != nil {
		if err := details.PaymentMethod.Validate(); err != nil {
			return err
		}
		if *details.PaymentMethod != o.paymentMethod && o.paymentStatus != PaymentPending {
			return ErrPaymentMethodIsLocked
		}
	}

	if details.Notes != nil {
		o.notes = strings.TrimSpace(*details.Notes)
	}
	if details.ShippingAddress != nil {
		o.shippingAddress = *details.ShippingAddress
	}
	if details.PaymentMethod != nil {
		o.paymentMethod = *details.PaymentMethod
	}
	if details.CodeOrder != nil {
		o.codeOrder = strings.TrimSpace(*details.CodeOrder)
	}
	return nil
}

// NewCode builds a human-facing order code of the form ORD<unix millis><0..9999>.
// Codes are not guaranteed unique; the order id is the identity.
func NewCode(now time.Time) string {
	return fmt.Sprintf("ORD%d%d", now.UnixMilli(), rand.IntN(10000)) //nolint:gosec // display code, not a secret
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setShippingAddress(address ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}
