package order_test

import (
	"testing"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newAddress(t *testing.T) order.ShippingAddress {
	t.Helper()
	address, err := order.NewShippingAddress("Nguyen Van A", "0901234567", "12 Le Loi", "HCM", "District 1", "Ben Nghe")
	require.NoError(t, err)
	return address
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney(100), "red", intPtr(38))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.LineItem{item},
		kernel.MustMoney(200),
		order.CashOnDelivery,
		newAddress(t),
		"leave at the door",
		"ORD17000000001234",
		time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with pending payment", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.CashOnDelivery, o.PaymentMethod())
		assert.Equal(t, "ORD17000000001234", o.CodeOrder())
		assert.Nil(t, o.CancelAt())
		assert.Nil(t, o.CancelReason())
		assert.Nil(t, o.DeliveredAt())
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.ItemsSubtotal().IsEqual(kernel.MustMoney(200)))
	})

	t.Run("should reject missing items and user", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, nil, kernel.Zero(),
			order.CashOnDelivery, newAddress(t), "", "", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("should reject line items built as zero values", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{{}}, kernel.Zero(),
			order.CashOnDelivery, newAddress(t), "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("should reject unknown payment method", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.MustMoney(10), "", nil)
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, kernel.MustMoney(10),
			order.UnknownPaymentMethod, newAddress(t), "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("Items returns a copy", func(t *testing.T) {
		o := newPendingOrder(t)
		items := o.Items()
		items[0] = order.LineItem{}

		require.NoError(t, o.Items()[0].Validate())
	})
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_ChangeStatus_Cancelled(t *testing.T) {
	now := time.Date(2026, 10, 2, 10, 0, 0, 0, time.UTC)

	t.Run("stamps cancellation metadata and fails the payment", func(t *testing.T) {
		o := newPendingOrder(t)

		change, err := o.ChangeStatus(order.Cancelled, strPtr("changed mind"), now)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, change.From)
		assert.Equal(t, order.Cancelled, change.To)
		assert.True(t, change.OrderID.IsEqual(o.ID()))
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
		require.NotNil(t, o.CancelAt())
		assert.Equal(t, now, *o.CancelAt())
		require.NotNil(t, o.CancelReason())
		assert.Equal(t, "changed mind", *o.CancelReason())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("stores nil reason when omitted or blank", func(t *testing.T) {
		for _, reason := range []*string{nil, strPtr(""), strPtr("   ")} {
			o := newPendingOrder(t)

			_, err := o.ChangeStatus(order.Cancelled, reason, now)

			require.NoError(t, err)
			assert.Nil(t, o.CancelReason())
			assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
		}
	})
}

func TestOrder_ChangeStatus_Delivered(t *testing.T) {
	now := time.Date(2026, 10, 3, 15, 30, 0, 0, time.UTC)

	t.Run("marks payment paid and stamps deliveredAt", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := o.ChangeStatus(order.Delivered, nil, now)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now, *o.DeliveredAt())
		assert.Nil(t, o.CancelAt())
	})

	t.Run("ignores a cancel reason", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := o.ChangeStatus(order.Delivered, strPtr("ignored"), now)

		require.NoError(t, err)
		assert.Nil(t, o.CancelReason())
	})

	t.Run("second delivery is rejected and leaves the order untouched", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.ChangeStatus(order.Delivered, nil, now)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Delivered, nil, now.Add(time.Hour))

		var notAllowed *order.TransitionNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		assert.Equal(t, now, *o.DeliveredAt())
	})

	t.Run("cancelling a delivered order is rejected", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.ChangeStatus(order.Delivered, nil, now)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Cancelled, strPtr("too late"), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Nil(t, o.CancelReason())
	})
}

func TestOrder_ChangeStatus_IntermediateStatuses(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	for _, target := range []order.Status{order.Confirmed, order.Shipped} {
		_, err := o.ChangeStatus(target, nil, now)

		require.NoError(t, err)
		assert.Equal(t, target, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Nil(t, o.CancelAt())
		assert.Nil(t, o.DeliveredAt())
	}

	_, err := o.ChangeStatus(order.Pending, nil, now)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestOrder_UpdateDetails(t *testing.T) {
	t.Run("updates only supplied fields", func(t *testing.T) {
		o := newPendingOrder(t)
		card := order.Card

		err := o.UpdateDetails(order.Details{Notes: strPtr(" call first "), PaymentMethod: &card})

		require.NoError(t, err)
		assert.Equal(t, "call first", o.Notes())
		assert.Equal(t, order.Card, o.PaymentMethod())
		assert.Equal(t, "ORD17000000001234", o.CodeOrder())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejects invalid shipping address", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.UpdateDetails(order.Details{ShippingAddress: &order.ShippingAddress{FullName: "x"}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "Nguyen Van A", o.ShippingAddress().FullName)
	})

	t.Run("locks payment method once payment is settled", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.ChangeStatus(order.Delivered, nil, time.Now())
		require.NoError(t, err)
		banking := order.Banking

		err = o.UpdateDetails(order.Details{PaymentMethod: &banking})

		require.ErrorIs(t, err, order.ErrPaymentMethodIsLocked)
	})
}

func TestNewLineItem(t *testing.T) {
	t.Run("valid sized item", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 3, kernel.MustMoney(99.5), " red ", intPtr(40))

		require.NoError(t, err)
		size, ok := item.Size()
		assert.True(t, ok)
		assert.Equal(t, 40, size)
		assert.Equal(t, "red", item.Color())
		assert.True(t, item.Subtotal().IsEqual(kernel.MustMoney(298.5)))
	})

	t.Run("item without size", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.MustMoney(10), "", nil)

		require.NoError(t, err)
		_, ok := item.Size()
		assert.False(t, ok)
	})

	t.Run("invalid fields are all reported", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.UUID{}, 0, kernel.Zero(), "", intPtr(-1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewCode(t *testing.T) {
	now := time.UnixMilli(1760000000000)

	code := order.NewCode(now)

	assert.Regexp(t, `^ORD1760000000000\d{1,4}$`, code)
}
