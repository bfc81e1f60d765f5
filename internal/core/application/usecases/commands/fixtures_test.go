package commands_test

import (
	"testing"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func testAddress(t *testing.T) order.ShippingAddress {
	t.Helper()
	address, err := order.NewShippingAddress("Le C", "0911111111", "5 Pasteur", "HCM", "3", "6")
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	sized, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney(100), "red", intPtr(38))
	require.NoError(t, err)
	sizeless, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.MustMoney(25), "", nil)
	require.NoError(t, err)
	return []order.LineItem{sized, sizeless}
}

// restoreOrder builds an order of userID already in status.
func restoreOrder(t *testing.T, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	paymentStatus := order.PaymentPending
	switch status { //nolint:exhaustive // only final statuses change payment
	case order.Delivered:
		paymentStatus = order.PaymentPaid
	case order.Cancelled:
		paymentStatus = order.PaymentFailed
	}
	o, err := order.RestoreOrder(order.State{
		ID:              kernel.NewUUID(),
		UserID:          userID,
		Items:           testItems(t),
		TotalPrice:      kernel.MustMoney(240),
		Status:          status,
		PaymentMethod:   order.CashOnDelivery,
		PaymentStatus:   paymentStatus,
		ShippingAddress: testAddress(t),
		CodeOrder:       "ORD1",
		CreatedAt:       time.Now(),
	})
	require.NoError(t, err)
	return o
}
