package order_test

import (
	"fmt"
	"testing"

	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire value", func(t *testing.T) {
		for _, status := range order.Statuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should ignore case and whitespace", func(t *testing.T) {
		parsed, err := order.ParseStatus("  Delivered ")

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, parsed)
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, input := range []string{"", "unknown", "refunded", "done"} {
			_, err := order.ParseStatus(input)

			require.Error(t, err, input)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.Statuses() {
		require.NoError(t, status.Validate())
	}

	for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(6)} {
		err := status.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.Delivered.IsFinal())
	assert.True(t, order.Cancelled.IsFinal())
	assert.False(t, order.Pending.IsFinal())
	assert.False(t, order.Confirmed.IsFinal())
	assert.False(t, order.Shipped.IsFinal())
	assert.False(t, order.Unknown.IsFinal())
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Confirmed, order.Shipped, order.Delivered, order.Cancelled},
		order.Confirmed: {order.Shipped, order.Delivered, order.Cancelled},
		order.Shipped:   {order.Delivered, order.Cancelled},
		order.Delivered: {},
		order.Cancelled: {},
	}

	for _, from := range order.Statuses() {
		for _, to := range order.Statuses() {
			expected := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, expected, from.CanTransitionTo(to))

				next, err := from.TransitionTo(to)
				if expected {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				var notAllowed *order.TransitionNotAllowedError
				require.ErrorAs(t, err, &notAllowed)
				assert.Equal(t, from, notAllowed.From)
				assert.Equal(t, to, notAllowed.To)
				require.ErrorIs(t, err, errs.ErrConflict)
				assert.Equal(t, order.Unknown, next)
			})
		}
	}
}

func TestStatus_TransitionTo_InvalidTarget(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitionNotAllowedError_Message(t *testing.T) {
	err := &order.TransitionNotAllowedError{From: order.Delivered, To: order.Cancelled}

	assert.Equal(t, "conflict: status transition from delivered to cancelled is not allowed", err.Error())
}

func TestPaymentMethod(t *testing.T) {
	t.Run("should parse known methods", func(t *testing.T) {
		cases := map[string]order.PaymentMethod{
			"COD":     order.CashOnDelivery,
			"cod":     order.CashOnDelivery,
			"":        order.CashOnDelivery,
			"card":    order.Card,
			"Banking": order.Banking,
		}
		for input, expected := range cases {
			method, err := order.ParsePaymentMethod(input)

			require.NoError(t, err, input)
			assert.Equal(t, expected, method)
		}
	})

	t.Run("should reject unknown methods", func(t *testing.T) {
		_, err := order.ParsePaymentMethod("crypto")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should render wire values", func(t *testing.T) {
		assert.Equal(t, "COD", order.CashOnDelivery.String())
		assert.Equal(t, "card", order.Card.String())
		assert.Equal(t, "banking", order.Banking.String())
		assert.Equal(t, "unknown", order.UnknownPaymentMethod.String())
	})
}

func TestPaymentStatus(t *testing.T) {
	for _, s := range []order.PaymentStatus{order.PaymentPending, order.PaymentPaid, order.PaymentFailed} {
		parsed, err := order.ParsePaymentStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParsePaymentStatus("refunded")
	require.Error(t, err)
	require.Error(t, order.UnknownPaymentStatus.Validate())
}
