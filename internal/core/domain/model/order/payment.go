package order

import (
	"fmt"
	"strings"

	"evashoes/internal/pkg/errs"
)

// PaymentMethod is how the customer pays.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	CashOnDelivery
	Card
	Banking
)

var paymentMethodStrings = map[PaymentMethod]string{
	CashOnDelivery: "COD",
	Card:           "card",
	Banking:        "banking",
}

// ParsePaymentMethod accepts "COD", "card" or "banking" (case-insensitive).
// An empty string defaults to cash on delivery.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return CashOnDelivery, nil
	}
	for method, str := range paymentMethodStrings {
		if strings.EqualFold(str, normalized) {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodStrings[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

func (m PaymentMethod) String() string {
	if str, ok := paymentMethodStrings[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks the money side of an order. It is never set directly by
// clients, only as a consequence of status transitions.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
)

var paymentStatusStrings = map[PaymentStatus]string{
	PaymentPending: "pending",
	PaymentPaid:    "paid",
	PaymentFailed:  "failed",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, str := range paymentStatusStrings {
		if str == normalized {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentStatusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := paymentStatusStrings[s]; ok {
		return str
	}
	return "unknown"
}
