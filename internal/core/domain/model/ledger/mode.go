// Package ledger holds the financial records written when an order is delivered and
// the policy that decides how many records a delivery produces.
package ledger

import (
	"fmt"
	"strings"

	"evashoes/internal/pkg/errs"
)

// Mode selects how a delivered order is written to the ledger.
type Mode int

const (
	UnknownMode Mode = iota

	// PerOrder writes one record per delivered order: totalAmount is the order total
	// and cost is Σ price × quantity over its lines.
	PerOrder

	// PerLineItem writes one record per line item. Every record repeats the order total
	// and carries the running Σ price × quantity up to and including that line.
	PerLineItem
)

var modeStrings = map[Mode]string{
	PerOrder:    "per_order",
	PerLineItem: "per_line_item",
}

// ParseMode reads LEDGER_MODE. An empty value selects PerOrder.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return PerOrder, nil
	}
	for mode, str := range modeStrings {
		if str == normalized {
			return mode, nil
		}
	}
	return UnknownMode, errs.NewValueIsInvalidErrorWithCause(
		"ledger mode",
		fmt.Errorf("%q is not one of per_order, per_line_item", s),
	)
}

func (m Mode) Validate() error {
	if _, ok := modeStrings[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("ledger mode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func (m Mode) String() string {
	if str, ok := modeStrings[m]; ok {
		return str
	}
	return "unknown"
}
