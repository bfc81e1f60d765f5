package order

import (
	"fmt"
	"slices"
	"strings"

	"evashoes/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> confirmed ──> shipped ──> delivered
//	   │  │         │  │         │
//	   │  └─────────│──┴─────────┴──> (forward skips allowed)
//	   └────────────┴────────────┴──> cancelled
//
// delivered and cancelled are final. Moving to the current status is not a transition
// and is rejected as well, which makes a repeated delivery harmless for stock counters.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed means the shop accepted the order.
	Confirmed

	// Shipped means the parcel left the warehouse.
	Shipped

	// Delivered means the customer received the parcel. Final.
	Delivered

	// Cancelled means the order will not be fulfilled. Final.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions is the complete transition table. A target missing from a
// status's list is not reachable from it.
//
//nolint:exhaustive // Unknown has no transitions
var allowedTransitions = map[Status][]Status{
	Pending:   {Confirmed, Shipped, Delivered, Cancelled},
	Confirmed: {Shipped, Delivered, Cancelled},
	Shipped:   {Delivered, Cancelled},
	Delivered: {},
	Cancelled: {},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Shipped, Delivered, Cancelled}
}

// ParseStatus converts the wire form ("pending", "delivered", ...) into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(allowedTransitions[s], target)
}

// TransitionTo returns target if the move is allowed.
//
// Returns:
//   - (target, nil) on an allowed transition
//   - (Unknown, *errs.ValueIsInvalidError) if target is not a valid status
//   - (Unknown, *TransitionNotAllowedError) if the table forbids the move
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &TransitionNotAllowedError{From: s, To: target}
	}
	return target, nil
}

// TransitionNotAllowedError is returned when a status change is not in the transition
// table. It unwraps to errs.ErrConflict: the request is well-formed, the order state
// just does not permit it.
type TransitionNotAllowedError struct {
	From Status
	To   Status
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: status transition from %s to %s is not allowed", errs.ErrConflict, e.From, e.To)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return errs.ErrConflict
}
