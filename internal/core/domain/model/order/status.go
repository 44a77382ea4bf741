package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
//
// State transitions:
//
//	Pending ─> Confirmed ─> PickedUp ─> Processing ─> ReadyForDelivery ─> OutForDelivery ─> Delivered
//	   │           │
//	   └───────────┴─> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	PickedUp
	Processing
	ReadyForDelivery
	OutForDelivery
	Delivered
	Cancelled
)

// getStatusTokens maps valid statuses to their wire tokens.
func getStatusTokens() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "pending",
		Confirmed:        "confirmed",
		PickedUp:         "picked-up",
		Processing:       "processing",
		ReadyForDelivery: "ready-for-delivery",
		OutForDelivery:   "out-for-delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// getTransitions is the explicit transition table: allowed next states per
// current state. Terminal states have no entry.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal states have no outgoing edges
	return map[Status][]Status{
		Pending:          {Confirmed, Cancelled},
		Confirmed:        {PickedUp, Cancelled},
		PickedUp:         {Processing},
		Processing:       {ReadyForDelivery},
		ReadyForDelivery: {OutForDelivery},
		OutForDelivery:   {Delivered},
	}
}

// ParseStatus converts a wire token into a Status. Tokens are case sensitive.
func ParseStatus(token string) (Status, error) {
	for s, t := range getStatusTokens() {
		if t == token {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a recognized status", token))
}

// Statuses lists every valid status in pipeline order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, PickedUp, Processing, ReadyForDelivery, OutForDelivery, Delivered, Cancelled}
}

func (s Status) Validate() error {
	if _, ok := getStatusTokens()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire token, or "unknown" for invalid values.
func (s Status) String() string {
	if token, ok := getStatusTokens()[s]; ok {
		return token
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether the customer may still back out.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Confirmed
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an invalid transition error unless the table
// allows moving from s to target.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionError(fmt.Sprintf("%d is not a recognized status", target))
	}
	if s.IsTerminal() {
		return errs.NewInvalidTransitionError(fmt.Sprintf("order is %s and can no longer change", s))
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(fmt.Sprintf("cannot move from %s to %s", s, target))
	}
	return nil
}
