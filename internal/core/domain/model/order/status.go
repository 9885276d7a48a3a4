package order

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──accept──> ACCEPTED ──pickup──> PICKED_UP ──deliver──> DELIVERED
//	   │                   │                    │   ▲
//	   │                   │                    │   └── IN_TRANSIT (deliverable, never entered)
//	   └──────cancel───────┴────────cancel──────┴──> CANCELLED
//
// DELIVERED, CANCELLED and REFUNDED are terminal.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Accepted
	PickedUp
	InTransit
	Delivered
	Cancelled
	Refunded
)

// Rule names carried by Conflict errors from the state machine.
const (
	RuleAlreadyAccepted    = "already accepted"
	RuleTerminalState      = "terminal state"
	RuleNotYetAccepted     = "order must be accepted before pickup"
	RuleNotYetPickedUp     = "order must be picked up before delivery"
	RuleWrongActor         = "wrong actor"
	RuleOnlyDriversAccept  = "only drivers can accept orders"
	RuleOnlyCustomerCreate = "only customers or admins can create orders"
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Accepted:  "ACCEPTED",
	PickedUp:  "PICKED_UP",
	InTransit: "IN_TRANSIT",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
	Refunded:  "REFUNDED",
}

// ParseStatus accepts the persisted/wire name in any case.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// HasDriver reports whether an order in status s must have a driver assigned.
func (s Status) HasDriver() bool {
	return s == Accepted || s == PickedUp || s == InTransit || s == Delivered
}

// Accept transitions PENDING -> ACCEPTED.
//
// Returns:
//   - (Accepted, nil) from Pending
//   - Conflict "already accepted" from Accepted, PickedUp or InTransit
//   - Conflict "terminal state" from Delivered, Cancelled or Refunded
func (s Status) Accept() (Status, error) {
	switch {
	case s == Pending:
		return Accepted, nil
	case s.IsTerminal():
		return Unknown, s.terminalError()
	case s.HasDriver():
		return Unknown, errs.NewConflictErrorWithCause(RuleAlreadyAccepted, fmt.Errorf("status is %s", s))
	default:
		return Unknown, s.Validate()
	}
}

// PickUp transitions ACCEPTED -> PICKED_UP.
func (s Status) PickUp() (Status, error) {
	switch {
	case s == Accepted:
		return PickedUp, nil
	case s.IsTerminal():
		return Unknown, s.terminalError()
	default:
		return Unknown, errs.NewConflictErrorWithCause(RuleNotYetAccepted, fmt.Errorf("status is %s", s))
	}
}

// Deliver transitions PICKED_UP or IN_TRANSIT -> DELIVERED.
func (s Status) Deliver() (Status, error) {
	switch {
	case s == PickedUp, s == InTransit:
		return Delivered, nil
	case s.IsTerminal():
		return Unknown, s.terminalError()
	default:
		return Unknown, errs.NewConflictErrorWithCause(RuleNotYetPickedUp, fmt.Errorf("status is %s", s))
	}
}

// Cancel transitions any non-terminal status -> CANCELLED.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return Unknown, s.terminalError()
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

func (s Status) terminalError() error {
	return errs.NewConflictErrorWithCause(RuleTerminalState, fmt.Errorf("status is %s", s))
}
