package order

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// Action is a transition a caller may request on an existing order.
type Action int

const (
	ActionUnknown Action = iota
	ActionAccept
	ActionPickup
	ActionDeliver
	ActionCancel
)

var actionNames = map[Action]string{
	ActionAccept:  "accept",
	ActionPickup:  "pickup",
	ActionDeliver: "deliver",
	ActionCancel:  "cancel",
}

func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("invalid action: %q", s))
}

func (a Action) Validate() error {
	if _, ok := actionNames[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("invalid action: %d", a))
	}
	return nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
