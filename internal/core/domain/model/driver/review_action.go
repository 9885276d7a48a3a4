package driver

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// ReviewAction is an admin's decision on a document.
type ReviewAction int

const (
	ReviewUnknown ReviewAction = iota
	ReviewApprove
	ReviewReject
)

func ParseReviewAction(s string) (ReviewAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve":
		return ReviewApprove, nil
	case "reject":
		return ReviewReject, nil
	default:
		return ReviewUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("invalid action: %q", s))
	}
}

func (a ReviewAction) Validate() error {
	if a != ReviewApprove && a != ReviewReject {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid review action", a))
	}
	return nil
}

func (a ReviewAction) String() string {
	switch a {
	case ReviewApprove:
		return "approve"
	case ReviewReject:
		return "reject"
	default:
		return "unknown"
	}
}
