package driver

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// DocumentStatus is the review state of a document.
//
// State transitions:
//   - PENDING -> APPROVED, PENDING -> REJECTED
//   - REJECTED -> APPROVED
//   - APPROVED -> REJECTED
//
// Nothing re-enters PENDING; a fresh upload creates a new document.
type DocumentStatus int

const (
	DocumentStatusUnknown DocumentStatus = iota
	DocumentStatusPending
	DocumentStatusApproved
	DocumentStatusRejected
)

const (
	RuleAlreadyApproved = "document already approved"
	RuleAlreadyRejected = "document already rejected"
	RuleApprovedExists  = "an approved document of this type already exists"
	RuleOnlyAdminReview = "only admins can review documents"
)

var documentStatusNames = map[DocumentStatus]string{
	DocumentStatusPending:  "PENDING",
	DocumentStatusApproved: "APPROVED",
	DocumentStatusRejected: "REJECTED",
}

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	for st, name := range documentStatusNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	return DocumentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid document status", s))
}

func (s DocumentStatus) Validate() error {
	if _, ok := documentStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid document status", s))
	}
	return nil
}

func (s DocumentStatus) String() string {
	if name, ok := documentStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Approve transitions PENDING or REJECTED -> APPROVED.
func (s DocumentStatus) Approve() (DocumentStatus, error) {
	switch s {
	case DocumentStatusPending, DocumentStatusRejected:
		return DocumentStatusApproved, nil
	case DocumentStatusApproved:
		return DocumentStatusUnknown, errs.NewConflictError(RuleAlreadyApproved)
	default:
		return DocumentStatusUnknown, s.Validate()
	}
}

// Reject transitions PENDING or APPROVED -> REJECTED.
func (s DocumentStatus) Reject() (DocumentStatus, error) {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved:
		return DocumentStatusRejected, nil
	case DocumentStatusRejected:
		return DocumentStatusUnknown, errs.NewConflictError(RuleAlreadyRejected)
	default:
		return DocumentStatusUnknown, s.Validate()
	}
}
