package queries

import (
	"errors"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

// DefaultReviewQueueLimit is the page size of the admin review queue.
const DefaultReviewQueueLimit = 50

var ErrListDocumentsForReviewQueryIsNotConstructed = errors.New(
	"ListDocumentsForReviewQuery must be created via NewListDocumentsForReviewQuery constructor",
)

// ListDocumentsForReviewQuery is the admin review queue: documents in one status, oldest
// upload first. DocumentStatusUnknown selects PENDING.
type ListDocumentsForReviewQuery struct {
	adminID kernel.UUID
	status  driver.DocumentStatus
	guard   guard.ConstructorGuard
}

func NewListDocumentsForReviewQuery(
	adminID kernel.UUID,
	status driver.DocumentStatus,
) (ListDocumentsForReviewQuery, error) {
	if status == driver.DocumentStatusUnknown {
		status = driver.DocumentStatusPending
	}
	q := ListDocumentsForReviewQuery{status: status, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("adminID", adminID, &q.adminID),
		status.Validate(),
	); err != nil {
		return ListDocumentsForReviewQuery{}, err
	}
	return q, nil
}

func (q ListDocumentsForReviewQuery) Validate() error {
	return q.guard.Validate(ErrListDocumentsForReviewQueryIsNotConstructed)
}

func (q ListDocumentsForReviewQuery) AdminID() kernel.UUID {
	return q.adminID
}

func (q ListDocumentsForReviewQuery) Status() driver.DocumentStatus {
	return q.status
}
