package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrListDriverDocumentsQueryIsNotConstructed = errors.New(
	"ListDriverDocumentsQuery must be created via NewListDriverDocumentsQuery constructor",
)

// ListDriverDocumentsQuery lists a driver's own documents, newest first. The driver is
// addressed by user id.
type ListDriverDocumentsQuery struct {
	driverUserID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewListDriverDocumentsQuery(driverUserID kernel.UUID) (ListDriverDocumentsQuery, error) {
	q := ListDriverDocumentsQuery{guard: guard.NewConstructorGuard()}
	if err := requireID("driverUserID", driverUserID, &q.driverUserID); err != nil {
		return ListDriverDocumentsQuery{}, err
	}
	return q, nil
}

func (q ListDriverDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrListDriverDocumentsQueryIsNotConstructed)
}

func (q ListDriverDocumentsQuery) DriverUserID() kernel.UUID {
	return q.driverUserID
}
