package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrGetDocumentQueryIsNotConstructed = errors.New(
	"GetDocumentQuery must be created via NewGetDocumentQuery constructor",
)

// GetDocumentQuery reads one driver document. The owning driver and admins may read it.
type GetDocumentQuery struct {
	documentID kernel.UUID
	callerID   kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDocumentQuery(documentID, callerID kernel.UUID) (GetDocumentQuery, error) {
	q := GetDocumentQuery{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		requireID("documentID", documentID, &q.documentID),
		requireID("callerID", callerID, &q.callerID),
	); err != nil {
		return GetDocumentQuery{}, err
	}
	return q, nil
}

func (q GetDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentQueryIsNotConstructed)
}

func (q GetDocumentQuery) DocumentID() kernel.UUID {
	return q.documentID
}

func (q GetDocumentQuery) CallerID() kernel.UUID {
	return q.callerID
}
