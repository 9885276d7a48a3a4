package queries

import (
	"context"

	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

// RuleNotDocumentOwner is returned when a caller reads another driver's document.
const RuleNotDocumentOwner = "caller does not own the document"

type GetDocumentQueryHandler struct {
	db *gorm.DB
}

func NewGetDocumentQueryHandler(db *gorm.DB) GetDocumentQueryHandler {
	return GetDocumentQueryHandler{db: db}
}

func (h GetDocumentQueryHandler) Handle(ctx context.Context, query GetDocumentQuery) (DocumentView, error) {
	if err := query.Validate(); err != nil {
		return DocumentView{}, err
	}

	caller, err := loadCaller(ctx, h.db, query.CallerID())
	if err != nil {
		return DocumentView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+documentColumns+`
		FROM driver_documents d
		JOIN drivers dr ON dr.id = d.driver_id
		WHERE d.id = ?
	`, query.DocumentID().Bytes()).Rows()
	if err != nil {
		return DocumentView{}, err
	}
	docs, err := scanDocuments(rows)
	if err != nil {
		return DocumentView{}, err
	}
	if len(docs) == 0 {
		return DocumentView{}, errs.NewObjectNotFoundError("document", query.DocumentID().String())
	}

	doc := docs[0]
	if !caller.IsAdmin() && !caller.Is(doc.DriverUserID) {
		return DocumentView{}, errs.NewForbiddenError(RuleNotDocumentOwner)
	}
	return doc, nil
}
