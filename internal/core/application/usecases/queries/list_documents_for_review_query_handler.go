package queries

import (
	"context"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListDocumentsForReviewQueryHandler struct {
	db *gorm.DB
}

func NewListDocumentsForReviewQueryHandler(db *gorm.DB) ListDocumentsForReviewQueryHandler {
	return ListDocumentsForReviewQueryHandler{db: db}
}

func (h ListDocumentsForReviewQueryHandler) Handle(
	ctx context.Context,
	query ListDocumentsForReviewQuery,
) ([]DocumentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller, err := loadCaller(ctx, h.db, query.AdminID())
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, errs.NewForbiddenError(driver.RuleOnlyAdminReview)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+documentColumns+`
		FROM driver_documents d
		JOIN drivers dr ON dr.id = d.driver_id
		WHERE d.status = ?
		ORDER BY d.uploaded_at, d.id
		LIMIT ?
	`, query.Status().String(), DefaultReviewQueueLimit).Rows()
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}
