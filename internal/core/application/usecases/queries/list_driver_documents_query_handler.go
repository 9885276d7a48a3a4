package queries

import (
	"context"
	"database/sql"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// documentColumns is the select list scanDocuments expects.
const documentColumns = `
	d.id,
	d.driver_id,
	dr.user_id,
	d.type,
	d.file_ref,
	d.status,
	d.rejection_reason,
	d.uploaded_at,
	d.verified_at`

type ListDriverDocumentsQueryHandler struct {
	db *gorm.DB
}

func NewListDriverDocumentsQueryHandler(db *gorm.DB) ListDriverDocumentsQueryHandler {
	return ListDriverDocumentsQueryHandler{db: db}
}

// Handle returns NotFound when the user has no driver profile.
func (h ListDriverDocumentsQueryHandler) Handle(
	ctx context.Context,
	query ListDriverDocumentsQuery,
) ([]DocumentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var count int64
	if err := db.Raw(`SELECT COUNT(*) FROM drivers WHERE user_id = ?`,
		query.DriverUserID().Bytes()).Row().Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("driver", query.DriverUserID().String())
	}

	rows, err := db.Raw(`
		SELECT `+documentColumns+`
		FROM driver_documents d
		JOIN drivers dr ON dr.id = d.driver_id
		WHERE dr.user_id = ?
		ORDER BY d.uploaded_at DESC, d.id
	`, query.DriverUserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]DocumentView, error) {
	defer rows.Close()

	docs := make([]DocumentView, 0)
	for rows.Next() {
		var (
			v                    DocumentView
			id, driverID, userID uuid.UUID
		)
		err := rows.Scan(
			&id,
			&driverID,
			&userID,
			&v.Type,
			&v.FileRef,
			&v.Status,
			&v.RejectionReason,
			&v.UploadedAt,
			&v.VerifiedAt,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		if v.DriverUserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		v.UploadedAt = v.UploadedAt.UTC()
		v.VerifiedAt = utc(v.VerifiedAt)
		docs = append(docs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
