// Package driverrepo maps driver aggregates to the drivers table and their documents to
// driver_documents.
package driverrepo

import (
	"time"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DriverDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	VehicleType     string          `gorm:"size:16;not null"`
	IsVerified      bool            `gorm:"not null;default:false"`
	IsActive        bool            `gorm:"not null"`
	IsOnline        bool            `gorm:"not null;default:false"`
	TotalDeliveries int             `gorm:"not null;default:0"`
	Earnings        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AverageRating   decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	Version         int             `gorm:"not null;default:0"`
	Documents       []DocumentDTO   `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// DocumentDTO is one uploaded document. A driver has at most one row per type.
type DocumentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_driver_documents_driver_type"`
	Type            string    `gorm:"size:32;not null;uniqueIndex:idx_driver_documents_driver_type"`
	FileRef         string    `gorm:"not null"`
	Status          string    `gorm:"size:16;index;not null"`
	RejectionReason string
	UploadedAt      time.Time `gorm:"index;not null"`
	VerifiedAt      *time.Time
}

func (DocumentDTO) TableName() string {
	return "driver_documents"
}

func fromDomain(d *driver.Driver) DriverDTO {
	docs := make([]DocumentDTO, 0, len(d.Documents()))
	for _, doc := range d.Documents() {
		docs = append(docs, documentFromDomain(doc))
	}

	return DriverDTO{
		ID:              d.ID().Bytes(),
		UserID:          d.UserID().Bytes(),
		VehicleType:     d.VehicleType().String(),
		IsVerified:      d.IsVerified(),
		IsActive:        d.IsActive(),
		IsOnline:        d.IsOnline(),
		TotalDeliveries: d.TotalDeliveries(),
		Earnings:        d.Earnings().Decimal(),
		AverageRating:   d.AverageRating(),
		Version:         d.Version(),
		Documents:       docs,
	}
}

func documentFromDomain(doc *driver.Document) DocumentDTO {
	return DocumentDTO{
		ID:              doc.ID().Bytes(),
		DriverID:        doc.DriverID().Bytes(),
		Type:            doc.Type().String(),
		FileRef:         doc.FileRef(),
		Status:          doc.Status().String(),
		RejectionReason: doc.RejectionReason(),
		UploadedAt:      doc.UploadedAt(),
		VerifiedAt:      doc.VerifiedAt(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	vehicleType, err := driver.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	docs := make([]*driver.Document, 0, len(dto.Documents))
	for _, docDTO := range dto.Documents {
		doc, docErr := documentToDomain(docDTO)
		if docErr != nil {
			return nil, docErr
		}
		docs = append(docs, doc)
	}

	return driver.RestoreDriver(driver.Snapshot{
		ID:              id,
		UserID:          userID,
		VehicleType:     vehicleType,
		IsVerified:      dto.IsVerified,
		IsActive:        dto.IsActive,
		IsOnline:        dto.IsOnline,
		TotalDeliveries: dto.TotalDeliveries,
		Earnings:        kernel.NewMoney(dto.Earnings),
		AverageRating:   dto.AverageRating,
		Documents:       docs,
		Version:         dto.Version,
	})
}

func documentToDomain(dto DocumentDTO) (*driver.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	docType, err := driver.ParseDocumentType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseDocumentStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDocument(id, driverID, docType, dto.FileRef, status, dto.RejectionReason,
		dto.UploadedAt, dto.VerifiedAt)
}
