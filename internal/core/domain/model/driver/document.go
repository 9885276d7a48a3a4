package driver

import (
	"errors"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	// ErrDocumentIsNotConstructed is returned when a Document was not created through
	// NewDocument or RestoreDocument.
	ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument constructor")
)

// Document is an uploaded driver document. It belongs to exactly one Driver and is only
// changed through the owning aggregate.
type Document struct {
	id       kernel.UUID
	driverID kernel.UUID
	docType  DocumentType

	// fileRef is the key the blob store returned for the uploaded file
	fileRef string

	status          DocumentStatus
	rejectionReason string
	uploadedAt      time.Time
	verifiedAt      *time.Time
	guard           guard.ConstructorGuard
}

// NewDocument creates a PENDING document.
func NewDocument(id, driverID kernel.UUID, docType DocumentType, fileRef string, now time.Time) (*Document, error) {
	d := &Document{
		status:     DocumentStatusPending,
		uploadedAt: now.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDriverID(driverID),
		d.setType(docType),
		d.setFileRef(fileRef),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDocument rebuilds a document loaded from storage.
func RestoreDocument(
	id, driverID kernel.UUID,
	docType DocumentType,
	fileRef string,
	status DocumentStatus,
	rejectionReason string,
	uploadedAt time.Time,
	verifiedAt *time.Time,
) (*Document, error) {
	d := &Document{
		rejectionReason: rejectionReason,
		uploadedAt:      uploadedAt,
		verifiedAt:      verifiedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDriverID(driverID),
		d.setType(docType),
		d.setFileRef(fileRef),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Document) Validate() error {
	if d == nil {
		return ErrDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

func (d *Document) IsEqual(other *Document) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Document) ID() kernel.UUID {
	return d.id
}

func (d *Document) DriverID() kernel.UUID {
	return d.driverID
}

func (d *Document) Type() DocumentType {
	return d.docType
}

func (d *Document) FileRef() string {
	return d.fileRef
}

func (d *Document) Status() DocumentStatus {
	return d.status
}

func (d *Document) RejectionReason() string {
	return d.rejectionReason
}

func (d *Document) UploadedAt() time.Time {
	return d.uploadedAt
}

// VerifiedAt is set when the document is approved and cleared when it is rejected.
func (d *Document) VerifiedAt() *time.Time {
	return d.verifiedAt
}

func (d *Document) IsApproved() bool {
	return d.status == DocumentStatusApproved
}

func (d *Document) approve(now time.Time) error {
	next, err := d.status.Approve()
	if err != nil {
		return err
	}
	at := now.UTC()
	d.status = next
	d.verifiedAt = &at
	d.rejectionReason = ""
	return nil
}

func (d *Document) reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	next, err := d.status.Reject()
	if err != nil {
		return err
	}
	d.status = next
	d.rejectionReason = reason
	d.verifiedAt = nil
	return nil
}

func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Document) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverID", err)
	}
	d.driverID = id
	return nil
}

func (d *Document) setType(t DocumentType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.docType = t
	return nil
}

func (d *Document) setFileRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("fileRef")
	}
	d.fileRef = ref
	return nil
}

func (d *Document) setStatus(s DocumentStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}
