package driver

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")

	// MaxAverageRating bounds SetAverageRating.
	MaxAverageRating = decimal.NewFromInt(5)
)

// Driver is the aggregate root of a driver profile. It is one-to-one with a user account
// and owns the driver's documents.
//
// Driver follows these invariants:
//   - userID is set at creation and never changes
//   - isVerified only ever flips false -> true, on a document approval
//   - totalDeliveries and earnings only grow, through RecordDelivery
//   - at most one document per DocumentType
type Driver struct {
	id              kernel.UUID
	userID          kernel.UUID
	vehicleType     VehicleType
	isVerified      bool
	isActive        bool
	isOnline        bool
	totalDeliveries int
	earnings        kernel.Money
	averageRating   decimal.Decimal
	documents       []*Document
	version         int
	events          kernel.EventRecorder
	guard           guard.ConstructorGuard
}

// NewDriver creates an active, offline, unverified driver profile for a user.
func NewDriver(id, userID kernel.UUID, vehicleType VehicleType) (*Driver, error) {
	d := &Driver{
		isActive:      true,
		earnings:      kernel.ZeroMoney,
		averageRating: decimal.Zero,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot is the persisted state of a driver.
type Snapshot struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	VehicleType     VehicleType
	IsVerified      bool
	IsActive        bool
	IsOnline        bool
	TotalDeliveries int
	Earnings        kernel.Money
	AverageRating   decimal.Decimal
	Documents       []*Document
	Version         int
}

// RestoreDriver rebuilds a driver loaded from storage.
func RestoreDriver(s Snapshot) (*Driver, error) {
	d := &Driver{
		isVerified:    s.IsVerified,
		isActive:      s.IsActive,
		isOnline:      s.IsOnline,
		earnings:      s.Earnings,
		averageRating: s.AverageRating,
		version:       s.Version,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setUserID(s.UserID),
		d.setVehicleType(s.VehicleType),
		d.setTotalDeliveries(s.TotalDeliveries),
		d.setDocuments(s.Documents),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

func (d *Driver) VehicleType() VehicleType {
	return d.vehicleType
}

func (d *Driver) IsVerified() bool {
	return d.isVerified
}

func (d *Driver) IsActive() bool {
	return d.isActive
}

func (d *Driver) IsOnline() bool {
	return d.isOnline
}

func (d *Driver) TotalDeliveries() int {
	return d.totalDeliveries
}

func (d *Driver) Earnings() kernel.Money {
	return d.earnings
}

func (d *Driver) AverageRating() decimal.Decimal {
	return d.averageRating
}

func (d *Driver) Version() int {
	return d.version
}

// BumpVersion is called by the repository after a successful versioned write.
func (d *Driver) BumpVersion() {
	d.version++
}

// Documents returns a copy of the document list.
func (d *Driver) Documents() []*Document {
	out := make([]*Document, len(d.documents))
	copy(out, d.documents)
	return out
}

// Document finds one of the driver's documents by id.
func (d *Driver) Document(id kernel.UUID) (*Document, error) {
	for _, doc := range d.documents {
		if doc.ID().IsEqual(id) {
			return doc, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("document", id.String())
}

func (d *Driver) DomainEvents() []kernel.DomainEvent {
	return d.events.DomainEvents()
}

func (d *Driver) ClearDomainEvents() {
	d.events.ClearDomainEvents()
}

// CanAcceptOrders reports whether the driver passes the strict accept gate.
func (d *Driver) CanAcceptOrders() bool {
	return d.isVerified && d.isActive
}

// SetOnline toggles availability.
func (d *Driver) SetOnline(online bool) {
	d.isOnline = online
}

// CanUpload reports, as a Conflict error, whether an approved document already blocks an
// upload of docType.
func (d *Driver) CanUpload(docType DocumentType) error {
	for _, existing := range d.documents {
		if existing.Type() == docType && existing.IsApproved() {
			return errs.NewConflictErrorWithCause(RuleApprovedExists, fmt.Errorf("type is %s", docType))
		}
	}
	return nil
}

// UploadDocument adds a PENDING document of the given type. A pending or rejected document
// of the same type is replaced; an approved one makes the upload a Conflict.
//
// Example:
//
//	doc, err := d.UploadDocument(kernel.NewUUID(), driver.DocumentTypeIDCard, ref, time.Now())
func (d *Driver) UploadDocument(id kernel.UUID, docType DocumentType, fileRef string, now time.Time) (*Document, error) {
	if err := d.CanUpload(docType); err != nil {
		return nil, err
	}
	doc, err := NewDocument(id, d.id, docType, fileRef, now)
	if err != nil {
		return nil, err
	}

	kept := make([]*Document, 0, len(d.documents)+1)
	for _, existing := range d.documents {
		if existing.Type() != docType {
			kept = append(kept, existing)
		}
	}

	d.documents = append(kept, doc)
	return doc, nil
}

// ApproveDocument approves one of the driver's documents and re-evaluates verification.
// Only admins may approve.
func (d *Driver) ApproveDocument(reviewer user.Actor, documentID kernel.UUID, now time.Time) (*Document, error) {
	if !reviewer.IsAdmin() {
		return nil, errs.NewForbiddenError(RuleOnlyAdminReview)
	}
	doc, err := d.Document(documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.approve(now); err != nil {
		return nil, err
	}

	d.recordReview(doc, reviewer, now)
	d.refreshVerification(now)
	return doc, nil
}

// RejectDocument rejects one of the driver's documents. The reason must not be blank.
// Rejection never revokes verification.
func (d *Driver) RejectDocument(reviewer user.Actor, documentID kernel.UUID, reason string, now time.Time) (*Document, error) {
	if !reviewer.IsAdmin() {
		return nil, errs.NewForbiddenError(RuleOnlyAdminReview)
	}
	doc, err := d.Document(documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.reject(reason); err != nil {
		return nil, err
	}

	d.recordReview(doc, reviewer, now)
	return doc, nil
}

// RecordDelivery adds one delivery and its earnings to the statistics.
func (d *Driver) RecordDelivery(earnings kernel.Money) error {
	if earnings.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("earnings", fmt.Errorf("%s is negative", earnings))
	}
	d.totalDeliveries++
	d.earnings = d.earnings.Add(earnings)
	return nil
}

// SetAverageRating stores a recomputed rating average, rounded to two places.
func (d *Driver) SetAverageRating(avg decimal.Decimal) error {
	if avg.IsNegative() || avg.GreaterThan(MaxAverageRating) {
		return errs.NewValueIsOutOfRangeError("averageRating", avg, 0, MaxAverageRating)
	}
	d.averageRating = avg.Round(2)
	return nil
}

// HasAllRequiredDocuments reports whether every required type has an approved document.
func (d *Driver) HasAllRequiredDocuments() bool {
	approved := make(map[DocumentType]bool, len(d.documents))
	for _, doc := range d.documents {
		if doc.IsApproved() {
			approved[doc.Type()] = true
		}
	}
	for _, t := range RequiredDocumentTypes {
		if !approved[t] {
			return false
		}
	}
	return true
}

func (d *Driver) refreshVerification(now time.Time) {
	if d.isVerified || !d.HasAllRequiredDocuments() {
		return
	}
	d.isVerified = true
	d.events.Record(VerifiedEvent{
		ID:       kernel.NewUUID(),
		DriverID: d.id,
		UserID:   d.userID,
		At:       now.UTC(),
	})
}

func (d *Driver) recordReview(doc *Document, reviewer user.Actor, now time.Time) {
	d.events.Record(DocumentReviewedEvent{
		ID:         kernel.NewUUID(),
		DriverID:   d.id,
		DocumentID: doc.ID(),
		Type:       doc.Type().String(),
		Status:     doc.Status().String(),
		ReviewerID: reviewer.ID,
		Reason:     doc.RejectionReason(),
		At:         now.UTC(),
	})
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	d.userID = id
	return nil
}

func (d *Driver) setVehicleType(v VehicleType) error {
	if err := v.Validate(); err != nil {
		return err
	}
	d.vehicleType = v
	return nil
}

func (d *Driver) setTotalDeliveries(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("totalDeliveries", n, 0, "+Inf")
	}
	d.totalDeliveries = n
	return nil
}

func (d *Driver) setDocuments(docs []*Document) error {
	seen := make(map[DocumentType]bool, len(docs))
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		if seen[doc.Type()] {
			return errs.NewValueIsInvalidErrorWithCause("documents", fmt.Errorf("duplicate %s document", doc.Type()))
		}
		seen[doc.Type()] = true
	}
	d.documents = docs
	return nil
}
