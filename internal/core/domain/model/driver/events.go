package driver

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
)

const (
	EventNameDocumentReviewed = "driver.document_reviewed"
	EventNameVerified         = "driver.verified"
)

// DocumentReviewedEvent is recorded when an admin approves or rejects a document.
type DocumentReviewedEvent struct {
	ID         kernel.UUID `json:"eventId"`
	DriverID   kernel.UUID `json:"driverId"`
	DocumentID kernel.UUID `json:"documentId"`
	Type       string      `json:"type"`
	Status     string      `json:"status"`
	ReviewerID kernel.UUID `json:"reviewerId"`
	Reason     string      `json:"reason,omitempty"`
	At         time.Time   `json:"occurredAt"`
}

func (e DocumentReviewedEvent) EventID() kernel.UUID { return e.ID }
func (e DocumentReviewedEvent) EventName() string { return EventNameDocumentReviewed }
func (e DocumentReviewedEvent) AggregateID() kernel.UUID { return e.DriverID }
func (e DocumentReviewedEvent) OccurredAt() time.Time { return e.At }

// VerifiedEvent is recorded once, when the driver passes the verification gate.
type VerifiedEvent struct {
	ID       kernel.UUID `json:"eventId"`
	DriverID kernel.UUID `json:"driverId"`
	UserID   kernel.UUID `json:"userId"`
	At       time.Time   `json:"occurredAt"`
}

func (e VerifiedEvent) EventID() kernel.UUID { return e.ID }
func (e VerifiedEvent) EventName() string { return EventNameVerified }
func (e VerifiedEvent) AggregateID() kernel.UUID { return e.DriverID }
func (e VerifiedEvent) OccurredAt() time.Time { return e.At }
