// Package driver provides the Driver aggregate: a driver profile owned by a
// user account together with the documents that gate verification.
//
// The package includes:
//   - Driver: the aggregate root holding availability flags, delivery
//     statistics and the document collection
//   - Document: an uploaded driver document and its review state
//   - DocumentType and DocumentStatus: the document enumerations
//
// Key business rules:
//   - A driver is verified once every required document type has an approved
//     document. Verification is re-evaluated on approval only and is never
//     revoked.
//   - At most one document per type; uploading over an approved document is a
//     conflict, uploading over a pending or rejected one replaces it
//   - Only admins review documents; rejection needs a reason
//   - Statistics change only through RecordDelivery and SetAverageRating
package driver
