// Package kernel provides the domain primitives shared by every aggregate of
// the parcel marketplace.
//
// The package includes:
//   - UUID: opaque identifier value object
//   - Money: cent-precision decimal amount with half-up rounding
//   - Location: validated lat/lng pair with haversine distance
//   - DomainEvent and EventRecorder: events recorded by aggregates for the outbox
//
// Value objects here are immutable and safe for concurrent use. Their zero
// values are invalid wherever a constructor exists.
package kernel
