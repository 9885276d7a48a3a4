// Package services provides stateless domain services that do not belong to a
// single aggregate.
//
// The package includes:
//   - PricingEngine: computes the pricing snapshot of a new order
//   - OrderCodeGenerator: generates order numbers and QR tokens
//   - AverageScore: the rating mean stored on a driver profile
//
// Everything here is deterministic given its inputs, except the random part
// of generated codes.
package services
