// Package order provides the Order aggregate of the parcel marketplace: a
// single delivery request from creation to a terminal state.
//
// The package includes:
//   - Order: the aggregate root holding identity, parcel details, the
//     immutable pricing snapshot and lifecycle timestamps
//   - Status: the state machine enforcing legal transitions
//   - Action: the transitions a caller may request
//   - Pricing: the monetary snapshot computed once at creation
//
// Key business rules:
//   - Status flows PENDING -> ACCEPTED -> PICKED_UP -> DELIVERED; CANCELLED and
//     REFUNDED are terminal side exits. IN_TRANSIT is a valid pre-state for
//     delivery but no transition enters it.
//   - A driver is assigned exactly once, on accept
//   - Lifecycle timestamps are set once and never overwritten
//   - Failed preconditions return Forbidden (wrong actor) or Conflict (wrong
//     state) errors naming the violated rule; nothing is silently ignored
package order
