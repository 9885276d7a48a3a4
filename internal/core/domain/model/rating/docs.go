// Package rating provides the Rating aggregate: one post-delivery score that
// one order participant gives the other.
//
// The rater never names the target. NewRating derives it from the order:
// the customer rates the driver and the driver rates the customer.
package rating
