// Package guard holds ConstructorGuard, the marker that lets aggregates,
// value objects and commands tell a constructor-built value from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller supplies no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by the
// owning type's constructor. The zero value fails Validate.
//
// Example:
//
//	type Score struct {
//	    value int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewScore(v int) (Score, error) {
//	    if v < 1 || v > 5 {
//	        return Score{}, errs.NewValueIsOutOfRangeError("score", v, 1, 5)
//	    }
//	    return Score{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s Score) Validate() error {
//	    return s.guard.Validate(ErrScoreIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
