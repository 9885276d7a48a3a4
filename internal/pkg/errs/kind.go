package errs

import "errors"

// Kind is the coarse classification transports use to pick a status code
// and clients use to decide whether a retry makes sense.
type Kind int

const (
	// KindInternal covers storage failures and anything unclassified.
	// Safe to retry.
	KindInternal Kind = iota
	// KindValidation covers malformed or missing input. Retrying is pointless.
	KindValidation
	// KindForbidden covers a wrong role or a non-participant caller.
	KindForbidden
	// KindNotFound covers missing entities.
	KindNotFound
	// KindConflict covers state machine violations and lost races.
	// Retry after refetching.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// KindOf classifies err by the sentinel it wraps. Joined errors are
// classified by their most severe client-facing member, so a join of a
// Forbidden and a Validation error is Forbidden.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindValidation
	default:
		return KindInternal
	}
}

// IsRetryableConflict reports whether err is a stale optimistic-lock version,
// which a command can resolve by reloading and re-running itself.
func IsRetryableConflict(err error) bool {
	return errors.Is(err, ErrVersionIsInvalid)
}

// FieldViolation is one field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldViolations flattens err, including errors.Join trees, into the
// field-level validation failures it carries. Non-validation members are
// skipped.
func FieldViolations(err error) []FieldViolation {
	var out []FieldViolation
	walk(err, func(e error) {
		switch v := e.(type) {
		case *ValueIsInvalidError:
			out = append(out, FieldViolation{Field: v.ParamName, Message: v.Error()})
		case *ValueIsRequiredError:
			out = append(out, FieldViolation{Field: v.ParamName, Message: v.Error()})
		case *ValueIsOutOfRangeError:
			out = append(out, FieldViolation{Field: v.ParamName, Message: v.Error()})
		}
	})
	return out
}

func walk(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)
	switch u := err.(type) { //nolint:errorlint // walking the tree by hand
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		inner := u.Unwrap()
		// typed errors unwrap to their sentinel, nothing below it to visit
		if inner != nil && inner != err {
			walk(inner, visit)
		}
	}
}
