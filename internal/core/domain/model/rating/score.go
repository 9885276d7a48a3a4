package rating

import (
	"errors"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	MinScore = 1
	MaxScore = 5
)

var ErrScoreIsNotConstructed = errors.New("Score must be created via NewScore constructor")

// Score is an integer rating in [MinScore, MaxScore].
type Score struct {
	value int
	guard guard.ConstructorGuard
}

func NewScore(v int) (Score, error) {
	if v < MinScore || v > MaxScore {
		return Score{}, errs.NewValueIsOutOfRangeError("rating", v, MinScore, MaxScore)
	}
	return Score{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (s Score) Validate() error {
	return s.guard.Validate(ErrScoreIsNotConstructed)
}

func (s Score) Int() int {
	return s.value
}
