package guard_test

import (
	"errors"
	"testing"

	"parcel/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errScoreIsNotConstructed = errors.New("score must be created via newScore")

type score struct {
	value int
	guard guard.ConstructorGuard
}

func newScore(v int) score {
	return score{value: v, guard: guard.NewConstructorGuard()}
}

func (s score) Validate() error {
	return s.guard.Validate(errScoreIsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name     string
		guard    guard.ConstructorGuard
		custom   error
		expected error
	}{
		{"constructed with custom error", guard.NewConstructorGuard(), errScoreIsNotConstructed, nil},
		{"constructed without custom error", guard.NewConstructorGuard(), nil, nil},
		{"zero value returns the custom error", guard.ConstructorGuard{}, errScoreIsNotConstructed, errScoreIsNotConstructed},
		{"zero value falls back to the default", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.custom)

			if tt.expected == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("constructor-built value is valid", func(t *testing.T) {
		require.NoError(t, newScore(4).Validate())
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var s score

		require.ErrorIs(t, s.Validate(), errScoreIsNotConstructed)
	})

	t.Run("copies keep the constructed state", func(t *testing.T) {
		original := newScore(5)
		copied := original

		require.NoError(t, copied.Validate())
		assert.Equal(t, original, copied)
	})

	t.Run("values in a slice are checked one by one", func(t *testing.T) {
		scores := []score{newScore(1), {}, newScore(3)}

		var invalid int
		for _, s := range scores {
			if s.Validate() != nil {
				invalid++
			}
		}

		assert.Equal(t, 1, invalid)
	})
}
