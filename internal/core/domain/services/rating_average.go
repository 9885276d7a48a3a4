package services

import (
	"github.com/shopspring/decimal"
)

// AverageScore is the arithmetic mean of scores rounded half-up to two places. No scores
// average to zero.
func AverageScore(scores []int) decimal.Decimal {
	if len(scores) == 0 {
		return decimal.Zero
	}
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(len(scores))), 2)
}
