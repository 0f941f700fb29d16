// Package ledger provides pure money arithmetic for the game engine.
// All functions are side-effect free.
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the balance tolerance in dollars. Cash-out totals are
// entered by hand as floating-point cents, so sub-cent drift must not block
// completion.
const DefaultTolerance = 0.01

// Profit is a player's net result: cash-out minus total invested.
func Profit(buyIn, rebuyAmount, cashOut float64) float64 {
	return cashOut - (buyIn + rebuyAmount)
}

// IsBalanced reports whether total buy-ins and total cash-outs match within
// DefaultTolerance.
func IsBalanced(totalBuyIn, totalCashOut float64) bool {
	return IsBalancedWithin(totalBuyIn, totalCashOut, DefaultTolerance)
}

// IsBalancedWithin reports whether the totals match within the given
// tolerance.
func IsBalancedWithin(totalBuyIn, totalCashOut, tolerance float64) bool {
	return math.Abs(totalBuyIn-totalCashOut) < tolerance
}

// Round2 rounds to 2 decimal places, half away from zero. Settlement amounts
// are rounded with this at creation time.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SafeDivide returns num/den, or 0 when the division is undefined. Games
// with zero participants or zero profit variance must not leak NaN or Inf
// into settlement math.
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	result := num / den
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// SafeAverage returns the mean of values, or 0 for an empty slice.
func SafeAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return SafeDivide(sum, float64(len(values)))
}

// SafePercentage returns part/whole as a percentage, or 0 when whole is zero.
func SafePercentage(part, whole float64) float64 {
	return SafeDivide(part, whole) * 100
}
