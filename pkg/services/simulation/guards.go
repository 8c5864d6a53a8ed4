package simulation

import "math"

const (
	// MarginFloor keeps breakeven finite when price <= variable cost.
	MarginFloor = 1e-3
	// DemandFloor keeps the safety margin finite when demand is zero.
	DemandFloor = 1e-3
)

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// SafeDivide divides a by b, raising b to floor first.
// The floor is applied as a lower bound, so a negative or zero b never flips the sign.
func SafeDivide(a, b, floor float64) float64 {
	return a / math.Max(b, floor)
}

// Round rounds x to the given number of decimal places, ties to even.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}
