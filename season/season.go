// Package season maps the continuous time period onto the 52-unit seasonal
// cycle. Both curves are pure functions of the time period; the phase
// constants differ deliberately so food peaks in summer while movement is
// cheapest in summer.
package season

import "math"

// CycleLength is the length of one full seasonal cycle in time units.
const CycleLength = 52.0

// angle converts a time period to its position on the cycle in radians.
func angle(timePeriod float64) float64 {
	return math.Mod(timePeriod, CycleLength) * (2 * math.Pi / CycleLength)
}

// FoodMultiplier scales food growth and capacity.
// Ranges from 0.4 at t=0 (winter) to 1.6 at t=26 (summer).
func FoodMultiplier(timePeriod float64) float64 {
	return 1.0 + 0.6*math.Cos(angle(timePeriod)-math.Pi)
}

// CostMultiplier scales agent movement cost.
// Ranges from 1.5 at t=0 (winter) to 0.5 at t=26 (summer).
func CostMultiplier(timePeriod float64) float64 {
	return 1.0 + 0.5*math.Cos(angle(timePeriod))
}

// Name returns the season for a time period, dividing the cycle into four
// 13-unit quarters.
func Name(timePeriod float64) string {
	names := [4]string{"Winter", "Spring", "Summer", "Autumn"}
	idx := int(math.Mod(timePeriod, CycleLength) / (CycleLength / 4))
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return names[idx]
}
