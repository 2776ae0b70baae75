// Package service implements the application use cases over the scored
// customer snapshot: portfolio aggregation, intervention economics, ad-hoc
// scoring and listing.
package service

import "math"

// roundTo rounds to the given number of decimal places. Response figures are
// rounded once here at the aggregation edge, never inside the domain layer.
func roundTo(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}

// meanSkipNaN averages the values that carry a real measurement. An all-NaN
// or empty input yields 0 rather than NaN so response fields stay numeric.
func meanSkipNaN(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// pctRate returns part/whole as a percentage, 0 when whole is 0.
func pctRate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
