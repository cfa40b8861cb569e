// Package calculator holds the founder tools: equity advice, valuation ranges, the accelerator readiness checklist
// and the investor tier list.
//
// Every calculator is a pure function over static lookup tables. Unknown inputs resolve to documented defaults
// instead of failing.
package calculator

import "math"

// round2 rounds to two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100 //nolint:mnd // two decimals
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
