// internal/analysis/roi/potential.go
package roi

import "math"

// OverallAutomationPotential is the rounded arithmetic mean of the task
// scores. It drives the summary and recommendation bands.
func OverallAutomationPotential(scores []float64) int {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return clampResult(sum / float64(len(scores)))
}

// ActualAutomationPotential is the share of the maximum possible score that
// the tasks reach. It feeds the automation ratio.
func ActualAutomationPotential(scores []float64) int {
	maxTotal := float64(len(scores)) * 100
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return clampResult(sum / maxTotal * 100)
}

// clampResult rounds v into [0,100]; NaN and infinities become 0.
func clampResult(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
