// internal/workers/analysis/analyze-job/models.go
package analyzejob

import "automation-advisor/internal/models"

type Input struct {
	JobText string `json:"jobText"`
	Lang    string `json:"lang,omitempty"`
}

// Output is the analysis result, flattened into the process variables.
type Output struct {
	models.AnalysisResult
}
