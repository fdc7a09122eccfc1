// internal/models/workflow.go
package models

// CandidateSolution is a pre-built automation workflow evaluated against a task.
type CandidateSolution struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Complexity         string   `json:"complexity"` // Low, Medium, High
	Integrations       []string `json:"integrations"`
	Tags               []string `json:"tags,omitempty"`
	TriggerType        string   `json:"triggerType"`
	Source             string   `json:"source"`
	IsAIGenerated      bool     `json:"isAIGenerated"`
	Verified           bool     `json:"verified"`
	VerificationStatus string   `json:"verificationStatus,omitempty"`
	Rating             float64  `json:"rating"`
	Popularity         int      `json:"popularity"`
	Downloads          int      `json:"downloads"`
}

// ScoredRecommendation wraps a candidate with its relevance for one request.
type ScoredRecommendation struct {
	Workflow   CandidateSolution `json:"workflow"`
	Score      float64           `json:"score"`
	Reason     string            `json:"reason"`
	Confidence float64           `json:"confidence"`
}

const (
	SolutionComplexityLow    = "Low"
	SolutionComplexityMedium = "Medium"
	SolutionComplexityHigh   = "High"
)
