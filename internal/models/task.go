// internal/models/task.go
package models

import "time"

type Label string

const (
	LabelAutomatable Label = "Automatisierbar"
	LabelPartial     Label = "Teilweise Automatisierbar"
	LabelHuman       Label = "Mensch"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type EmploymentType string

const (
	EmploymentEmployee   EmploymentType = "employee"
	EmploymentFreelancer EmploymentType = "freelancer"
)

// Subtask is a finer-grained step of a task, produced by the completion service.
type Subtask struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AutomationPotential int        `json:"automationPotential"`
	EstimatedTime       int        `json:"estimatedTime"` // minutes
	Priority            Priority   `json:"priority"`
	Complexity          Complexity `json:"complexity"`
	Systems             []string   `json:"systems"`
	Risks               []string   `json:"risks"`
	Opportunities       []string   `json:"opportunities"`
	Dependencies        []string   `json:"dependencies"`
}

// BusinessCase is the cost/benefit estimate attached to a task.
// SavedHours is expected to equal ManualHours - AutomatedHours; the producer
// enforces it.
type BusinessCase struct {
	ManualHours          float64        `json:"manualHours"`
	AutomatedHours       float64        `json:"automatedHours"`
	SavedHours           float64        `json:"savedHours"`
	SetupCostHours       float64        `json:"setupCostHours"`
	SetupCostMoney       float64        `json:"setupCostMoney"`
	ROI                  float64        `json:"roi"`
	PaybackPeriodYears   float64        `json:"paybackPeriodYears"`
	HourlyRateEmployee   float64        `json:"hourlyRateEmployee"`
	HourlyRateFreelancer float64        `json:"hourlyRateFreelancer"`
	EmploymentType       EmploymentType `json:"employmentType"`
	Reasoning            string         `json:"reasoning"`
	AutomationPotential  *int           `json:"automationPotential,omitempty"`
}

// TaskDescriptor is the raw task handed from the job parser to classification.
type TaskDescriptor struct {
	Text                string        `json:"text"`
	AutomationPotential *int          `json:"automationPotential,omitempty"`
	Reasoning           string        `json:"reasoning,omitempty"`
	Subtasks            []Subtask     `json:"subtasks,omitempty"`
	BusinessCase        *BusinessCase `json:"businessCase,omitempty"`
	AITools             []string      `json:"aiTools,omitempty"`

	// Derived by the parser conversion step.
	Category   string     `json:"category,omitempty"`
	Complexity Complexity `json:"complexity,omitempty"`
	Trend      Trend      `json:"automationTrend,omitempty"`
	Confidence int        `json:"confidence,omitempty"` // percent
	Pattern    string     `json:"pattern,omitempty"`
	External   bool       `json:"external"`
}

// Task is a classified, aggregation-ready unit of work.
type Task struct {
	Text            string        `json:"text"`
	Score           int           `json:"score"`
	Label           Label         `json:"label"`
	Category        string        `json:"category"`
	Industry        string        `json:"industry"`
	Complexity      Complexity    `json:"complexity"`
	AutomationTrend Trend         `json:"automationTrend"`
	Confidence      float64       `json:"confidence"`
	AutomationRatio int           `json:"automationRatio"`
	HumanRatio      int           `json:"humanRatio"`
	Subtasks        []Subtask     `json:"subtasks,omitempty"`
	BusinessCase    *BusinessCase `json:"businessCase,omitempty"`
	AITools         []string      `json:"aiTools,omitempty"`
	Reasoning       string        `json:"reasoning,omitempty"`
}

type Ratio struct {
	Automatisierbar int `json:"automatisierbar"`
	Mensch          int `json:"mensch"`
}

// AnalysisResult is the terminal artifact of one analysis run.
type AnalysisResult struct {
	ID                         string    `json:"id"`
	TotalScore                 int       `json:"totalScore"`
	Ratio                      Ratio     `json:"ratio"`
	Tasks                      []Task    `json:"tasks"`
	Summary                    string    `json:"summary"`
	Recommendations            []string  `json:"recommendations"`
	OriginalText               string    `json:"originalText"`
	OverallAutomationPotential int       `json:"overallAutomationPotential"`
	ActualAutomationPotential  int       `json:"actualAutomationPotential"`
	UsedFallback               bool      `json:"usedFallback"`
	CreatedAt                  time.Time `json:"createdAt"`
}

// LabelForScore derives the task label from the given thresholds.
func LabelForScore(score, automatableMin, partialMin int) Label {
	switch {
	case score >= automatableMin:
		return LabelAutomatable
	case score >= partialMin:
		return LabelPartial
	default:
		return LabelHuman
	}
}

// ComplexityForScore is the inverse of the score: highly automatable work is
// low complexity.
func ComplexityForScore(score, automatableMin, partialMin int) Complexity {
	switch {
	case score >= automatableMin:
		return ComplexityLow
	case score >= partialMin:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}
