// internal/workers/recommendation/recommend-workflows/models.go
package recommendworkflows

import "automation-advisor/internal/models"

type Input struct {
	TaskText             string           `json:"taskText"`
	SubtaskID            string           `json:"subtaskId,omitempty"`
	Subtasks             []models.Subtask `json:"subtasks,omitempty"`
	SelectedIntegrations []string         `json:"selectedIntegrations,omitempty"`
	TopK                 int              `json:"topK,omitempty"`
}

type Output struct {
	Recommendations []models.ScoredRecommendation `json:"recommendations"`
	Strategy        string                        `json:"strategy"`
	Cached          bool                          `json:"cached"`
}
