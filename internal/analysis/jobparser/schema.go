// internal/analysis/jobparser/schema.go
package jobparser

import "automation-advisor/internal/common/validation"

// completionSchema is the shape the completion service must return. A
// document that fails it is a hard failure, not a fallback.
var completionSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "automationPotential": {"type": "number", "minimum": 0, "maximum": 100},
          "reasoning": {"type": "string"},
          "category": {"type": "string"},
          "aiTools": {"type": "array", "items": {"type": "string"}},
          "subtasks": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "automationPotential": {"type": "number"},
                "estimatedTime": {"type": "number"},
                "priority": {"type": "string"},
                "complexity": {"type": "string"},
                "systems": {"type": "array", "items": {"type": "string"}},
                "risks": {"type": "array", "items": {"type": "string"}},
                "opportunities": {"type": "array", "items": {"type": "string"}},
                "dependencies": {"type": "array", "items": {"type": "string"}}
              }
            }
          },
          "businessCase": {
            "type": "object",
            "properties": {
              "manualHours": {"type": "number"},
              "automatedHours": {"type": "number"},
              "savedHours": {"type": "number"},
              "setupCostHours": {"type": "number"},
              "setupCostMoney": {"type": "number"},
              "roi": {"type": "number"},
              "paybackPeriodYears": {"type": "number"},
              "hourlyRateEmployee": {"type": "number"},
              "hourlyRateFreelancer": {"type": "number"},
              "employmentType": {"type": "string", "enum": ["employee", "freelancer"]},
              "reasoning": {"type": "string"},
              "automationPotential": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`)

type completionResponse struct {
	Tasks []completionTask `json:"tasks"`
}

type completionTask struct {
	Text                string              `json:"text"`
	AutomationPotential *float64            `json:"automationPotential"`
	Reasoning           string              `json:"reasoning"`
	Category            string              `json:"category"`
	AITools             []string            `json:"aiTools"`
	Subtasks            []completionSubtask `json:"subtasks"`
	BusinessCase        *completionBusiness `json:"businessCase"`
}

type completionSubtask struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	AutomationPotential float64  `json:"automationPotential"`
	EstimatedTime       float64  `json:"estimatedTime"`
	Priority            string   `json:"priority"`
	Complexity          string   `json:"complexity"`
	Systems             []string `json:"systems"`
	Risks               []string `json:"risks"`
	Opportunities       []string `json:"opportunities"`
	Dependencies        []string `json:"dependencies"`
}

type completionBusiness struct {
	ManualHours          float64  `json:"manualHours"`
	AutomatedHours       float64  `json:"automatedHours"`
	SavedHours           float64  `json:"savedHours"`
	SetupCostHours       float64  `json:"setupCostHours"`
	SetupCostMoney       float64  `json:"setupCostMoney"`
	ROI                  float64  `json:"roi"`
	PaybackPeriodYears   float64  `json:"paybackPeriodYears"`
	HourlyRateEmployee   float64  `json:"hourlyRateEmployee"`
	HourlyRateFreelancer float64  `json:"hourlyRateFreelancer"`
	EmploymentType       string   `json:"employmentType"`
	Reasoning            string   `json:"reasoning"`
	AutomationPotential  *float64 `json:"automationPotential"`
}
