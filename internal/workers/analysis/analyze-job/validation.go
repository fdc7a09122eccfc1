// internal/workers/analysis/analyze-job/validation.go
package analyzejob

import "automation-advisor/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["jobText"],
  "properties": {
    "jobText": {"type": "string", "minLength": 1, "maxLength": 100000},
    "lang": {"type": "string", "enum": ["de", "en", "DE", "EN", ""]}
  }
}`)
