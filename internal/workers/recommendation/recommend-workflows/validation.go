// internal/workers/recommendation/recommend-workflows/validation.go
package recommendworkflows

import "automation-advisor/internal/common/validation"

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {
    "taskText": {"type": "string", "maxLength": 20000},
    "subtaskId": {"type": "string"},
    "subtasks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "systems": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "selectedIntegrations": {"type": "array", "items": {"type": "string"}},
    "topK": {"type": "integer", "minimum": 0, "maximum": 50}
  },
  "anyOf": [
    {"required": ["taskText"], "properties": {"taskText": {"minLength": 1}}},
    {"required": ["subtasks"], "properties": {"subtasks": {"minItems": 1}}}
  ]
}`)
