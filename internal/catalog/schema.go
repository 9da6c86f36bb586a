// internal/catalog/schema.go
package catalog

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const entrySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "requiredTraits"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "category": {"type": "string"},
    "requiredTraits": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["weight"],
        "properties": {
          "weight": {"type": "number", "minimum": 0},
          "minimum": {"type": "number", "minimum": 0, "maximum": 1},
          "direction": {"enum": ["high", "low"]}
        }
      }
    },
    "requirements": {
      "type": "object",
      "properties": {
        "minBudget": {"type": "number", "minimum": 0},
        "minWeeklyHours": {"type": "number", "minimum": 0},
        "monthsToFirstIncome": {"type": "number", "minimum": 0},
        "monthlyIncomePotential": {"type": "number", "minimum": 0}
      }
    },
    "requiredFlags": {"type": "array", "items": {"type": "string"}},
    "pros": {"type": "array", "items": {"type": "string"}},
    "cons": {"type": "array", "items": {"type": "string"}},
    "tools": {"type": "array", "items": {"type": "string"}},
    "skills": {"type": "array", "items": {"type": "string"}},
    "resources": {"type": "array", "items": {"type": "string"}},
    "actionPlan": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "steps"],
        "properties": {
          "phase": {"type": "string"},
          "title": {"type": "string"},
          "duration": {"type": "string"},
          "steps": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var (
	entrySchemaOnce sync.Once
	entrySchema     *gojsonschema.Schema
	entrySchemaErr  error
)

func compiledEntrySchema() (*gojsonschema.Schema, error) {
	entrySchemaOnce.Do(func() {
		entrySchema, entrySchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(entrySchemaJSON))
	})
	return entrySchema, entrySchemaErr
}

// ValidateEntry checks one decoded catalog entry against the entry schema and returns
// the violations, if any.
func ValidateEntry(raw map[string]interface{}) ([]string, error) {
	schema, err := compiledEntrySchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
