package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Messages flattens the errors to "field: message" lines.
func (r *ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return out
}

// Validator holds a compiled JSON schema. Safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator(schema map[string]interface{}) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateJSON validates a raw JSON document such as a job's variables.
func (v *Validator) ValidateJSON(doc string) (*ValidationResult, error) {
	if !json.Valid([]byte(doc)) {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: "document is not valid JSON",
			Code:    "INVALID_JSON",
		}}}, nil
	}
	return v.validate(gojsonschema.NewStringLoader(doc))
}

func (v *Validator) ValidateInput(input map[string]interface{}) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewGoLoader(input))
}

func (v *Validator) validate(doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := v.schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    errorCode(e.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out, nil
}

var errorCodes = map[string]string{
	"required":                        "REQUIRED_FIELD_MISSING",
	"invalid_type":                    "INVALID_TYPE",
	"enum":                            "INVALID_ENUM_VALUE",
	"string_gte":                      "MIN_LENGTH_VIOLATION",
	"string_lte":                      "MAX_LENGTH_VIOLATION",
	"pattern":                         "PATTERN_MISMATCH",
	"number_gte":                      "MIN_VALUE_VIOLATION",
	"number_lte":                      "MAX_VALUE_VIOLATION",
	"additional_property_not_allowed": "EXTRA_FIELD",
}

func errorCode(gojsonschemaType string) string {
	if code, ok := errorCodes[gojsonschemaType]; ok {
		return code
	}
	return "SCHEMA_VIOLATION"
}

// ValidateInput compiles schema and validates input in one call.
func ValidateInput(input map[string]interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	v, err := NewValidator(schema)
	if err != nil {
		return nil, err
	}
	return v.ValidateInput(input)
}

// Cache keeps one compiled Validator per key.
type Cache struct {
	mu         sync.RWMutex
	validators map[string]*Validator
}

func NewCache() *Cache {
	return &Cache{validators: make(map[string]*Validator)}
}

func (c *Cache) Get(key string, schema map[string]interface{}) (*Validator, error) {
	c.mu.RLock()
	v, ok := c.validators[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := NewValidator(schema)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.validators[key] = v
	c.mu.Unlock()
	return v, nil
}
