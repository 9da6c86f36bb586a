// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"bizpath-workers/internal/common/validation"
)

//go:embed activity-registry.json
var defaultRegistryJSON []byte

// LoadRegistry reads a registry file. An empty path returns the built-in registry.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data := defaultRegistryJSON
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}

	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode activity registry: %w", err)
	}
	return &reg, nil
}

// Default returns the built-in registry.
func Default() *ActivityRegistry {
	reg, err := LoadRegistry("")
	if err != nil {
		panic(fmt.Sprintf("built-in activity registry: %v", err))
	}
	return reg
}

func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	sort.Strings(out)
	return out
}

// InputValidator checks job variables against each activity's inputSchema.
type InputValidator struct {
	registry *ActivityRegistry
	cache    *validation.Cache
}

func NewInputValidator(r *ActivityRegistry) *InputValidator {
	return &InputValidator{registry: r, cache: validation.NewCache()}
}

// Validate returns the schema problems for variables. Task types without a schema
// accept anything.
func (v *InputValidator) Validate(taskType, variables string) ([]string, error) {
	if v == nil || v.registry == nil {
		return nil, nil
	}
	activity, ok := v.registry.Find(taskType)
	if !ok || len(activity.InputSchema) == 0 {
		return nil, nil
	}

	validator, err := v.cache.Get(taskType, activity.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("input schema for %s: %w", taskType, err)
	}

	res, err := validator.ValidateJSON(variables)
	if err != nil {
		return nil, err
	}
	if res.Valid {
		return nil, nil
	}
	return res.Messages(), nil
}
