// internal/catalog/loader.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/models"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Issue describes a catalog entry that loaded with problems. Such entries are kept
// and scored with fallbacks.
type Issue struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Problems []string `json:"problems"`
}

// wrapper keys a document may use to hold its entry list.
var listKeys = []string{"businessModels", "businessPaths", "entries", "catalog"}

// LoadFile reads a JSON or YAML catalog from disk. The format follows the extension.
func LoadFile(path string, log logger.Logger) (*Catalog, []Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %v", ErrCatalogLoad, path, err)
	}
	return Parse(data, FormatFromPath(path), log)
}

func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a catalog document, resolves legacy field aliases, validates each entry
// and builds the Catalog. Only unreadable documents fail; bad entries are reported.
func Parse(data []byte, format Format, log logger.Logger) (*Catalog, []Issue, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w: decode yaml: %v", ErrCatalogLoad, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w: decode json: %v", ErrCatalogLoad, err)
		}
	}

	rawEntries, err := entryList(doc)
	if err != nil {
		return nil, nil, err
	}
	return build(rawEntries, log)
}

// build resolves, validates and decodes raw entries in order.
func build(rawEntries []interface{}, log logger.Logger) (*Catalog, []Issue, error) {
	var (
		entries []models.BusinessModelDefinition
		issues  []Issue
		seen    = make(map[string]bool, len(rawEntries))
	)
	for i, item := range rawEntries {
		var (
			def      models.BusinessModelDefinition
			problems []string
		)
		if raw, ok := item.(map[string]interface{}); ok {
			raw = ResolveAliases(raw)
			var err error
			problems, err = ValidateEntry(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
			}
			var decodeErr error
			def, decodeErr = decodeEntry(raw)
			if decodeErr != nil {
				problems = append(problems, decodeErr.Error())
			}
		} else {
			// kept with no traits, so it scores on fallbacks alone
			problems = []string{"entry is not an object"}
		}

		if def.ID == "" {
			def.ID = uniqueID(fmt.Sprintf("entry-%d", i+1), seen)
		} else if seen[def.ID] {
			dup := def.ID
			def.ID = uniqueID(fmt.Sprintf("%s-%d", dup, i+1), seen)
			problems = append(problems, fmt.Sprintf("duplicate id %q, kept as %q", dup, def.ID))
		}
		if def.Name == "" {
			def.Name = def.ID
		}
		seen[def.ID] = true

		if len(problems) > 0 {
			issues = append(issues, Issue{Index: i, ID: def.ID, Problems: problems})
			log.Warn("catalog entry failed validation, keeping with fallback scoring", map[string]interface{}{
				"index":    i,
				"id":       def.ID,
				"problems": problems,
			})
		}
		entries = append(entries, def)
	}

	c, err := New(entries)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	log.Info("catalog loaded", map[string]interface{}{
		"entries": c.Len(),
		"issues":  len(issues),
	})
	return c, issues, nil
}

// uniqueID returns base, suffixed further until no earlier entry holds it.
func uniqueID(base string, seen map[string]bool) string {
	id := base
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func entryList(doc interface{}) ([]interface{}, error) {
	switch v := doc.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		for _, key := range listKeys {
			if list, ok := v[key].([]interface{}); ok {
				return list, nil
			}
		}
		return nil, fmt.Errorf("%w: document has none of %v", ErrCatalogLoad, listKeys)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unexpected document type %T", ErrCatalogLoad, doc)
	}
}

// ResolveAliases rewrites the legacy shapes of a business object into the canonical
// one: businessPath/businessModel wrappers are unwrapped, title becomes name, traits
// becomes requiredTraits, bare numeric trait weights become {weight: n}, and top-level
// resource numbers move under requirements.
func ResolveAliases(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for _, wrapper := range []string{"businessPath", "businessModel"} {
		if inner, ok := raw[wrapper].(map[string]interface{}); ok {
			for k, v := range inner {
				out[k] = v
			}
		}
	}
	for k, v := range raw {
		if k == "businessPath" || k == "businessModel" {
			continue
		}
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}

	renameIfMissing(out, "title", "name")
	renameIfMissing(out, "traits", "requiredTraits")

	if traits, ok := out["requiredTraits"].(map[string]interface{}); ok {
		normalized := make(map[string]interface{}, len(traits))
		for name, v := range traits {
			switch w := v.(type) {
			case float64, int:
				normalized[name] = map[string]interface{}{"weight": w}
			default:
				normalized[name] = v
			}
		}
		out["requiredTraits"] = normalized
	}

	var requirements map[string]interface{}
	if existing, ok := out["requirements"].(map[string]interface{}); ok {
		requirements = make(map[string]interface{}, len(existing))
		for k, v := range existing {
			requirements[k] = v
		}
	}
	for _, key := range []string{"minBudget", "minWeeklyHours", "monthsToFirstIncome", "monthlyIncomePotential"} {
		v, ok := out[key]
		if !ok {
			continue
		}
		if requirements == nil {
			requirements = make(map[string]interface{})
		}
		if _, exists := requirements[key]; !exists {
			requirements[key] = v
		}
		delete(out, key)
	}
	if requirements != nil {
		out["requirements"] = requirements
	}
	return out
}

func renameIfMissing(m map[string]interface{}, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	if _, exists := m[to]; !exists {
		m[to] = v
	}
	delete(m, from)
}

func decodeEntry(raw map[string]interface{}) (models.BusinessModelDefinition, error) {
	var def models.BusinessModelDefinition
	data, err := json.Marshal(raw)
	if err != nil {
		return def, fmt.Errorf("encode entry: %w", err)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("decode entry: %w", err)
	}
	return def, nil
}
