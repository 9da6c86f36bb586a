// internal/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"bizpath-workers/internal/models"
)

var (
	ErrCatalogLoad      = errors.New("CATALOG_LOAD_FAILED")
	ErrDuplicateID      = errors.New("duplicate business model id")
	ErrBusinessNotFound = errors.New("BUSINESS_MODEL_NOT_FOUND")
)

// Catalog is an immutable, ordered set of business model definitions. Order is
// curation priority and is preserved through ranking ties.
type Catalog struct {
	entries []models.BusinessModelDefinition
	byID    map[string]int

	fingerprintOnce sync.Once
	fingerprint     string
}

// New copies entries into a Catalog. Entry IDs must be unique.
func New(entries []models.BusinessModelDefinition) (*Catalog, error) {
	c := &Catalog{
		entries: make([]models.BusinessModelDefinition, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, exists := c.byID[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e.Clone())
	}
	return c, nil
}

// Entries returns a copy of the definitions in catalog order.
func (c *Catalog) Entries() []models.BusinessModelDefinition {
	if c == nil {
		return nil
	}
	out := make([]models.BusinessModelDefinition, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

func (c *Catalog) Lookup(id string) (models.BusinessModelDefinition, bool) {
	if c == nil {
		return models.BusinessModelDefinition{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return models.BusinessModelDefinition{}, false
	}
	return c.entries[i].Clone(), true
}

// Subset returns a catalog holding only the given IDs, in the order given. Unknown
// IDs are skipped.
func (c *Catalog) Subset(ids []string) *Catalog {
	out := &Catalog{byID: make(map[string]int, len(ids))}
	if c == nil {
		return out
	}
	for _, id := range ids {
		i, ok := c.byID[id]
		if !ok {
			continue
		}
		if _, dup := out.byID[id]; dup {
			continue
		}
		out.byID[id] = len(out.entries)
		out.entries = append(out.entries, c.entries[i])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Fingerprint identifies the catalog content. Equal catalogs share a fingerprint, so it
// can key cached rankings.
func (c *Catalog) Fingerprint() string {
	if c == nil {
		return "empty"
	}
	c.fingerprintOnce.Do(func() {
		h := fnv.New64a()
		for _, e := range c.entries {
			data, _ := json.Marshal(e)
			h.Write(data)
			h.Write([]byte{0})
		}
		c.fingerprint = fmt.Sprintf("%016x", h.Sum64())
	})
	return c.fingerprint
}
