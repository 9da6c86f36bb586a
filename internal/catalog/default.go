// internal/catalog/default.go
package catalog

import (
	_ "embed"
	"fmt"

	"bizpath-workers/internal/common/logger"
)

//go:embed default_catalog.json
var defaultCatalogJSON []byte

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	c, issues, err := Parse(defaultCatalogJSON, FormatJSON, logger.NewNoOpLogger())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	if len(issues) > 0 {
		panic(fmt.Sprintf("built-in catalog has invalid entries: %+v", issues))
	}
	return c
}

// DefaultJSON returns the raw built-in catalog document.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultCatalogJSON...)
}
