// internal/catalog/source.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"bizpath-workers/internal/common/logger"
)

// Source names where the worker manager reads the catalog from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceFile     Source = "file"
	SourcePostgres Source = "postgres"
)

type OpenOptions struct {
	Source Source
	Path   string
	DB     *sql.DB
	Logger logger.Logger
}

// Open loads the catalog from the configured source. Entry issues are logged, not
// returned; only an unusable source is an error.
func Open(ctx context.Context, opts OpenOptions) (*Catalog, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	var (
		c      *Catalog
		issues []Issue
		err    error
	)
	switch opts.Source {
	case SourceEmbedded, "":
		c = Default()
	case SourceFile:
		c, issues, err = LoadFile(opts.Path, log)
	case SourcePostgres:
		if opts.DB == nil {
			return nil, fmt.Errorf("%w: postgres source without a database", ErrCatalogLoad)
		}
		c, issues, err = NewPostgresStore(opts.DB, log).Load(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrCatalogLoad, opts.Source)
	}
	if err != nil {
		return nil, err
	}

	for _, issue := range issues {
		log.Warn("catalog entry loaded with fallbacks", map[string]interface{}{
			"index":    issue.Index,
			"id":       issue.ID,
			"problems": issue.Problems,
		})
	}
	if c.Len() == 0 {
		log.Warn("catalog is empty, rankings will be empty", map[string]interface{}{"source": string(opts.Source)})
	}

	log.Info("catalog loaded", map[string]interface{}{
		"source":  string(opts.Source),
		"entries": c.Len(),
		"issues":  len(issues),
	})
	return c, nil
}
