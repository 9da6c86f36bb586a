// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bizpath-workers/internal/common/logger"
)

// PostgresStore keeps the catalog in the business_models table, one JSON document per
// entry, ordered by position.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-store"}),
	}
}

func (s *PostgresStore) Load(ctx context.Context) (*Catalog, []Issue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, definition
		FROM business_models
		WHERE active = true
		ORDER BY position, id`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: query business_models: %v", ErrCatalogLoad, err)
	}
	defer rows.Close()

	var rawEntries []interface{}
	for rows.Next() {
		var id string
		var definition []byte
		if err := rows.Scan(&id, &definition); err != nil {
			return nil, nil, fmt.Errorf("%w: scan business_models: %v", ErrCatalogLoad, err)
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(definition, &raw); err != nil || raw == nil {
			s.logger.Warn("unreadable catalog row", map[string]interface{}{"id": id})
			raw = map[string]interface{}{}
		}
		if _, ok := raw["id"]; !ok {
			raw["id"] = id
		}
		rawEntries = append(rawEntries, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: iterate business_models: %v", ErrCatalogLoad, err)
	}

	return build(rawEntries, s.logger)
}

// Save upserts every catalog entry in one transaction, keeping catalog order in the
// position column.
func (s *PostgresStore) Save(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, def := range c.Entries() {
		definition, err := json.Marshal(def)
		if err != nil {
			return fmt.Errorf("encode %s: %w", def.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO business_models (id, position, definition, active, updated_at)
			VALUES ($1, $2, $3, true, NOW())
			ON CONFLICT (id) DO UPDATE
			SET position = EXCLUDED.position,
			    definition = EXCLUDED.definition,
			    active = true,
			    updated_at = NOW()`,
			def.ID, i, definition); err != nil {
			return fmt.Errorf("upsert %s: %w", def.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}

	s.logger.Info("catalog saved", map[string]interface{}{"entries": c.Len()})
	return nil
}
