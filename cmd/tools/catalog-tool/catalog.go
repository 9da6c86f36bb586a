// cmd/tools/catalog-tool/catalog.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/database"
	rankbusinesspaths "bizpath-workers/internal/workers/paths/rank-business-paths"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func validateCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate catalog entries against the entry schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, issues, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintf(out, "entry %d (%s):\n", issue.Index, issue.ID)
				for _, p := range issue.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}
			fmt.Fprintf(out, "%d entries, %d with issues, fingerprint %s\n", c.Len(), len(issues), c.Fingerprint())
			if strict && len(issues) > 0 {
				return fmt.Errorf("catalog has %d entries with issues", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any entry has issues")
	return cmd
}

func exportCmd(opts *options) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			doc := map[string]interface{}{"businessModels": c.Entries()}

			var data []byte
			switch catalog.Format(strings.ToLower(format)) {
			case catalog.FormatYAML:
				// round-trip through JSON so YAML keys follow the json tags
				raw, err := json.Marshal(doc)
				if err != nil {
					return err
				}
				var generic interface{}
				if err := json.Unmarshal(raw, &generic); err != nil {
					return err
				}
				data, err = yaml.Marshal(generic)
				if err != nil {
					return err
				}
			case catalog.FormatJSON:
				data, err = json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0644)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func seedCmd(opts *options) *cobra.Command {
	var flushCache bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the Postgres catalog with the selected catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c, _, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
			defer cancel()

			if err := pg.Migrate(ctx); err != nil {
				return err
			}
			if err := catalog.NewPostgresStore(pg.DB, opts.logger()).Save(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d business models into %s\n", c.Len(), cfg.Database.Postgres.Database)

			if !flushCache {
				return nil
			}
			rdb := database.NewRedis(cfg.Database.Redis)
			defer rdb.Close()
			n, err := rdb.DeleteByPattern(ctx, rankbusinesspaths.CacheKeyPrefix+"*")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %d cached rankings\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flushCache, "flush-cache", true, "drop cached rankings from Redis")
	return cmd
}

func indexCmd(opts *options) *cobra.Command {
	var index string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Bulk index the catalog into Elasticsearch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if index == "" {
				index = cfg.Database.Elasticsearch.Index
			}
			c, _, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
			defer cancel()

			created, err := es.EnsureIndex(ctx, index)
			if err != nil {
				return err
			}
			if err := catalog.NewSearchIndex(es.Client, index, opts.logger()).IndexCatalog(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d business models into %s (created: %t)\n", c.Len(), index, created)
			return nil
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "index name (default: from config)")
	return cmd
}
