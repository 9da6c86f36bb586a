// cmd/tools/catalog-tool/rank.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/scoring"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const cmdTimeout = 2 * time.Minute

func rankCmd(opts *options) *cobra.Command {
	var (
		answersFile string
		top         int
		jsonOutput  bool
		weights     []float64
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the catalog for a quiz response file",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := readAnswers(answersFile)
			if err != nil {
				return err
			}
			c, _, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			w := scoring.DefaultWeights
			if len(weights) > 0 {
				if len(weights) != 3 {
					return fmt.Errorf("--weights takes trait,resource,preference")
				}
				w = scoring.Weights{Trait: weights[0], Resource: weights[1], Preference: weights[2]}
			}
			scorer, err := scoring.NewScorer(w)
			if err != nil {
				return err
			}

			ranked := scorer.Rank(q, c)
			if top > 0 {
				ranked = scoring.TopN(ranked, top)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"traits":         scoring.NormalizeTraits(q).Percentages(),
					"rankedPaths":    models.Summaries(ranked),
					"catalogVersion": c.Fingerprint(),
				})
			}
			return printRanking(cmd, ranked, c)
		},
	}

	cmd.Flags().StringVarP(&answersFile, "answers", "a", "", "quiz response file, JSON or YAML")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "show only the first n paths (0: all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().Float64SliceVar(&weights, "weights", nil, "trait,resource,preference weights summing to 1")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func printRanking(cmd *cobra.Command, ranked []models.RankedPath, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tFIT\tCATEGORY\tTRAITS\tRESOURCES\tPREFS")
	for _, p := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			p.Rank, p.BusinessModel.ID, p.BusinessModel.Name, p.FitScore, p.Category,
			p.Breakdown.TraitFit, p.Breakdown.ResourceFit, p.Breakdown.PreferenceFit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d paths, catalog %s\n", len(ranked), c.Len(), c.Fingerprint())
	return nil
}

// readAnswers decodes a quiz response. YAML is converted to JSON first so the
// answer types keep their lenient JSON decoding.
func readAnswers(path string) (*models.QuizResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	if catalog.FormatFromPath(path) == catalog.FormatYAML {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}

	var q models.QuizResponse
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return &q, nil
}
