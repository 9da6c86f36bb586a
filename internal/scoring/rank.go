// internal/scoring/rank.go
package scoring

import (
	"sort"

	"bizpath-workers/internal/models"
)

// Catalog is the read-only set of business models to rank.
type Catalog interface {
	Entries() []models.BusinessModelDefinition
}

// Rank scores every catalog entry and returns them best first. Ties keep catalog
// order. A nil or empty catalog yields an empty list.
func (s *Scorer) Rank(q *models.QuizResponse, catalog Catalog) []models.RankedPath {
	if catalog == nil {
		return []models.RankedPath{}
	}
	return s.RankEntries(q, catalog.Entries())
}

func (s *Scorer) RankEntries(q *models.QuizResponse, entries []models.BusinessModelDefinition) []models.RankedPath {
	if q == nil {
		q = &models.QuizResponse{}
	}
	traits := NormalizeTraits(q)

	paths := make([]models.RankedPath, 0, len(entries))
	for _, def := range entries {
		score, breakdown := s.score(q, traits, def)
		paths = append(paths, models.RankedPath{
			BusinessModel: def,
			FitScore:      score,
			Category:      CategoryFor(score),
			Breakdown:     breakdown,
		})
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].FitScore > paths[j].FitScore
	})
	for i := range paths {
		paths[i].Rank = i + 1
	}
	return paths
}

func CategoryFor(score int) models.FitCategory {
	switch {
	case score >= 80:
		return models.FitCategoryBest
	case score >= 60:
		return models.FitCategoryStrong
	case score >= 40:
		return models.FitCategoryPossible
	default:
		return models.FitCategoryPoor
	}
}

// TopN returns the first n ranked paths. n <= 0 returns an empty list.
func TopN(paths []models.RankedPath, n int) []models.RankedPath {
	if n <= 0 {
		return []models.RankedPath{}
	}
	if n > len(paths) {
		n = len(paths)
	}
	out := make([]models.RankedPath, n)
	copy(out, paths[:n])
	return out
}
