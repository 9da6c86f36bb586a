// internal/models/ranking.go
package models

type FitCategory string

const (
	FitCategoryBest     FitCategory = "Best Fit"
	FitCategoryStrong   FitCategory = "Strong Fit"
	FitCategoryPossible FitCategory = "Possible Fit"
	FitCategoryPoor     FitCategory = "Poor Fit"
)

type FitBreakdown struct {
	TraitFit      int `json:"traitFit"`
	ResourceFit   int `json:"resourceFit"`
	PreferenceFit int `json:"preferenceFit"`

	TimeFit     int `json:"timeFit"`
	BudgetFit   int `json:"budgetFit"`
	TimelineFit int `json:"timelineFit"`
	IncomeFit   int `json:"incomeFit"`

	// Degraded is set when the entry had no usable trait profile and was scored
	// with the neutral fallback.
	Degraded bool `json:"degraded,omitempty"`
}

type RankedPath struct {
	BusinessModel BusinessModelDefinition `json:"businessModel"`
	FitScore      int                     `json:"fitScore"`
	Rank          int                     `json:"rank"`
	Category      FitCategory             `json:"category"`
	Breakdown     FitBreakdown            `json:"breakdown"`
}

// PathSummary is the compact form of a RankedPath passed between process steps.
type PathSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category,omitempty"`
	FitScore    int          `json:"fitScore"`
	Rank        int          `json:"rank"`
	FitCategory FitCategory  `json:"fitCategory"`
	Breakdown   FitBreakdown `json:"breakdown"`
}

func (p RankedPath) Summary() PathSummary {
	return PathSummary{
		ID:          p.BusinessModel.ID,
		Name:        p.BusinessModel.Name,
		Category:    p.BusinessModel.Category,
		FitScore:    p.FitScore,
		Rank:        p.Rank,
		FitCategory: p.Category,
		Breakdown:   p.Breakdown,
	}
}

func Summaries(paths []RankedPath) []PathSummary {
	out := make([]PathSummary, len(paths))
	for i, p := range paths {
		out[i] = p.Summary()
	}
	return out
}
