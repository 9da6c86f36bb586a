// internal/workers/report/prepare-narrative-context/models.go
package preparenarrativecontext

import (
	"time"

	"bizpath-workers/internal/models"
)

type Input struct {
	QuizResponseID string               `json:"quizResponseId"`
	QuizResponse   *models.QuizResponse `json:"quizResponse"`
	TopN           int                  `json:"topN"`
}

type Output struct {
	NarrativeContext NarrativeContext `json:"narrativeContext"`
}

// NarrativeContext is everything the narrative generator needs to write the results
// report. It is self-contained so the generator never reads the catalog.
type NarrativeContext struct {
	QuizResponseID string                   `json:"quizResponseId,omitempty"`
	Traits         map[models.TraitName]int `json:"traits"`
	Strongest      []models.TraitName       `json:"strongestTraits"`
	TopPaths       []PathContext            `json:"topPaths"`
	Answers        models.QuizResponse      `json:"answers"`
	CatalogVersion string                   `json:"catalogVersion"`
	GeneratedAt    time.Time                `json:"generatedAt"`
}

type PathContext struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Rank            int                  `json:"rank"`
	FitScore        int                  `json:"fitScore"`
	FitCategory     models.FitCategory   `json:"fitCategory"`
	Breakdown       models.FitBreakdown  `json:"breakdown"`
	TimeToStart     string               `json:"timeToStart,omitempty"`
	StartupCost     string               `json:"startupCost,omitempty"`
	PotentialIncome string               `json:"potentialIncome,omitempty"`
	Difficulty      string               `json:"difficulty,omitempty"`
	Pros            []string             `json:"pros,omitempty"`
	Cons            []string             `json:"cons,omitempty"`
	Skills          []string             `json:"skills,omitempty"`
	ActionPlan      []models.ActionPhase `json:"actionPlan,omitempty"`
}
