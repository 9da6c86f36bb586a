// internal/workers/paths/calculate-fit-score/models.go
package calculatefitscore

import "bizpath-workers/internal/models"

type Input struct {
	QuizResponseID  string               `json:"quizResponseId"`
	QuizResponse    *models.QuizResponse `json:"quizResponse"`
	BusinessModelID string               `json:"businessModelId"`
}

type Output struct {
	BusinessModelID   string              `json:"businessModelId"`
	BusinessModelName string              `json:"businessModelName"`
	FitScore          int                 `json:"fitScore"`
	Category          models.FitCategory  `json:"category"`
	Breakdown         models.FitBreakdown `json:"breakdown"`
}
