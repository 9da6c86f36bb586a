// internal/workers/quiz/normalize-traits/models.go
package normalizetraits

import "bizpath-workers/internal/models"

type Input struct {
	QuizResponseID string               `json:"quizResponseId"`
	QuizResponse   *models.QuizResponse `json:"quizResponse"`
}

type Output struct {
	Traits      models.TraitScoreSet     `json:"traits"`
	Percentages map[models.TraitName]int `json:"percentages"`
	Strongest   []models.TraitName       `json:"strongest"`
	Warnings    []string                 `json:"warnings,omitempty"`
}
