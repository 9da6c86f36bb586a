// internal/workers/paths/search-business-models/models.go
package searchbusinessmodels

import "bizpath-workers/internal/models"

type Input struct {
	Keywords       string               `json:"keywords"`
	Category       string               `json:"category"`
	Difficulty     string               `json:"difficulty"`
	Size           int                  `json:"size"`
	QuizResponseID string               `json:"quizResponseId"`
	QuizResponse   *models.QuizResponse `json:"quizResponse"`
}

type Output struct {
	Results   []Result `json:"results"`
	TotalHits int      `json:"totalHits"`
	Source    string   `json:"source"`
	Reranked  bool     `json:"reranked"`
}

// Result is one hit. Fit fields are only set when a quiz response was supplied.
type Result struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty"`
	Rank        int                `json:"rank"`
	FitScore    *int               `json:"fitScore,omitempty"`
	FitCategory models.FitCategory `json:"fitCategory,omitempty"`
}
