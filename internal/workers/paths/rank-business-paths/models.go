// internal/workers/paths/rank-business-paths/models.go
package rankbusinesspaths

import "bizpath-workers/internal/models"

type Input struct {
	QuizResponseID string               `json:"quizResponseId"`
	QuizResponse   *models.QuizResponse `json:"quizResponse"`
	TopN           *int                 `json:"topN"`
}

type Output struct {
	RankedPaths    []models.PathSummary `json:"rankedPaths"`
	TotalScored    int                  `json:"totalScored"`
	CatalogVersion string               `json:"catalogVersion"`
	CacheHit       bool                 `json:"cacheHit"`
}
