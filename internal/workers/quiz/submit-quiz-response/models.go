// internal/workers/quiz/submit-quiz-response/models.go
package submitquizresponse

import (
	"time"

	"bizpath-workers/internal/models"
)

type Input struct {
	UserID       string               `json:"userId"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	QuizResponse *models.QuizResponse `json:"quizResponse"`
}

type Output struct {
	QuizResponseID string    `json:"quizResponseId"`
	AnsweredCount  int       `json:"answeredCount"`
	Warnings       []string  `json:"warnings"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
