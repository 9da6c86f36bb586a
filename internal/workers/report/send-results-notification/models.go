// internal/workers/report/send-results-notification/models.go
package sendresultsnotification

import "bizpath-workers/internal/models"

type Input struct {
	QuizResponseID string               `json:"quizResponseId"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	UserName       string               `json:"userName"`
	RankedPaths    []models.PathSummary `json:"rankedPaths"`
}

const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusDisabled = "disabled"
)

type Output struct {
	NotificationID string            `json:"notificationId"`
	Status         string            `json:"status"`
	Channels       []string          `json:"channels"`
	MessageIDs     map[string]string `json:"messageIds,omitempty"`
}
