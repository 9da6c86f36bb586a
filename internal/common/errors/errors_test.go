// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name          string
		err           *StandardError
		wantCode      string
		wantRetries   int
		wantRetryable bool
	}{
		{
			name:     "quiz not found is a business error",
			err:      NewQuizNotFoundError("q-1"),
			wantCode: "QUIZ_NOT_FOUND",
		},
		{
			name:          "database failures share one boundary",
			err:           NewDatabaseQueryFailedError("load quiz", fmt.Errorf("conn reset")),
			wantCode:      "DATABASE_ERROR",
			wantRetries:   3,
			wantRetryable: true,
		},
		{
			name:          "search timeout",
			err:           NewSearchTimeoutError(),
			wantCode:      "SEARCH_ERROR",
			wantRetries:   2,
			wantRetryable: true,
		},
		{
			name:     "unmapped code falls through",
			err:      NewInternalError(fmt.Errorf("boom")),
			wantCode: "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, tt.wantRetryable, bpmn.Retryable)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_NonRetryableOverridesBudget(t *testing.T) {
	stdErr := NewDatabaseInsertFailedError(fmt.Errorf("unique violation"))
	stdErr.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
}

func TestToErrorVariables_IncludesMetadata(t *testing.T) {
	stdErr := NewBusinessModelNotFoundError("saas-development").
		WithMetadata("businessModelId", "saas-development")

	vars := ConvertToBPMNError(stdErr).ToErrorVariables()
	assert.Equal(t, "BUSINESS_MODEL_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "saas-development", vars["businessModelId"])
	assert.Equal(t, false, vars["retryable"])
}

func TestNormalize(t *testing.T) {
	original := NewQuizValidationFailedError("riskComfortLevel must be a number")
	wrapped := fmt.Errorf("execute: %w", original)

	assert.Same(t, original, Normalize(wrapped))

	plain := Normalize(fmt.Errorf("unexpected"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "unexpected", plain.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "QUIZ", GetErrorCategory(ErrCodeQuizNotFound))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogLoadFailed))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeBusinessModelNotFound))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchUnavailable))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNoRecipient))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputValidationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeCatalogLoadFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeQuizValidationFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeNoRecipient))
}

func TestRemainingRetries(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Retries: retries}}
	}

	assert.Equal(t, int32(3), remainingRetries(job(10), 3))
	assert.Equal(t, int32(1), remainingRetries(job(2), 3))
	assert.Equal(t, int32(0), remainingRetries(job(0), 3))
}

func TestInputValidationFailedError_JoinsProblems(t *testing.T) {
	err := NewInputValidationFailedError("rank-business-paths", []string{"topN: must be >= 0", "quizResponse: invalid type"})
	require.NotNil(t, err)
	assert.Contains(t, err.Details, "topN: must be >= 0; quizResponse: invalid type")
	assert.Contains(t, err.Error(), "INPUT_VALIDATION_FAILED")
}
