// internal/workers/support/support_test.go
package support

import (
	"context"
	"fmt"
	"testing"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/errors"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Variables: vars}}
}

func TestDecode(t *testing.T) {
	validator := registry.NewInputValidator(registry.Default())

	var input struct {
		QuizResponseID string `json:"quizResponseId"`
		TopN           int    `json:"topN"`
	}
	require.NoError(t, Decode(job(`{"quizResponseId": "7c1e", "topN": 3}`), "rank-business-paths", validator, &input))
	assert.Equal(t, "7c1e", input.QuizResponseID)
	assert.Equal(t, 3, input.TopN)

	err := Decode(job(`{"quizResponseId": "7c1e", "topN": -2}`), "rank-business-paths", validator, &input)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)

	err = Decode(job(`not json`), "unregistered-task", nil, &input)
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeQuizValidationFailed, stdErr.Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want errors.ErrorCode
	}{
		{fmt.Errorf("%w: abc", quiz.ErrQuizNotFound), errors.ErrCodeQuizNotFound},
		{fmt.Errorf("%w: empty", quiz.ErrNoAnswers), errors.ErrCodeQuizValidationFailed},
		{fmt.Errorf("%w: x", catalog.ErrBusinessNotFound), errors.ErrCodeBusinessModelNotFound},
		{fmt.Errorf("%w: bad file", catalog.ErrCatalogLoad), errors.ErrCodeCatalogLoadFailed},
		{fmt.Errorf("%w: 500", catalog.ErrSearchFailed), errors.ErrCodeSearchQueryFailed},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), errors.ErrCodeDatabaseTimeout},
		{errors.NewNoRecipientError(), errors.ErrCodeNoRecipient},
		{fmt.Errorf("conn reset"), errors.ErrCodeDatabaseQueryFailed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err).Code, tt.err.Error())
	}
}
