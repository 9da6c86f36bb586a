// internal/workers/paths/calculate-fit-score/handler_test.go
package calculatefitscore

import (
	"context"
	"fmt"
	"testing"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader map[string]*quiz.StoredResponse

func (f fakeReader) Get(_ context.Context, id string) (*quiz.StoredResponse, error) {
	if stored, ok := f[id]; ok {
		return stored, nil
	}
	return nil, fmt.Errorf("%w: %s", quiz.ErrQuizNotFound, id)
}

func builderQuiz() *models.QuizResponse {
	return &models.QuizResponse{
		RiskComfortLevel:        models.Answered(5),
		SelfMotivationLevel:     models.Answered(5),
		TechSkillsRating:        models.Answered(5),
		CreativeWorkEnjoyment:   models.Answered(4),
		WeeklyTimeCommitment:    models.Answered(30.0),
		UpfrontInvestment:       models.Answered(5000.0),
		FirstIncomeTimeline:     models.Answered("3-6-months"),
		ToolLearningWillingness: models.Answered("yes"),
	}
}

func newTestHandler(t *testing.T, reader quiz.Reader) *Handler {
	return NewHandler(LoadConfig(), catalog.Default(), scoring.NewDefaultScorer(), reader, nil, nil, logger.NewTestLogger(t))
}

func TestHandler_Execute_MatchesScorer(t *testing.T) {
	h := newTestHandler(t, nil)
	q := builderQuiz()

	out, err := h.Execute(context.Background(), &Input{QuizResponse: q, BusinessModelID: "saas-development"})
	require.NoError(t, err)

	def, ok := catalog.Default().Lookup("saas-development")
	require.True(t, ok)
	want, breakdown := scoring.NewDefaultScorer().Score(q, def)

	assert.Equal(t, "saas-development", out.BusinessModelID)
	assert.Equal(t, def.Name, out.BusinessModelName)
	assert.Equal(t, want, out.FitScore)
	assert.Equal(t, breakdown, out.Breakdown)
	assert.Equal(t, scoring.CategoryFor(want), out.Category)
	assert.GreaterOrEqual(t, out.FitScore, 0)
	assert.LessOrEqual(t, out.FitScore, 100)
}

func TestHandler_Execute_StoredQuizTrimsID(t *testing.T) {
	h := newTestHandler(t, fakeReader{"q-9": {ID: "q-9", Answers: *builderQuiz()}})

	byID, err := h.Execute(context.Background(), &Input{QuizResponseID: "q-9", BusinessModelID: " freelance-consulting "})
	require.NoError(t, err)

	inline, err := h.Execute(context.Background(), &Input{QuizResponse: builderQuiz(), BusinessModelID: "freelance-consulting"})
	require.NoError(t, err)

	assert.Equal(t, inline.FitScore, byID.FitScore)
}

func TestHandler_Execute_UnknownBusinessModel(t *testing.T) {
	h := newTestHandler(t, nil)

	_, err := h.Execute(context.Background(), &Input{QuizResponse: builderQuiz(), BusinessModelID: "crypto-mining"})
	assert.ErrorIs(t, err, catalog.ErrBusinessNotFound)
}

func TestHandler_Execute_MissingQuiz(t *testing.T) {
	h := newTestHandler(t, fakeReader{})

	_, err := h.Execute(context.Background(), &Input{QuizResponseID: "gone", BusinessModelID: "saas-development"})
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
}
