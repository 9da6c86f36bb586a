// internal/workers/paths/rank-business-paths/handler_test.go
package rankbusinesspaths

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/config"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedID = "5d0c1a2b-3e4f-4a5b-8c6d-7e8f9a0b1c2d"

type countingReader struct {
	stored *quiz.StoredResponse
	calls  int
}

func (r *countingReader) Get(_ context.Context, id string) (*quiz.StoredResponse, error) {
	r.calls++
	if r.stored == nil || r.stored.ID != id {
		return nil, fmt.Errorf("%w: %s", quiz.ErrQuizNotFound, id)
	}
	return r.stored, nil
}

func highRiskBuilder() models.QuizResponse {
	return models.QuizResponse{
		RiskComfortLevel:        models.Answered(5),
		SelfMotivationLevel:     models.Answered(5),
		TechSkillsRating:        models.Answered(5),
		TrialErrorComfort:       models.Answered(5),
		UncertaintyHandling:     models.Answered(4),
		WeeklyTimeCommitment:    models.Answered(40.0),
		UpfrontInvestment:       models.Answered(10000.0),
		FirstIncomeTimeline:     models.Answered("no-rush"),
		ToolLearningWillingness: models.Answered("yes"),
	}
}

func testConfig(topN int) *Config {
	cfg := LoadConfig(nil)
	cfg.DefaultTopN = topN
	return cfg
}

func intPtr(v int) *int { return &v }

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(&config.Config{Scoring: config.ScoringConfig{DefaultTopN: 5, CacheTTL: 60}})
	assert.Equal(t, 5, cfg.DefaultTopN)
	assert.Equal(t, time.Minute, cfg.CacheTTL)

	assert.Equal(t, 30*time.Minute, LoadConfig(nil).CacheTTL)
}

func TestHandler_Execute_RanksWholeCatalog(t *testing.T) {
	cat := catalog.Default()
	h := NewHandler(testConfig(0), cat, scoring.NewDefaultScorer(), nil, nil, nil, nil, logger.NewTestLogger(t))

	q := highRiskBuilder()
	out, err := h.Execute(context.Background(), &Input{QuizResponse: &q})
	require.NoError(t, err)

	want := models.Summaries(scoring.NewDefaultScorer().Rank(&q, cat))
	assert.Equal(t, want, out.RankedPaths)
	assert.Equal(t, cat.Len(), out.TotalScored)
	assert.Equal(t, cat.Fingerprint(), out.CatalogVersion)
	assert.False(t, out.CacheHit)

	for i, p := range out.RankedPaths {
		assert.Equal(t, i+1, p.Rank)
		if i > 0 {
			assert.LessOrEqual(t, p.FitScore, out.RankedPaths[i-1].FitScore)
		}
	}
}

func TestHandler_Execute_TopN(t *testing.T) {
	h := NewHandler(testConfig(5), catalog.Default(), scoring.NewDefaultScorer(), nil, nil, nil, nil, logger.NewTestLogger(t))
	q := highRiskBuilder()

	tests := []struct {
		name string
		topN *int
		want int
	}{
		{"config default", nil, 5},
		{"explicit", intPtr(3), 3},
		{"zero returns all", intPtr(0), catalog.Default().Len()},
		{"larger than catalog", intPtr(50), catalog.Default().Len()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{QuizResponse: &q, TopN: tt.topN})
			require.NoError(t, err)
			assert.Len(t, out.RankedPaths, tt.want)
			assert.Equal(t, catalog.Default().Len(), out.TotalScored)
		})
	}
}

func TestHandler_Execute_EmptyCatalog(t *testing.T) {
	empty, err := catalog.New(nil)
	require.NoError(t, err)
	h := NewHandler(testConfig(0), empty, scoring.NewDefaultScorer(), nil, nil, nil, nil, logger.NewTestLogger(t))

	q := highRiskBuilder()
	out, err := h.Execute(context.Background(), &Input{QuizResponse: &q})
	require.NoError(t, err)
	assert.Empty(t, out.RankedPaths)
	assert.Zero(t, out.TotalScored)
}

func TestHandler_Execute_CachesStoredResponses(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	reader := &countingReader{stored: &quiz.StoredResponse{ID: storedID, Answers: highRiskBuilder()}}
	h := NewHandler(testConfig(3), catalog.Default(), scoring.NewDefaultScorer(), reader, rdb, nil, nil, logger.NewTestLogger(t))

	first, err := h.Execute(context.Background(), &Input{QuizResponseID: storedID})
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.True(t, mr.Exists(h.cacheKey(storedID, catalog.Default().Fingerprint())))

	second, err := h.Execute(context.Background(), &Input{QuizResponseID: storedID, TopN: intPtr(0)})
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.RankedPaths, second.RankedPaths[:3])
	assert.Len(t, second.RankedPaths, catalog.Default().Len())
}

func TestHandler_Execute_InlineResponsesAreNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := NewHandler(testConfig(0), catalog.Default(), scoring.NewDefaultScorer(), nil, rdb, nil, nil, logger.NewTestLogger(t))
	q := highRiskBuilder()

	_, err := h.Execute(context.Background(), &Input{QuizResponse: &q})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestHandler_Execute_CacheFailureStillRanks(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	reader := &countingReader{stored: &quiz.StoredResponse{ID: storedID, Answers: highRiskBuilder()}}
	h := NewHandler(testConfig(0), catalog.Default(), scoring.NewDefaultScorer(), reader, rdb, nil, nil, logger.NewTestLogger(t))

	mock.ExpectGet(h.cacheKey(storedID, catalog.Default().Fingerprint())).SetErr(errors.New("connection refused"))

	out, err := h.Execute(context.Background(), &Input{QuizResponseID: storedID})
	require.NoError(t, err)
	assert.False(t, out.CacheHit)
	assert.Len(t, out.RankedPaths, catalog.Default().Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_UnknownQuiz(t *testing.T) {
	h := NewHandler(testConfig(0), catalog.Default(), scoring.NewDefaultScorer(), &countingReader{}, nil, nil, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{QuizResponseID: storedID})
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
}
