// internal/workers/paths/search-business-models/handler_test.go
package searchbusinessmodels

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/scoring"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	ids   []string
	err   error
	query catalog.SearchQuery
}

func (f *fakeSearcher) Search(_ context.Context, q catalog.SearchQuery) ([]string, error) {
	f.query = q
	return f.ids, f.err
}

func newTestHandler(t *testing.T, cfg *Config, searcher Searcher) *Handler {
	return NewHandler(cfg, catalog.Default(), scoring.NewDefaultScorer(), nil, searcher, nil, nil, logger.NewTestLogger(t))
}

func TestHandler_Execute_RelevanceOrderWithoutQuiz(t *testing.T) {
	searcher := &fakeSearcher{ids: []string{"content-creation", "retired-model", "saas-development"}}
	h := newTestHandler(t, LoadConfig(), searcher)

	out, err := h.Execute(context.Background(), &Input{Keywords: "  video  "})
	require.NoError(t, err)

	assert.Equal(t, SourceElasticsearch, out.Source)
	assert.False(t, out.Reranked)
	assert.Equal(t, 2, out.TotalHits)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "content-creation", out.Results[0].ID)
	assert.Equal(t, 1, out.Results[0].Rank)
	assert.Nil(t, out.Results[0].FitScore)

	assert.Equal(t, "video", searcher.query.Keywords)
	assert.Equal(t, 10, searcher.query.Size)
}

func TestHandler_Execute_ReranksByFit(t *testing.T) {
	ids := []string{"virtual-assistant", "saas-development", "freelance-consulting"}
	h := newTestHandler(t, LoadConfig(), &fakeSearcher{ids: ids})

	q := &models.QuizResponse{
		RiskComfortLevel:     models.Answered(5),
		TechSkillsRating:     models.Answered(5),
		SelfMotivationLevel:  models.Answered(5),
		WeeklyTimeCommitment: models.Answered(30.0),
	}
	out, err := h.Execute(context.Background(), &Input{QuizResponse: q, Size: 3})
	require.NoError(t, err)
	assert.True(t, out.Reranked)
	require.Len(t, out.Results, 3)

	want := scoring.NewDefaultScorer().Rank(q, catalog.Default().Subset(ids))
	for i, r := range out.Results {
		assert.Equal(t, want[i].BusinessModel.ID, r.ID)
		require.NotNil(t, r.FitScore)
		assert.Equal(t, want[i].FitScore, *r.FitScore)
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestHandler_Execute_FallsBackToCatalog(t *testing.T) {
	h := newTestHandler(t, LoadConfig(), &fakeSearcher{err: fmt.Errorf("%w: 503", catalog.ErrSearchFailed)})

	out, err := h.Execute(context.Background(), &Input{Keywords: "saas"})
	require.NoError(t, err)
	assert.Equal(t, SourceCatalog, out.Source)
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "saas-development", out.Results[0].ID)
}

func TestHandler_Execute_SearchErrorWithoutFallback(t *testing.T) {
	cfg := LoadConfig()
	cfg.FallbackToCatalog = false
	h := newTestHandler(t, cfg, &fakeSearcher{err: fmt.Errorf("%w: 503", catalog.ErrSearchFailed)})

	_, err := h.Execute(context.Background(), &Input{Keywords: "saas"})
	assert.ErrorIs(t, err, catalog.ErrSearchFailed)
}

func TestHandler_Execute_NoSearcherUsesCatalog(t *testing.T) {
	h := newTestHandler(t, LoadConfig(), nil)

	out, err := h.Execute(context.Background(), &Input{Category: "Technology"})
	require.NoError(t, err)
	assert.Equal(t, SourceCatalog, out.Source)
	for _, r := range out.Results {
		assert.Equal(t, "Technology", r.Category)
	}
}

func TestHandler_Execute_WithElasticsearchIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"online-coaching","_source":{"id":"online-coaching"}},
			{"_id":"digital-products","_source":{"id":"digital-products"}}
		]}}`))
	}))
	defer server.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	index := catalog.NewSearchIndex(client, "business-models", log)
	h := NewHandler(LoadConfig(), catalog.Default(), scoring.NewDefaultScorer(), nil, index, nil, nil, log)

	out, err := h.Execute(context.Background(), &Input{Keywords: "teach"})
	require.NoError(t, err)
	assert.Equal(t, SourceElasticsearch, out.Source)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "online-coaching", out.Results[0].ID)
	assert.Equal(t, "digital-products", out.Results[1].ID)
}
