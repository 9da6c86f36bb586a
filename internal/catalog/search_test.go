// internal/catalog/search_test.go
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"bizpath-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu        sync.Mutex
	indexed   []string
	lastQuery map[string]interface{}
	searchRes string
	status    int
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.Contains(r.URL.Path, "/_doc/"):
		f.indexed = append(f.indexed, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case strings.HasSuffix(r.URL.Path, "/_refresh"):
		_, _ = io.WriteString(w, `{"_shards":{"total":1,"successful":1,"failed":0}}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &f.lastQuery)
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = io.WriteString(w, f.searchRes)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func newFakeES(t *testing.T, f *fakeES) *elasticsearch.Client {
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestSearchIndex_IndexCatalog(t *testing.T) {
	fake := &fakeES{}
	idx := NewSearchIndex(newFakeES(t, fake), "business-models", logger.NewTestLogger(t))

	c, err := New(sampleEntries())
	require.NoError(t, err)

	require.NoError(t, idx.IndexCatalog(context.Background(), c))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, fake.indexed)
}

func TestSearchIndex_Search(t *testing.T) {
	fake := &fakeES{searchRes: `{
		"hits": {"hits": [
			{"_id": "gamma", "_source": {"id": "gamma"}},
			{"_id": "alpha-doc", "_source": {"id": "alpha"}},
			{"_id": "beta", "_source": {}}
		]}
	}`}
	idx := NewSearchIndex(newFakeES(t, fake), "business-models", logger.NewNoOpLogger())

	ids, err := idx.Search(context.Background(), SearchQuery{Keywords: "software", Category: "Technology", Size: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, ids)

	require.NotNil(t, fake.lastQuery)
	assert.Equal(t, float64(5), fake.lastQuery["size"])
	boolQuery := fake.lastQuery["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Len(t, boolQuery["must"], 1)
	assert.Len(t, boolQuery["filter"], 1)
}

func TestSearchIndex_SearchError(t *testing.T) {
	fake := &fakeES{status: http.StatusBadRequest, searchRes: `{"error": "bad query"}`}
	idx := NewSearchIndex(newFakeES(t, fake), "business-models", logger.NewNoOpLogger())

	_, err := idx.Search(context.Background(), SearchQuery{Keywords: "x"})
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestBuildSearchQuery(t *testing.T) {
	q := buildSearchQuery(SearchQuery{Difficulty: "Beginner"}, 20)

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "match_all")

	filter := boolQuery["filter"].([]interface{})
	require.Len(t, filter, 1)
	assert.Equal(t, 20, q["size"])
}
