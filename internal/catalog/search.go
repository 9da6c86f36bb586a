// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bizpath-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrSearchFailed = errors.New("SEARCH_FAILED")

// SearchIndex mirrors catalog entries into Elasticsearch for keyword search. Scoring
// still runs against the in-memory Catalog; the index only selects candidates.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

type SearchQuery struct {
	Keywords   string
	Category   string
	Difficulty string
	Size       int
}

// searchDocument is the indexed projection of a business model.
type searchDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	RiskLevel   string   `json:"riskLevel"`
	Skills      []string `json:"skills"`
	Tools       []string `json:"tools"`
	Position    int      `json:"position"`
}

func NewSearchIndex(client *elasticsearch.Client, index string, log logger.Logger) *SearchIndex {
	return &SearchIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-search", "index": index}),
	}
}

// IndexCatalog writes every entry with its catalog position.
func (s *SearchIndex) IndexCatalog(ctx context.Context, c *Catalog) error {
	for i, def := range c.Entries() {
		doc := searchDocument{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			Difficulty:  def.Difficulty,
			RiskLevel:   def.RiskLevel,
			Skills:      def.Skills,
			Tools:       def.Tools,
			Position:    i,
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", def.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      s.index,
			DocumentID: def.ID,
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("%w: index %s: %v", ErrSearchFailed, def.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("%w: index %s: %s", ErrSearchFailed, def.ID, res.Status())
		}
	}

	res, err := esapi.IndicesRefreshRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: refresh: %v", ErrSearchFailed, err)
	}
	res.Body.Close()

	s.logger.Info("catalog indexed", map[string]interface{}{"entries": c.Len()})
	return nil
}

// Search returns matching business model IDs in relevance order.
func (s *SearchIndex) Search(ctx context.Context, q SearchQuery) ([]string, error) {
	size := q.Size
	if size <= 0 {
		size = 20
	}

	body, err := json.Marshal(buildSearchQuery(q, size))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source searchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id := hit.Source.ID
		if id == "" {
			id = hit.ID
		}
		ids = append(ids, id)
	}

	s.logger.Debug("catalog search", map[string]interface{}{
		"keywords": q.Keywords,
		"hits":     len(ids),
	})
	return ids, nil
}

func buildSearchQuery(q SearchQuery, size int) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Keywords,
				"fields": []string{"name^3", "description^2", "skills", "tools", "category"},
				"type":   "best_fields",
			},
		})
	} else {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if q.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category.keyword": q.Category},
		})
	}
	if q.Difficulty != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"difficulty.keyword": q.Difficulty},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"position": "asc"},
		},
		"size": size,
	}
}
