// internal/workers/paths/search-business-models/handler.go
package searchbusinessmodels

import (
	"context"
	"strings"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-business-models"

	SourceElasticsearch = "elasticsearch"
	SourceCatalog       = "catalog"
)

// Searcher returns matching business model IDs in relevance order.
// *catalog.SearchIndex implements it.
type Searcher interface {
	Search(ctx context.Context, q catalog.SearchQuery) ([]string, error)
}

type Handler struct {
	config    *Config
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	quizzes   quiz.Reader
	searcher  Searcher
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
}

// NewHandler builds the handler. A nil searcher answers every query from the catalog.
func NewHandler(
	config *Config,
	cat *catalog.Catalog,
	scorer *scoring.Scorer,
	quizzes quiz.Reader,
	searcher Searcher,
	validator *registry.InputValidator,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		catalog:   cat,
		scorer:    scorer,
		quizzes:   quizzes,
		searcher:  searcher,
		validator: validator,
		responder: camunda.NewResponder(TaskType, obs, scoped),
		logger:    scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := support.Decode(job, TaskType, h.validator, &input); err != nil {
		h.responder.Fail(camunda.JobContext(job), client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(camunda.JobContext(job), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(camunda.JobContext(job), client, job, support.Classify(err))
		return
	}

	h.responder.Complete(camunda.JobContext(job), client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := catalog.SearchQuery{
		Keywords:   strings.TrimSpace(input.Keywords),
		Category:   strings.TrimSpace(input.Category),
		Difficulty: strings.TrimSpace(input.Difficulty),
		Size:       input.Size,
	}
	if query.Size <= 0 {
		query.Size = h.config.DefaultSize
	}

	ids, source, err := h.search(ctx, query)
	if err != nil {
		return nil, err
	}
	hits := h.catalog.Subset(ids)
	if dropped := len(ids) - hits.Len(); dropped > 0 {
		h.logger.Warn("search returned ids missing from the catalog", map[string]interface{}{
			"dropped": dropped,
		})
	}

	output := &Output{TotalHits: hits.Len(), Source: source}

	if input.QuizResponse == nil && input.QuizResponseID == "" {
		output.Results = relevanceOrder(hits.Entries())
		return output, nil
	}

	answers, _, err := quiz.Resolve(ctx, h.quizzes, input.QuizResponse, input.QuizResponseID)
	if err != nil {
		return nil, err
	}
	output.Results = fitOrder(h.scorer.Rank(answers, hits))
	output.Reranked = true

	h.logger.Info("search results re-ranked", map[string]interface{}{
		"keywords": query.Keywords,
		"hits":     output.TotalHits,
		"source":   source,
	})
	return output, nil
}

func (h *Handler) search(ctx context.Context, q catalog.SearchQuery) ([]string, string, error) {
	if h.searcher == nil {
		return h.catalog.Match(q), SourceCatalog, nil
	}

	ids, err := h.searcher.Search(ctx, q)
	if err == nil {
		return ids, SourceElasticsearch, nil
	}
	if !h.config.FallbackToCatalog {
		return nil, "", err
	}

	h.logger.Warn("search index failed, falling back to catalog match", map[string]interface{}{
		"error": err,
	})
	return h.catalog.Match(q), SourceCatalog, nil
}

func relevanceOrder(entries []models.BusinessModelDefinition) []Result {
	out := make([]Result, len(entries))
	for i, def := range entries {
		out[i] = Result{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			Difficulty:  def.Difficulty,
			Rank:        i + 1,
		}
	}
	return out
}

func fitOrder(ranked []models.RankedPath) []Result {
	out := make([]Result, len(ranked))
	for i, p := range ranked {
		score := p.FitScore
		out[i] = Result{
			ID:          p.BusinessModel.ID,
			Name:        p.BusinessModel.Name,
			Description: p.BusinessModel.Description,
			Category:    p.BusinessModel.Category,
			Difficulty:  p.BusinessModel.Difficulty,
			Rank:        p.Rank,
			FitScore:    &score,
			FitCategory: p.Category,
		}
	}
	return out
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
