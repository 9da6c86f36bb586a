// internal/workers/paths/rank-business-paths/handler.go
package rankbusinesspaths

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/metrics"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/models"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "rank-business-paths"

	cacheName = "ranked_paths"
)

type Handler struct {
	config    *Config
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	quizzes   quiz.Reader
	redis     *redis.Client
	validator *registry.InputValidator
	obs       *observability.Observability
	responder *camunda.Responder
	logger    logger.Logger
}

func NewHandler(
	config *Config,
	cat *catalog.Catalog,
	scorer *scoring.Scorer,
	quizzes quiz.Reader,
	rdb *redis.Client,
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
		redis:     rdb,
		validator: validator,
		obs:       obs,
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
	answers, stored, err := quiz.Resolve(ctx, h.quizzes, input.QuizResponse, input.QuizResponseID)
	if err != nil {
		return nil, err
	}

	topN := h.config.DefaultTopN
	if input.TopN != nil {
		topN = *input.TopN
	}
	version := h.catalog.Fingerprint()

	// Only stored responses are immutable, so only they are cached.
	var key string
	if stored != nil && h.redis != nil {
		key = h.cacheKey(stored.ID, version)
		paths, hit, healthy := h.cached(ctx, key)
		if hit {
			return h.output(paths, topN, version, true), nil
		}
		if !healthy {
			key = ""
		}
	}

	start := time.Now()
	ranked := h.scorer.Rank(answers, h.catalog)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	metrics.PathsRanked.Add(float64(len(ranked)))
	h.obs.RecordRanking(ctx, len(ranked))

	for _, p := range ranked {
		metrics.FitScores.WithLabelValues(p.BusinessModel.ID).Observe(float64(p.FitScore))
		if p.Breakdown.Degraded {
			metrics.DegradedProfiles.WithLabelValues(p.BusinessModel.ID).Inc()
		}
	}

	if len(ranked) == 0 {
		h.logger.Warn("catalog is empty, nothing to rank", nil)
	}

	summaries := models.Summaries(ranked)
	if key != "" {
		h.store(ctx, key, summaries)
	}

	output := h.output(summaries, topN, version, false)
	h.logger.Info("business paths ranked", map[string]interface{}{
		"quizResponseId": input.QuizResponseID,
		"scored":         len(ranked),
		"returned":       len(output.RankedPaths),
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	return output, nil
}

func (h *Handler) output(paths []models.PathSummary, topN int, version string, hit bool) *Output {
	total := len(paths)
	if topN > 0 && topN < len(paths) {
		paths = paths[:topN]
	}
	return &Output{
		RankedPaths:    paths,
		TotalScored:    total,
		CatalogVersion: version,
		CacheHit:       hit,
	}
}

// CacheKeyPrefix starts every cached ranking key.
const CacheKeyPrefix = "rank:paths:"

func (h *Handler) cacheKey(quizResponseID, version string) string {
	w := h.scorer.Weights()
	return fmt.Sprintf("%s%s:%s:%.2f-%.2f-%.2f", CacheKeyPrefix, quizResponseID, version, w.Trait, w.Resource, w.Preference)
}

// cached reports a hit, and whether the cache answered at all. A failing cache is
// skipped for the rest of the job.
func (h *Handler) cached(ctx context.Context, key string) (paths []models.PathSummary, hit bool, healthy bool) {
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMiss(cacheName)
		if errors.Is(err, redis.Nil) {
			return nil, false, true
		}
		h.logger.Warn("ranking cache read failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return nil, false, false
	}

	if err := json.Unmarshal([]byte(val), &paths); err != nil {
		metrics.CacheMiss(cacheName)
		return nil, false, true
	}
	metrics.CacheHit(cacheName)
	return paths, true, true
}

func (h *Handler) store(ctx context.Context, key string, paths []models.PathSummary) {
	data, err := json.Marshal(paths)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("ranking cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
