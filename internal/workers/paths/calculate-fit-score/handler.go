// internal/workers/paths/calculate-fit-score/handler.go
package calculatefitscore

import (
	"context"
	"fmt"
	"strings"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/metrics"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-fit-score"
)

type Handler struct {
	config    *Config
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	quizzes   quiz.Reader
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
}

func NewHandler(
	config *Config,
	cat *catalog.Catalog,
	scorer *scoring.Scorer,
	quizzes quiz.Reader,
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
	id := strings.TrimSpace(input.BusinessModelID)
	def, ok := h.catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrBusinessNotFound, id)
	}

	answers, _, err := quiz.Resolve(ctx, h.quizzes, input.QuizResponse, input.QuizResponseID)
	if err != nil {
		return nil, err
	}

	score, breakdown := h.scorer.Score(answers, def)
	metrics.FitScores.WithLabelValues(def.ID).Observe(float64(score))
	if breakdown.Degraded {
		metrics.DegradedProfiles.WithLabelValues(def.ID).Inc()
		h.logger.Warn("business model has no usable trait profile", map[string]interface{}{
			"businessModelId": def.ID,
		})
	}

	h.logger.Info("fit score calculated", map[string]interface{}{
		"quizResponseId":  input.QuizResponseID,
		"businessModelId": def.ID,
		"score":           score,
		"breakdown":       breakdown,
	})

	return &Output{
		BusinessModelID:   def.ID,
		BusinessModelName: def.Name,
		FitScore:          score,
		Category:          scoring.CategoryFor(score),
		Breakdown:         breakdown,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
