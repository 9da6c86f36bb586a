// internal/workers/report/prepare-narrative-context/handler.go
package preparenarrativecontext

import (
	"context"
	"time"

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
	TaskType = "prepare-narrative-context"
)

type Handler struct {
	config    *Config
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	quizzes   quiz.Reader
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
	now       func() time.Time
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
		now:       func() time.Time { return time.Now().UTC() },
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
	answers, _, err := quiz.Resolve(ctx, h.quizzes, input.QuizResponse, input.QuizResponseID)
	if err != nil {
		return nil, err
	}

	topN := input.TopN
	if topN <= 0 {
		topN = h.config.DefaultTopN
	}

	traits := scoring.NormalizeTraits(answers)
	top := scoring.TopN(h.scorer.Rank(answers, h.catalog), topN)

	paths := make([]PathContext, len(top))
	for i, p := range top {
		paths[i] = pathContext(p)
	}

	h.logger.Info("narrative context prepared", map[string]interface{}{
		"quizResponseId": input.QuizResponseID,
		"paths":          len(paths),
	})

	return &Output{NarrativeContext: NarrativeContext{
		QuizResponseID: input.QuizResponseID,
		Traits:         traits.Percentages(),
		Strongest:      traits.Strongest(3),
		TopPaths:       paths,
		Answers:        *answers,
		CatalogVersion: h.catalog.Fingerprint(),
		GeneratedAt:    h.now(),
	}}, nil
}

func pathContext(p models.RankedPath) PathContext {
	def := p.BusinessModel
	return PathContext{
		ID:              def.ID,
		Name:            def.Name,
		Description:     def.Description,
		Rank:            p.Rank,
		FitScore:        p.FitScore,
		FitCategory:     p.Category,
		Breakdown:       p.Breakdown,
		TimeToStart:     def.TimeToStart,
		StartupCost:     def.StartupCost,
		PotentialIncome: def.PotentialIncome,
		Difficulty:      def.Difficulty,
		Pros:            def.Pros,
		Cons:            def.Cons,
		Skills:          def.Skills,
		ActionPlan:      def.ActionPlan,
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
