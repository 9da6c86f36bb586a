// internal/workers/quiz/normalize-traits/handler.go
package normalizetraits

import (
	"context"

	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "normalize-traits"
)

type Handler struct {
	config    *Config
	quizzes   quiz.Reader
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, quizzes quiz.Reader, validator *registry.InputValidator, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
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
	answers, _, err := quiz.Resolve(ctx, h.quizzes, input.QuizResponse, input.QuizResponseID)
	if err != nil {
		return nil, err
	}

	traits := scoring.NormalizeTraits(answers)
	output := &Output{
		Traits:      traits,
		Percentages: traits.Percentages(),
		Strongest:   traits.Strongest(h.config.StrongestCount),
		Warnings:    answers.Warnings(),
	}

	h.logger.Debug("traits normalized", map[string]interface{}{
		"quizResponseId": input.QuizResponseID,
		"strongest":      output.Strongest,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
