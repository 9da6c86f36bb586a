// internal/workers/quiz/submit-quiz-response/handler.go
package submitquizresponse

import (
	"context"
	stderrors "errors"
	"fmt"

	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/errors"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-quiz-response"
)

// Saver persists a submission. *quiz.Store implements it.
type Saver interface {
	Save(ctx context.Context, sub quiz.Submission) (*quiz.StoredResponse, error)
}

type Handler struct {
	config    *Config
	store     Saver
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, store Saver, validator *registry.InputValidator, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
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
	if input.QuizResponse == nil {
		return nil, fmt.Errorf("%w: quizResponse is required", quiz.ErrNoAnswers)
	}

	stored, err := h.store.Save(ctx, quiz.Submission{
		UserID:  input.UserID,
		Email:   input.Email,
		Phone:   input.Phone,
		Answers: *input.QuizResponse,
	})
	if err != nil {
		if stderrors.Is(err, quiz.ErrNoAnswers) {
			return nil, err
		}
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	warnings := stored.Answers.Warnings()
	if len(warnings) > 0 {
		h.logger.Warn("quiz response has out-of-range answers", map[string]interface{}{
			"quizResponseId": stored.ID,
			"warnings":       warnings,
		})
	}

	return &Output{
		QuizResponseID: stored.ID,
		AnsweredCount:  stored.Answers.AnsweredCount(),
		Warnings:       append([]string{}, warnings...),
		SubmittedAt:    stored.CreatedAt,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
