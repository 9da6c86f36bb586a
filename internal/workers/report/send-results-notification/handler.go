// internal/workers/report/send-results-notification/handler.go
package sendresultsnotification

import (
	"context"
	"fmt"
	"strings"

	"bizpath-workers/internal/common/aws"
	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/errors"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/workers/support"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-results-notification"

	channelEmail = "email"
	channelSMS   = "sms"
)

// EmailSender is implemented by *aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, msg aws.EmailMessage) (string, error)
}

// SMSSender is implemented by *aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config    *Config
	email     EmailSender
	sms       SMSSender
	validator *registry.InputValidator
	responder *camunda.Responder
	logger    logger.Logger
}

// NewHandler builds the handler. A nil sender disables its channel.
func NewHandler(
	config *Config,
	email EmailSender,
	sms SMSSender,
	validator *registry.InputValidator,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		email:     email,
		sms:       sms,
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
	notificationID := uuid.New().String()

	emailOn := h.config.EmailEnabled && h.email != nil
	smsOn := h.config.SMSEnabled && h.sms != nil
	if !emailOn && !smsOn {
		h.logger.Info("notifications disabled, skipping", map[string]interface{}{
			"quizResponseId": input.QuizResponseID,
		})
		return &Output{NotificationID: notificationID, Status: StatusDisabled, Channels: []string{}}, nil
	}

	if len(input.RankedPaths) == 0 {
		return nil, errors.NewInputValidationFailedError(TaskType, []string{"rankedPaths: at least one path is required"})
	}

	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if (!emailOn || email == "") && (!smsOn || phone == "") {
		return nil, errors.NewNoRecipientError().WithMetadata("quizResponseId", input.QuizResponseID)
	}

	paths := input.RankedPaths
	if h.config.MaxPaths > 0 && len(paths) > h.config.MaxPaths {
		paths = paths[:h.config.MaxPaths]
	}
	msg, err := render(messageData{
		Name:       strings.TrimSpace(input.UserName),
		Paths:      paths,
		ResultsURL: strings.ReplaceAll(h.config.ResultsURL, "{quizResponseId}", input.QuizResponseID),
	})
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("render notification: %w", err))
	}

	output := &Output{NotificationID: notificationID, Channels: []string{}, MessageIDs: map[string]string{}}
	var firstErr *errors.StandardError

	if emailOn && email != "" {
		id, err := h.email.SendEmail(ctx, aws.EmailMessage{
			To:       email,
			Subject:  msg.Subject,
			TextBody: msg.Text,
			HTMLBody: msg.HTML,
		})
		if err != nil {
			firstErr = h.sendFailed(channelEmail, err, firstErr)
		} else {
			output.Channels = append(output.Channels, channelEmail)
			output.MessageIDs[channelEmail] = id
		}
	}

	if smsOn && phone != "" {
		id, err := h.sms.SendSMS(ctx, phone, msg.SMS)
		if err != nil {
			firstErr = h.sendFailed(channelSMS, err, firstErr)
		} else {
			output.Channels = append(output.Channels, channelSMS)
			output.MessageIDs[channelSMS] = id
		}
	}

	switch {
	case len(output.Channels) == 0:
		return nil, firstErr.WithMetadata("notificationId", notificationID)
	case firstErr != nil:
		output.Status = StatusPartial
	default:
		output.Status = StatusSent
	}

	h.logger.Info("results notification sent", map[string]interface{}{
		"notificationId": notificationID,
		"quizResponseId": input.QuizResponseID,
		"channels":       output.Channels,
		"status":         output.Status,
	})
	return output, nil
}

func (h *Handler) sendFailed(channel string, err error, first *errors.StandardError) *errors.StandardError {
	h.logger.Warn("notification channel failed", map[string]interface{}{
		"channel": channel,
		"error":   err,
	})
	if first != nil {
		return first
	}
	return errors.NewNotificationSendFailedError(channel, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
