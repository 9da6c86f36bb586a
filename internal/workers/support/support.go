// internal/workers/support/support.go
package support

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/errors"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
)

// Decode validates the job variables against the registry schema for taskType, then
// unmarshals them into input. A nil validator skips the schema check.
func Decode(job entities.Job, taskType string, validator *registry.InputValidator, input interface{}) error {
	problems, err := validator.Validate(taskType, job.Variables)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if len(problems) > 0 {
		return errors.NewInputValidationFailedError(taskType, problems)
	}

	if err := json.Unmarshal([]byte(job.Variables), input); err != nil {
		return errors.NewQuizValidationFailedError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// Classify maps domain errors onto the StandardError taxonomy.
func Classify(err error) *errors.StandardError {
	var stdErr *errors.StandardError
	switch {
	case stderrors.As(err, &stdErr):
		return stdErr
	case stderrors.Is(err, quiz.ErrQuizNotFound):
		return errors.NewQuizNotFoundError(err.Error())
	case stderrors.Is(err, quiz.ErrNoAnswers):
		return errors.NewQuizValidationFailedError(err.Error())
	case stderrors.Is(err, catalog.ErrBusinessNotFound):
		return errors.NewBusinessModelNotFoundError(err.Error())
	case stderrors.Is(err, catalog.ErrCatalogLoad):
		return errors.NewCatalogLoadFailedError("catalog", err)
	case stderrors.Is(err, catalog.ErrSearchFailed):
		return errors.NewSearchQueryFailedError(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewDatabaseTimeoutError(err.Error())
	default:
		return errors.NewDatabaseQueryFailedError("load", err)
	}
}
