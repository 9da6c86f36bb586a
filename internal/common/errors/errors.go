// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeQuizValidationFailed ErrorCode = "QUIZ_VALIDATION_FAILED"
	ErrCodeQuizNotFound         ErrorCode = "QUIZ_NOT_FOUND"

	ErrCodeCatalogLoadFailed     ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeBusinessModelNotFound ErrorCode = "BUSINESS_MODEL_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseQueryFailed      ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseTimeout          ErrorCode = "DATABASE_TIMEOUT"

	ErrCodeSearchUnavailable ErrorCode = "SEARCH_UNAVAILABLE"
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeNoRecipient            ErrorCode = "NO_RECIPIENT"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeOrchestratorUnavailable ErrorCode = "ORCHESTRATOR_UNAVAILABLE"
	ErrCodeOrchestratorRejected    ErrorCode = "ORCHESTRATOR_REJECTED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuizValidationFailedError is raised for job input that is not a usable quiz response.
func NewQuizValidationFailedError(details string) *StandardError {
	return newError(ErrCodeQuizValidationFailed, "Quiz response validation failed", details, false)
}

func NewQuizNotFoundError(quizResponseID string) *StandardError {
	return newError(ErrCodeQuizNotFound, "Quiz response not found",
		fmt.Sprintf("quizResponseId: %s", quizResponseID), false)
}

// NewCatalogLoadFailedError covers unreadable or undecodable catalog sources.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Business model catalog could not be loaded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewBusinessModelNotFoundError(businessModelID string) *StandardError {
	return newError(ErrCodeBusinessModelNotFound, "Business model not found in catalog",
		fmt.Sprintf("businessModelId: %s", businessModelID), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewDatabaseQueryFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseQueryFailed, "Database query execution error",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

func NewDatabaseTimeoutError(operation string) *StandardError {
	return newError(ErrCodeDatabaseTimeout, "Database query timeout",
		fmt.Sprintf("operation: %s", operation), true)
}

// NewSearchUnavailableError is used when the search index is disabled or unreachable.
func NewSearchUnavailableError(err error) *StandardError {
	return newError(ErrCodeSearchUnavailable, "Search index unavailable", err.Error(), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query error", err.Error(), true)
}

func NewSearchTimeoutError() *StandardError {
	return newError(ErrCodeSearchTimeout, "Search query timeout", "search exceeded timeout threshold", true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewNoRecipientError() *StandardError {
	return newError(ErrCodeNoRecipient, "No email or phone number to notify", "", false)
}

// NewInputValidationFailedError reports job variables rejected by the activity registry schema.
func NewInputValidationFailedError(taskType string, problems []string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job input validation failed",
		fmt.Sprintf("taskType: %s, problems: %s", taskType, strings.Join(problems, "; ")), false)
}

// NewOrchestratorError wraps a failed broker command. Unavailable brokers are retryable.
func NewOrchestratorError(operation string, err error, retryable bool) *StandardError {
	code := ErrCodeOrchestratorRejected
	if retryable {
		code = ErrCodeOrchestratorUnavailable
	}
	return newError(code, fmt.Sprintf("Zeebe operation '%s' failed", operation), err.Error(), retryable)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled on boundary events.
// Timeouts share the boundary of their family.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeQuizValidationFailed:     "QUIZ_VALIDATION_FAILED",
	ErrCodeQuizNotFound:             "QUIZ_NOT_FOUND",
	ErrCodeCatalogLoadFailed:        "CATALOG_LOAD_FAILED",
	ErrCodeBusinessModelNotFound:    "BUSINESS_MODEL_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed: "DATABASE_ERROR",
	ErrCodeDatabaseQueryFailed:      "DATABASE_ERROR",
	ErrCodeDatabaseInsertFailed:     "DATABASE_ERROR",
	ErrCodeDatabaseTimeout:          "DATABASE_ERROR",
	ErrCodeSearchUnavailable:        "SEARCH_ERROR",
	ErrCodeSearchQueryFailed:        "SEARCH_ERROR",
	ErrCodeSearchTimeout:            "SEARCH_ERROR",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeNoRecipient:              "NOTIFICATION_SEND_FAILED",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseQueryFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSearchUnavailable,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeOrchestratorUnavailable:
		return 3

	case ErrCodeDatabaseTimeout,
		ErrCodeSearchTimeout,
		ErrCodeCatalogLoadFailed:
		return 2

	default:
		return 0 // business errors
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "QUIZ"):
		return "QUIZ"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "BUSINESS_MODEL"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.HasPrefix(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "RECIPIENT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "ORCHESTRATOR"):
		return "ORCHESTRATOR"
	default:
		return "OTHER"
	}
}
