package errors

import (
	"errors"
	"fmt"
)

// ErrorType partitions failures the way the HTTP layer needs to map them.
type ErrorType string

const (
	ErrorTypeEmbedding         ErrorType = "embedding"
	ErrorTypeEvaluation        ErrorType = "evaluation"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeNoJobDescriptions ErrorType = "no_job_descriptions"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeStorage           ErrorType = "storage"
	ErrorTypeInternal          ErrorType = "internal"
)

const (
	ErrCodeEmbeddingFailed    = "EMBEDDING_FAILED"
	ErrCodeDimensionMismatch  = "EMBEDDING_DIMENSION_MISMATCH"
	ErrCodeEvaluationFailed   = "EVALUATION_FAILED"
	ErrCodeEmptyResponse      = "EVALUATION_EMPTY_RESPONSE"
	ErrCodeVerdictInvalid     = "VERDICT_SCHEMA_INVALID"
	ErrCodeJDNotFound         = "JOB_DESCRIPTION_NOT_FOUND"
	ErrCodeNoJobDescriptions  = "NO_JOB_DESCRIPTIONS"
	ErrCodeSubmissionNotFound = "SUBMISSION_NOT_FOUND"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
)

// AppError is a structured application error carrying enough shape for the
// transport layer to pick a status code without string matching.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(typ ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    typ,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewEmbeddingError wraps embedding provider failures (network, quota,
// dimension mismatch on write).
func NewEmbeddingError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeEmbedding, code, message, cause)
}

// NewEvaluationError wraps evaluator failures: provider unreachable, empty
// response, or a payload that failed schema validation.
func NewEvaluationError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeEvaluation, code, message, cause)
}

func NewNotFoundError(code, message string) *AppError {
	return newAppError(ErrorTypeNotFound, code, message, nil)
}

// NewNoJobDescriptionsError marks dynamic matching against an empty
// repository. Distinct from NotFound so callers can tell "id does not exist"
// from "nothing to match against".
func NewNoJobDescriptionsError() *AppError {
	return newAppError(ErrorTypeNoJobDescriptions, ErrCodeNoJobDescriptions,
		"no job descriptions available, upload one first", nil)
}

func NewValidationError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, code, message, cause)
}

func NewStorageError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, code, message, cause)
}

func NewInternalError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeInternal, code, message, cause)
}

// TypeOf walks the error chain and returns the type of the outermost
// AppError, or ErrorTypeInternal for plain errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether any error in the chain is an AppError of the given
// type.
func IsType(err error, typ ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == typ
	}
	return false
}
