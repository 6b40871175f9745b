package apperror

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
)

// Коды конверта ответа {code, data, message}.
const (
	CodeSuccess      = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeRateLimited  = 429
	CodeInternal     = 500
	CodeBadGateway   = 502
)

type AppError struct {
	Code    ErrorCode
	Message string
	// Status - HTTP статус апстрима для UPSTREAM_ERROR.
	Status int
	Cause  error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// EnvelopeCode возвращает бизнес-код для поля code конверта.
func (e *AppError) EnvelopeCode() int {
	return codeToEnvelope(e.Code)
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Upstream описывает неуспешный ответ GitHub, сохраняя исходный статус в сообщении.
func Upstream(status int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: fmt.Sprintf("upstream responded with status %d", status),
		Status:  status,
		Cause:   cause,
	}
}

func codeToEnvelope(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return CodeNotFound
	case ErrCodeUnauthorized:
		return CodeUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return CodeBadRequest
	case ErrCodeConflict:
		return CodeConflict
	case ErrCodeUpstream:
		return CodeBadGateway
	case ErrCodeRateLimited:
		return CodeRateLimited
	default:
		return CodeInternal
	}
}

// From приводит произвольную ошибку к AppError; неизвестные ошибки становятся внутренними.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "internal server error")
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	return is(err, ErrCodeNotFound)
}

func IsConflict(err error) bool {
	return is(err, ErrCodeConflict)
}

func IsValidation(err error) bool {
	return is(err, ErrCodeValidation)
}

func IsUpstream(err error) bool {
	return is(err, ErrCodeUpstream)
}

var (
	ErrSkillNotFound       = New(ErrCodeNotFound, "skill not found")
	ErrDuplicateName       = New(ErrCodeConflict, "a skill with this name already exists")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "unauthorized")
	ErrStoreNotConfigured  = New(ErrCodeInternal, "skill store is not configured")
	ErrCatalogUnavailable  = New(ErrCodeInternal, "catalog unavailable")
	ErrRepositoryURLFormat = New(ErrCodeBadRequest, "unsupported repository url")
)
