package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Detail
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeAPIError        = "API_ERROR"
	ErrCodeNetworkError    = "NETWORK_ERROR"
	ErrCodeDecodeError     = "DECODE_ERROR"
)

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthenticatedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// APIError carries the server-provided message of a rejected API call.
func APIError(message string, statusCode int) *AppError {
	return NewAppError(ErrCodeAPIError, message, statusCode)
}

func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetworkError, message, 0)
}

func DecodeError(message string) *AppError {
	return NewAppError(ErrCodeDecodeError, message, 0)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// UserMessage extracts a user-facing message from err, falling back when the
// error carries no server-provided text. Only errors the server actually
// responded to qualify; network and decode failures keep the fallback.
func UserMessage(err error, fallback string) string {
	if appErr, ok := IsAppError(err); ok && appErr.StatusCode >= 400 && appErr.Message != "" {
		return appErr.Message
	}

	return fallback
}
