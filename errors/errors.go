package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the custom error type carried across usecase and handler layers
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return AppError{}, false
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// Resolution errors

func ErrClientNotFound(clientID uint) AppError {
	return ErrNotFound("Client").WithDetail("client_id", fmt.Sprintf("%d", clientID))
}

func ErrMeetingNotFound(meetingID uint) AppError {
	return ErrNotFound("Meeting").WithDetail("meeting_id", fmt.Sprintf("%d", meetingID))
}

// Classification errors

func ErrRateLimitExceeded(attempts int, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_RATE_LIMIT_EXCEEDED,
		Message:  fmt.Sprintf("Classifier rate limit exhausted after %d attempts", attempts),
	}
}

func ErrInvalidClassifierOutput(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INVALID_CLASSIFIER_OUTPUT,
		Message:  "Classifier returned an empty or schema-invalid payload",
	}
}

// Ingestion errors

func ErrIngestFailed(row int, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INGEST_FAILED,
		Message:  "CSV ingestion aborted",
	}.WithDetail("row", fmt.Sprintf("%d", row))
}

// Storage errors

func ErrStorageUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_STORAGE_UNAVAILABLE,
		Message:  "Object storage unavailable",
	}
}
