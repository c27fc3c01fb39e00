package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional underlying error.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a 404 AppError.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// BadRequest creates a 400 AppError.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Conflict creates a 409 AppError.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}
