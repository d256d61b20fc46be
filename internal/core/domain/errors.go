package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Validation Errors.
	// These are prevented at the call site and never reach the network layer.

	// ErrUsernameRequired indicates a submission was attempted without a username.
	ErrUsernameRequired = errors.New("username required")

	// ErrQueueEmpty indicates a submission was attempted with no selected files.
	ErrQueueEmpty = errors.New("no files selected")

	// ErrUploadInProgress indicates a batch is already in flight.
	ErrUploadInProgress = errors.New("upload in progress")

	// ErrUnsupportedFile indicates a file kind the service does not accept.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrFileTooLarge indicates a file above the configured upload limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrIndexOutOfRange indicates a queue position that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// Remote Errors.

	// ErrTransport indicates the request never produced an HTTP response
	// (connection refused, timeout, cancelled context).
	ErrTransport = errors.New("transport error")

	// ErrServer indicates the service answered with a non-2xx status.
	ErrServer = errors.New("server error")

	// ErrDecode indicates a response body that does not match the expected shape.
	ErrDecode = errors.New("invalid response")

	// Dashboard Errors.

	// ErrFetchFailed indicates a dashboard refresh did not complete.
	// The last good snapshot is kept.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNotConfirmed indicates a destructive action was not confirmed by the user.
	ErrNotConfirmed = errors.New("action not confirmed")

	// ErrPollerStopped indicates the dashboard poller has been torn down.
	ErrPollerStopped = errors.New("poller stopped")
)

// APIError is a non-2xx response from the document service.
type APIError struct {
	// StatusCode is the HTTP status returned by the service.
	StatusCode int

	// Detail is the structured error detail carried by the body, if any.
	Detail string

	// Body is the raw response body, kept for logging.
	Body string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "unexpected status"
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, text)
}

// Unwrap lets errors.Is match ErrNotFound for 404 and ErrServer otherwise.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrServer
}

// UserMessage returns the single user-visible text for a failed action.
// A structured server detail wins over the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Detail) != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// IsValidation reports whether err belongs to the call-site validation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrQueueEmpty) ||
		errors.Is(err, ErrUploadInProgress) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrIndexOutOfRange)
}
