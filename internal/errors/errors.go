// Package errors provides centralized error definitions and error handling utilities
// for hubview. It defines the fetch failure taxonomy used by the hub pipeline,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// Fetch errors describe a failed remote retrieval:
//   - FetchError with Kind KindTransport: the request never produced a response
//   - FetchError with Kind KindHTTP: the response was absent or not 2xx
//   - FetchError with Kind KindMalformed: the payload is not a valid document
//
// Each FetchError also carries a Scope (hub or collection) so callers can tell
// a page-level failure from a row-level one.
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state
//   - TimeoutError: operation timed out
//
// # Usage
//
//	err := errors.NewFetchError(errors.ScopeCollection, errors.KindHTTP, href, nil).
//		WithStatusCode(503)
//
//	if errors.Is(err, errors.ErrCollectionFetch) { ... }
//	if errors.Is(err, errors.ErrHTTPStatus) { ... }
//
//	var fe *errors.FetchError
//	if errors.As(err, &fe) { log.Warn("row omitted", "status", fe.StatusCode) }
//
// # Error Classification
//
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Fetch-related sentinel errors
var (
	// ErrTransport indicates the request failed before any response arrived.
	ErrTransport = New("transport failure")
	// ErrHTTPStatus indicates the server answered with a non-success status.
	ErrHTTPStatus = New("unsuccessful http status")
	// ErrNoResponse indicates the transport returned no response at all.
	ErrNoResponse = New("no response")
	// ErrMalformedDocument indicates the payload is not a structurally valid document.
	ErrMalformedDocument = New("malformed document")
	// ErrHubFetch matches every failure of the top-level hub retrieval.
	ErrHubFetch = New("hub fetch failed")
	// ErrCollectionFetch matches every failure of a single collection retrieval.
	ErrCollectionFetch = New("collection fetch failed")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// HubError is the base interface for all hubview errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type HubError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Fetch Errors
// -----------------------------------------------------------------------------

// Kind classifies a fetch failure.
type Kind int

const (
	// KindTransport is a network-level failure (dial, TLS, reset, timeout).
	KindTransport Kind = iota
	// KindHTTP is an absent response or a non-success status code.
	KindHTTP
	// KindMalformed is a response body that does not decode into the expected shape.
	KindMalformed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Scope identifies which retrieval failed.
type Scope int

const (
	// ScopeHub is the top-level hub document.
	ScopeHub Scope = iota
	// ScopeCollection is a single lazily fetched row.
	ScopeCollection
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeHub:
		return "hub"
	case ScopeCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// FetchError represents a failed hub or collection retrieval. The underlying
// cause is preserved for diagnostics; the message is not meant for end users.
//
// Example:
//
//	err := errors.NewFetchError(errors.ScopeHub, errors.KindHTTP, url, nil).WithStatusCode(502)
//	fmt.Println(err) // "hub fetch error [kind=http, url=..., status=502]: unsuccessful http status"
type FetchError struct {
	baseError
	Scope      Scope
	Kind       Kind
	URL        string
	StatusCode int
}

// NewFetchError creates a new FetchError. When cause is nil the kind's
// sentinel is used as the message.
func NewFetchError(scope Scope, kind Kind, url string, cause error) *FetchError {
	return &FetchError{
		baseError: baseError{
			message:    kindSentinel(kind).Error(),
			cause:      cause,
			severity:   SeverityError,
			retryable:  kind != KindMalformed,
			userFacing: false,
		},
		Scope: scope,
		Kind:  kind,
		URL:   url,
	}
}

// WithStatusCode records the HTTP status of the failed response.
func (e *FetchError) WithStatusCode(code int) *FetchError {
	e.StatusCode = code
	return e
}

// WithMessage replaces the default kind message.
func (e *FetchError) WithMessage(message string) *FetchError {
	e.message = message
	return e
}

// Error returns the formatted error message.
func (e *FetchError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}
	if e.URL != "" {
		parts = append(parts, fmt.Sprintf("url=%s", e.URL))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := fmt.Sprintf("%s fetch error [%s]", e.Scope, strings.Join(parts, ", "))
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target. A FetchError matches its
// scope sentinel, its kind sentinel and any *FetchError.
func (e *FetchError) Is(target error) bool {
	if _, ok := target.(*FetchError); ok {
		return true
	}
	switch target {
	case ErrHubFetch:
		return e.Scope == ScopeHub
	case ErrCollectionFetch:
		return e.Scope == ScopeCollection
	case kindSentinel(e.Kind):
		return true
	}
	return e.baseError.Is(target)
}

func kindSentinel(k Kind) error {
	switch k {
	case KindHTTP:
		return ErrHTTPStatus
	case KindMalformed:
		return ErrMalformedDocument
	default:
		return ErrTransport
	}
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("row has no items and no href")
//	err = err.WithField("components[3].href").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("GET hub.json", 5*time.Second)
//	fmt.Println(err) // "timeout error: GET hub.json (timeout: 5s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. This checks for:
//   - Errors implementing HubError with IsRetryable() returning true
//   - Errors wrapping ErrTimeout
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var hubErr HubError
	if As(err, &hubErr) {
		return hubErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("Something went wrong while loading the content.")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var hubErr HubError
	if As(err, &hubErr) {
		return hubErr.IsUserFacing()
	}

	var validation *ValidationError
	var timeout *TimeoutError
	return As(err, &validation) || As(err, &timeout)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement HubError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var hubErr HubError
	if As(err, &hubErr) {
		return hubErr.Severity()
	}

	return SeverityError
}

// KindOf returns the fetch kind of err and true, or false when err is not a
// FetchError.
func KindOf(err error) (Kind, bool) {
	var fe *FetchError
	if As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
