// Package sferr provides standardized error handling for forcesql.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package sferr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-5 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Schema errors (E1xxx) - problems with the column/table model
	ErrSchemaInvalid Code = "E1001" // Schema model is malformed or invalid
	ErrUnknownField  Code = "E1002" // Field type cannot be mapped to a column

	// Auth errors (E2xxx) - problems logging into Salesforce
	ErrNotAuthenticated Code = "E2001" // Client must log in first
	ErrTokenRequest     Code = "E2002" // Token request was rejected
	ErrClientConfig     Code = "E2003" // Client is missing required configuration

	// API errors (E3xxx) - problems talking to the REST API
	ErrAPIRequest  Code = "E3001" // Request failed at the HTTP layer
	ErrAPIResponse Code = "E3002" // API returned an error response
	ErrAPIDecode   Code = "E3003" // Response body could not be decoded

	// Output errors (E4xxx) - problems with SQL output
	ErrSQLWrite     Code = "E4001" // Writing the SQL file failed
	ErrSQLExecution Code = "E4002" // SQL statement failed to execute
	ErrSQLConnect   Code = "E4003" // Database connection failed
	ErrDialect      Code = "E4004" // Dialect is not supported

	// Cache errors (E5xxx) - problems with the local metadata cache
	ErrCacheInit  Code = "E5001" // Cache initialization failed
	ErrCacheRead  Code = "E5002" // Cache read failed
	ErrCacheWrite Code = "E5003" // Cache write failed
)

// Error is the standard error type for forcesql.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
}

// Error returns the formatted error string.
// Format:
//
//	[E3002] describe request failed
//	  object: Account
//	  status: 404
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Write context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// Two *Error values match if they carry the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithObject adds Salesforce object context to the error.
func (e *Error) WithObject(name string) *Error {
	return e.With("object", name)
}

// WithColumn adds column context to the error.
func (e *Error) WithColumn(name string) *Error {
	return e.With("column", name)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// New creates a new Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an underlying cause.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// CodeOf extracts the code from an error, or "" if it is not a *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}
