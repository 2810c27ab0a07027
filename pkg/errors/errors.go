// Package errors provides structured error handling for the capability
// registry. It defines a uniform error type carrying a failure kind, a
// numeric code, and rich context so hosts can handle every failure
// programmatically instead of parsing messages.
package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind identifies the failure taxonomy of a registry or dispatch error.
// Every error produced by this SDK carries exactly one Kind.
type Kind string

const (
	// KindDuplicateName indicates a registration attempt reused an existing name
	KindDuplicateName Kind = "duplicate_name"

	// KindNotFound indicates a dispatch or lookup named an unregistered capability
	KindNotFound Kind = "not_found"

	// KindMissingArgument indicates a required parameter without a default was omitted
	KindMissingArgument Kind = "missing_argument"

	// KindUnknownArgument indicates an argument name the capability never declared
	KindUnknownArgument Kind = "unknown_argument"

	// KindTypeMismatch indicates an argument value that fails its declared descriptor
	KindTypeMismatch Kind = "type_mismatch"

	// KindInvalidReturnValue indicates the capability body returned a value that
	// fails the declared return descriptor. This is a capability-author defect,
	// not a caller-input error.
	KindInvalidReturnValue Kind = "invalid_return_value"

	// KindExecutionError wraps any failure raised inside the capability body
	KindExecutionError Kind = "execution_error"

	// KindInvalidEntry indicates a malformed capability definition at construction
	KindInvalidEntry Kind = "invalid_entry"
)

// Category represents the type/category of an error for classification and handling
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryNotFound     Category = "not_found"
	CategoryRegistration Category = "registration"
	CategoryExecution    Category = "execution"
	CategoryInternal     Category = "internal"
)

// Severity indicates how critical an error is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context provides additional context about where and when an error occurred
type Context struct {
	InvocationID string                 `json:"invocation_id,omitempty"`
	Capability   string                 `json:"capability,omitempty"`
	Arguments    map[string]interface{} `json:"arguments,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Component    string                 `json:"component,omitempty"`
	Operation    string                 `json:"operation,omitempty"`
}

// Error defines the interface for all capkit errors
type Error interface {
	error

	// Kind returns the failure kind for programmatic handling
	Kind() Kind

	// Code returns the numeric error code
	Code() int

	// Message returns a human-readable error message
	Message() string

	// Details returns detailed technical description for debugging
	Details() string

	// Data returns structured error data for programmatic handling
	Data() interface{}

	// Category returns the error category for classification
	Category() Category

	// Severity returns the error severity level
	Severity() Severity

	// Context returns the error context information
	Context() *Context

	// WithContext returns a new error with the provided context
	WithContext(ctx *Context) Error

	// WithDetail returns a new error with additional detail
	WithDetail(detail string) Error

	// WithData returns a new error with structured data
	WithData(data interface{}) Error

	// Unwrap returns the underlying error for error chain traversal
	Unwrap() error

	// ToJSON returns the error as a JSON-serializable map
	ToJSON() map[string]interface{}
}

// baseError implements the Error interface
type baseError struct {
	kind     Kind
	code     int
	message  string
	details  string
	data     interface{}
	category Category
	severity Severity
	context  *Context
	cause    error
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.details != "" {
		return fmt.Sprintf("%s: %s", e.message, e.details)
	}
	return e.message
}

// Kind returns the failure kind
func (e *baseError) Kind() Kind {
	return e.kind
}

// Code returns the numeric error code
func (e *baseError) Code() int {
	return e.code
}

// Message returns the human-readable error message
func (e *baseError) Message() string {
	return e.message
}

// Details returns detailed technical description
func (e *baseError) Details() string {
	return e.details
}

// Data returns structured error data
func (e *baseError) Data() interface{} {
	return e.data
}

// Category returns the error category
func (e *baseError) Category() Category {
	return e.category
}

// Severity returns the error severity
func (e *baseError) Severity() Severity {
	return e.severity
}

// Context returns the error context
func (e *baseError) Context() *Context {
	return e.context
}

// WithContext returns a new error with the provided context
func (e *baseError) WithContext(ctx *Context) Error {
	newErr := *e
	newErr.context = ctx
	return &newErr
}

// WithDetail returns a new error with additional detail
func (e *baseError) WithDetail(detail string) Error {
	newErr := *e
	if newErr.details != "" {
		newErr.details = fmt.Sprintf("%s; %s", newErr.details, detail)
	} else {
		newErr.details = detail
	}
	return &newErr
}

// WithData returns a new error with structured data
func (e *baseError) WithData(data interface{}) Error {
	newErr := *e
	newErr.data = data
	return &newErr
}

// Unwrap returns the underlying error
func (e *baseError) Unwrap() error {
	return e.cause
}

// ToJSON returns the error as a JSON-serializable map
func (e *baseError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"kind":     string(e.kind),
		"code":     e.code,
		"message":  e.message,
		"category": string(e.category),
		"severity": string(e.severity),
	}

	if e.details != "" {
		result["details"] = e.details
	}

	if e.data != nil {
		result["data"] = e.data
	}

	if e.context != nil {
		result["context"] = e.context
	}

	if e.cause != nil {
		result["cause"] = e.cause.Error()
	}

	return result
}

// MarshalJSON implements json.Marshaler for baseError
func (e *baseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}

// New creates a new Error with the specified parameters
func New(kind Kind, code int, message string, category Category, severity Severity) Error {
	return &baseError{
		kind:     kind,
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// Newf creates a new Error with a formatted message
func Newf(kind Kind, code int, category Category, severity Severity, format string, args ...interface{}) Error {
	return &baseError{
		kind:     kind,
		code:     code,
		message:  fmt.Sprintf(format, args...),
		category: category,
		severity: severity,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// Wrap wraps an existing error as an Error, preserving the cause
func Wrap(err error, kind Kind, code int, message string, category Category, severity Severity) Error {
	return &baseError{
		kind:     kind,
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		cause:    err,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// As extracts an Error from any error value
func As(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}

	if capErr, ok := err.(Error); ok {
		return capErr, true
	}

	return nil, false
}

// Is checks if an error is a capkit Error
func Is(err error) bool {
	_, ok := As(err)
	return ok
}

// IsKind checks if an error has a specific failure kind
func IsKind(err error, kind Kind) bool {
	if capErr, ok := As(err); ok {
		return capErr.Kind() == kind
	}
	return false
}

// KindOf returns the failure kind of an error, or KindExecutionError for
// errors that did not originate in this SDK.
func KindOf(err error) Kind {
	if capErr, ok := As(err); ok {
		return capErr.Kind()
	}
	return KindExecutionError
}

// IsCategory checks if an error is of a specific category
func IsCategory(err error, category Category) bool {
	if capErr, ok := As(err); ok {
		return capErr.Category() == category
	}
	return false
}

// CategoryForKind returns the category each kind belongs to, matching the
// classification the constructor helpers apply
func CategoryForKind(kind Kind) Category {
	switch kind {
	case KindMissingArgument, KindUnknownArgument, KindTypeMismatch, KindInvalidEntry:
		return CategoryValidation
	case KindNotFound:
		return CategoryNotFound
	case KindDuplicateName:
		return CategoryRegistration
	case KindInvalidReturnValue:
		return CategoryInternal
	default:
		return CategoryExecution
	}
}
