package errors

import (
	"fmt"
)

// ArgumentErrorData contains structured data for argument-related errors
type ArgumentErrorData struct {
	Capability string      `json:"capability"`
	Parameter  string      `json:"parameter"`
	Value      interface{} `json:"value,omitempty"`
	Expected   string      `json:"expected,omitempty"`
	Got        string      `json:"got,omitempty"`
	Required   bool        `json:"required,omitempty"`
}

// ReturnErrorData contains structured data for return-value contract violations
type ReturnErrorData struct {
	Capability string `json:"capability"`
	Expected   string `json:"expected"`
	Got        string `json:"got"`
}

// DuplicateName creates an error for a registration that reuses an existing name.
// The registry retains the first registration; the conflicting one is rejected.
func DuplicateName(name string) Error {
	return New(
		KindDuplicateName,
		CodeDuplicateName,
		fmt.Sprintf("capability %q is already registered", name),
		CategoryRegistration,
		SeverityError,
	).WithData(map[string]interface{}{"capability": name})
}

// NotFound creates an error for a dispatch or lookup on an unregistered name
func NotFound(name string) Error {
	return New(
		KindNotFound,
		CodeNotFound,
		fmt.Sprintf("capability not found: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithData(map[string]interface{}{"capability": name})
}

// MissingArgument creates an error for a required parameter that was omitted
// and has no default value
func MissingArgument(capability, param string) Error {
	return New(
		KindMissingArgument,
		CodeMissingArgument,
		fmt.Sprintf("missing required argument %q for capability %q", param, capability),
		CategoryValidation,
		SeverityError,
	).WithData(&ArgumentErrorData{
		Capability: capability,
		Parameter:  param,
		Required:   true,
	})
}

// UnknownArgument creates an error for an argument name the capability
// never declared
func UnknownArgument(capability, param string) Error {
	return New(
		KindUnknownArgument,
		CodeUnknownArgument,
		fmt.Sprintf("unknown argument %q for capability %q", param, capability),
		CategoryValidation,
		SeverityError,
	).WithData(&ArgumentErrorData{
		Capability: capability,
		Parameter:  param,
	})
}

// TypeMismatch creates an error for an argument value that fails its declared
// descriptor. The message names the offending parameter along with the
// expected and actual shapes.
func TypeMismatch(capability, param, expected string, value interface{}) Error {
	got := "nil"
	if value != nil {
		got = fmt.Sprintf("%T", value)
	}

	return New(
		KindTypeMismatch,
		CodeTypeMismatch,
		fmt.Sprintf("invalid argument %q for capability %q: expected %s, got %s", param, capability, expected, got),
		CategoryValidation,
		SeverityError,
	).WithData(&ArgumentErrorData{
		Capability: capability,
		Parameter:  param,
		Value:      value,
		Expected:   expected,
		Got:        got,
	})
}

// InvalidReturnValue creates an error for a body return value that fails the
// declared return descriptor. Surfaced with critical severity so hosts log it
// as a capability-author defect rather than a bad request.
func InvalidReturnValue(capability, expected string, value interface{}) Error {
	got := "nil"
	if value != nil {
		got = fmt.Sprintf("%T", value)
	}

	return New(
		KindInvalidReturnValue,
		CodeInvalidReturnValue,
		fmt.Sprintf("capability %q returned %s, declared return type is %s", capability, got, expected),
		CategoryInternal,
		SeverityCritical,
	).WithData(&ReturnErrorData{
		Capability: capability,
		Expected:   expected,
		Got:        got,
	})
}

// ExecutionError wraps a failure raised inside a capability body, preserving
// the original cause for diagnostics
func ExecutionError(capability string, cause error) Error {
	return Wrap(
		cause,
		KindExecutionError,
		CodeExecutionError,
		fmt.Sprintf("capability %q failed: %v", capability, cause),
		CategoryExecution,
		SeverityError,
	).WithData(map[string]interface{}{"capability": capability})
}

// InvalidEntry creates an error for a malformed capability definition detected
// at construction time
func InvalidEntry(reason string) Error {
	return New(
		KindInvalidEntry,
		CodeInvalidEntry,
		fmt.Sprintf("invalid capability definition: %s", reason),
		CategoryValidation,
		SeverityError,
	)
}

// InvalidEntryf creates an InvalidEntry error with a formatted reason
func InvalidEntryf(format string, args ...interface{}) Error {
	return InvalidEntry(fmt.Sprintf(format, args...))
}
