// Package capkit provides a typed capability registry with typed invocation
package capkit

import (
	"github.com/capkit/capkit/pkg/descriptor"
	"github.com/capkit/capkit/pkg/dispatch"
	"github.com/capkit/capkit/pkg/registry"
)

// Version represents the current version of the toolkit
const Version = "1.0.0"

// These exports provide direct access to the core toolkit components
var (
	// NewRegistry creates a new capability registry
	NewRegistry = registry.New

	// NewEntry creates a new capability entry
	NewEntry = registry.NewEntry

	// MustNewEntry creates a new capability entry, panicking on invalid input
	MustNewEntry = registry.MustNewEntry

	// NewDispatcher creates a new dispatcher over a registry
	NewDispatcher = dispatch.New
)

// Descriptor constructors
var (
	String   = descriptor.String
	Integer  = descriptor.Integer
	Float    = descriptor.Float
	Boolean  = descriptor.Boolean
	Optional = descriptor.Optional
	Sequence = descriptor.Sequence
	Object   = descriptor.Object
)

// Registry options
var (
	WithRegistryLogger = registry.WithLogger
)

// Dispatcher options
var (
	WithDispatchLogger   = dispatch.WithLogger
	WithMiddleware       = dispatch.WithMiddleware
	WithConcurrencyLimit = dispatch.WithConcurrencyLimit
)

// Built-in dispatch middleware
var (
	LoggingMiddleware = dispatch.LoggingMiddleware
	MetricsMiddleware = dispatch.MetricsMiddleware
	TracingMiddleware = dispatch.TracingMiddleware
)
