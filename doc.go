// Package capkit provides a typed capability registry with typed invocation
// for Go applications.
//
// A capability is a named, documented operation with declared parameter and
// return descriptors. Capabilities are collected in a registry and invoked
// through a dispatcher that validates arguments against the declared
// descriptors before execution and validates the return value afterwards.
// This package is the root of the toolkit, providing convenient exports of
// the core components from the sub-packages.
//
// # Overview
//
// The toolkit consists of several sub-packages:
//
//   - pkg/descriptor: Structural type descriptors and value validation
//   - pkg/registry: Capability entries and the name-keyed registry
//   - pkg/dispatch: Argument-validated invocation and batch dispatch
//   - pkg/errors: The capability error taxonomy
//   - pkg/logging: Structured logging used throughout the toolkit
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing
//
// # Registering Capabilities
//
// To build a registry and register a capability:
//
//	import (
//	    "context"
//	    "github.com/capkit/capkit"
//	    "github.com/capkit/capkit/pkg/registry"
//	)
//
//	func main() {
//	    reg := capkit.NewRegistry()
//
//	    err := reg.RegisterFunc("greet", "Greets the given name.",
//	        []registry.Parameter{
//	            {Name: "name", Descriptor: capkit.String()},
//	        },
//	        capkit.String(),
//	        func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
//	            return "Hello, " + args["name"].(string) + "!", nil
//	        },
//	    )
//	    if err != nil {
//	        // Handle error
//	    }
//	}
//
// # Dispatching
//
// To invoke capabilities through a dispatcher:
//
//	func main() {
//	    d := capkit.NewDispatcher(reg,
//	        capkit.WithMiddleware(capkit.LoggingMiddleware(logger)),
//	    )
//
//	    result := d.Dispatch(context.Background(), "greet",
//	        map[string]interface{}{"name": "World"})
//	    if result.OK {
//	        // result.Value holds the validated return value
//	    }
//	}
//
// # Examples
//
// The toolkit includes several examples in the examples directory:
//
//   - template-server: A registry exposing greeting and info capabilities
//   - concurrent-dispatch: Batch dispatch with a bounded worker pool
package capkit
