// Package pkg provides the core components of the capkit capability toolkit.
//
// A capability is a named, documented operation with declared parameter and
// return descriptors. This package contains several sub-packages that
// implement different aspects of the toolkit.
//
// # Registering and Dispatching
//
// To register a capability and dispatch an invocation:
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
//	    _ = reg.RegisterFunc("greet", "Greets the given name.",
//	        []registry.Parameter{{Name: "name", Descriptor: capkit.String()}},
//	        capkit.String(),
//	        func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
//	            return "Hello, " + args["name"].(string) + "!", nil
//	        })
//
//	    d := capkit.NewDispatcher(reg)
//	    result := d.Dispatch(context.Background(), "greet",
//	        map[string]interface{}{"name": "World"})
//	    _ = result
//	}
//
// # Sub-packages
//
// The toolkit consists of several sub-packages:
//
//   - descriptor: Structural type descriptors and value validation
//   - registry: Capability entries and the name-keyed registry
//   - dispatch: Argument-validated invocation and batch dispatch
//   - errors: The capability error taxonomy
//   - logging: Structured logging used throughout the toolkit
//   - observability: Prometheus metrics and OpenTelemetry tracing
package pkg
