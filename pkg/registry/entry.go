package registry

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/capkit/capkit/pkg/descriptor"
	"github.com/capkit/capkit/pkg/errors"
)

// Body is the executable unit of a capability. It receives the validated
// arguments (defaults already substituted) and produces a value matching the
// entry's return descriptor, or an error.
//
// Bodies must be side-effect-isolated: concurrent invocations receive
// independent argument maps and must not share mutable state through the
// entry itself.
type Body func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Parameter declares one named input of a capability
type Parameter struct {
	// Name is the argument key callers supply
	Name string

	// Descriptor is the expected value shape
	Descriptor *descriptor.Descriptor

	// HasDefault marks the parameter as optional; Default is substituted
	// when the argument is absent
	HasDefault bool

	// Default is the substituted value when HasDefault is set. It must
	// conform to Descriptor; NewEntry rejects entries whose defaults don't.
	Default interface{}
}

// Entry is one named, typed, invocable capability. Entries are immutable
// after construction and safe for concurrent invocation.
type Entry struct {
	name    string
	doc     string
	params  []Parameter
	returns *descriptor.Descriptor
	body    Body
}

// NewEntry constructs a capability entry, validating its definition.
// The parameter list order is preserved for enumeration and schema export.
func NewEntry(name, doc string, params []Parameter, returns *descriptor.Descriptor, body Body) (*Entry, error) {
	if name == "" {
		return nil, errors.InvalidEntry("capability name must not be empty")
	}
	if returns == nil {
		return nil, errors.InvalidEntryf("capability %q: return descriptor must not be nil", name)
	}
	if body == nil {
		return nil, errors.InvalidEntryf("capability %q: body must not be nil", name)
	}

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, errors.InvalidEntryf("capability %q: parameter name must not be empty", name)
		}
		if p.Descriptor == nil {
			return nil, errors.InvalidEntryf("capability %q: parameter %q has no descriptor", name, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, errors.InvalidEntryf("capability %q: duplicate parameter %q", name, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.HasDefault {
			if err := p.Descriptor.Validate(p.Default); err != nil {
				return nil, errors.InvalidEntryf("capability %q: default for parameter %q does not conform: %v", name, p.Name, err)
			}
		}
	}

	copied := make([]Parameter, len(params))
	copy(copied, params)

	return &Entry{
		name:    name,
		doc:     doc,
		params:  copied,
		returns: returns,
		body:    body,
	}, nil
}

// MustNewEntry is like NewEntry but panics on an invalid definition.
// Intended for the registration phase at process start, where a malformed
// capability is a programming error.
func MustNewEntry(name, doc string, params []Parameter, returns *descriptor.Descriptor, body Body) *Entry {
	entry, err := NewEntry(name, doc, params, returns, body)
	if err != nil {
		panic(err)
	}
	return entry
}

// Name returns the capability's unique name
func (e *Entry) Name() string {
	return e.name
}

// Doc returns the capability's human-readable documentation
func (e *Entry) Doc() string {
	return e.doc
}

// Parameters returns a copy of the declared parameters in declaration order
func (e *Entry) Parameters() []Parameter {
	out := make([]Parameter, len(e.params))
	copy(out, e.params)
	return out
}

// Returns returns the declared return descriptor
func (e *Entry) Returns() *descriptor.Descriptor {
	return e.returns
}

// InputSchema exports the parameter list as a JSON Schema object for
// host-side discovery. Parameters with defaults or optional descriptors are
// not required.
func (e *Entry) InputSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(e.params))
	var required []string
	for _, p := range e.params {
		properties[p.Name] = p.Descriptor.Schema()
		if !p.HasDefault && p.Descriptor.Kind() != descriptor.KindOptional {
			required = append(required, p.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Invoke validates arguments against the declared parameters, executes the
// body, and validates the result against the return descriptor.
//
// Validation happens strictly before execution: a missing required argument,
// an undeclared argument name, or a type mismatch fails the invocation
// without running the body. Failures inside the body, including panics, are
// wrapped as execution errors so callers always receive a structured error.
func (e *Entry) Invoke(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	validated := make(map[string]interface{}, len(e.params))

	for _, p := range e.params {
		value, present := args[p.Name]
		if !present {
			if p.HasDefault {
				validated[p.Name] = p.Default
				continue
			}
			if p.Descriptor.Kind() == descriptor.KindOptional {
				validated[p.Name] = nil
				continue
			}
			return nil, errors.MissingArgument(e.name, p.Name)
		}
		validated[p.Name] = value
	}

	for name := range args {
		if !e.declares(name) {
			return nil, errors.UnknownArgument(e.name, name)
		}
	}

	for _, p := range e.params {
		value := validated[p.Name]
		if _, present := args[p.Name]; !present {
			// Defaults were checked at construction time
			continue
		}
		if err := p.Descriptor.Validate(value); err != nil {
			return nil, errors.TypeMismatch(e.name, p.Name, p.Descriptor.String(), value).
				WithDetail(err.Error())
		}
	}

	result, err := e.execute(ctx, validated)
	if err != nil {
		return nil, errors.ExecutionError(e.name, err)
	}

	if err := e.returns.Validate(result); err != nil {
		return nil, errors.InvalidReturnValue(e.name, e.returns.String(), result).
			WithDetail(err.Error())
	}

	return result, nil
}

// execute runs the body, converting panics into errors so a misbehaving
// capability cannot crash the host
func (e *Entry) execute(ctx context.Context, args map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return e.body(ctx, args)
}

func (e *Entry) declares(name string) bool {
	for _, p := range e.params {
		if p.Name == name {
			return true
		}
	}
	return false
}
