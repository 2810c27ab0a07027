package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/capkit/capkit/pkg/errors"
	"github.com/capkit/capkit/pkg/logging"
	"github.com/capkit/capkit/pkg/registry"
)

// Call names one capability and the arguments to invoke it with
type Call struct {
	Name      string
	Arguments map[string]interface{}
}

// Result is the uniform outcome of a dispatch. Every failure kind surfaces
// through this one shape; a dispatch never panics outward and never returns
// an unstructured error to the host.
type Result struct {
	OK           bool        `json:"ok"`
	Value        interface{} `json:"value,omitempty"`
	ErrorKind    errors.Kind `json:"errorKind,omitempty"`
	Message      string      `json:"message,omitempty"`
	Code         int         `json:"code,omitempty"`
	InvocationID string      `json:"invocationId,omitempty"`

	// Duration is the wall-clock time of the dispatch, for host-side logging
	Duration time.Duration `json:"-"`
}

// Handler processes one dispatch call
type Handler func(ctx context.Context, call *Call) *Result

// Middleware wraps a handler with cross-cutting behavior
type Middleware func(next Handler) Handler

// Dispatcher routes calls to registry entries by name. It holds no per-call
// state: the registry is read-only during dispatch, each invocation works on
// its own arguments, and concurrent dispatches are independent.
type Dispatcher struct {
	registry    *registry.Registry
	logger      logging.Logger
	handler     Handler
	concurrency int
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger
func WithLogger(logger logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMiddleware wraps the dispatch handler with the given middleware.
// The first middleware listed becomes the outermost wrapper.
func WithMiddleware(mw ...Middleware) Option {
	return func(d *Dispatcher) {
		for i := len(mw) - 1; i >= 0; i-- {
			d.handler = mw[i](d.handler)
		}
	}
}

// WithConcurrencyLimit caps the number of parallel invocations in DispatchAll.
// Zero or negative means no limit.
func WithConcurrencyLimit(n int) Option {
	return func(d *Dispatcher) {
		d.concurrency = n
	}
}

// New creates a dispatcher over the given registry
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   logging.NewNop(),
	}
	d.handler = d.dispatch

	// Options may wrap d.handler, so apply them after the base handler exists
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch looks up the named capability, invokes it with the given
// arguments, and returns the structured outcome. Each dispatch is tagged
// with a fresh invocation id carried in the context for logging and tracing.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) *Result {
	id := uuid.New().String()
	ctx = logging.ContextWithInvocationID(ctx, id)

	start := time.Now()
	result := d.handler(ctx, &Call{Name: name, Arguments: args})
	result.InvocationID = id
	result.Duration = time.Since(start)
	return result
}

// DispatchAll invokes a batch of calls concurrently and returns results
// index-aligned with the input. Independent dispatches never observe each
// other's arguments or results; a failed call yields a failure result at its
// index without affecting the others.
func (d *Dispatcher) DispatchAll(ctx context.Context, calls []Call) []*Result {
	results := make([]*Result, len(calls))

	g, ctx := errgroup.WithContext(ctx)
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}

	for i, call := range calls {
		g.Go(func() error {
			results[i] = d.Dispatch(ctx, call.Name, call.Arguments)
			return nil
		})
	}

	// Goroutines never return errors; failures are per-slot results
	_ = g.Wait()
	return results
}

// dispatch is the base handler: registry lookup, entry invocation, and
// uniform error translation
func (d *Dispatcher) dispatch(ctx context.Context, call *Call) *Result {
	logger := d.logger.WithContext(ctx)

	entry, err := d.registry.Lookup(call.Name)
	if err != nil {
		logger.Warn("dispatch to unknown capability",
			logging.String("capability", call.Name))
		return failure(err)
	}

	value, err := entry.Invoke(ctx, call.Arguments)
	if err != nil {
		logger.WithError(err).Debug("capability invocation failed",
			logging.String("capability", call.Name))
		return failure(err)
	}

	logger.Debug("capability invocation succeeded",
		logging.String("capability", call.Name))
	return &Result{OK: true, Value: value}
}

// failure translates any error into the uniform result shape
func failure(err error) *Result {
	if capErr, ok := errors.As(err); ok {
		return &Result{
			OK:        false,
			ErrorKind: capErr.Kind(),
			Message:   capErr.Error(),
			Code:      capErr.Code(),
		}
	}

	return &Result{
		OK:        false,
		ErrorKind: errors.KindExecutionError,
		Message:   err.Error(),
		Code:      errors.CodeExecutionError,
	}
}
