package registry

import (
	"iter"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/capkit/capkit/pkg/descriptor"
	"github.com/capkit/capkit/pkg/errors"
	"github.com/capkit/capkit/pkg/logging"
)

// Registry is a process-scoped catalog of capability entries keyed by unique
// name. It is populated during an initialization phase and read-only
// thereafter; enumeration preserves first-registration order.
//
// The registry is safe for concurrent use. Because registration completes
// before dispatch begins, concurrent lookups never contend in practice.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
	logger  logging.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used for registration events
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Register inserts an entry, failing with a duplicate-name error if the name
// is already taken. The first registration is retained; the conflicting one
// is rejected, never silently overwritten.
func (r *Registry) Register(entry *Entry) error {
	if entry == nil {
		return errors.InvalidEntry("entry must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.name]; exists {
		r.logger.Warn("rejected duplicate capability registration",
			logging.String("capability", entry.name))
		return errors.DuplicateName(entry.name)
	}

	r.entries[entry.name] = entry
	r.order = append(r.order, entry.name)

	r.logger.Info("registered capability",
		logging.String("capability", entry.name),
		logging.Int("parameters", len(entry.params)),
		logging.String("returns", entry.returns.String()))

	return nil
}

// RegisterFunc constructs an entry from its parts and registers it in one
// step. This is the host-facing registration boundary.
func (r *Registry) RegisterFunc(name, doc string, params []Parameter, returns *descriptor.Descriptor, body Body) error {
	entry, err := NewEntry(name, doc, params, returns, body)
	if err != nil {
		return err
	}
	return r.Register(entry)
}

// MustRegister registers an entry and panics on failure. Intended for the
// initialization phase, where a duplicate name is a programming error.
func (r *Registry) MustRegister(entry *Entry) {
	if err := r.Register(entry); err != nil {
		panic(err)
	}
}

// Lookup returns the entry with the given name, or a not-found error
func (r *Registry) Lookup(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, errors.NotFound(name)
	}
	return entry, nil
}

// Has reports whether a capability with the given name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of registered capabilities
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// All returns a lazy, restartable sequence of entries in registration order.
// Each ranging restarts from the beginning; with no intervening Register
// calls, repeated enumerations yield identical sequences.
func (r *Registry) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, entry := range r.List() {
			if !yield(entry) {
				return
			}
		}
	}
}

// List returns a snapshot of all entries in registration order
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Description is the discovery metadata for one capability, shaped for
// host-side capability listings
type Description struct {
	Name        string                 `json:"name"`
	Doc         string                 `json:"doc,omitempty"`
	Parameters  []ParameterDescription `json:"parameters,omitempty"`
	Returns     string                 `json:"returns"`
	InputSchema *jsonschema.Schema     `json:"inputSchema,omitempty"`
}

// ParameterDescription describes one declared parameter for discovery
type ParameterDescription struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Required bool        `json:"required"`
	Default  interface{} `json:"default,omitempty"`
}

// Descriptions returns discovery metadata for every registered capability in
// registration order
func (r *Registry) Descriptions() []Description {
	entries := r.List()

	out := make([]Description, 0, len(entries))
	for _, entry := range entries {
		params := make([]ParameterDescription, 0, len(entry.params))
		for _, p := range entry.params {
			pd := ParameterDescription{
				Name:     p.Name,
				Type:     p.Descriptor.String(),
				Required: !p.HasDefault && p.Descriptor.Kind() != descriptor.KindOptional,
			}
			if p.HasDefault {
				pd.Default = p.Default
			}
			params = append(params, pd)
		}

		out = append(out, Description{
			Name:        entry.name,
			Doc:         entry.doc,
			Parameters:  params,
			Returns:     entry.returns.String(),
			InputSchema: entry.InputSchema(),
		})
	}
	return out
}
