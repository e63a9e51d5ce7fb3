// Package flags implements the feature flag registry consulted by the
// compiler and interpreter to choose between behavior variants.
//
// A Registry is an explicit value. Processes normally create one at start-up
// with NewDefault and pass it to the components that need it; tests create
// their own isolated registries.
//
// Flags are registered once, read often and overridden rarely. Each flag
// value is stored in its own atomic cell, so a reader observes an override
// either entirely or not at all. Hot paths should keep the *Flag handle
// returned by Register and call Enabled on it instead of looking the flag up
// by name each time.
package flags

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/lbc/errors"
)

// Kind determines whether a flag may change after registration.
type Kind uint8

const (
	// Static flags keep their registered value for the life of the process.
	Static Kind = iota
	// Dynamic flags start at their default and may be overridden.
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Flag is a registered feature flag.
type Flag struct {
	name  string
	kind  Kind
	def   bool
	value atomic.Bool
}

// Name returns the flag's name.
func (f *Flag) Name() string { return f.name }

// Kind returns the flag's kind.
func (f *Flag) Kind() Kind { return f.kind }

// Default returns the value the flag was registered with.
func (f *Flag) Default() bool { return f.def }

// Enabled returns the flag's current value.
func (f *Flag) Enabled() bool { return f.value.Load() }

// Overridden reports whether the current value differs from the default.
func (f *Flag) Overridden() bool { return f.value.Load() != f.def }

// Snapshot is a point-in-time copy of a flag's state.
type Snapshot struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Default bool   `json:"default"`
	Value   bool   `json:"value"`
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report overrides.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry holds a set of named feature flags.
type Registry struct {
	mu     sync.RWMutex
	flags  map[string]*Flag
	logger zerolog.Logger
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		flags:  map[string]*Flag{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a flag. Registering a name that already exists with the
// same kind returns the existing flag unchanged; registering it with a
// different kind fails with a flag redefinition error.
func (r *Registry) Register(name string, kind Kind, def bool) (*Flag, error) {
	if kind != Static && kind != Dynamic {
		return nil, errors.Newf(errors.E3001, "flag %q: unknown kind %d", name, kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.flags[name]; ok {
		if existing.kind != kind {
			return nil, errors.Newf(errors.E3001, "flag %q already registered as %s", name, existing.kind)
		}
		return existing, nil
	}
	f := &Flag{name: name, kind: kind, def: def}
	f.value.Store(def)
	r.flags[name] = f
	return f, nil
}

// MustRegister is like Register but panics on error. It is intended for
// registering a fixed set of flags at start-up.
func (r *Registry) MustRegister(name string, kind Kind, def bool) *Flag {
	f, err := r.Register(name, kind, def)
	if err != nil {
		panic(err)
	}
	return f
}

// Lookup returns the flag with the given name.
func (r *Registry) Lookup(name string) (*Flag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flags[name]
	return f, ok
}

// Get returns the current value of the named flag. Unknown flags are
// reported as disabled.
func (r *Registry) Get(name string) bool {
	f, ok := r.Lookup(name)
	if !ok {
		return false
	}
	return f.Enabled()
}

// Set overrides the value of a dynamic flag. Static flags cannot be changed
// and report an immutable flag write error; their value is left untouched.
func (r *Registry) Set(name string, value bool) error {
	f, ok := r.Lookup(name)
	if !ok {
		return r.unknown(name)
	}
	if f.kind == Static {
		return errors.Newf(errors.E3002, "flag %q is static", name)
	}
	if old := f.value.Swap(value); old != value {
		r.logger.Info().
			Str("flag", name).
			Bool("old", old).
			Bool("new", value).
			Msg("feature flag overridden")
	}
	return nil
}

// Reset restores a dynamic flag to its default value.
func (r *Registry) Reset(name string) error {
	f, ok := r.Lookup(name)
	if !ok {
		return r.unknown(name)
	}
	return r.Set(name, f.def)
}

func (r *Registry) unknown(name string) error {
	r.mu.RLock()
	names := make([]string, 0, len(r.flags))
	for n := range r.flags {
		names = append(names, n)
	}
	r.mu.RUnlock()
	return errors.Newf(errors.E3003, "flag %q is not registered%s", name, errors.DidYouMean(name, names))
}

// Len returns the number of registered flags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flags)
}

// Flags returns a snapshot of every registered flag sorted by name.
func (r *Registry) Flags() []Snapshot {
	r.mu.RLock()
	snapshots := make([]Snapshot, 0, len(r.flags))
	for _, f := range r.flags {
		snapshots = append(snapshots, Snapshot{
			Name:    f.name,
			Kind:    f.kind.String(),
			Default: f.def,
			Value:   f.Enabled(),
		})
	}
	r.mu.RUnlock()
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})
	return snapshots
}
