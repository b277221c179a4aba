// Package catalog keeps named command declarations so frontends can look up
// a compiled spec, decode a payload into a fresh instance, and build or run
// the invocation.
package catalog

import (
	"sort"
	"sync"

	"github.com/danmuck/cmdspec"
)

// Entry binds a tool name to its compiled spec plus a factory producing
// fresh instances for payload decoding. New must return a pointer to the
// spec's record type.
type Entry struct {
	Name        string
	Description string
	Spec        *cmdspec.Spec
	New         func() any
}

// Registry stores entries by name.
type Registry struct {
	repo map[string]Entry
	mu   sync.RWMutex
}

// NewRegistry initializes an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		repo: make(map[string]Entry),
	}
}

// Register adds an entry by name, replacing any previous declaration.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repo[e.Name] = e
}

// Get returns an entry by name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.repo[name]
	return e, ok
}

// All returns a snapshot of every registered entry.
func (r *Registry) All() map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Entry, len(r.repo))
	for name, e := range r.repo {
		out[name] = e
	}
	return out
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.repo))
	for name := range r.repo {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var std = NewRegistry()

// Default returns the process-wide registry that init-time declarations
// register into.
func Default() *Registry {
	return std
}

func Register(e Entry) {
	std.Register(e)
}

func Get(name string) (Entry, bool) {
	return std.Get(name)
}

func All() map[string]Entry {
	return std.All()
}

func Names() []string {
	return std.Names()
}
