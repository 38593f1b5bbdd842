package registry

import (
	"io/fs"
	"os"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
)

// Registry holds compiled field definitions keyed by normalised tag. A
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]*Definition
	names *treeset.Set
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		defs:  make(map[string]*Definition),
		names: treeset.NewWithStringComparator(),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded table. It is loaded
// once; the embedded table is part of the build so a failure panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Lookup resolves a field name against the default registry.
func Lookup(name string) (*Definition, error) {
	return Default().Lookup(name)
}

// LoadFS builds a registry from every registry file in fsys. A field name
// declared twice within the load is an error.
func LoadFS(fsys fs.FS) (*Registry, error) {
	defs, err := readFS(fsys)
	if err != nil {
		return nil, err
	}
	reg := New()
	for _, def := range defs {
		reg.put(def)
	}
	return reg, nil
}

// Clone returns an independent registry holding the same definitions.
func (r *Registry) Clone() *Registry {
	out := New()
	if r == nil {
		return out
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.defs {
		out.put(def)
	}
	return out
}

// Overlay loads fsys and adds its rows, replacing rows with the same name.
// Nothing is applied when any file fails to load.
func (r *Registry) Overlay(fsys fs.FS) error {
	defs, err := readFS(fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		r.put(def)
	}
	return nil
}

// OverlayDir is Overlay over a directory on disk.
func (r *Registry) OverlayDir(dir string) error {
	return r.Overlay(os.DirFS(dir))
}

// Register adds or replaces a single definition.
func (r *Registry) Register(def *Definition) {
	if def == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(def)
}

// put assumes the write lock is held or the registry is not yet shared.
func (r *Registry) put(def *Definition) {
	r.defs[def.Name()] = def
	r.names.Add(def.Name())
}

// Lookup returns the definition for name. Names are matched after trimming
// and upper-casing, so "32a" finds "32A".
func (r *Registry) Lookup(name string) (*Definition, error) {
	key := NormalizeName(name)
	r.mu.RLock()
	def, ok := r.defs[key]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return def, nil
}

// MustLookup is like Lookup but panics when the field is unknown.
func (r *Registry) MustLookup(name string) *Definition {
	def, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return def
}

// Names lists the registered field tags in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := r.names.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.(string)
	}
	return out
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Definitions returns every definition ordered by name.
func (r *Registry) Definitions() []*Definition {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(names))
	for _, name := range names {
		if def, ok := r.defs[name]; ok {
			out = append(out, def)
		}
	}
	return out
}
