package eval

import (
	"maps"
	"sort"
)

// Scope maps names to values and falls back to its parent on lookup.
// It is not safe for concurrent use.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope creates an empty scope. parent is nil for a global scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]Value), parent: parent}
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope { return s.parent }

// Get looks name up from this scope outward and returns the first binding.
func (s *Scope) Get(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope, shadowing any outer binding.
func (s *Scope) Set(name string, v Value) {
	s.vars[name] = v
}

// Has reports whether name is bound here or in any enclosing scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the names bound directly in this scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the local bindings. Restore puts them back, discarding
// anything bound since.
func (s *Scope) Snapshot() map[string]Value {
	return maps.Clone(s.vars)
}

// Restore replaces the local bindings with a snapshot taken earlier.
func (s *Scope) Restore(snap map[string]Value) {
	s.vars = maps.Clone(snap)
	if s.vars == nil {
		s.vars = make(map[string]Value)
	}
}
