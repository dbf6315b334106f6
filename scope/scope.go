// Package scope implements the lexically nested variable environment
// (spec.md §3.4, §4.3): identifier lookup walks the parent chain, BIRTH
// introduces a mutable binding, ENTOMB introduces a constant one.
package scope

import "github.com/robinpie/ath/value"

type binding struct {
	value    value.Value
	constant bool
}

// Scope is a mapping from identifier to (value, is-constant) with an
// optional parent link.
type Scope struct {
	parent *Scope
	vars   map[string]*binding
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{vars: make(map[string]*binding)}
}

// Child creates a new scope whose parent is s, used for rite invocations and
// SALVAGE clauses.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: make(map[string]*binding)}
}

// Define introduces name in the current scope, overwriting any existing
// binding of the same name in this scope without a constancy check (re-
// declaration in the same scope is permitted; spec.md §4.3).
func (s *Scope) Define(name string, v value.Value, constant bool) {
	s.vars[name] = &binding{value: v, constant: constant}
}

// Get looks up name, walking the parent chain.
func (s *Scope) Get(name string) (value.Value, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			return b.value, nil
		}
	}
	return nil, &UndefinedError{Name: name}
}

// Has reports whether name is bound anywhere in the chain.
func (s *Scope) Has(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.vars[name]; ok {
			return true
		}
	}
	return false
}

// Set mutates the nearest enclosing binding of name. It fails if the
// binding is missing or constant.
func (s *Scope) Set(name string, v value.Value) error {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			if b.constant {
				return &ConstError{Name: name}
			}
			b.value = v
			return nil
		}
	}
	return &UndefinedError{Name: name}
}

// UndefinedError reports a lookup/assignment against a missing binding.
type UndefinedError struct{ Name string }

func (e *UndefinedError) Error() string { return "undefined variable: " + e.Name }

// ConstError reports an assignment against an ENTOMBed binding.
type ConstError struct{ Name string }

func (e *ConstError) Error() string { return "cannot reassign constant: " + e.Name }
