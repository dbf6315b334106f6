// Package value implements the !~ATH runtime value sum type: its printing,
// equality, and truthiness laws (spec.md §3.1).
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the interface implemented by every runtime value.
type Value interface {
	Type() string
	String() string
	Truthy() bool
}

// Integer is a signed 64-bit integer value.
type Integer int64

func (Integer) Type() string   { return "INTEGER" }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Integer) Truthy() bool   { return i != 0 }

// Float is an IEEE-754 double-precision value.
type Float float64

func (Float) Type() string { return "FLOAT" }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}
func (f Float) Truthy() bool { return f != 0 }

// String is immutable UTF-8 text.
type String string

func (String) Type() string     { return "STRING" }
func (s String) String() string { return string(s) }
func (s String) Truthy() bool   { return len(s) > 0 }

// Boolean prints as ALIVE/DEAD at the language level.
type Boolean bool

func (Boolean) Type() string { return "BOOLEAN" }
func (b Boolean) String() string {
	if b {
		return "ALIVE"
	}
	return "DEAD"
}
func (b Boolean) Truthy() bool { return bool(b) }

// Void is the unit/null value.
type Void struct{}

func (Void) Type() string   { return "VOID" }
func (Void) String() string { return "VOID" }
func (Void) Truthy() bool   { return false }

// Array is an ordered, mutable, reference-typed sequence. Mutation through
// any alias is observed by every other alias (spec.md §9 open question on
// index assignment).
type Array struct {
	Elements []Value
}

func NewArray(elems []Value) *Array { return &Array{Elements: elems} }

func (*Array) Type() string { return "ARRAY" }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = collectionForm(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Truthy() bool { return len(a.Elements) > 0 }

// Map is a string-keyed, insertion-ordered, mutable, reference-typed mapping.
type Map struct {
	keys   []string
	values map[string]Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

func (*Map) Type() string { return "MAP" }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, k+": "+collectionForm(m.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Truthy() bool { return len(m.keys) > 0 }

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set inserts or overwrites key in place, appending to the key order only on
// first insertion.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key in place, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy with independent key order and value storage,
// used by the immutable map built-ins (SET, DELETE).
func (m *Map) Clone() *Map {
	out := NewMap()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Rite is a callable value: either user-defined (closure over Body/Scope) or
// a built-in (native Go implementation).
type Rite struct {
	Name    string
	Params  []string
	Body    interface{} // []ast.Statement; typed as interface{} to avoid an import cycle with ast
	Scope   interface{} // *scope.Scope, captured lexically; typed as interface{} for the same reason
	Builtin BuiltinFunc  // non-nil for built-in rites
}

// BuiltinFunc is the signature of a native built-in rite implementation.
type BuiltinFunc func(args []Value) (Value, error)

func (*Rite) Type() string { return "RITE" }
func (r *Rite) String() string {
	if r.Name != "" {
		return fmt.Sprintf("<rite %s>", r.Name)
	}
	return "<rite>"
}
func (*Rite) Truthy() bool { return true }

// Entity is the only entity representation exposed as a first-class value
// (spec.md §3.1: "only THIS is exposed by name as a value"). It is an opaque
// handle; the interpreter resolves operations on it via the entity table.
type Entity struct {
	Name string
}

func (*Entity) Type() string     { return "ENTITY" }
func (e *Entity) String() string { return "<entity " + e.Name + ">" }
func (*Entity) Truthy() bool     { return true }

// collectionForm renders v the way it appears nested inside an array or map:
// strings lose their quotes (spec.md §3.1).
func collectionForm(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return v.String()
}

// Truthy reports the language-level truthiness of v, treating a nil
// interface as Void-like falsy (defensive against uninitialized slots).
func Truthy(v Value) bool {
	if v == nil {
		return false
	}
	return v.Truthy()
}

// Equal implements == / != : value equality for scalars and strings,
// reference identity for arrays, maps, rites, and entities (spec.md §3.1).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Integer:
			return av == Float(bv)
		case Float:
			return av == bv
		}
		return false
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Void:
		_, ok := b.(Void)
		return ok
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Map:
		bv, ok := b.(*Map)
		return ok && av == bv
	case *Rite:
		bv, ok := b.(*Rite)
		return ok && av == bv
	case *Entity:
		bv, ok := b.(*Entity)
		return ok && av == bv
	default:
		return false
	}
}

// CanonicalString is the fixed textual rendering used by STRING, UTTER, and
// top-level printing: strings render verbatim at the top level, everything
// else renders in its canonical form (spec.md §3.1).
func CanonicalString(v Value) string {
	if v == nil {
		return Void{}.String()
	}
	return v.String()
}
