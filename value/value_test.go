package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooleanPrintsAliveDead(t *testing.T) {
	assert.Equal(t, "ALIVE", Boolean(true).String())
	assert.Equal(t, "DEAD", Boolean(false).String())
}

func TestTruthyPerType(t *testing.T) {
	assert.True(t, Truthy(Integer(1)))
	assert.False(t, Truthy(Integer(0)))
	assert.True(t, Truthy(String("x")))
	assert.False(t, Truthy(String("")))
	assert.False(t, Truthy(Void{}))
	assert.False(t, Truthy(nil))
	assert.True(t, Truthy(NewArray([]Value{Integer(1)})))
	assert.False(t, Truthy(NewArray(nil)))
}

func TestEqualCoercesIntegerAndFloat(t *testing.T) {
	assert.True(t, Equal(Integer(2), Float(2.0)))
	assert.True(t, Equal(Float(2.0), Integer(2)))
	assert.False(t, Equal(Integer(2), Float(2.1)))
}

func TestEqualStringRequiresSameType(t *testing.T) {
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("a"), Integer(0)))
}

func TestEqualArraysAreReferenceIdentity(t *testing.T) {
	a := NewArray([]Value{Integer(1)})
	b := NewArray([]Value{Integer(1)})
	assert.False(t, Equal(a, b), "distinct arrays with equal contents are not ==")
	assert.True(t, Equal(a, a))
}

func TestArrayStringRendersNestedStringsUnquoted(t *testing.T) {
	a := NewArray([]Value{Integer(1), String("hi")})
	assert.Equal(t, "[1, hi]", a.String())
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", Integer(2))
	m.Set("a", Integer(1))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, "{b: 2, a: 1}", m.String())
}

func TestMapSetOverwritesWithoutReorder(t *testing.T) {
	m := NewMap()
	m.Set("a", Integer(1))
	m.Set("b", Integer(2))
	m.Set("a", Integer(99))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, Integer(99), v)
}

func TestMapDeleteRemovesKeyAndOrder(t *testing.T) {
	m := NewMap()
	m.Set("a", Integer(1))
	m.Set("b", Integer(2))
	m.Delete("a")
	assert.Equal(t, []string{"b"}, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := NewMap()
	m.Set("a", Integer(1))
	clone := m.Clone()
	clone.Set("a", Integer(2))
	v, _ := m.Get("a")
	assert.Equal(t, Integer(1), v)
	cv, _ := clone.Get("a")
	assert.Equal(t, Integer(2), cv)
}

func TestCanonicalStringHandlesNil(t *testing.T) {
	assert.Equal(t, "VOID", CanonicalString(nil))
	assert.Equal(t, "hi", CanonicalString(String("hi")))
}
