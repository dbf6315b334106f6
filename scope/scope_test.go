package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinpie/ath/value"
)

func TestGetWalksParentChain(t *testing.T) {
	root := New()
	root.Define("x", value.Integer(1), false)
	child := root.Child()
	grandchild := child.Child()

	v, err := grandchild.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestGetMissingIsUndefinedError(t *testing.T) {
	_, err := New().Get("nope")
	require.Error(t, err)
	var target *UndefinedError
	assert.ErrorAs(t, err, &target)
}

func TestSetMutatesNearestBinding(t *testing.T) {
	root := New()
	root.Define("x", value.Integer(1), false)
	child := root.Child()

	require.NoError(t, child.Set("x", value.Integer(2)))

	v, err := root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(2), v)
}

func TestSetConstantFails(t *testing.T) {
	root := New()
	root.Define("x", value.Integer(1), true)

	err := root.Set("x", value.Integer(2))
	require.Error(t, err)
	var target *ConstError
	assert.ErrorAs(t, err, &target)
}

func TestChildShadowsParentWithoutMutatingIt(t *testing.T) {
	root := New()
	root.Define("x", value.Integer(1), false)
	child := root.Child()
	child.Define("x", value.Integer(99), false)

	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(99), v)

	v, err = root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestHasReportsAcrossParentChain(t *testing.T) {
	root := New()
	root.Define("x", value.Integer(1), false)
	child := root.Child()

	assert.True(t, child.Has("x"))
	assert.False(t, child.Has("y"))
}

func TestRedefineInSameScopeOverwritesWithoutConstancyCheck(t *testing.T) {
	s := New()
	s.Define("x", value.Integer(1), true)
	s.Define("x", value.Integer(2), false)

	v, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(2), v)

	require.NoError(t, s.Set("x", value.Integer(3)))
}
