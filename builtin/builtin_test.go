package builtin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinpie/ath/host/stdhost"
	"github.com/robinpie/ath/value"
)

func call(t *testing.T, reg map[string]*value.Rite, name string, args ...value.Value) value.Value {
	t.Helper()
	r, ok := reg[name]
	require.True(t, ok, "missing built-in %s", name)
	v, err := r.Builtin(args)
	require.NoError(t, err)
	return v
}

func TestUtterWritesCanonicalJoinedLine(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	call(t, reg, "UTTER", value.String("hi"), value.Integer(2), value.Boolean(true))
	assert.Equal(t, "hi 2 ALIVE\n", buf.String())
}

func TestAppendDoesNotMutateInput(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	orig := value.NewArray([]value.Value{value.Integer(1)})
	out := call(t, reg, "APPEND", orig, value.Integer(2))
	assert.Equal(t, 1, len(orig.Elements))
	arr, ok := out.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, 2, len(arr.Elements))
}

func TestSetAndDeleteReturnNewMaps(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	m := value.NewMap()
	m.Set("a", value.Integer(1))

	afterSet := call(t, reg, "SET", m, value.String("b"), value.Integer(2))
	_, hasB := m.Get("b")
	assert.False(t, hasB)
	setMap := afterSet.(*value.Map)
	v, ok := setMap.Get("b")
	require.True(t, ok)
	assert.Equal(t, value.Integer(2), v)

	afterDelete := call(t, reg, "DELETE", m, value.String("a"))
	_, stillHasA := m.Get("a")
	assert.True(t, stillHasA)
	deleteMap := afterDelete.(*value.Map)
	_, hasA := deleteMap.Get("a")
	assert.False(t, hasA)
}

func TestSplitEmptyDelimiterSplitsRunes(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	out := call(t, reg, "SPLIT", value.String("abc"), value.String(""))
	arr := out.(*value.Array)
	assert.Equal(t, 3, len(arr.Elements))
	assert.Equal(t, value.String("b"), arr.Elements[1])
}

func TestParseIntRejectsDecimalPoint(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	r := reg["PARSE_INT"]
	_, err := r.Builtin([]value.Value{value.String("1.5")})
	assert.Error(t, err)
}

func TestSliceClampsOutOfRangeBounds(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf))
	arr := value.NewArray([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	out := call(t, reg, "SLICE", arr, value.Integer(-5), value.Integer(100))
	assert.Equal(t, 3, len(out.(*value.Array).Elements))
}

func TestRandomIntInclusiveRange(t *testing.T) {
	var buf bytes.Buffer
	reg := Registry(stdhost.New(&buf, stdhost.WithSeed(1)))
	for i := 0; i < 50; i++ {
		out := call(t, reg, "RANDOM_INT", value.Integer(3), value.Integer(5))
		n := int64(out.(value.Integer))
		assert.GreaterOrEqual(t, n, int64(3))
		assert.LessOrEqual(t, n, int64(5))
	}
}
