// Package builtin implements the built-in rite library of spec.md §4.4: pure
// value operations, plus the handful (UTTER, HEED, SCRY, INSCRIBE, TIME,
// RANDOM, RANDOM_INT) that delegate to a host.Host.
package builtin

import (
	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/value"
)

func arity(name string, args []value.Value, n int) error {
	if len(args) != n {
		return aerr.NoPos(aerr.KindConstraint, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func arityRange(name string, args []value.Value, min, max int) error {
	if len(args) < min || len(args) > max {
		return aerr.NoPos(aerr.KindConstraint, "%s expects between %d and %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

func typeErr(name string, v value.Value) error {
	return aerr.NoPos(aerr.KindType, "%s: unexpected argument type %s", name, typeTag(v))
}

func typeTag(v value.Value) string {
	if v == nil {
		return "VOID"
	}
	return v.Type()
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", typeErr(name, v)
	}
	return string(s), nil
}

func asInt(name string, v value.Value) (int64, error) {
	switch n := v.(type) {
	case value.Integer:
		return int64(n), nil
	case value.Float:
		return int64(n), nil
	default:
		return 0, typeErr(name, v)
	}
}

func asArray(name string, v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, typeErr(name, v)
	}
	return a, nil
}

func asMap(name string, v value.Value) (*value.Map, error) {
	m, ok := v.(*value.Map)
	if !ok {
		return nil, typeErr(name, v)
	}
	return m, nil
}

// clampRange clamps [i, j) to [0, n] the way a host slice expression does,
// rather than erroring on out-of-range bounds (spec.md §4.4: "clamped
// host-style").
func clampRange(i, j, n int64) (int64, int64) {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	if j < i {
		j = i
	}
	if j > n {
		j = n
	}
	return i, j
}
