package builtin

import (
	"github.com/robinpie/ath/host"
	"github.com/robinpie/ath/value"
)

// Registry returns every built-in rite, bound to h, keyed by its !~ATH name.
func Registry(h host.Host) map[string]*value.Rite {
	fns := map[string]value.BuiltinFunc{
		"UTTER":       utter(h),
		"HEED":        heed(h),
		"SCRY":        scry(h),
		"INSCRIBE":    inscribe(h),
		"TIME":        timeFn(h),
		"RANDOM":      randomFn(h),
		"RANDOM_INT":  randomInt(h),
		"TYPEOF":      typeOf,
		"LENGTH":      length,
		"PARSE_INT":   parseIntFn,
		"PARSE_FLOAT": parseFloatFn,
		"STRING":      toString,
		"INT":         toInt,
		"FLOAT":       toFloat,
		"APPEND":      appendFn,
		"PREPEND":     prependFn,
		"SLICE":       sliceFn,
		"FIRST":       first,
		"LAST":        last,
		"CONCAT":      concat,
		"KEYS":        keys,
		"VALUES":      values,
		"HAS":         has,
		"SET":         setFn,
		"DELETE":      deleteFn,
		"SPLIT":       split,
		"JOIN":        join,
		"SUBSTRING":   substring,
		"UPPERCASE":   uppercase,
		"LOWERCASE":   lowercase,
		"TRIM":        trim,
		"REPLACE":     replace,
	}
	out := make(map[string]*value.Rite, len(fns))
	for name, fn := range fns {
		out[name] = &value.Rite{Name: name, Builtin: fn}
	}
	return out
}
