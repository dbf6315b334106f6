package builtin

import (
	"strings"

	"github.com/robinpie/ath/value"
)

func split(args []value.Value) (value.Value, error) {
	if err := arity("SPLIT", args, 2); err != nil {
		return nil, err
	}
	s, err := asString("SPLIT", args[0])
	if err != nil {
		return nil, err
	}
	d, err := asString("SPLIT", args[1])
	if err != nil {
		return nil, err
	}
	var parts []string
	if d == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, d)
	}
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.NewArray(out), nil
}

func join(args []value.Value) (value.Value, error) {
	if err := arity("JOIN", args, 2); err != nil {
		return nil, err
	}
	a, err := asArray("JOIN", args[0])
	if err != nil {
		return nil, err
	}
	d, err := asString("JOIN", args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = value.CanonicalString(e)
	}
	return value.String(strings.Join(parts, d)), nil
}

func substring(args []value.Value) (value.Value, error) {
	if err := arity("SUBSTRING", args, 3); err != nil {
		return nil, err
	}
	s, err := asString("SUBSTRING", args[0])
	if err != nil {
		return nil, err
	}
	i, err := asInt("SUBSTRING", args[1])
	if err != nil {
		return nil, err
	}
	j, err := asInt("SUBSTRING", args[2])
	if err != nil {
		return nil, err
	}
	r := []rune(s)
	i, j = clampRange(i, j, int64(len(r)))
	return value.String(string(r[i:j])), nil
}

func uppercase(args []value.Value) (value.Value, error) {
	if err := arity("UPPERCASE", args, 1); err != nil {
		return nil, err
	}
	s, err := asString("UPPERCASE", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToUpper(s)), nil
}

func lowercase(args []value.Value) (value.Value, error) {
	if err := arity("LOWERCASE", args, 1); err != nil {
		return nil, err
	}
	s, err := asString("LOWERCASE", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToLower(s)), nil
}

func trim(args []value.Value) (value.Value, error) {
	if err := arity("TRIM", args, 1); err != nil {
		return nil, err
	}
	s, err := asString("TRIM", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSpace(s)), nil
}

func replace(args []value.Value) (value.Value, error) {
	if err := arity("REPLACE", args, 3); err != nil {
		return nil, err
	}
	s, err := asString("REPLACE", args[0])
	if err != nil {
		return nil, err
	}
	old, err := asString("REPLACE", args[1])
	if err != nil {
		return nil, err
	}
	repl, err := asString("REPLACE", args[2])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(s, old, repl)), nil
}
