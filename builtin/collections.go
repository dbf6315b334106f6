package builtin

import "github.com/robinpie/ath/value"

func appendFn(args []value.Value) (value.Value, error) {
	if err := arity("APPEND", args, 2); err != nil {
		return nil, err
	}
	a, err := asArray("APPEND", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(a.Elements)+1)
	copy(out, a.Elements)
	out[len(a.Elements)] = args[1]
	return value.NewArray(out), nil
}

func prependFn(args []value.Value) (value.Value, error) {
	if err := arity("PREPEND", args, 2); err != nil {
		return nil, err
	}
	a, err := asArray("PREPEND", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(a.Elements)+1)
	out[0] = args[1]
	copy(out[1:], a.Elements)
	return value.NewArray(out), nil
}

func sliceFn(args []value.Value) (value.Value, error) {
	if err := arity("SLICE", args, 3); err != nil {
		return nil, err
	}
	a, err := asArray("SLICE", args[0])
	if err != nil {
		return nil, err
	}
	i, err := asInt("SLICE", args[1])
	if err != nil {
		return nil, err
	}
	j, err := asInt("SLICE", args[2])
	if err != nil {
		return nil, err
	}
	i, j = clampRange(i, j, int64(len(a.Elements)))
	out := make([]value.Value, j-i)
	copy(out, a.Elements[i:j])
	return value.NewArray(out), nil
}

func first(args []value.Value) (value.Value, error) {
	if err := arity("FIRST", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray("FIRST", args[0])
	if err != nil {
		return nil, err
	}
	if len(a.Elements) == 0 {
		return nil, typeErr("FIRST", args[0])
	}
	return a.Elements[0], nil
}

func last(args []value.Value) (value.Value, error) {
	if err := arity("LAST", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray("LAST", args[0])
	if err != nil {
		return nil, err
	}
	if len(a.Elements) == 0 {
		return nil, typeErr("LAST", args[0])
	}
	return a.Elements[len(a.Elements)-1], nil
}

func concat(args []value.Value) (value.Value, error) {
	if err := arity("CONCAT", args, 2); err != nil {
		return nil, err
	}
	a, err := asArray("CONCAT", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asArray("CONCAT", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(a.Elements)+len(b.Elements))
	out = append(out, a.Elements...)
	out = append(out, b.Elements...)
	return value.NewArray(out), nil
}

func keys(args []value.Value) (value.Value, error) {
	if err := arity("KEYS", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("KEYS", args[0])
	if err != nil {
		return nil, err
	}
	ks := m.Keys()
	out := make([]value.Value, len(ks))
	for i, k := range ks {
		out[i] = value.String(k)
	}
	return value.NewArray(out), nil
}

func values(args []value.Value) (value.Value, error) {
	if err := arity("VALUES", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("VALUES", args[0])
	if err != nil {
		return nil, err
	}
	ks := m.Keys()
	out := make([]value.Value, len(ks))
	for i, k := range ks {
		v, _ := m.Get(k)
		out[i] = v
	}
	return value.NewArray(out), nil
}

func has(args []value.Value) (value.Value, error) {
	if err := arity("HAS", args, 2); err != nil {
		return nil, err
	}
	m, err := asMap("HAS", args[0])
	if err != nil {
		return nil, err
	}
	k, err := asString("HAS", args[1])
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(k)
	return value.Boolean(ok), nil
}

func setFn(args []value.Value) (value.Value, error) {
	if err := arity("SET", args, 3); err != nil {
		return nil, err
	}
	m, err := asMap("SET", args[0])
	if err != nil {
		return nil, err
	}
	k, err := asString("SET", args[1])
	if err != nil {
		return nil, err
	}
	out := m.Clone()
	out.Set(k, args[2])
	return out, nil
}

func deleteFn(args []value.Value) (value.Value, error) {
	if err := arity("DELETE", args, 2); err != nil {
		return nil, err
	}
	m, err := asMap("DELETE", args[0])
	if err != nil {
		return nil, err
	}
	k, err := asString("DELETE", args[1])
	if err != nil {
		return nil, err
	}
	out := m.Clone()
	out.Delete(k)
	return out, nil
}
