package builtin

import (
	"strings"

	"github.com/robinpie/ath/host"
	"github.com/robinpie/ath/value"
)

func utter(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = value.CanonicalString(a)
		}
		h.Output(strings.Join(parts, " "))
		return value.Void{}, nil
	}
}

func heed(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity("HEED", args, 0); err != nil {
			return nil, err
		}
		line, ok := h.ReadLine()
		if !ok {
			return value.String(""), nil
		}
		return value.String(line), nil
	}
}

func scry(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arityRange("SCRY", args, 0, 1); err != nil {
			return nil, err
		}
		path := ""
		if len(args) == 1 {
			p, err := asString("SCRY", args[0])
			if err != nil {
				return nil, err
			}
			path = p
		}
		content, err := h.Scry(path)
		if err != nil {
			return nil, err
		}
		return value.String(content), nil
	}
}

func inscribe(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity("INSCRIBE", args, 2); err != nil {
			return nil, err
		}
		path, err := asString("INSCRIBE", args[0])
		if err != nil {
			return nil, err
		}
		content, err := asString("INSCRIBE", args[1])
		if err != nil {
			return nil, err
		}
		if err := h.Inscribe(path, content); err != nil {
			return nil, err
		}
		return value.Void{}, nil
	}
}

func timeFn(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity("TIME", args, 0); err != nil {
			return nil, err
		}
		return value.Integer(h.NowMs()), nil
	}
}

func randomFn(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity("RANDOM", args, 0); err != nil {
			return nil, err
		}
		return value.Float(h.Random()), nil
	}
}

func randomInt(h host.Host) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if err := arity("RANDOM_INT", args, 2); err != nil {
			return nil, err
		}
		a, err := asInt("RANDOM_INT", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt("RANDOM_INT", args[1])
		if err != nil {
			return nil, err
		}
		if b < a {
			a, b = b, a
		}
		span := b - a + 1
		return value.Integer(a + int64(h.Random()*float64(span))), nil
	}
}
