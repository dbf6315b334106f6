package builtin

import (
	"strconv"
	"strings"

	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/value"
)

func typeOf(args []value.Value) (value.Value, error) {
	if err := arity("TYPEOF", args, 1); err != nil {
		return nil, err
	}
	return value.String(typeTag(args[0])), nil
}

func length(args []value.Value) (value.Value, error) {
	if err := arity("LENGTH", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case value.String:
		return value.Integer(len([]rune(string(v)))), nil
	case *value.Array:
		return value.Integer(len(v.Elements)), nil
	default:
		return nil, typeErr("LENGTH", args[0])
	}
}

func parseIntFn(args []value.Value) (value.Value, error) {
	if err := arity("PARSE_INT", args, 1); err != nil {
		return nil, err
	}
	s, err := asString("PARSE_INT", args[0])
	if err != nil {
		return nil, err
	}
	if strings.Contains(s, ".") {
		return nil, aerr.NoPos(aerr.KindConstraint, "PARSE_INT: %q is not an integer", s)
	}
	n, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return nil, aerr.NoPos(aerr.KindConstraint, "PARSE_INT: %q is not a valid integer", s)
	}
	return value.Integer(n), nil
}

func parseFloatFn(args []value.Value) (value.Value, error) {
	if err := arity("PARSE_FLOAT", args, 1); err != nil {
		return nil, err
	}
	s, err := asString("PARSE_FLOAT", args[0])
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return nil, aerr.NoPos(aerr.KindConstraint, "PARSE_FLOAT: %q is not a valid float", s)
	}
	return value.Float(f), nil
}

func toString(args []value.Value) (value.Value, error) {
	if err := arity("STRING", args, 1); err != nil {
		return nil, err
	}
	return value.String(value.CanonicalString(args[0])), nil
}

func toInt(args []value.Value) (value.Value, error) {
	if err := arity("INT", args, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case value.Integer:
		return n, nil
	case value.Float:
		return value.Integer(int64(n)), nil
	default:
		return nil, typeErr("INT", args[0])
	}
}

func toFloat(args []value.Value) (value.Value, error) {
	if err := arity("FLOAT", args, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case value.Integer:
		return value.Float(n), nil
	case value.Float:
		return n, nil
	default:
		return nil, typeErr("FLOAT", args[0])
	}
}
