package interp

import (
	"math"

	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/scope"
	"github.com/robinpie/ath/value"
)

func typeTagOf(v value.Value) string {
	if v == nil {
		return "VOID"
	}
	return v.Type()
}

func (in *Interpreter) evalExpr(e ast.Expr, sc *scope.Scope) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Integer(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.DurationLit:
		return value.Integer(n.Milliseconds), nil
	case *ast.StringLit:
		return value.String(n.Value), nil
	case *ast.BoolLit:
		return value.Boolean(n.Value), nil
	case *ast.VoidLit:
		return value.Void{}, nil
	case *ast.ArrayLit:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := in.evalExpr(el, sc)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil
	case *ast.MapLit:
		m := value.NewMap()
		for i, k := range n.Keys {
			v, err := in.evalExpr(n.Values[i], sc)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	case *ast.Identifier:
		if n.Name == "THIS" {
			return &value.Entity{Name: "THIS"}, nil
		}
		v, err := sc.Get(n.Name)
		if err != nil {
			return nil, aerr.New(aerr.KindLookup, pos(n.P), "%s", err.Error())
		}
		return v, nil
	case *ast.Binary:
		return in.evalBinary(n, sc)
	case *ast.Unary:
		return in.evalUnary(n, sc)
	case *ast.Call:
		return in.evalCall(n, sc)
	case *ast.Index:
		arr, idx, err := in.resolveIndex(n, sc)
		if err != nil {
			return nil, err
		}
		return arr.Elements[idx], nil
	case *ast.Member:
		return in.evalMember(n, sc)
	default:
		return nil, aerr.NoPos(aerr.KindType, "unsupported expression node")
	}
}

func (in *Interpreter) evalBinary(n *ast.Binary, sc *scope.Scope) (value.Value, error) {
	left, err := in.evalExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "AND":
		if !value.Truthy(left) {
			return left, nil
		}
		return in.evalExpr(n.Right, sc)
	case "OR":
		if value.Truthy(left) {
			return left, nil
		}
		return in.evalExpr(n.Right, sc)
	}

	right, err := in.evalExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "==":
		return value.Boolean(value.Equal(left, right)), nil
	case "!=":
		return value.Boolean(!value.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		return in.evalCompare(n.Op, left, right, n.P)
	case "+":
		return in.evalAdd(left, right, n.P)
	case "-", "*", "/", "%":
		return in.evalArith(n.Op, left, right, n.P)
	default:
		return nil, aerr.New(aerr.KindType, pos(n.P), "unknown operator %s", n.Op)
	}
}

func (in *Interpreter) evalAdd(left, right value.Value, p ast.Position) (value.Value, error) {
	if ls, ok := left.(value.String); ok {
		return value.String(string(ls) + value.CanonicalString(right)), nil
	}
	if rs, ok := right.(value.String); ok {
		return value.String(value.CanonicalString(left) + string(rs)), nil
	}
	return in.evalArith("+", left, right, p)
}

func (in *Interpreter) evalArith(op string, left, right value.Value, p ast.Position) (value.Value, error) {
	li, lIsInt := left.(value.Integer)
	ri, rIsInt := right.(value.Integer)
	lf, lIsFloat := left.(value.Float)
	rf, rIsFloat := right.(value.Float)
	if !(lIsInt || lIsFloat) {
		return nil, aerr.New(aerr.KindType, pos(p), "%s: left operand is not a number (%s)", op, typeTagOf(left))
	}
	if !(rIsInt || rIsFloat) {
		return nil, aerr.New(aerr.KindType, pos(p), "%s: right operand is not a number (%s)", op, typeTagOf(right))
	}

	if lIsInt && rIsInt {
		a, b := int64(li), int64(ri)
		switch op {
		case "+":
			return value.Integer(a + b), nil
		case "-":
			return value.Integer(a - b), nil
		case "*":
			return value.Integer(a * b), nil
		case "/":
			if b == 0 {
				return nil, aerr.New(aerr.KindConstraint, pos(p), "division by zero")
			}
			return value.Integer(a / b), nil
		case "%":
			if b == 0 {
				return nil, aerr.New(aerr.KindConstraint, pos(p), "modulo by zero")
			}
			return value.Integer(a % b), nil
		}
	}

	var a, b float64
	if lIsInt {
		a = float64(li)
	} else {
		a = float64(lf)
	}
	if rIsInt {
		b = float64(ri)
	} else {
		b = float64(rf)
	}
	switch op {
	case "+":
		return value.Float(a + b), nil
	case "-":
		return value.Float(a - b), nil
	case "*":
		return value.Float(a * b), nil
	case "/":
		if b == 0 {
			return nil, aerr.New(aerr.KindConstraint, pos(p), "division by zero")
		}
		return value.Float(a / b), nil
	case "%":
		if b == 0 {
			return nil, aerr.New(aerr.KindConstraint, pos(p), "modulo by zero")
		}
		return value.Float(math.Mod(a, b)), nil
	default:
		return nil, aerr.New(aerr.KindType, pos(p), "unsupported operator %s", op)
	}
}

func (in *Interpreter) evalCompare(op string, left, right value.Value, p ast.Position) (value.Value, error) {
	if ls, ok := left.(value.String); ok {
		if rs, ok := right.(value.String); ok {
			return value.Boolean(compareStrings(op, string(ls), string(rs))), nil
		}
	}
	a, aok := numberOf(left)
	b, bok := numberOf(right)
	if !aok || !bok {
		return nil, aerr.New(aerr.KindType, pos(p), "%s: operands must both be numbers or both be strings", op)
	}
	return value.Boolean(compareFloats(op, a, b)), nil
}

func numberOf(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Integer:
		return float64(n), true
	case value.Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func compareFloats(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default:
		return a >= b
	}
}

func compareStrings(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default:
		return a >= b
	}
}

func (in *Interpreter) evalUnary(n *ast.Unary, sc *scope.Scope) (value.Value, error) {
	v, err := in.evalExpr(n.Operand, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "NOT":
		return value.Boolean(!value.Truthy(v)), nil
	case "-":
		switch x := v.(type) {
		case value.Integer:
			return -x, nil
		case value.Float:
			return -x, nil
		default:
			return nil, aerr.New(aerr.KindType, pos(n.P), "unary -: operand is not a number (%s)", typeTagOf(v))
		}
	default:
		return nil, aerr.New(aerr.KindType, pos(n.P), "unknown unary operator %s", n.Op)
	}
}

func (in *Interpreter) evalCall(n *ast.Call, sc *scope.Scope) (value.Value, error) {
	callee, err := in.evalExpr(n.Callee, sc)
	if err != nil {
		return nil, err
	}
	rite, ok := callee.(*value.Rite)
	if !ok {
		return nil, aerr.New(aerr.KindType, pos(n.P), "cannot call a value of type %s", typeTagOf(callee))
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evalExpr(a, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := in.callRite(rite, args, n.P)
	if err != nil {
		if ae, ok := err.(*aerr.Error); ok && ae.Pos == (aerr.Position{}) {
			return nil, aerr.Wrap(ae.Kind, pos(n.P), ae.Err, "%s", ae.Msg)
		}
		return nil, err
	}
	return v, nil
}

// resolveIndex evaluates n's collection and index, validating both, and
// returns the underlying array plus the validated element position so
// both reads (evalExpr) and index-assignment (execAssignment) share one
// bounds/type check.
func (in *Interpreter) resolveIndex(n *ast.Index, sc *scope.Scope) (*value.Array, int64, error) {
	coll, err := in.evalExpr(n.Collection, sc)
	if err != nil {
		return nil, 0, err
	}
	arr, ok := coll.(*value.Array)
	if !ok {
		return nil, 0, aerr.New(aerr.KindType, pos(n.P), "cannot index a value of type %s", typeTagOf(coll))
	}
	idxVal, err := in.evalExpr(n.Index, sc)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := idxVal.(value.Integer)
	if !ok {
		return nil, 0, aerr.New(aerr.KindType, pos(n.P), "array index must be an integer, got %s", typeTagOf(idxVal))
	}
	i := int64(idx)
	if i < 0 || i >= int64(len(arr.Elements)) {
		return nil, 0, aerr.New(aerr.KindConstraint, pos(n.P), "array index %d out of range (length %d)", i, len(arr.Elements))
	}
	return arr, i, nil
}

func (in *Interpreter) evalMember(n *ast.Member, sc *scope.Scope) (value.Value, error) {
	obj, err := in.evalExpr(n.Object, sc)
	if err != nil {
		return nil, err
	}
	m, ok := obj.(*value.Map)
	if !ok {
		return nil, aerr.New(aerr.KindType, pos(n.P), "cannot access member %s of a value of type %s", n.Name, typeTagOf(obj))
	}
	v, ok := m.Get(n.Name)
	if !ok {
		return nil, aerr.New(aerr.KindLookup, pos(n.P), "map has no key %q", n.Name)
	}
	return v, nil
}
