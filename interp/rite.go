package interp

import (
	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/scope"
	"github.com/robinpie/ath/value"
)

// callRite invokes r with args, dispatching to its native implementation if
// it is a built-in, or else binding params into a child of its captured
// scope and executing its body (spec.md §4.4, §4.8). A BEQUEATH escaping the
// body is consumed here and converted into a normal return value; any other
// escaped error propagates to the caller.
func (in *Interpreter) callRite(r *value.Rite, args []value.Value, p ast.Position) (value.Value, error) {
	if r.Builtin != nil {
		v, err := r.Builtin(args)
		if err != nil {
			if ae, ok := err.(*aerr.Error); ok {
				return nil, ae
			}
			return nil, aerr.Wrap(aerr.KindConstraint, pos(p), err, "%s", err.Error())
		}
		return v, nil
	}

	if len(args) != len(r.Params) {
		return nil, aerr.New(aerr.KindConstraint, pos(p), "rite %s expects %d argument(s), got %d", r.Name, len(r.Params), len(args))
	}

	parent, _ := r.Scope.(*scope.Scope)
	callScope := parent.Child()
	for i, name := range r.Params {
		callScope.Define(name, args[i], false)
	}

	body, _ := r.Body.([]ast.Statement)
	err := in.execStatements(body, callScope)
	if err == nil {
		return value.Void{}, nil
	}
	if bq, ok := err.(*aerr.Bequeath); ok {
		v, _ := bq.Value.(value.Value)
		if v == nil {
			v = value.Void{}
		}
		return v, nil
	}
	return nil, err
}
