package interp

import (
	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/entity"
	"github.com/robinpie/ath/scope"
	"github.com/robinpie/ath/value"
)

func (in *Interpreter) execStatements(stmts []ast.Statement, sc *scope.Scope) error {
	for _, s := range stmts {
		if err := in.execStatement(s, sc); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStatement(s ast.Statement, sc *scope.Scope) error {
	switch n := s.(type) {
	case *ast.ImportStmt:
		return in.execImport(n, sc)
	case *ast.BifurcateStmt:
		return in.execBifurcate(n, sc)
	case *ast.AthStmt:
		return in.execAth(n, sc)
	case *ast.DieStmt:
		return in.killTarget(n.Target)
	case *ast.VarDecl:
		return in.execVarDecl(n, sc)
	case *ast.Assignment:
		return in.execAssignment(n, sc)
	case *ast.RiteDef:
		return in.execRiteDef(n, sc)
	case *ast.Conditional:
		return in.execConditional(n, sc)
	case *ast.AttemptSalvage:
		return in.execAttemptSalvage(n, sc)
	case *ast.Condemn:
		return in.execCondemn(n, sc)
	case *ast.Bequeath:
		return in.execBequeath(n, sc)
	case *ast.ExprStmt:
		_, err := in.evalExpr(n.Value, sc)
		return err
	default:
		return aerr.NoPos(aerr.KindType, "unsupported statement node")
	}
}

func (in *Interpreter) execVarDecl(s *ast.VarDecl, sc *scope.Scope) error {
	v, err := in.evalOptional(s.Value, sc)
	if err != nil {
		return err
	}
	sc.Define(s.Name, v, s.Constant)
	return nil
}

func (in *Interpreter) evalOptional(e ast.Expr, sc *scope.Scope) (value.Value, error) {
	if e == nil {
		return value.Void{}, nil
	}
	return in.evalExpr(e, sc)
}

func (in *Interpreter) execAssignment(s *ast.Assignment, sc *scope.Scope) error {
	v, err := in.evalExpr(s.Value, sc)
	if err != nil {
		return err
	}
	switch target := s.Target.(type) {
	case *ast.Identifier:
		if err := sc.Set(target.Name, v); err != nil {
			kind := aerr.KindLookup
			if _, ok := err.(*scope.ConstError); ok {
				kind = aerr.KindConstraint
			}
			return aerr.New(kind, pos(s.P), "%s", err.Error())
		}
		return nil
	case *ast.Index:
		arr, idx, err := in.resolveIndex(target, sc)
		if err != nil {
			return err
		}
		arr.Elements[idx] = v
		return nil
	case *ast.Member:
		obj, err := in.evalExpr(target.Object, sc)
		if err != nil {
			return err
		}
		m, ok := obj.(*value.Map)
		if !ok {
			return aerr.New(aerr.KindType, pos(s.P), "cannot assign member %s of a value of type %s", target.Name, typeTagOf(obj))
		}
		m.Set(target.Name, v)
		return nil
	default:
		return aerr.New(aerr.KindType, pos(s.P), "invalid assignment target")
	}
}

func (in *Interpreter) execRiteDef(s *ast.RiteDef, sc *scope.Scope) error {
	r := &value.Rite{Name: s.Name, Params: s.Params, Body: s.Body, Scope: sc}
	sc.Define(s.Name, r, true)
	return nil
}

func (in *Interpreter) execConditional(s *ast.Conditional, sc *scope.Scope) error {
	cond, err := in.evalExpr(s.Cond, sc)
	if err != nil {
		return err
	}
	if value.Truthy(cond) {
		return in.execStatements(s.Then, sc)
	}
	return in.execStatements(s.Else, sc)
}

func (in *Interpreter) execAttemptSalvage(s *ast.AttemptSalvage, sc *scope.Scope) error {
	err := in.execStatements(s.Try, sc)
	if err == nil {
		return nil
	}
	if _, ok := err.(*aerr.Bequeath); ok {
		return err
	}
	catchScope := sc.Child()
	catchScope.Define(s.ErrName, value.String(errorMessage(err)), false)
	return in.execStatements(s.Catch, catchScope)
}

func errorMessage(err error) string {
	if ae, ok := err.(*aerr.Error); ok {
		return ae.Msg
	}
	return err.Error()
}

func (in *Interpreter) execCondemn(s *ast.Condemn, sc *scope.Scope) error {
	v, err := in.evalExpr(s.Value, sc)
	if err != nil {
		return err
	}
	return aerr.New(aerr.KindCondemn, pos(s.P), "%s", value.CanonicalString(v))
}

func (in *Interpreter) execBequeath(s *ast.Bequeath, sc *scope.Scope) error {
	v, err := in.evalOptional(s.Value, sc)
	if err != nil {
		return err
	}
	return &aerr.Bequeath{Value: v}
}

func (in *Interpreter) execImport(s *ast.ImportStmt, sc *scope.Scope) error {
	var e *entity.Entity
	var err error

	switch s.Kind {
	case "timer":
		ms, ierr := in.evalDurationArg(s.Args, sc, s.P)
		if ierr != nil {
			return ierr
		}
		if ms < 1 {
			return aerr.New(aerr.KindConstraint, pos(s.P), "timer duration must be at least 1 ms, got %d", ms)
		}
		e, err = entity.NewTimer(in.sched, in.host, ms)
	case "process":
		argv, ierr := in.evalStringArgs(s.Args, sc)
		if ierr != nil {
			return ierr
		}
		e, err = entity.NewProcess(in.sched, in.host, argv)
	case "connection":
		vals, ierr := in.evalArgs(s.Args, sc)
		if ierr != nil {
			return ierr
		}
		if len(vals) != 2 {
			return aerr.New(aerr.KindConstraint, pos(s.P), "connection expects 2 arguments, got %d", len(vals))
		}
		addr, ok := vals[0].(value.String)
		if !ok {
			return aerr.New(aerr.KindType, pos(s.P), "connection: host must be a string, got %s", typeTagOf(vals[0]))
		}
		port, ok := vals[1].(value.Integer)
		if !ok {
			return aerr.New(aerr.KindType, pos(s.P), "connection: port must be an integer, got %s", typeTagOf(vals[1]))
		}
		e, err = entity.NewConnection(in.sched, in.host, string(addr), int64(port))
	case "watcher":
		vals, ierr := in.evalArgs(s.Args, sc)
		if ierr != nil {
			return ierr
		}
		if len(vals) != 1 {
			return aerr.New(aerr.KindConstraint, pos(s.P), "watcher expects 1 argument, got %d", len(vals))
		}
		path, ok := vals[0].(value.String)
		if !ok {
			return aerr.New(aerr.KindType, pos(s.P), "watcher: path must be a string, got %s", typeTagOf(vals[0]))
		}
		e, err = entity.NewWatcher(in.sched, in.host, string(path))
	default:
		return aerr.New(aerr.KindConstraint, pos(s.P), "unknown import kind %q", s.Kind)
	}

	if err != nil {
		return aerr.Wrap(aerr.KindConstraint, pos(s.P), err, "import %s %s failed", s.Kind, s.Name)
	}
	in.table.Bind(s.Name, e)
	return nil
}

func (in *Interpreter) evalDurationArg(args []ast.Expr, sc *scope.Scope, p ast.Position) (int64, error) {
	if len(args) != 1 {
		return 0, aerr.New(aerr.KindConstraint, pos(p), "timer expects exactly 1 argument, got %d", len(args))
	}
	v, err := in.evalExpr(args[0], sc)
	if err != nil {
		return 0, err
	}
	iv, ok := v.(value.Integer)
	if !ok {
		return 0, aerr.New(aerr.KindType, pos(p), "timer duration must be an integer or duration literal, got %s", typeTagOf(v))
	}
	return int64(iv), nil
}

func (in *Interpreter) evalStringArgs(args []ast.Expr, sc *scope.Scope) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		v, err := in.evalExpr(a, sc)
		if err != nil {
			return nil, err
		}
		s, ok := v.(value.String)
		if !ok {
			return nil, aerr.New(aerr.KindType, pos(a.Pos()), "process argument %d must be a string, got %s", i, typeTagOf(v))
		}
		out[i] = string(s)
	}
	return out, nil
}

func (in *Interpreter) evalArgs(args []ast.Expr, sc *scope.Scope) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := in.evalExpr(a, sc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) execBifurcate(s *ast.BifurcateStmt, sc *scope.Scope) error {
	if _, ok := in.table.Get(s.Source); !ok {
		return aerr.New(aerr.KindLookup, pos(s.P), "unknown entity: %s", s.Source)
	}
	left := entity.NewBranch(in.sched)
	in.table.Bind(s.Left, left)
	in.table.MarkBranch(s.Left)

	right := entity.NewBranch(in.sched)
	in.table.Bind(s.Right, right)
	in.table.MarkBranch(s.Right)
	return nil
}

func (in *Interpreter) killTarget(t ast.DieTarget) error {
	switch n := t.(type) {
	case *ast.DieIdent:
		e, ok := in.table.Get(n.Name)
		if !ok {
			return aerr.New(aerr.KindLookup, pos(n.P), "unknown entity: %s", n.Name)
		}
		e.Die()
		return nil
	case *ast.DiePair:
		if err := in.killTarget(n.Left); err != nil {
			return err
		}
		return in.killTarget(n.Right)
	default:
		return aerr.NoPos(aerr.KindType, "invalid DIE target")
	}
}
