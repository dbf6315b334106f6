package interp

import (
	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/entity"
	"github.com/robinpie/ath/scope"
)

// execAth dispatches ~ATH(Entity) { Body } EXECUTE(Execute); to branch mode
// or wait mode depending on whether Entity is a bare identifier bound to a
// branch (spec.md §4.6): branch mode spawns an independent flow that runs
// concurrently with its siblings, wait mode blocks the calling flow until
// the resolved entity dies.
func (in *Interpreter) execAth(s *ast.AthStmt, sc *scope.Scope) error {
	if ident, ok := s.Entity.(*ast.EntityIdent); ok && in.table.IsBranch(ident.Name) {
		return in.execBranchMode(ident.Name, s, sc)
	}
	return in.execWaitMode(s, sc)
}

// execBranchMode spawns Body+Execute on an independent flow of control,
// completing the branch entity when that flow finishes (spec.md §4.6). The
// parent resumes immediately, after the one-tick yield SpawnBranch already
// provides.
func (in *Interpreter) execBranchMode(name string, s *ast.AthStmt, sc *scope.Scope) error {
	branch, ok := in.table.Get(name)
	if !ok {
		return aerr.New(aerr.KindLookup, pos(s.P), "unknown entity: %s", name)
	}
	in.sched.SpawnBranch(func() {
		defer branch.Complete()
		branchScope := sc.Child()
		if err := in.execStatements(s.Body, branchScope); err != nil {
			in.recordError(err)
			return
		}
		if err := in.execStatements(s.Execute, branchScope); err != nil {
			in.recordError(err)
		}
	})
	return nil
}

// execWaitMode blocks the calling flow until the resolved entity expression
// dies, then runs Body (which requireNestedAthOnly restricts to nested ~ATH only)
// followed by Execute in the caller's own scope (spec.md §4.6).
func (in *Interpreter) execWaitMode(s *ast.AthStmt, sc *scope.Scope) error {
	if err := requireNestedAthOnly(s.Body); err != nil {
		return err
	}
	target, err := in.resolveEntityExpr(s.Entity, sc)
	if err != nil {
		return err
	}
	ch := make(chan struct{})
	target.OnDeath(func() { close(ch) })
	in.sched.AwaitClose(ch)

	if err := in.execStatements(s.Body, sc); err != nil {
		return err
	}
	return in.execStatements(s.Execute, sc)
}

// requireNestedAthOnly enforces that a wait-mode ~ATH body contains only
// further ~ATH statements (spec.md §4.6, §9 resolved open question).
func requireNestedAthOnly(body []ast.Statement) error {
	for _, st := range body {
		if _, ok := st.(*ast.AthStmt); !ok {
			return aerr.New(aerr.KindConstraint, pos(st.Pos()), "~ATH body may only contain nested ~ATH statements")
		}
	}
	return nil
}

// resolveEntityExpr evaluates an entity expression into a (possibly
// composite, possibly anonymous) entity to wait on (spec.md §4.2, §4.6).
func (in *Interpreter) resolveEntityExpr(e ast.EntityExpr, sc *scope.Scope) (*entity.Entity, error) {
	switch n := e.(type) {
	case *ast.EntityIdent:
		ent, ok := in.table.Get(n.Name)
		if !ok {
			return nil, aerr.New(aerr.KindLookup, pos(n.P), "unknown entity: %s", n.Name)
		}
		return ent, nil
	case *ast.EntityAnd:
		left, err := in.resolveEntityExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		right, err := in.resolveEntityExpr(n.Right, sc)
		if err != nil {
			return nil, err
		}
		return entity.And(in.sched, []*entity.Entity{left, right}), nil
	case *ast.EntityOr:
		left, err := in.resolveEntityExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		right, err := in.resolveEntityExpr(n.Right, sc)
		if err != nil {
			return nil, err
		}
		return entity.Or(in.sched, []*entity.Entity{left, right}), nil
	case *ast.EntityNot:
		operand, err := in.resolveEntityExpr(n.Operand, sc)
		if err != nil {
			return nil, err
		}
		return entity.Not(in.sched, operand), nil
	default:
		return nil, aerr.NoPos(aerr.KindType, "unsupported entity expression node")
	}
}
