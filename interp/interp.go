// Package interp is the tree-walking evaluator of spec.md §4: statement and
// expression evaluation, ~ATH wait/branch dispatch, bifurcation, rite calls
// with BEQUEATH, ATTEMPT/SALVAGE, and the program state machine through to a
// drained, cleaned-up exit.
package interp

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/builtin"
	"github.com/robinpie/ath/entity"
	"github.com/robinpie/ath/host"
	"github.com/robinpie/ath/scheduler"
	"github.com/robinpie/ath/scope"
)

// Interpreter runs a parsed program against a host.Host.
type Interpreter struct {
	sched  *scheduler.Scheduler
	table  *entity.Table
	host   host.Host
	global *scope.Scope
	log    zerolog.Logger

	mu       sync.Mutex
	firstErr error
}

// Option configures an Interpreter at construction time, following the
// teacher's vm.Option/vm.New(image, file, opts...) pattern (vm/vm.go).
type Option func(*Interpreter)

// WithLogger attaches log as the Interpreter's diagnostic side channel. It is
// handed to the scheduler, which logs a task that panics; nothing else is
// logged. Never affects program output or control flow. Defaults to
// zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(in *Interpreter) { in.log = log }
}

// New creates an Interpreter bound to h, with the built-in rite registry
// installed as constants in the global scope.
func New(h host.Host, opts ...Option) *Interpreter {
	in := &Interpreter{
		host:   h,
		global: scope.New(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.sched = scheduler.New(in.log)
	in.table = entity.NewTable(in.sched)
	for name, rite := range builtin.Registry(h) {
		in.global.Define(name, rite, true)
	}
	return in
}

// Run executes prog to completion: the top-level statement stream, an
// implicit kill of THIS if it outlives the stream, a drain of every
// remaining pending entity, and a final cleanup pass over the entity table
// (spec.md §4.9). It returns the top-level flow's uncaught error if there is
// one, and otherwise the first uncaught error recorded by a branch.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.sched.Lock()

	this := entity.NewThis(in.sched)
	in.table.Bind("THIS", this)

	runErr := in.execStatements(prog.Statements, in.global)
	if bq, ok := runErr.(*aerr.Bequeath); ok {
		_ = bq
		runErr = aerr.NoPos(aerr.KindConstraint, "BEQUEATH outside of a rite call")
	}
	// THIS must die whether the top-level stream finished cleanly or failed
	// with an uncaught error: drain below blocks on every still-alive entity,
	// and nothing else ever kills THIS (spec.md §4.9/§6.3 — an uncaught error
	// transitions straight to exited, it doesn't leave the program hanging).
	if this.Alive() {
		this.Die()
	}

	in.drain()
	for _, e := range in.table.All() {
		e.Die()
	}

	in.sched.Unlock()
	return in.firstError(runErr)
}

// drain blocks the calling flow until every entity currently in the table
// has died, re-checking after each round since branches still running when
// the top-level stream finished may register new entities of their own
// (spec.md §5 "task tracking").
func (in *Interpreter) drain() {
	for {
		alive := in.table.Alive()
		if len(alive) == 0 {
			return
		}
		g := new(errgroup.Group)
		for _, e := range alive {
			ch := make(chan struct{})
			e.OnDeath(func() { close(ch) })
			g.Go(func() error {
				<-ch
				return nil
			})
		}
		done := make(chan struct{})
		go func() {
			g.Wait()
			close(done)
		}()
		in.sched.AwaitClose(done)
	}
}

// recordError records err as the program's failure if no earlier error has
// already been recorded; used by branch goroutines, whose errors otherwise
// have no caller to return to.
func (in *Interpreter) recordError(err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.firstErr == nil {
		in.firstErr = err
	}
}

func (in *Interpreter) firstError(runErr error) error {
	if runErr != nil {
		return runErr
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.firstErr
}

func pos(p ast.Position) aerr.Position { return aerr.Position{Line: p.Line, Col: p.Col} }
