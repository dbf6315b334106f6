// Package scheduler implements the single-threaded cooperative scheduler of
// spec.md §5: exactly one flow of control (the top-level program or a
// bifurcated branch) executes interpreter code at any instant; everything
// else is parked waiting for a death signal, a host future, or the next
// scheduler tick.
//
// Each flow of control runs on its own goroutine so that a tree-walking
// evaluator can suspend mid-statement by simply blocking on a channel — Go's
// goroutine stack plays the role a bytecode VM gets from an explicit
// instruction pointer. A single mutex (the "execution token") is held by
// whichever flow is actually running interpreter code, so despite the use
// of goroutines the observable semantics remain strictly single-threaded:
// no two flows ever evaluate statements concurrently, and a .DIE() can never
// unblock a waiter on the same tick it fires on (spec.md's death-asynchrony
// invariant) because delivery always goes through the task queue.
package scheduler

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Task is a unit of work queued to run on a later scheduler tick, holding
// the execution token for its duration.
type Task func()

// Scheduler owns the task queue and the execution token.
type Scheduler struct {
	runMu  chan struct{} // 1-buffered: full == token available
	tasks  chan Task
	log    zerolog.Logger
	ticks  atomic.Int64
}

// New creates a Scheduler and starts its background task-draining loop. The
// caller must call Lock before running any interpreter code for the initial
// (top-level) flow.
func New(log zerolog.Logger) *Scheduler {
	s := &Scheduler{
		runMu: make(chan struct{}, 1),
		tasks: make(chan Task, 1024),
		log:   log,
	}
	s.runMu <- struct{}{}
	go s.driveLoop()
	return s
}

func (s *Scheduler) driveLoop() {
	for t := range s.tasks {
		s.Lock()
		s.ticks.Add(1)
		s.runTask(t)
		s.Unlock()
	}
}

func (s *Scheduler) runTask(t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("scheduler task panicked")
		}
	}()
	t()
}

// Submit enqueues t to run on a later scheduler tick, under the execution
// token, from any goroutine — including a host callback goroutine (a timer
// firing, a process exiting, a watched path disappearing).
func (s *Scheduler) Submit(t Task) {
	s.tasks <- t
}

// Lock acquires the execution token. Call before running any interpreter
// code for a flow.
func (s *Scheduler) Lock() { <-s.runMu }

// Unlock releases the execution token.
func (s *Scheduler) Unlock() { s.runMu <- struct{}{} }

// AwaitClose releases the execution token, blocks until ch is closed, then
// reacquires the token before returning. This is the sole suspension point
// for a flow awaiting an entity's death (spec.md §5).
func (s *Scheduler) AwaitClose(ch <-chan struct{}) {
	s.Unlock()
	<-ch
	s.Lock()
}

// Tick suspends the calling flow for exactly one scheduler tick: the
// execution token is released, a no-op task is queued behind whatever is
// already pending, and the token is reacquired once that task runs. Used to
// implement "yield once" semantics (spec.md §4.6, §5 ordering guarantee b).
func (s *Scheduler) Tick() {
	done := make(chan struct{})
	s.Submit(func() { close(done) })
	s.AwaitClose(done)
}

// SpawnBranch runs fn on a new goroutine representing an independent flow of
// control (a bifurcated branch's body+EXECUTE), then yields the calling flow
// for exactly one tick so the branch is given a chance to start before the
// caller continues (spec.md §4.6 branch mode: "The parent continues
// immediately (after a scheduler yield so siblings observably start)"). The
// caller must hold the execution token; it is released for the duration of
// the yield and is held again once SpawnBranch returns.
func (s *Scheduler) SpawnBranch(fn func()) {
	ready := make(chan struct{})
	go func() {
		<-ready
		s.Lock()
		defer s.Unlock()
		fn()
	}()
	close(ready)
	s.Tick()
}

// Ticks returns the number of tasks the scheduler has drained so far,
// exposed for tests and diagnostics only.
func (s *Scheduler) Ticks() int64 { return s.ticks.Load() }
