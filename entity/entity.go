// Package entity implements the mortal objects of spec.md §3.2: a one-shot,
// monotonic death signal observable by any number of waiters, composed via
// And/Or/Not, and released through the host adapter when owned.
package entity

import (
	"sync"

	"github.com/robinpie/ath/scheduler"
)

// Kind distinguishes the entity variants of spec.md §3.2.
type Kind int

const (
	KindThis Kind = iota
	KindTimer
	KindProcess
	KindConnection
	KindWatcher
	KindBranch
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindThis:
		return "this"
	case KindTimer:
		return "timer"
	case KindProcess:
		return "process"
	case KindConnection:
		return "connection"
	case KindWatcher:
		return "watcher"
	case KindBranch:
		return "branch"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "entity"
	}
}

// Entity is a mortal object: a name, a monotonic alive/dead state, and a
// one-shot death signal. The death state, waiters and release callback are
// guarded by mu; Die and OnDeath are safe to call from any goroutine,
// including a host callback.
type Entity struct {
	Name string
	Kind Kind

	sched *scheduler.Scheduler

	mu      sync.Mutex
	dead    bool
	waiters []func()
	release func()
}

func newEntity(kind Kind, sched *scheduler.Scheduler) *Entity {
	return &Entity{Kind: kind, sched: sched}
}

// Alive reports the entity's current death state.
func (e *Entity) Alive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.dead
}

// SetRelease installs the idempotent resource-release callback invoked once,
// synchronously, the first time Die is called. Entities with no owned host
// resource (This, Branch, composites) never set one.
func (e *Entity) SetRelease(fn func()) {
	e.mu.Lock()
	e.release = fn
	e.mu.Unlock()
}

// OnDeath registers cb to run, via the scheduler's task queue (so delivery
// is never synchronous with the call that triggered death — spec.md §4.5,
// §8.1 death asynchrony), when e dies. If e is already dead, cb is still
// routed through the queue rather than called inline, preserving the same
// at-least-one-tick-later guarantee for late observers.
func (e *Entity) OnDeath(cb func()) {
	e.mu.Lock()
	if e.dead {
		e.mu.Unlock()
		e.sched.Submit(cb)
		return
	}
	e.waiters = append(e.waiters, cb)
	e.mu.Unlock()
}

// Die transitions e to dead exactly once: later calls are no-ops (spec.md
// §3.2 idempotence). Resource release runs synchronously; waiter
// notification is deferred to the scheduler's task queue.
func (e *Entity) Die() {
	e.mu.Lock()
	if e.dead {
		e.mu.Unlock()
		return
	}
	e.dead = true
	waiters := e.waiters
	e.waiters = nil
	release := e.release
	e.mu.Unlock()

	if release != nil {
		release()
	}
	for _, cb := range waiters {
		e.sched.Submit(cb)
	}
}

// Complete is Die under the name spec.md uses for branch completion.
func (e *Entity) Complete() { e.Die() }

// NewThis creates the program entity. It owns no resource; it is killed
// only by an explicit THIS.DIE() or by final cleanup.
func NewThis(sched *scheduler.Scheduler) *Entity {
	return newEntity(KindThis, sched)
}

// NewBranch creates a branch entity for bifurcation. It dies only when its
// code (body + EXECUTE) completes, via Complete.
func NewBranch(sched *scheduler.Scheduler) *Entity {
	return newEntity(KindBranch, sched)
}
