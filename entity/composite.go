package entity

import (
	"sync"

	"github.com/robinpie/ath/scheduler"
)

// And dies once every operand has died (spec.md §4.3's &&). Zero operands
// is vacuously satisfied, so it dies on the next tick.
func And(sched *scheduler.Scheduler, operands []*Entity) *Entity {
	e := newEntity(KindAnd, sched)
	if len(operands) == 0 {
		sched.Submit(e.Die)
		return e
	}
	var mu sync.Mutex
	remaining := len(operands)
	for _, op := range operands {
		op := op
		op.OnDeath(func() {
			mu.Lock()
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				e.Die()
			}
		})
	}
	return e
}

// Or dies the first time any operand dies (spec.md §4.3's ||). Zero operands
// never dies.
func Or(sched *scheduler.Scheduler, operands []*Entity) *Entity {
	e := newEntity(KindOr, sched)
	for _, op := range operands {
		op.OnDeath(e.Die)
	}
	return e
}

// Not dies on the scheduler's next tick regardless of the operand's state:
// spec.md models "!e" as "the condition is not being waited on", not as a
// negated death signal, so it always resolves promptly rather than waiting
// for the operand to come alive (entities never do) or die.
func Not(sched *scheduler.Scheduler, operand *Entity) *Entity {
	e := newEntity(KindNot, sched)
	_ = operand
	sched.Submit(e.Die)
	return e
}
