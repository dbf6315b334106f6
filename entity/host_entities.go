package entity

import (
	"github.com/robinpie/ath/host"
	"github.com/robinpie/ath/scheduler"
)

// fromFuture builds an Entity that dies when f resolves. f's error, if any,
// is not reported: the entity dies the same way whether the condition
// completed cleanly or failed.
func fromFuture(sched *scheduler.Scheduler, kind Kind, f *host.Future) *Entity {
	e := newEntity(kind, sched)
	go func() {
		<-f.Done
		e.Die()
	}()
	return e
}

// NewTimer starts a host timer of durationMs and returns the entity that
// dies when it fires (spec.md §4.5's TIMER import).
func NewTimer(sched *scheduler.Scheduler, h host.Host, durationMs int64) (*Entity, error) {
	f, err := h.SpawnTimer(durationMs)
	if err != nil {
		return nil, err
	}
	return fromFuture(sched, KindTimer, f), nil
}

// NewProcess starts argv as a child process and returns the entity that
// dies when it exits (spec.md §4.5's PROCESS import).
func NewProcess(sched *scheduler.Scheduler, h host.Host, argv []string) (*Entity, error) {
	f, err := h.SpawnProcess(argv)
	if err != nil {
		return nil, err
	}
	e := fromFuture(sched, KindProcess, f)
	e.SetRelease(func() { f.Resolve(nil) })
	return e, nil
}

// NewConnection dials addr:port and returns the entity that dies when the
// connection closes, locally or remotely (spec.md §4.5's CONNECTION
// import). Calling .DIE() on the returned entity closes the socket via the
// release callback.
func NewConnection(sched *scheduler.Scheduler, h host.Host, addr string, port int64) (*Entity, error) {
	f, err := h.OpenConnection(addr, port)
	if err != nil {
		return nil, err
	}
	e := fromFuture(sched, KindConnection, f)
	e.SetRelease(func() { f.Resolve(nil) })
	return e, nil
}

// NewWatcher watches path and returns the entity that dies when the path is
// removed (spec.md §4.5's WATCHER import).
func NewWatcher(sched *scheduler.Scheduler, h host.Host, path string) (*Entity, error) {
	f, err := h.WatchPath(path)
	if err != nil {
		return nil, err
	}
	e := fromFuture(sched, KindWatcher, f)
	e.SetRelease(func() { f.Resolve(nil) })
	return e, nil
}
