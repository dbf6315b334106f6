// Package host defines the narrow adapter the core depends on for every
// external collaborator named in spec.md §1/§6.2: output/input, file access,
// and the asynchronous futures behind timer/process/connection/watcher
// entities. The core never imports an OS package directly; it only calls
// through this interface, so a browser-style deployment that supports only
// timers is a valid Host (spec.md §6.2).
package host

import "errors"

// ErrUnsupported is returned synchronously by a Host method whose
// capability the deployment does not provide (e.g. no process spawning in a
// browser host). The evaluator surfaces this at the `import` statement,
// never asynchronously (spec.md §6.2).
var ErrUnsupported = errors.New("unsupported by this host")

// Future represents an asynchronous condition a Host reports completion of:
// a timer firing, a process exiting, a connection closing, a watched path
// disappearing. Done is closed exactly once, by the Host, when the
// condition completes; Err, if non-nil, is set before Done is closed.
type Future struct {
	Done chan struct{}
	Err  error
}

// NewFuture returns an unresolved Future.
func NewFuture() *Future {
	return &Future{Done: make(chan struct{})}
}

// Resolve marks f complete exactly once; subsequent calls are no-ops, so
// Hosts may call it from more than one code path (e.g. both a success and a
// cancellation race) without coordination.
func (f *Future) Resolve(err error) {
	select {
	case <-f.Done:
		return
	default:
	}
	f.Err = err
	close(f.Done)
}

// Host is the full set of external operations the core may invoke.
type Host interface {
	// Output emits line. Callers such as UTTER pass line without a trailing
	// newline; the Host terminates each emitted line with one.
	Output(line string)

	// ReadLine returns the next queued input line (without its trailing
	// newline) and true, or ("", false) if no input is available.
	ReadLine() (string, bool)

	// Scry reads a file (or, if path is empty, stdin) and returns its
	// contents.
	Scry(path string) (string, error)

	// Inscribe writes content to path, creating or truncating it.
	Inscribe(path, content string) error

	// SpawnTimer starts a timer that resolves its Future after durationMs.
	// durationMs is pre-validated (>= 1) by the evaluator before this is
	// called (spec.md §4.5).
	SpawnTimer(durationMs int64) (*Future, error)

	// SpawnProcess starts argv[0] with argv[1:], resolving the Future when
	// the child exits. Returns ErrUnsupported if this deployment has no
	// process support.
	SpawnProcess(argv []string) (*Future, error)

	// OpenConnection dials addr:port, resolving the Future when the
	// connection closes or errors. Returns ErrUnsupported if this
	// deployment has no connection support.
	OpenConnection(addr string, port int64) (*Future, error)

	// WatchPath resolves the Future when path is deleted, or immediately if
	// path does not exist at call time (spec.md §3.2). Returns
	// ErrUnsupported if this deployment has no watch support.
	WatchPath(path string) (*Future, error)

	// NowMs returns milliseconds since the Unix epoch, backing TIME().
	NowMs() int64

	// Random returns a float in [0, 1), backing RANDOM().
	Random() float64
}
