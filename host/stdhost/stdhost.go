// Package stdhost is a reference host.Host implementation wired to real OS
// facilities: stdlib time.AfterFunc for timers, os/exec for processes, net
// for connections, and github.com/fsnotify/fsnotify for watched paths. It is
// an external collaborator in spec.md's terms (§1), consumed only through
// the host.Host interface — the core never imports it directly.
package stdhost

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/robinpie/ath/host"
)

// Host is a host.Host backed by the local OS. The zero value is not usable;
// construct with New.
type Host struct {
	out    io.Writer
	in     *bufio.Scanner
	rng    *rand.Rand
	rngMu  sync.Mutex
	nowMs  func() int64
}

// Option configures a Host.
type Option func(*Host)

// WithInput supplies the reader HEED() draws lines from.
func WithInput(r io.Reader) Option {
	return func(h *Host) { h.in = bufio.NewScanner(r) }
}

// WithSeed fixes the RANDOM()/RANDOM_INT() source for reproducible tests.
func WithSeed(seed int64) Option {
	return func(h *Host) { h.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a Host writing UTTER output to out.
func New(out io.Writer, opts ...Option) *Host {
	h := &Host{
		out:   out,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		nowMs: func() int64 { return time.Now().UnixNano() / int64(time.Millisecond) },
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Host) Output(line string) {
	io.WriteString(h.out, line)
	io.WriteString(h.out, "\n")
}

func (h *Host) ReadLine() (string, bool) {
	if h.in == nil {
		return "", false
	}
	if !h.in.Scan() {
		return "", false
	}
	return h.in.Text(), true
}

func (h *Host) Scry(path string) (string, error) {
	var r io.Reader
	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", errors.Wrap(err, "scry")
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "scry")
	}
	return string(b), nil
}

func (h *Host) Inscribe(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "inscribe")
	}
	return nil
}

func (h *Host) SpawnTimer(durationMs int64) (*host.Future, error) {
	f := host.NewFuture()
	timer := time.AfterFunc(time.Duration(durationMs)*time.Millisecond, func() {
		f.Resolve(nil)
	})
	go func() {
		<-f.Done
		timer.Stop()
	}()
	return f, nil
}

func (h *Host) SpawnProcess(argv []string) (*host.Future, error) {
	if len(argv) == 0 {
		return nil, errors.New("spawn_process: empty argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "spawn_process")
	}
	f := host.NewFuture()
	go func() {
		err := cmd.Wait()
		f.Resolve(err)
	}()
	go func() {
		// A local .DIE() resolves f before cmd.Wait returns on its own;
		// Kill on an already-exited process just returns a harmless error.
		<-f.Done
		_ = cmd.Process.Kill()
	}()
	return f, nil
}

func (h *Host) OpenConnection(addr string, port int64) (*host.Future, error) {
	conn, err := netDial(addr, strconv.FormatInt(port, 10))
	if err != nil {
		return nil, errors.Wrap(err, "open_connection")
	}
	f := host.NewFuture()
	go func() {
		// Block until the peer or a local .DIE() closes the connection.
		buf := make([]byte, 512)
		for {
			if _, err := conn.Read(buf); err != nil {
				f.Resolve(nil)
				return
			}
		}
	}()
	go func() {
		<-f.Done
		conn.Close()
	}()
	return f, nil
}

func (h *Host) WatchPath(path string) (*host.Future, error) {
	f := host.NewFuture()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Already absent: the future is returned already resolved; the
		// entity built on it still dies via the scheduler (spec.md §3.2).
		f.Resolve(nil)
		return f, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch_path")
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, errors.Wrap(err, "watch_path")
	}
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name == path && (ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)) {
					f.Resolve(nil)
					return
				}
			case <-w.Errors:
				// Ignore transient watch errors; the watch keeps running.
			case <-f.Done:
				return
			}
		}
	}()
	return f, nil
}

func (h *Host) NowMs() int64 { return h.nowMs() }

func (h *Host) Random() float64 {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return h.rng.Float64()
}
