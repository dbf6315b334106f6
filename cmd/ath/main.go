// Command ath runs a !~ATH source file to completion against a real OS host
// (timers, processes, TCP connections, file watches) the way cmd/retro runs
// a Forth image against the ngaro VM.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/robinpie/ath/host/stdhost"
	"github.com/robinpie/ath/interp"
	"github.com/robinpie/ath/parser"
)

var (
	debug   bool
	logJSON bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if logJSON {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	var err error
	defer func() { atExit(err) }()

	flag.BoolVar(&debug, "debug", false, "print errors with full detail and enable debug-level logging")
	flag.BoolVar(&logJSON, "json-log", false, "emit structured JSON logs instead of console-formatted ones")
	flag.Parse()

	if flag.NArg() != 1 {
		err = errors.New("usage: ath <source-file>")
		return
	}
	srcPath := flag.Arg(0)

	var src []byte
	src, err = os.ReadFile(srcPath)
	if err != nil {
		err = errors.Wrapf(err, "reading %s", srcPath)
		return
	}

	prog, perr := parser.Parse(string(src))
	if perr != nil {
		err = perr
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	h := stdhost.New(out, stdhost.WithInput(os.Stdin))
	in := interp.New(h, interp.WithLogger(newLogger()))

	if runErr := in.Run(prog); runErr != nil {
		err = runErr
	}
}
