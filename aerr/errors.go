// Package aerr defines the positioned error kinds of spec.md §7: lexer,
// parse, and the four runtime kinds (type, lookup, constraint, condemn).
// Each wraps an underlying cause via github.com/pkg/errors so Cause/Unwrap
// keep working across package boundaries, the way the teacher VM wraps host
// I/O failures in vm/io.go.
package aerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a runtime error for ATTEMPT/SALVAGE and the top-level
// error channel.
type Kind string

const (
	KindLex        Kind = "lexer error"
	KindParse      Kind = "parse error"
	KindType       Kind = "runtime type error"
	KindLookup     Kind = "runtime lookup error"
	KindConstraint Kind = "runtime constraint error"
	KindCondemn    Kind = "condemn"
)

// Position is a 1-based line/column; Line == 0 means "position unknown".
type Position struct {
	Line, Col int
}

func (p Position) valid() bool { return p.Line > 0 }

// Error is a positioned, kinded runtime error. It implements Cause() so
// github.com/pkg/errors.Cause(err) unwraps to the underlying error, if any.
type Error struct {
	Kind Kind
	Pos  Position
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Pos.valid() {
		return fmt.Sprintf("[line %d, col %d] %s: %s", e.Pos.Line, e.Pos.Col, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Cause implements github.com/pkg/errors' Causer interface.
func (e *Error) Cause() error { return e.Err }

// Unwrap supports errors.Is/As from the standard library too.
func (e *Error) Unwrap() error { return e.Err }

// New builds a positioned error with no underlying cause.
func New(kind Kind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a positioned error that carries cause as its Cause()/Unwrap().
func Wrap(kind Kind, pos Position, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// NoPos builds a positioned error with no known position (e.g. errors raised
// outside statement evaluation).
func NoPos(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsCondemn reports whether err (or a wrapped cause of it) is a user-raised
// CONDEMN, as opposed to any other runtime error kind.
func IsCondemn(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindCondemn
	}
	return false
}

// Bequeath is the non-local control-flow signal used by BEQUEATH. It is
// deliberately not an *Error and is never classified by Kind: ATTEMPT must
// let it pass through uncaught (spec.md §4.8, §7).
type Bequeath struct {
	Value interface{} // value.Value; interface{} to avoid an import cycle
}

func (b *Bequeath) Error() string { return "bequeath outside of a rite call" }
