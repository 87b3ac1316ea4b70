// Package calcerr defines the user-facing errors of the evaluation
// pipeline. Each error is tagged with the stage that produced it.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind identifies the pipeline stage an error came from.
type Kind int

const (
	Lexing  Kind = iota // unrecognised characters in the input
	Parsing             // token sequence does not match the grammar
	Runtime             // well-formed program that cannot be evaluated
)

var (
	// ErrLex matches every Lexing error via errors.Is.
	ErrLex = errors.New("lexing error")

	// ErrParse matches every Parsing error via errors.Is.
	ErrParse = errors.New("parsing error")

	// ErrRuntime matches every Runtime error via errors.Is.
	ErrRuntime = errors.New("runtime error")
)

var kindNames = [...]string{
	Lexing:  "LexingError",
	Parsing: "ParsingError",
	Runtime: "RuntimeError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case Lexing:
		return ErrLex
	case Parsing:
		return ErrParse
	case Runtime:
		return ErrRuntime
	}
	return nil
}

// Error is a stage-tagged evaluation failure.
type Error struct {
	Kind Kind
	Msg  string
	Pos  int // 1-based input column, 0 when unknown
}

func (e *Error) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("%s: %s at column %d", e.Kind, e.Msg, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the kind's sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error { return e.Kind.sentinel() }

// Newf builds an Error of the given kind without position information.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At builds an Error of the given kind at a 1-based input column.
func At(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf reports the stage of err. ok is false when err is not (and does
// not wrap) an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
