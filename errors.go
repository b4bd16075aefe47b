package kdl

import (
	"fmt"
	"runtime"
)

// SyntaxError is the single error kind produced by this package. Every
// lexical or grammatical failure surfaces as a *SyntaxError; there is no
// partial Document and no recovery once one is raised.
type SyntaxError struct {
	Line    int // 1-based
	Column  int // 0-based
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// errorf formats a syntax error at the given position and terminates
// lexing or parsing by panicking; the panic is caught by recoverError at
// the package's public entry points, mirroring how the teacher repo's
// decoder unwinds its recursive-descent state machine.
func errorf(line, col int, format string, args ...interface{}) {
	panic(&SyntaxError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
}

// recoverError binds a panic raised by errorf to errp, letting Parse
// return a normal error instead of propagating the panic to its caller.
// Runtime errors (nil dereference, index out of range, ...) are never
// swallowed here: they indicate a bug in this package, not malformed
// input, and must continue to crash the caller.
func recoverError(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	if se, ok := e.(*SyntaxError); ok {
		*errp = se
		return
	}
	panic(e)
}
