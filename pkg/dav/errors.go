package dav

import (
	"fmt"

	"github.com/juju/errors"
)

// Diagnostic is one compiler-reported problem: a syntax error or a semantic
// error (undeclared identifier, redefinition, type mismatch, ...).
// Diagnostics never unwind the parse. Fatal lexer errors are not
// Diagnostics: they are returned as an error from Lexer.Run (and Compile)
// before parsing ever starts.
type Diagnostic struct {
	Line    int
	Col     int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("Error: %s", d.Message)
	}
	return fmt.Sprintf("Error: %s, line %d", d.Message, d.Line)
}

// newDiagnostic builds a Diagnostic located at tok's position.
func newDiagnostic(tok Token, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Line: tok.Line, Col: tok.Col, Message: fmt.Sprintf(format, args...)}
}

// wrapIOError annotates a file-system error with the operation that failed,
// using github.com/juju/errors so the cause remains inspectable via
// errors.Cause while the message stays human-readable on the CLI.
func wrapIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Annotatef(err, "%s %q", op, path)
}
