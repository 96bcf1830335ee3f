package parser

import (
	"fmt"
	"io"
	"os"
)

// SyntaxError is one structured diagnostic found during parsing. It is data,
// never a Go error returned by Parse: parsing continues past it via the
// error strategy.
type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             *Token
	ExpectedTerminals []string
	// Cause carries recognition-failure detail when there is any; a
	// *NoViableAltError identifies where prediction started, which can
	// differ from the offending token.
	Cause error
}

// NoViableAltError records a failed prediction. Prediction may look past
// several tokens before failing, so the error keeps the token it started
// from; consumers that place the diagnostic in a tree must use StartToken,
// not the offending token.
type NoViableAltError struct {
	StartToken *Token
}

func (e *NoViableAltError) Error() string {
	return fmt.Sprintf("no viable alternative at input %v", e.StartToken)
}

// DiagnosticListener receives every syntax error the parser reports, in
// emission order.
type DiagnosticListener interface {
	SyntaxError(synErr *SyntaxError)
}

// ConsoleDiagnosticListener writes diagnostics to a writer. It is the default
// listener on a new parser; callers embedding the parser behind another
// diagnostic channel should remove it first.
type ConsoleDiagnosticListener struct {
	W io.Writer
}

func (l *ConsoleDiagnosticListener) SyntaxError(synErr *SyntaxError) {
	w := l.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "%v:%v: %v\n", synErr.Row, synErr.Col, synErr.Message)
}
