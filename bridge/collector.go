package bridge

import (
	"errors"

	"github.com/rrevenantt/treebridge/parser"
)

// DiagnosticCollector traps every diagnostic one parse emits and indexes the
// first per start offset. When a failed prediction carries its own start
// token, the diagnostic is indexed there instead of at the offending token:
// prediction may consume several tokens before failing, but the tree's error
// node sits where prediction started.
type DiagnosticCollector struct {
	all   []*parser.SyntaxError
	index map[int]*parser.SyntaxError
}

var _ parser.DiagnosticListener = &DiagnosticCollector{}

func NewDiagnosticCollector() *DiagnosticCollector {
	return &DiagnosticCollector{
		index: map[int]*parser.SyntaxError{},
	}
}

func (c *DiagnosticCollector) SyntaxError(synErr *parser.SyntaxError) {
	c.all = append(c.all, synErr)

	at := synErr.Token.Start
	var noViable *parser.NoViableAltError
	if errors.As(synErr.Cause, &noViable) {
		at = noViable.StartToken.Start
	}

	if _, taken := c.index[at]; taken {
		return
	}
	c.index[at] = synErr
}

// Index maps a start offset to the first diagnostic reported there.
func (c *DiagnosticCollector) Index() map[int]*parser.SyntaxError {
	return c.index
}

// All returns every collected diagnostic in emission order, including ones
// the index dropped as duplicates.
func (c *DiagnosticCollector) All() []*parser.SyntaxError {
	return c.all
}
