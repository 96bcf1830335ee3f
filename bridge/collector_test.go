package bridge

import (
	"testing"

	"github.com/rrevenantt/treebridge/parser"
)

func TestDiagnosticCollector_firstDiagnosticWinsPerOffset(t *testing.T) {
	c := NewDiagnosticCollector()

	first := &parser.SyntaxError{
		Message: "missing b at \"c\"",
		Token:   &parser.Token{Start: 4},
	}
	second := &parser.SyntaxError{
		Message: "extraneous input \"c\"",
		Token:   &parser.Token{Start: 4},
	}
	other := &parser.SyntaxError{
		Message: "missing b at <eof>",
		Token:   &parser.Token{Start: 9},
	}
	c.SyntaxError(first)
	c.SyntaxError(second)
	c.SyntaxError(other)

	if len(c.All()) != 3 {
		t.Fatalf("every diagnostic must be recorded: want: 3, got: %v", len(c.All()))
	}
	if got := c.Index()[4]; got != first {
		t.Fatalf("the first diagnostic at offset 4 must win, got: %v", got.Message)
	}
	if got := c.Index()[9]; got != other {
		t.Fatalf("unexpected diagnostic at offset 9: got: %v", got)
	}
}

func TestDiagnosticCollector_noViableAltKeyedAtStartToken(t *testing.T) {
	c := NewDiagnosticCollector()

	// Prediction failed three tokens past where it began; the diagnostic
	// indexes at the start token, where the tree's error node sits.
	synErr := &parser.SyntaxError{
		Message: "no viable alternative at input \"z\"",
		Token:   &parser.Token{Start: 12},
		Cause:   &parser.NoViableAltError{StartToken: &parser.Token{Start: 6}},
	}
	c.SyntaxError(synErr)

	if got := c.Index()[6]; got != synErr {
		t.Fatal("the diagnostic must be indexed at the prediction's start token")
	}
	if _, ok := c.Index()[12]; ok {
		t.Fatal("the diagnostic must not be indexed at the offending token")
	}
}
