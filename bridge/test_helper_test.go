package bridge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rrevenantt/treebridge/cst"
	"github.com/rrevenantt/treebridge/grammar"
	"github.com/rrevenantt/treebridge/lexer"
	"github.com/rrevenantt/treebridge/parser"
)

const calcSpec = `
name = "calc"
start = "expr"

[[lexer]]
kind = "ws"
pattern = ' +'
trivia = true

[[lexer]]
kind = "id"
pattern = '[a-z]+'

[[lexer]]
kind = "num"
pattern = '[0-9]+'

[[lexer]]
kind = "add"
pattern = '\+'

[[rules]]
name = "expr"
alts = [["term", "expr_rest"]]

[[rules]]
name = "expr_rest"
alts = [["add", "term", "expr_rest"], []]

[[rules]]
name = "term"
alts = [["id"], ["num"]]
`

const seqSpec = `
name = "seq"
start = "s"

[[lexer]]
kind = "ws"
pattern = ' +'
trivia = true

[[lexer]]
kind = "a"
pattern = 'a'

[[lexer]]
kind = "b"
pattern = 'b'

[[lexer]]
kind = "c"
pattern = 'c'

[[rules]]
name = "s"
alts = [["a", "b"]]
`

// grammarFixture pairs a compiled grammar with its parser-facing view.
type grammarFixture struct {
	cg *grammar.CompiledGrammar
	pg parser.Grammar
}

func seqFixture(t *testing.T) *grammarFixture {
	t.Helper()
	cg := compileGrammar(t, seqSpec)
	return &grammarFixture{
		cg: cg,
		pg: parser.NewGrammar(cg),
	}
}

func compileGrammar(t *testing.T, src string) *grammar.CompiledGrammar {
	t.Helper()
	spec, err := grammar.ParseSpec(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	g, err := grammar.Compile(spec)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newBuilder(t *testing.T, g *grammar.CompiledGrammar, text string) *cst.Builder {
	t.Helper()
	slots, err := lexer.Scan(g.Lexical.Spec, text)
	if err != nil {
		t.Fatal(err)
	}
	return cst.NewBuilder(text, slots, g.KindSet())
}

func termID(t *testing.T, g *grammar.CompiledGrammar, name string) int {
	t.Helper()
	for term, n := range g.Syntactic.Terminals {
		if n == name {
			return term
		}
	}
	t.Fatalf("terminal %v is not defined", name)
	return 0
}

func ruleID(t *testing.T, g *grammar.CompiledGrammar, name string) int {
	t.Helper()
	for rule, n := range g.Syntactic.Rules {
		if n == name {
			return rule
		}
	}
	t.Fatalf("rule %v is not defined", name)
	return 0
}

// readTokens drains a fresh token source over text, end-of-input token
// excluded.
func readTokens(t *testing.T, g *grammar.CompiledGrammar, b *cst.Builder) []*parser.Token {
	t.Helper()
	src := NewTokenSource(context.Background(), b, g)
	var toks []*parser.Token
	for {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// renderNode flattens a built tree to one line: composites as kind(children),
// error regions as !(children), leaves as their quoted text.
func renderNode(n *cst.Node) string {
	if len(n.Children) == 0 && !n.Error && n.Text != "" {
		return fmt.Sprintf("%q", n.Text)
	}
	var children []string
	for _, c := range n.Children {
		children = append(children, renderNode(c))
	}
	body := strings.Join(children, " ")
	if n.Error {
		return fmt.Sprintf("!(%v)", body)
	}
	return fmt.Sprintf("%v(%v)", n.Kind, body)
}

// leafText concatenates every leaf of a built tree in order.
func leafText(n *cst.Node) string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(leafText(c))
	}
	return sb.String()
}
