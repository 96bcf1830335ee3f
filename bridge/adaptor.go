package bridge

import (
	"context"

	"github.com/tliron/commonlog"

	"github.com/rrevenantt/treebridge/cst"
	"github.com/rrevenantt/treebridge/grammar"
	"github.com/rrevenantt/treebridge/lexer"
	"github.com/rrevenantt/treebridge/parser"
)

var log = commonlog.GetLogger("treebridge.bridge")

type AdaptorOption func(a *Adaptor) error

// WithErrorStrategy replaces the recovery policy installed on the parser.
func WithErrorStrategy(s parser.ErrorStrategy) AdaptorOption {
	return func(a *Adaptor) error {
		a.strategy = s
		return nil
	}
}

// Adaptor runs one full parse-and-convert cycle per builder. An Adaptor is
// reusable across inputs; everything mutable lives in per-parse state, so
// concurrent parses of different inputs each just need their own builder.
type Adaptor struct {
	gram     *grammar.CompiledGrammar
	pg       parser.Grammar
	strategy parser.ErrorStrategy
}

func NewAdaptor(g *grammar.CompiledGrammar, opts ...AdaptorOption) (*Adaptor, error) {
	a := &Adaptor{
		gram:     g,
		pg:       parser.NewGrammar(g),
		strategy: &parser.DefaultErrorStrategy{},
	}

	for _, opt := range opts {
		err := opt(a)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Parse parses the builder's input with the grammar's start rule and replays
// the result into the builder. The first pass is pure analysis: it runs
// under a marker that is rolled back on every exit path, so only the replay
// pass leaves marks in the builder. Syntactic problems come back as
// diagnostics, not as an error; a non-nil error means cancellation or a
// failing token source.
func (a *Adaptor) Parse(ctx context.Context, b *cst.Builder) ([]*parser.SyntaxError, error) {
	src := NewTokenSource(ctx, b, a.gram)
	stream := parser.NewTokenStream(src)
	p, err := parser.NewParser(a.pg, stream, parser.WithErrorStrategy(a.strategy))
	if err != nil {
		return nil, err
	}

	p.RemoveDiagnosticListeners()
	collector := NewDiagnosticCollector()
	p.AddDiagnosticListener(collector)

	tree, err := a.analyze(ctx, p, b)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed %q: %v diagnostic(s)", src.SourceName(), len(collector.All()))

	conv := NewConverter(b, a.pg, collector.Index())
	if err := conv.Convert(ctx, tree); err != nil {
		return nil, err
	}

	return collector.All(), nil
}

// analyze runs the exploratory parse. The rollback is deferred so the
// builder is clean even when the parse is cancelled.
func (a *Adaptor) analyze(ctx context.Context, p *parser.Parser, b *cst.Builder) (*parser.RuleNode, error) {
	rollback := b.Mark()
	defer rollback.Rollback()

	return p.Parse(ctx)
}

// BuildTree is the convenience entry point: it tokenizes text, runs a parse
// cycle, and materializes the finished tree under a root region tagged
// `root`.
func (a *Adaptor) BuildTree(ctx context.Context, text string, root string) (*cst.Node, []*parser.SyntaxError, error) {
	slots, err := lexer.Scan(a.gram.Lexical.Spec, text)
	if err != nil {
		return nil, nil, err
	}

	b := cst.NewBuilder(text, slots, a.gram.KindSet())
	rootMarker := b.Mark()
	diags, err := a.Parse(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	rootMarker.Done(root)

	return b.TreeBuilt(), diags, nil
}
