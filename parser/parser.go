package parser

import (
	"context"
	"fmt"
)

type ParserOption func(p *Parser) error

// WithErrorStrategy replaces the default error recovery policy.
func WithErrorStrategy(s ErrorStrategy) ParserOption {
	return func(p *Parser) error {
		p.strategy = s
		return nil
	}
}

// Parser is a table-interpreted recursive-descent parser over a compiled
// grammar. A Parser instance serves exactly one parse of one input; it must
// not be shared between parses or goroutines.
type Parser struct {
	gram      Grammar
	stream    *TokenStream
	strategy  ErrorStrategy
	listeners []DiagnosticListener
}

func NewParser(gram Grammar, stream *TokenStream, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:      gram,
		stream:    stream,
		strategy:  &DefaultErrorStrategy{},
		listeners: []DiagnosticListener{&ConsoleDiagnosticListener{}},
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Parser) Grammar() Grammar {
	return p.gram
}

func (p *Parser) Stream() *TokenStream {
	return p.stream
}

func (p *Parser) AddDiagnosticListener(l DiagnosticListener) {
	p.listeners = append(p.listeners, l)
}

func (p *Parser) RemoveDiagnosticListeners() {
	p.listeners = nil
}

// Report forwards a diagnostic to every listener. Diagnostics never abort the
// parse.
func (p *Parser) Report(synErr *SyntaxError) {
	for _, l := range p.listeners {
		l.SyntaxError(synErr)
	}
}

// Parse runs the grammar's start rule over the whole stream. The returned
// tree covers every consumed token; syntactic problems appear as error nodes,
// not as a returned error. A non-nil error means the parse was cancelled or
// the token source failed.
func (p *Parser) Parse(ctx context.Context) (*RuleNode, error) {
	return p.ParseRule(ctx, p.gram.StartRule())
}

// ParseRule runs a single rule as the entry point.
func (p *Parser) ParseRule(ctx context.Context, rule int) (*RuleNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	node := &RuleNode{Rule: rule}

	la, err := p.stream.LT(1)
	if err != nil {
		return nil, err
	}
	alt, ok := p.gram.Predict(rule, la.Type)
	if !ok {
		p.Report(&SyntaxError{
			Row:               la.Row,
			Col:               la.Col,
			Message:           fmt.Sprintf("no viable alternative at input %v", la),
			Token:             la,
			ExpectedTerminals: p.expectedTerminals(rule),
			Cause:             &NoViableAltError{StartToken: la},
		})

		recovered, err := p.strategy.Recover(ctx, p, rule)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, recovered...)
		return node, nil
	}

	for _, sym := range p.gram.Alt(rule, alt) {
		if sym.Terminal {
			matched, err := p.match(ctx, sym.ID)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, matched...)
			continue
		}

		child, err := p.ParseRule(ctx, sym.ID)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func (p *Parser) match(ctx context.Context, term int) ([]Tree, error) {
	la, err := p.stream.LT(1)
	if err != nil {
		return nil, err
	}

	if la.Type == term {
		tok, err := p.stream.Consume()
		if err != nil {
			return nil, err
		}
		return []Tree{&TerminalNode{Tok: tok}}, nil
	}

	return p.strategy.RecoverInline(ctx, p, term)
}

// TerminalDisplay returns the alias of a terminal when it has one, otherwise
// its name.
func (p *Parser) TerminalDisplay(term int) string {
	if alias := p.gram.TerminalAlias(term); alias != "" {
		return alias
	}
	return p.gram.TerminalName(term)
}

func (p *Parser) expectedTerminals(rule int) []string {
	kinds := []string{}
	for term := 0; term < p.gram.TerminalCount(); term++ {
		if _, ok := p.gram.Predict(rule, term); !ok {
			continue
		}

		if term == p.gram.EOF() {
			kinds = append(kinds, "<eof>")
			continue
		}

		kinds = append(kinds, p.TerminalDisplay(term))
	}

	return kinds
}
