// Package bridge connects a grammar-driven parser to the host's incremental
// tree builder. The parser consumes tokens re-materialized from the host's
// raw token buffer, and the completed parse tree is replayed against the
// builder as mark/close operations with error annotations attached.
package bridge

import (
	"context"

	"github.com/rrevenantt/treebridge/cst"
	"github.com/rrevenantt/treebridge/grammar"
	"github.com/rrevenantt/treebridge/parser"
)

// TokenSource makes a host builder look like a source of grammar tokens.
// The host silently absorbs trivia slots into its own bookkeeping, so the
// source keeps a private counter over the raw buffer and skips trivia itself;
// the counter and the host's raw cursor diverge by exactly the number of
// trivia slots skipped so far. NextToken only reads; advancing the host
// cursor happens later, when the parse tree is replayed.
type TokenSource struct {
	ctx     context.Context
	builder *cst.Builder
	gram    *grammar.CompiledGrammar
	factory parser.TokenFactory
	cur     int
	name    string
}

func NewTokenSource(ctx context.Context, b *cst.Builder, g *grammar.CompiledGrammar) *TokenSource {
	return &TokenSource{
		ctx:     ctx,
		builder: b,
		gram:    g,
		factory: parser.CommonTokenFactory,
		name:    g.Name,
	}
}

// SetTokenFactory swaps the token-construction strategy.
func (s *TokenSource) SetTokenFactory(f parser.TokenFactory) {
	s.factory = f
}

func (s *TokenSource) SourceName() string {
	return s.name
}

func (s *TokenSource) trivia(kind int) bool {
	t := s.gram.Lexical.Trivia
	return kind >= 0 && kind < len(t) && t[kind] != 0
}

// NextToken produces the next non-trivia token. The token's text span is the
// gap between its raw slot and the following one, read from the host's
// character buffer; the host exposes no per-token length directly.
func (s *TokenSource) NextToken() (*parser.Token, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	s.builder.TokenType() // settle the host cursor past leading trivia
	look := s.cur - s.builder.RawTokenIndex()
	kind, ok := s.builder.RawLookup(look)
	for ok && s.trivia(kind) {
		s.cur++
		look++
		kind, ok = s.builder.RawLookup(look)
	}

	typ := s.gram.Syntactic.EOFSymbol
	eof := true
	if ok {
		typ = s.gram.Lexical.KindToTerminal[kind]
		eof = false
	}

	start := s.builder.RawTokenTypeStart(look)
	var text string
	if !eof {
		text = s.builder.OriginalText()[start:s.builder.RawTokenTypeStart(look+1)]
	}
	stop := start + len(text) - 1

	// The host does not track line and column at this layer.
	s.cur++
	return s.factory(typ, eof, text, start, stop, 0, 0), nil
}
