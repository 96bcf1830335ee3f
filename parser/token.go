package parser

import "fmt"

// DefaultChannel is the only channel tokens carry at this layer. Channel
// information from the underlying lexer is lost once tokens pass through the
// host, so everything the parser sees is on the default channel.
const DefaultChannel = 0

// Token is an immutable grammar-level token. Stop is inclusive; a zero-length
// token has Stop == Start-1. Row and Col are zero when the producing layer
// does not track them. A negative Index marks a synthetic token invented by
// error recovery; synthetic tokens have no real place in the input.
type Token struct {
	Type    int
	EOF     bool
	Start   int
	Stop    int
	Row     int
	Col     int
	Text    string
	Channel int
	Index   int
}

func (t *Token) Synthetic() bool {
	return t.Index < 0
}

// String renders the token the way diagnostics refer to it.
func (t *Token) String() string {
	if t.EOF {
		return "<eof>"
	}
	return fmt.Sprintf("%q", t.Text)
}

// TokenFactory builds tokens for a TokenSource. Swapping the factory lets a
// caller produce its own token representation without changing the source.
type TokenFactory func(typ int, eof bool, text string, start, stop, row, col int) *Token

func CommonTokenFactory(typ int, eof bool, text string, start, stop, row, col int) *Token {
	return &Token{
		Type:    typ,
		EOF:     eof,
		Start:   start,
		Stop:    stop,
		Row:     row,
		Col:     col,
		Text:    text,
		Channel: DefaultChannel,
	}
}

// NewMissingToken conjures a token for input the grammar expected but the
// source did not supply. It is positioned at the token the parser is looking
// at so the error can attach there, but consumes no input.
func NewMissingToken(typ int, name string, at *Token) *Token {
	return &Token{
		Type:    typ,
		Start:   at.Start,
		Stop:    at.Start - 1,
		Row:     at.Row,
		Col:     at.Col,
		Text:    fmt.Sprintf("<missing %v>", name),
		Channel: DefaultChannel,
		Index:   -1,
	}
}

// TokenSource produces the token stream a parser consumes. NextToken never
// fails on exhausted input; it keeps returning the end-of-input token. It
// returns an error only when the surrounding operation is cancelled.
type TokenSource interface {
	NextToken() (*Token, error)
	SourceName() string
}
