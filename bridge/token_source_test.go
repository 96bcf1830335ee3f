package bridge

import (
	"context"
	"fmt"
	"testing"

	"github.com/rrevenantt/treebridge/parser"
)

func TestTokenSource_NextToken(t *testing.T) {
	g := compileGrammar(t, calcSpec)

	tests := []struct {
		caption string
		text    string
		tokens  []*parser.Token
	}{
		{
			caption: "trivia never surfaces as a token",
			text:    "a + 1",
			tokens: []*parser.Token{
				{Type: termID(t, g, "id"), Text: "a", Start: 0, Stop: 0},
				{Type: termID(t, g, "add"), Text: "+", Start: 2, Stop: 2},
				{Type: termID(t, g, "num"), Text: "1", Start: 4, Stop: 4},
			},
		},
		{
			caption: "spans are gaps between consecutive raw slots",
			text:    "ab  cd",
			tokens: []*parser.Token{
				{Type: termID(t, g, "id"), Text: "ab", Start: 0, Stop: 1},
				{Type: termID(t, g, "id"), Text: "cd", Start: 4, Stop: 5},
			},
		},
		{
			caption: "an input of only trivia yields end of input immediately",
			text:    "   ",
			tokens:  nil,
		},
		{
			caption: "an empty input yields end of input immediately",
			text:    "",
			tokens:  nil,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			b := newBuilder(t, g, tt.text)
			got := readTokens(t, g, b)
			if len(got) != len(tt.tokens) {
				t.Fatalf("unexpected number of tokens: want: %v, got: %v", len(tt.tokens), len(got))
			}
			for j, want := range tt.tokens {
				tok := got[j]
				if tok.Type != want.Type || tok.Text != want.Text || tok.Start != want.Start || tok.Stop != want.Stop {
					t.Fatalf("unexpected token #%v: want: %+v, got: %+v", j, want, tok)
				}
			}
		})
	}
}

func TestTokenSource_eofIsSticky(t *testing.T) {
	g := compileGrammar(t, calcSpec)
	b := newBuilder(t, g, "a")
	src := NewTokenSource(context.Background(), b, g)

	if tok, err := src.NextToken(); err != nil || tok.EOF {
		t.Fatalf("unexpected first token: got: (%+v, %v)", tok, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if !tok.EOF || tok.Type != g.Syntactic.EOFSymbol {
			t.Fatalf("expected the end-of-input token, got: %+v", tok)
		}
	}
}

func TestTokenSource_counterStaysAheadByTriviaCount(t *testing.T) {
	g := compileGrammar(t, calcSpec)
	text := "a  +  1"
	b := newBuilder(t, g, text)
	src := NewTokenSource(context.Background(), b, g)

	// The source reads ahead of the host cursor; after draining every real
	// token its private counter has visited every raw slot exactly once.
	real := 0
	for {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok.EOF {
			break
		}
		real++
	}
	if real != 3 {
		t.Fatalf("unexpected number of real tokens: want: 3, got: %v", real)
	}
	// 3 real slots plus 2 trivia slots plus one step onto end of input.
	if src.cur != 6 {
		t.Fatalf("unexpected counter: want: 6, got: %v", src.cur)
	}
	// Nothing was consumed on the host side.
	if b.RawTokenIndex() != 0 {
		t.Fatalf("the host cursor must not move: got: %v", b.RawTokenIndex())
	}
}

func TestTokenSource_cancellation(t *testing.T) {
	g := compileGrammar(t, calcSpec)
	b := newBuilder(t, g, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewTokenSource(ctx, b, g)
	if _, err := src.NextToken(); err != context.Canceled {
		t.Fatalf("unexpected error: want: %v, got: %v", context.Canceled, err)
	}
}

func TestTokenSource_customFactory(t *testing.T) {
	g := compileGrammar(t, calcSpec)
	b := newBuilder(t, g, "a")

	src := NewTokenSource(context.Background(), b, g)
	src.SetTokenFactory(func(typ int, eof bool, text string, start, stop, row, col int) *parser.Token {
		tok := parser.CommonTokenFactory(typ, eof, text, start, stop, row, col)
		tok.Channel = 7
		return tok
	})

	tok, err := src.NextToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Channel != 7 {
		t.Fatalf("the custom factory must build the tokens: got channel %v", tok.Channel)
	}
}
