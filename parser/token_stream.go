package parser

// TokenStream buffers a TokenSource and provides the arbitrary lookahead the
// parsing algorithm needs. The stream assigns each real token its index. The
// end-of-input token is sticky: once buffered, lookahead past it keeps
// returning it.
type TokenStream struct {
	src  TokenSource
	toks []*Token
	pos  int
}

func NewTokenStream(src TokenSource) *TokenStream {
	return &TokenStream{
		src: src,
	}
}

func (s *TokenStream) fill(n int) error {
	for len(s.toks) < s.pos+n {
		if l := len(s.toks); l > 0 && s.toks[l-1].EOF {
			return nil
		}
		tok, err := s.src.NextToken()
		if err != nil {
			return err
		}
		tok.Index = len(s.toks)
		s.toks = append(s.toks, tok)
	}
	return nil
}

// LT returns the i-th lookahead token, 1-based.
func (s *TokenStream) LT(i int) (*Token, error) {
	if err := s.fill(i); err != nil {
		return nil, err
	}
	idx := s.pos + i - 1
	if idx >= len(s.toks) {
		idx = len(s.toks) - 1
	}
	return s.toks[idx], nil
}

// LA returns the type of the i-th lookahead token, 1-based.
func (s *TokenStream) LA(i int) (int, error) {
	tok, err := s.LT(i)
	if err != nil {
		return 0, err
	}
	return tok.Type, nil
}

// Consume returns the current token and advances, except at end of input
// where the stream stays put.
func (s *TokenStream) Consume() (*Token, error) {
	tok, err := s.LT(1)
	if err != nil {
		return nil, err
	}
	if !tok.EOF {
		s.pos++
	}
	return tok, nil
}

func (s *TokenStream) Index() int {
	return s.pos
}
