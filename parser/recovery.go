package parser

import (
	"context"
	"fmt"
)

// ErrorStrategy decides how the parser proceeds past a mismatch: delete the
// unexpected token, invent a missing one, or discard input until it can
// resynchronize. The returned nodes are spliced into the current rule's
// children, so the strategy fully determines which error nodes appear in the
// tree and whether their tokens are real or synthetic.
type ErrorStrategy interface {
	// RecoverInline handles a single mismatched token while the rule is
	// otherwise viable.
	RecoverInline(ctx context.Context, p *Parser, expected int) ([]Tree, error)

	// Recover handles a failed prediction; it discards tokens until the
	// parser can make progress after the failing rule.
	Recover(ctx context.Context, p *Parser, rule int) ([]Tree, error)
}

// DefaultErrorStrategy mirrors the usual resynchronization contract:
//
//   - If dropping the current token would let the expected one match, delete
//     it. The deleted token becomes an error node carrying the diagnostic.
//   - Otherwise conjure the missing token and continue; the synthetic token
//     becomes an error node that consumes no input.
//   - On a failed prediction, consume tokens until one is in the follow set
//     of the failing rule. The first consumed token carries the diagnostic;
//     the rest are folded into the tree as plainly consumed input.
type DefaultErrorStrategy struct{}

func (s *DefaultErrorStrategy) RecoverInline(ctx context.Context, p *Parser, expected int) ([]Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	la, err := p.stream.LT(1)
	if err != nil {
		return nil, err
	}

	next, err := p.stream.LA(2)
	if err != nil {
		return nil, err
	}
	if next == expected {
		// Single-token deletion.
		p.Report(&SyntaxError{
			Row:     la.Row,
			Col:     la.Col,
			Message: fmt.Sprintf("extraneous input %v expecting %v", la, p.TerminalDisplay(expected)),
			Token:   la,
		})

		deleted, err := p.stream.Consume()
		if err != nil {
			return nil, err
		}
		matched, err := p.stream.Consume()
		if err != nil {
			return nil, err
		}
		return []Tree{
			&ErrorNode{Tok: deleted},
			&TerminalNode{Tok: matched},
		}, nil
	}

	// Single-token insertion.
	p.Report(&SyntaxError{
		Row:     la.Row,
		Col:     la.Col,
		Message: fmt.Sprintf("missing %v at %v", p.TerminalDisplay(expected), la),
		Token:   la,
	})

	missing := NewMissingToken(expected, p.TerminalDisplay(expected), la)
	return []Tree{&ErrorNode{Tok: missing}}, nil
}

func (s *DefaultErrorStrategy) Recover(ctx context.Context, p *Parser, rule int) ([]Tree, error) {
	var nodes []Tree
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		la, err := p.stream.LT(1)
		if err != nil {
			return nil, err
		}
		if la.EOF || p.gram.FollowContains(rule, la.Type) {
			return nodes, nil
		}

		tok, err := p.stream.Consume()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &ErrorNode{Tok: tok})
	}
}
