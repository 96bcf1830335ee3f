package bridge

import (
	"context"
	"fmt"

	"github.com/rrevenantt/treebridge/cst"
	"github.com/rrevenantt/treebridge/parser"
)

// Converter replays a completed parse tree against the host builder:
// entering a rule opens a marker, leaving it closes the marker with the
// rule's kind, and terminals advance the host cursor one real token at a
// time. Diagnostics collected during the parse are attached to the error
// node whose token starts at their indexed offset; a diagnostic whose offset
// no error node reaches is dropped.
//
// The converter performs no recovery of its own. It trusts the parse tree to
// encode every error as an error node; a rule ID without a kind means the
// grammar and the builder disagree about the element registry, which is
// fatal.
type Converter struct {
	builder *cst.Builder
	gram    parser.Grammar
	diags   map[int]*parser.SyntaxError
}

func NewConverter(b *cst.Builder, gram parser.Grammar, diags map[int]*parser.SyntaxError) *Converter {
	return &Converter{
		builder: b,
		gram:    gram,
		diags:   diags,
	}
}

// Convert walks the tree, then drains whatever the start rule left
// unconsumed so the builder always reaches end of input. Trailing tokens are
// included with their default classification and no error annotation.
func (c *Converter) Convert(ctx context.Context, tree parser.Tree) error {
	if err := c.visit(ctx, tree); err != nil {
		return err
	}

	for !c.builder.Eof() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.builder.AdvanceLexer()
	}
	return nil
}

func (c *Converter) visit(ctx context.Context, tree parser.Tree) error {
	switch n := tree.(type) {
	case *parser.RuleNode:
		if err := ctx.Err(); err != nil {
			return err
		}
		if n.Rule < 0 || n.Rule >= c.gram.RuleCount() {
			panic(fmt.Sprintf("no element kind for rule index %v", n.Rule))
		}

		m := c.builder.Mark()
		for _, child := range n.Children {
			if err := c.visit(ctx, child); err != nil {
				return err
			}
		}
		m.Done(c.gram.RuleName(n.Rule))
		return nil

	case *parser.TerminalNode:
		c.builder.AdvanceLexer()
		c.builder.TokenType()
		return nil

	case *parser.ErrorNode:
		if err := ctx.Err(); err != nil {
			return err
		}
		c.visitError(n)
		return nil

	default:
		panic(fmt.Sprintf("unknown parse tree node %T", tree))
	}
}

// visitError distinguishes the error situations the recovery policy leaves
// behind:
//
//  1. A diagnostic at a real, non-EOF token: the token is consumed inside an
//     error region carrying the message.
//  2. A diagnostic at a synthetic or EOF token: the error region attaches at
//     the current position without consuming input that does not exist.
//  3. No diagnostic, synthetic token: the region carries the token's own
//     "missing" text; nothing is consumed.
//  4. No diagnostic, real token: input consumed purely to resynchronize;
//     it folds into the surrounding structure as plain consumed input.
func (c *Converter) visitError(n *parser.ErrorNode) {
	tok := n.Tok
	synthetic := tok.Synthetic()

	if diag, ok := c.diags[tok.Start]; ok {
		m := c.builder.Mark()
		if tok.Start >= 0 && !tok.EOF && !synthetic {
			c.builder.AdvanceLexer()
		}
		m.Error(diag.Message)
		return
	}

	if synthetic {
		m := c.builder.Mark()
		m.Error(tok.Text)
		return
	}

	c.builder.AdvanceLexer()
}
