// Package lexer turns input text into the host's raw token buffer. The
// heavy lifting is the maleeni lexer runtime; this package only tracks byte
// offsets and keeps unmatched input as slots with the reserved invalid kind
// so the tree still covers every byte.
package lexer

import (
	"fmt"
	"strings"

	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/rrevenantt/treebridge/cst"
)

func Scan(clex *mlspec.CompiledLexSpec, text string) ([]cst.RawSlot, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(clex), strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var slots []cst.RawSlot
	off := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			break
		}

		slots = append(slots, cst.RawSlot{
			Kind:  int(tok.KindID),
			Start: off,
		})
		off += len(tok.Lexeme)
	}

	if off != len(text) {
		return nil, fmt.Errorf("lexer stopped at offset %v of %v", off, len(text))
	}

	return slots, nil
}
