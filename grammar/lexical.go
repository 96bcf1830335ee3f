package grammar

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

func compileLexSpec(s *Spec) (*mlspec.CompiledLexSpec, error) {
	if len(s.Lexer) == 0 {
		return nil, fmt.Errorf("a grammar needs at least one lexer entry")
	}

	entries := make([]*mlspec.LexEntry, 0, len(s.Lexer))
	for _, e := range s.Lexer {
		entries = append(entries, &mlspec.LexEntry{
			Kind:     mlspec.LexKindName(e.Kind),
			Pattern:  mlspec.LexPattern(e.Pattern),
			Fragment: e.Fragment,
		})
	}

	clex, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    s.Name,
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cErr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cErr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	return clex, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
