package grammar

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// artifactSchemaVersion changes whenever the encoded layout of
// CompiledGrammar changes; stale artifacts are rejected rather than
// misdecoded.
const artifactSchemaVersion uint16 = 1

type artifactEnvelope struct {
	Version uint16
	Grammar *CompiledGrammar
}

func WriteCompiledGrammar(w io.Writer, g *CompiledGrammar) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&artifactEnvelope{
		Version: artifactSchemaVersion,
		Grammar: g,
	})
}

func ReadCompiledGrammar(r io.Reader) (*CompiledGrammar, error) {
	var env artifactEnvelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode the compiled grammar: %w", err)
	}
	if env.Version != artifactSchemaVersion {
		return nil, fmt.Errorf("unsupported compiled grammar version: %v (expected %v)", env.Version, artifactSchemaVersion)
	}
	if env.Grammar == nil {
		return nil, fmt.Errorf("the compiled grammar is empty")
	}
	return env.Grammar, nil
}
