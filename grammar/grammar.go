package grammar

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/rrevenantt/treebridge/cst"
)

// LexEntrySpec defines one lexical kind. Trivia kinds are tokenized but
// carry no grammar structure; fragment entries only name sub-patterns and
// produce no kind of their own.
type LexEntrySpec struct {
	Kind     string `toml:"kind"`
	Pattern  string `toml:"pattern"`
	Alias    string `toml:"alias"`
	Trivia   bool   `toml:"trivia"`
	Fragment bool   `toml:"fragment"`
}

// RuleSpec defines one rule. Each alternative is a sequence of symbol names;
// an empty sequence is the empty alternative.
type RuleSpec struct {
	Name string     `toml:"name"`
	Alts [][]string `toml:"alts"`
}

type Spec struct {
	Name  string          `toml:"name"`
	Start string          `toml:"start"`
	Lexer []*LexEntrySpec `toml:"lexer"`
	Rules []*RuleSpec     `toml:"rules"`
}

func ParseSpec(r io.Reader) (*Spec, error) {
	var s Spec
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse the grammar: %w", err)
	}
	return &s, nil
}

func ParseSpecFile(path string) (*Spec, error) {
	var s Spec
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("%s: failed to parse the grammar: %w", path, err)
	}
	return &s, nil
}

// CompiledGrammar is the portable artifact the runtime consumes. Terminal ID
// 0 is reserved for invalid input, real terminals are 1..T, and the EOF
// symbol is T+1.
type CompiledGrammar struct {
	Name      string
	Lexical   *LexicalSpec
	Syntactic *SyntacticSpec
}

type LexicalSpec struct {
	Spec           *mlspec.CompiledLexSpec
	KindToTerminal []int
	TerminalToKind []int
	Trivia         []int
	KindAliases    []string
}

type SyntacticSpec struct {
	Terminals       []string
	TerminalAliases []string
	TerminalCount   int
	EOFSymbol       int
	Rules           []string
	StartRule       int
	// Alts[rule][alt] is a sequence of encoded symbols: a terminal ID when
	// positive, ^ruleID when negative.
	Alts [][][]int
	// Predict[rule*TerminalCount+terminal] is alt+1, or 0 when the terminal
	// selects no alternative.
	Predict []int
	// Follow[rule*TerminalCount+terminal] is non-zero when the terminal is in
	// FOLLOW(rule).
	Follow []int
}

// KindSet returns the raw-slot classification table for the host builder.
func (g *CompiledGrammar) KindSet() *cst.KindSet {
	names := make([]string, len(g.Lexical.Spec.KindNames))
	var trivia []int
	for i, k := range g.Lexical.Spec.KindNames {
		names[i] = k.String()
		if g.Lexical.Trivia[i] != 0 {
			trivia = append(trivia, i)
		}
	}
	return cst.NewKindSet(names, trivia)
}

type symbolTable struct {
	terminals   []string // by terminal ID
	aliases     []string
	termIDs     map[string]int
	triviaKinds map[string]struct{}
	rules       []string
	ruleIDs     map[string]int
	eofSymbol   int
	termCount   int
}

func genSymbolTable(s *Spec) (*symbolTable, error) {
	st := &symbolTable{
		termIDs:     map[string]int{},
		triviaKinds: map[string]struct{}{},
		ruleIDs:     map[string]int{},
	}

	st.terminals = []string{""}
	st.aliases = []string{""}
	for _, e := range s.Lexer {
		if e.Kind == "" {
			return nil, fmt.Errorf("%w: a lexer entry needs a kind name", semErrUnnamedEntry)
		}
		if e.Fragment {
			continue
		}
		if _, exists := st.termIDs[e.Kind]; exists {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateTerminal, e.Kind)
		}
		if e.Trivia {
			st.triviaKinds[e.Kind] = struct{}{}
			// Trivia kinds are lexical only; they get no terminal ID.
			st.termIDs[e.Kind] = 0
			continue
		}
		st.termIDs[e.Kind] = len(st.terminals)
		st.terminals = append(st.terminals, e.Kind)
		st.aliases = append(st.aliases, e.Alias)
	}

	st.eofSymbol = len(st.terminals)
	st.terminals = append(st.terminals, "<eof>")
	st.aliases = append(st.aliases, "")
	st.termCount = len(st.terminals)

	if len(s.Rules) == 0 {
		return nil, semErrNoRule
	}
	for _, r := range s.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: a rule needs a name", semErrUnnamedEntry)
		}
		if _, exists := st.ruleIDs[r.Name]; exists {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateRule, r.Name)
		}
		if _, exists := st.termIDs[r.Name]; exists {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateName, r.Name)
		}
		st.ruleIDs[r.Name] = len(st.rules)
		st.rules = append(st.rules, r.Name)
	}

	return st, nil
}

func (st *symbolTable) resolveAlts(s *Spec) ([][][]int, error) {
	alts := make([][][]int, len(s.Rules))
	for ri, r := range s.Rules {
		if len(r.Alts) == 0 {
			return nil, fmt.Errorf("%w: %v", semErrNoAlternative, r.Name)
		}
		ruleAlts := make([][]int, len(r.Alts))
		for ai, alt := range r.Alts {
			encoded := make([]int, len(alt))
			for si, name := range alt {
				if rule, ok := st.ruleIDs[name]; ok {
					encoded[si] = ^rule
					continue
				}
				if _, trivia := st.triviaKinds[name]; trivia {
					return nil, fmt.Errorf("%w: %v in rule %v", semErrTriviaInProduction, name, r.Name)
				}
				if term, ok := st.termIDs[name]; ok {
					encoded[si] = term
					continue
				}
				return nil, fmt.Errorf("%w: %v in rule %v", semErrUndefinedSym, name, r.Name)
			}
			ruleAlts[ai] = encoded
		}
		alts[ri] = ruleAlts
	}
	return alts, nil
}

// Compile turns a grammar spec into a runnable artifact: it compiles the
// lexical entries with the maleeni compiler, resolves every rule, and builds
// the LL(1) predict and follow tables. An LL(1) conflict is a compile error.
func Compile(s *Spec) (*CompiledGrammar, error) {
	if s.Name == "" {
		return nil, semErrNoName
	}

	st, err := genSymbolTable(s)
	if err != nil {
		return nil, err
	}

	startRule, ok := st.ruleIDs[s.Start]
	if !ok {
		return nil, fmt.Errorf("%w: %v", semErrUndefinedStart, s.Start)
	}

	alts, err := st.resolveAlts(s)
	if err != nil {
		return nil, err
	}

	fst := genFirstSet(alts)
	flw := genFollowSet(alts, fst, startRule, st.eofSymbol)

	predict, err := genPredictTable(st, alts, fst, flw)
	if err != nil {
		return nil, err
	}

	follow := make([]int, len(st.rules)*st.termCount)
	for rule, entry := range flw.set {
		for term := range entry.terms {
			follow[rule*st.termCount+term] = 1
		}
	}

	clex, err := compileLexSpec(s)
	if err != nil {
		return nil, err
	}

	lexical, err := genLexicalSpec(s, st, clex)
	if err != nil {
		return nil, err
	}

	return &CompiledGrammar{
		Name:    s.Name,
		Lexical: lexical,
		Syntactic: &SyntacticSpec{
			Terminals:       st.terminals,
			TerminalAliases: st.aliases,
			TerminalCount:   st.termCount,
			EOFSymbol:       st.eofSymbol,
			Rules:           st.rules,
			StartRule:       startRule,
			Alts:            alts,
			Predict:         predict,
			Follow:          follow,
		},
	}, nil
}

func genPredictTable(st *symbolTable, alts [][][]int, fst *firstSet, flw *followSet) ([]int, error) {
	predict := make([]int, len(st.rules)*st.termCount)
	set := func(rule, term, alt int) error {
		e := &predict[rule*st.termCount+term]
		if *e != 0 && *e != alt+1 {
			return fmt.Errorf("%w: rule %v on %v selects both alternative %v and %v",
				semErrAmbiguousAlts, st.rules[rule], st.terminals[term], *e-1, alt)
		}
		*e = alt + 1
		return nil
	}

	for rule, ruleAlts := range alts {
		for alt, seq := range ruleAlts {
			e := fst.first(seq, 0)
			for term := range e.terms {
				if err := set(rule, term, alt); err != nil {
					return nil, err
				}
			}
			if e.empty {
				for term := range flw.set[rule].terms {
					if err := set(rule, term, alt); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return predict, nil
}

func genLexicalSpec(s *Spec, st *symbolTable, clex *mlspec.CompiledLexSpec) (*LexicalSpec, error) {
	aliasByKind := map[string]string{}
	for _, e := range s.Lexer {
		aliasByKind[e.Kind] = e.Alias
	}

	kindCount := len(clex.KindNames)
	kindToTerm := make([]int, kindCount)
	termToKind := make([]int, st.termCount)
	trivia := make([]int, kindCount)
	kindAliases := make([]string, kindCount)
	for i, k := range clex.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}

		name := k.String()
		if _, ok := st.triviaKinds[name]; ok {
			trivia[i] = 1
			continue
		}
		term, ok := st.termIDs[name]
		if !ok {
			return nil, fmt.Errorf("terminal symbol '%v' was not found in the symbol table", name)
		}
		kindToTerm[i] = term
		termToKind[term] = i
		kindAliases[i] = aliasByKind[name]
	}

	return &LexicalSpec{
		Spec:           clex,
		KindToTerminal: kindToTerm,
		TerminalToKind: termToKind,
		Trivia:         trivia,
		KindAliases:    kindAliases,
	}, nil
}
