package parser

import (
	"github.com/rrevenantt/treebridge/grammar"
)

// Sym is one symbol of an alternative: a terminal ID or a rule ID.
type Sym struct {
	Terminal bool
	ID       int
}

// Grammar is the read-only view of a compiled grammar the parser needs.
type Grammar interface {
	StartRule() int
	RuleCount() int
	RuleName(rule int) string
	AltCount(rule int) int
	Alt(rule int, alt int) []Sym
	// Predict returns the alternative of `rule` selected by `terminal`, or
	// false when no alternative is viable.
	Predict(rule int, terminal int) (int, bool)
	FollowContains(rule int, terminal int) bool
	TerminalCount() int
	TerminalName(terminal int) string
	TerminalAlias(terminal int) string
	EOF() int
}

type grammarImpl struct {
	g *grammar.CompiledGrammar
}

func NewGrammar(g *grammar.CompiledGrammar) Grammar {
	return &grammarImpl{
		g: g,
	}
}

func (g *grammarImpl) StartRule() int {
	return g.g.Syntactic.StartRule
}

func (g *grammarImpl) RuleCount() int {
	return len(g.g.Syntactic.Rules)
}

func (g *grammarImpl) RuleName(rule int) string {
	return g.g.Syntactic.Rules[rule]
}

func (g *grammarImpl) AltCount(rule int) int {
	return len(g.g.Syntactic.Alts[rule])
}

func (g *grammarImpl) Alt(rule int, alt int) []Sym {
	encoded := g.g.Syntactic.Alts[rule][alt]
	syms := make([]Sym, len(encoded))
	for i, e := range encoded {
		syms[i] = decodeSym(e)
	}
	return syms
}

func (g *grammarImpl) Predict(rule int, terminal int) (int, bool) {
	if terminal < 0 || terminal >= g.g.Syntactic.TerminalCount {
		return 0, false
	}
	e := g.g.Syntactic.Predict[rule*g.g.Syntactic.TerminalCount+terminal]
	if e == 0 {
		return 0, false
	}
	return e - 1, true
}

func (g *grammarImpl) FollowContains(rule int, terminal int) bool {
	if terminal < 0 || terminal >= g.g.Syntactic.TerminalCount {
		return false
	}
	return g.g.Syntactic.Follow[rule*g.g.Syntactic.TerminalCount+terminal] != 0
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) TerminalName(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) TerminalAlias(terminal int) string {
	return g.g.Syntactic.TerminalAliases[terminal]
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func decodeSym(e int) Sym {
	if e > 0 {
		return Sym{Terminal: true, ID: e}
	}
	return Sym{ID: -e - 1}
}
