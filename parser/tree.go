package parser

// Tree is the parse tree produced by one parse invocation. The set of node
// kinds is closed: a node is a rule, a terminal, or an error node. Consumers
// dispatch with a type switch.
type Tree interface {
	treeNode()
}

// RuleNode is an interior node covering one rule invocation.
type RuleNode struct {
	Rule     int
	Children []Tree
}

// TerminalNode wraps exactly one consumed token.
type TerminalNode struct {
	Tok *Token
}

// ErrorNode wraps exactly one token involved in error recovery. The token is
// synthetic when the grammar expected input that was absent.
type ErrorNode struct {
	Tok *Token
}

func (*RuleNode) treeNode()     {}
func (*TerminalNode) treeNode() {}
func (*ErrorNode) treeNode()    {}
