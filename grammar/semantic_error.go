package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoName             = newSemanticError("a grammar needs a name")
	semErrNoRule             = newSemanticError("a grammar needs at least one rule")
	semErrNoAlternative      = newSemanticError("a rule needs at least one alternative")
	semErrUnnamedEntry       = newSemanticError("unnamed entry")
	semErrUndefinedSym       = newSemanticError("undefined symbol")
	semErrUndefinedStart     = newSemanticError("the start rule is not defined")
	semErrDuplicateTerminal  = newSemanticError("duplicate terminal")
	semErrDuplicateRule      = newSemanticError("duplicate rule")
	semErrDuplicateName      = newSemanticError("duplicate names are not allowed between terminals and rules")
	semErrTriviaInProduction = newSemanticError("a trivia terminal cannot be used in rules")
	semErrAmbiguousAlts      = newSemanticError("the grammar is not LL(1)")
)
