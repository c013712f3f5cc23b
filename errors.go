package mxyaml

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindSyntax covers malformed constructs not matched by a more
	// specific kind: a stray closing delimiter, a missing colon in a flow
	// mapping, mixed entry forms inside one flow collection, an empty tag
	// name.
	KindSyntax ErrorKind = iota

	// KindIndentation reports a tab character used in indentation.
	KindIndentation

	// KindUnterminatedQuote reports a single- or double-quoted scalar not
	// closed within its line.
	KindUnterminatedQuote

	// KindUnterminatedFlowCollection reports a '{' or '[' with no
	// matching close before the input ends.
	KindUnterminatedFlowCollection

	// KindUnbalancedBracketInKey reports brackets or parens opened while
	// scanning a mapping key that never close.
	KindUnbalancedBracketInKey

	// KindUnexpectedIndentation reports a line whose indentation matches
	// no valid continuation of the current block.
	KindUnexpectedIndentation

	// KindUnsupportedFeature reports constructs deliberately excluded
	// from the dialect: folded block scalars, anchors and aliases,
	// multi-document markers.
	KindUnsupportedFeature

	// KindRecursionLimitExceeded reports that the nesting depth guard
	// tripped.
	KindRecursionLimitExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindIndentation:
		return "indentation error"
	case KindUnterminatedQuote:
		return "unterminated quote"
	case KindUnterminatedFlowCollection:
		return "unterminated flow collection"
	case KindUnbalancedBracketInKey:
		return "unbalanced bracket in key"
	case KindUnexpectedIndentation:
		return "unexpected indentation"
	case KindUnsupportedFeature:
		return "unsupported feature"
	case KindRecursionLimitExceeded:
		return "recursion limit exceeded"
	default:
		return "syntax error"
	}
}

// ParseError is the single error type returned by Parse. Line and Column are
// 1-based and point at the offending input position.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mxyaml: %s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// Is reports whether target is a ParseError of the same kind, so that
// errors.Is(err, mxyaml.ErrIndentation) matches regardless of position.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel targets for errors.Is, one per kind.
var (
	ErrSyntax                     = &ParseError{Kind: KindSyntax}
	ErrIndentation                = &ParseError{Kind: KindIndentation}
	ErrUnterminatedQuote          = &ParseError{Kind: KindUnterminatedQuote}
	ErrUnterminatedFlowCollection = &ParseError{Kind: KindUnterminatedFlowCollection}
	ErrUnbalancedBracketInKey     = &ParseError{Kind: KindUnbalancedBracketInKey}
	ErrUnexpectedIndentation      = &ParseError{Kind: KindUnexpectedIndentation}
	ErrUnsupportedFeature         = &ParseError{Kind: KindUnsupportedFeature}
	ErrRecursionLimitExceeded     = &ParseError{Kind: KindRecursionLimitExceeded}
)

func parseErrorf(kind ErrorKind, line, col int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}
