package query

import "fmt"

// ParseErrorKind classifies compile-time failures.
type ParseErrorKind int

const (
	SyntaxError ParseErrorKind = iota + 1
	AtomError
	InfixError
	PrefixError
	IntegerError
	InvalidDate
)

func (k ParseErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case AtomError:
		return "AtomError"
	case InfixError:
		return "InfixError"
	case PrefixError:
		return "PrefixError"
	case IntegerError:
		return "IntegerError"
	case InvalidDate:
		return "InvalidDate"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError reports query text that cannot be compiled. No expression
// tree is produced when compilation fails.
type ParseError struct {
	Kind ParseErrorKind
	// Text is the offending token or literal.
	Text string
	// Pos is the byte offset of Text in the query, -1 when unknown.
	Pos int
	// Msg details a SyntaxError.
	Msg string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case SyntaxError:
		msg = "syntax of query is invalid"
		if e.Msg != "" {
			msg += ": " + e.Msg
		}
	case AtomError:
		msg = fmt.Sprintf("expected atom, found `%s`", e.Text)
	case InfixError:
		msg = fmt.Sprintf("expected infix operation, found `%s`", e.Text)
	case PrefixError:
		msg = fmt.Sprintf("only NOT (!) is a valid prefix, found `%s`", e.Text)
	case IntegerError:
		msg = fmt.Sprintf("`%s` could not be parsed as u32", e.Text)
	case InvalidDate:
		msg = "invalid date format: " + e.Text
	default:
		msg = "invalid query"
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" (at position %d)", e.Pos)
	}
	return msg
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	InvalidNot EvalErrorKind = iota + 1
	MismatchingTypes
	StringOperation
	IntegerOperation
	DateOperation
	BooleanOperation
	BadEvaluation
	TagNotSet
)

func (k EvalErrorKind) String() string {
	switch k {
	case InvalidNot:
		return "InvalidNot"
	case MismatchingTypes:
		return "MismatchingTypes"
	case StringOperation:
		return "StringOperation"
	case IntegerOperation:
		return "IntegerOperation"
	case DateOperation:
		return "DateOperation"
	case BooleanOperation:
		return "BooleanOperation"
	case BadEvaluation:
		return "BadEvaluation"
	case TagNotSet:
		return "TagNotSet"
	default:
		return fmt.Sprintf("EvalErrorKind(%d)", int(k))
	}
}

// EvalError reports an expression that cannot be evaluated against a
// file's tags.
type EvalError struct {
	Kind EvalErrorKind
	// Detail names the operator, kind or tag involved.
	Detail string
	// Other is the right-hand kind of a MismatchingTypes error.
	Other string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case InvalidNot:
		return "cannot apply logic NOT (!) to type: " + e.Detail
	case MismatchingTypes:
		return fmt.Sprintf("mismatching types cannot be compared: `%s` and `%s`", e.Detail, e.Other)
	case StringOperation:
		return "invalid string operation: " + e.Detail
	case IntegerOperation:
		return "invalid integer operation: " + e.Detail
	case DateOperation:
		return "invalid date operation: " + e.Detail
	case BooleanOperation:
		return "invalid boolean operation: " + e.Detail
	case BadEvaluation:
		return "expression must evaluate to a boolean, got " + e.Detail
	case TagNotSet:
		return "tag cannot be compared as it is not set: " + e.Detail
	default:
		return "evaluation failed: " + e.Detail
	}
}

func syntaxErr(pos int, format string, args ...any) *ParseError {
	return &ParseError{Kind: SyntaxError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func evalErr(kind EvalErrorKind, detail string) *EvalError {
	return &EvalError{Kind: kind, Detail: detail}
}
