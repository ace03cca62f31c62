package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/llehouerou/flaq/internal/tags"
)

// Precedence levels for operators, lowest first.
type precedence int

const (
	_ precedence = iota
	precLowest
	precOr      // or, ||
	precAnd     // and, &&
	precCompare // == != ~ > >= < <=
	precPrefix  // !X
)

// infixOperators maps operator spellings to operators. Keywords are matched
// case-insensitively.
var infixOperators = map[string]Operator{
	"==":       Equals,
	"!=":       NotEquals,
	"~":        Contains,
	"contains": Contains,
	">":        Greater,
	">=":       GreaterEq,
	"<":        Less,
	"<=":       LessEq,
	"&&":       And,
	"and":      And,
	"||":       Or,
	"or":       Or,
}

func (op Operator) precedence() precedence {
	switch op {
	case Or:
		return precOr
	case And:
		return precAnd
	default:
		return precCompare
	}
}

// parser builds expression trees from query text with operator-precedence
// parsing. All binary operators are left-associative.
type parser struct {
	lex  *lexer
	cur  token
	peek token
}

// Parse builds the expression tree for a query. Any error aborts the whole
// parse; no partial tree is returned.
func Parse(input string) (Expr, error) {
	p := &parser{lex: newLexer(input)}
	p.advance()
	p.advance()

	if p.cur.typ == tokenEOF {
		return nil, syntaxErr(p.cur.pos, "empty query")
	}

	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}

	switch p.peek.typ {
	case tokenEOF:
		return expr, nil
	case tokenRParen:
		return nil, syntaxErr(p.peek.pos, "unbalanced `)`")
	default:
		return nil, syntaxErr(p.peek.pos, "unexpected `%s`", p.peek.text)
	}
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.next()
}

// parseExpression parses the expression starting at the current token,
// consuming infix operators that bind tighter than prec. On return the
// current token is the last token of the expression.
func (p *parser) parseExpression(prec precedence) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for p.peek.typ != tokenEOF && p.peek.typ != tokenRParen {
		op, err := p.infix(p.peek)
		if err != nil {
			return nil, err
		}
		opPrec := op.precedence()
		if prec >= opPrec {
			return left, nil
		}

		p.advance() // operator
		p.advance() // first token of the right operand
		right, err := p.parseExpression(opPrec)
		if err != nil {
			return nil, err
		}
		left = Binary(left, op, right)
	}

	return left, nil
}

// parsePrefix parses a primary, optionally preceded by NOT.
func (p *parser) parsePrefix() (Expr, error) {
	tok := p.cur
	switch tok.typ {
	case tokenString:
		// Strip exactly one leading and one trailing quote.
		return Lit(Strings{tok.text[1 : len(tok.text)-1]}), nil
	case tokenNumber:
		v, err := parseNumber(tok.text)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Pos = tok.pos
			}
			return nil, err
		}
		return Lit(v), nil
	case tokenIdent:
		return p.parseIdent(tok)
	case tokenOp:
		if tok.text != "!" {
			return nil, &ParseError{Kind: PrefixError, Text: tok.text, Pos: tok.pos}
		}
		return p.parseNot()
	case tokenLParen:
		return p.parseGroup()
	case tokenRParen:
		return nil, syntaxErr(tok.pos, "unexpected `)`")
	case tokenEOF:
		return nil, syntaxErr(tok.pos, "unexpected end of query")
	default:
		return nil, p.illegal(tok)
	}
}

func (p *parser) parseIdent(tok token) (Expr, error) {
	switch strings.ToLower(tok.text) {
	case "true":
		return Lit(Bool(true)), nil
	case "false":
		return Lit(Bool(false)), nil
	case "not":
		return p.parseNot()
	}

	field, err := tags.ParseField(tok.text)
	if err != nil || !field.IsStandard() {
		return nil, &ParseError{Kind: AtomError, Text: tok.text, Pos: tok.pos}
	}
	return Lit(TagRef{Field: field}), nil
}

func (p *parser) parseNot() (Expr, error) {
	p.advance()
	operand, err := p.parseExpression(precPrefix)
	if err != nil {
		return nil, err
	}
	return &Not{Operand: operand}, nil
}

func (p *parser) parseGroup() (Expr, error) {
	open := p.cur
	p.advance()
	if p.cur.typ == tokenRParen {
		return nil, syntaxErr(p.cur.pos, "empty parentheses")
	}

	inner, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}

	if p.peek.typ != tokenRParen {
		return nil, syntaxErr(open.pos, "unbalanced `(`")
	}
	p.advance()
	return inner, nil
}

// infix maps a token in operator position to its operator.
func (p *parser) infix(tok token) (Operator, error) {
	switch tok.typ {
	case tokenOp, tokenIdent:
		if op, ok := infixOperators[strings.ToLower(tok.text)]; ok {
			return op, nil
		}
	case tokenIllegal:
		return 0, p.illegal(tok)
	}
	return 0, &ParseError{Kind: InfixError, Text: tok.text, Pos: tok.pos}
}

func (p *parser) illegal(tok token) *ParseError {
	if strings.HasPrefix(tok.text, `"`) {
		return syntaxErr(tok.pos, "unterminated string")
	}
	return syntaxErr(tok.pos, "unexpected character `%s`", tok.text)
}

// parseNumber classifies a digit run: four digits or anything with a dash
// is a date, everything else an unsigned integer.
func parseNumber(text string) (Value, error) {
	if len(text) == 4 || strings.Contains(text, "-") {
		return ParseDate(text)
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return nil, &ParseError{Kind: IntegerError, Text: text, Pos: -1}
	}
	return Integer(n), nil
}
