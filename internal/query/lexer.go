package query

import (
	"strings"
	"unicode/utf8"
)

// tokenType represents the type of a lexer token.
type tokenType int

const (
	tokenEOF     tokenType = iota
	tokenIllegal           // unknown character or unterminated string
	tokenString            // "..."
	tokenNumber            // 10, 2005, 2005-03-14
	tokenIdent             // title, and, true
	tokenOp                // ==, !, ~, or any other punctuation
	tokenLParen            // (
	tokenRParen            // )
)

// token represents a lexer token.
type token struct {
	typ  tokenType
	text string
	pos  int
}

// twoCharOps are operators spelled with two characters.
var twoCharOps = map[string]bool{
	"==": true,
	"!=": true,
	">=": true,
	"<=": true,
	"&&": true,
	"||": true,
}

// lexer tokenizes a query string.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// next returns the next token from the input.
func (l *lexer) next() token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '(':
		l.pos++
		return token{typ: tokenLParen, text: "(", pos: start}
	case ch == ')':
		l.pos++
		return token{typ: tokenRParen, text: ")", pos: start}
	case ch == '"':
		return l.readString()
	case isDigit(ch):
		for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '-') {
			l.pos++
		}
		return token{typ: tokenNumber, text: l.input[start:l.pos], pos: start}
	case isIdentStart(ch):
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}
		return token{typ: tokenIdent, text: l.input[start:l.pos], pos: start}
	}

	if l.pos+2 <= len(l.input) && twoCharOps[l.input[l.pos:l.pos+2]] {
		l.pos += 2
		return token{typ: tokenOp, text: l.input[start:l.pos], pos: start}
	}

	if ch < utf8.RuneSelf && isPunct(ch) {
		l.pos++
		return token{typ: tokenOp, text: string(ch), pos: start}
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return token{typ: tokenIllegal, text: l.input[start:l.pos], pos: start}
}

// readString reads a double-quoted string. The token text keeps both quotes.
func (l *lexer) readString() token {
	start := l.pos
	end := strings.IndexByte(l.input[start+1:], '"')
	if end < 0 {
		l.pos = len(l.input)
		return token{typ: tokenIllegal, text: l.input[start:], pos: start}
	}
	l.pos = start + 1 + end + 1
	return token{typ: tokenString, text: l.input[start:l.pos], pos: start}
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

func isPunct(ch byte) bool {
	return strings.IndexByte("!#$%&*+,-./:;<=>?@[\\]^`{|}~'", ch) >= 0
}
