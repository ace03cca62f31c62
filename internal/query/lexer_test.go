package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(input string) []token {
	l := newLexer(input)
	var toks []token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.typ == tokenEOF {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	got := lexAll(`title=="a b"&&(date>=2004-01 || !x)`)
	want := []token{
		{tokenIdent, "title", 0},
		{tokenOp, "==", 5},
		{tokenString, `"a b"`, 7},
		{tokenOp, "&&", 12},
		{tokenLParen, "(", 14},
		{tokenIdent, "date", 15},
		{tokenOp, ">=", 19},
		{tokenNumber, "2004-01", 21},
		{tokenOp, "||", 29},
		{tokenOp, "!", 32},
		{tokenIdent, "x", 33},
		{tokenRParen, ")", 34},
		{tokenEOF, "", 35},
	}
	assert.Equal(t, want, got)
}

func TestLexer_Illegal(t *testing.T) {
	tests := []struct {
		input string
		want  token
	}{
		{`"open`, token{tokenIllegal, `"open`, 0}},
		{`é`, token{tokenIllegal, "é", 0}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, newLexer(tt.input).next())
		})
	}
}

func TestLexer_Whitespace(t *testing.T) {
	toks := lexAll(" \t\n 12 \r\n")
	assert.Equal(t, []token{{tokenNumber, "12", 4}, {tokenEOF, "", 9}}, toks)
}
