// Package edit parses tag assignments and applies bulk edits to the
// comments of selected files.
package edit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/llehouerou/flaq/internal/tags"
)

// Assignment gives a field its list of values.
type Assignment struct {
	Field  tags.Field
	Values []string
}

func (a Assignment) String() string {
	quoted := make([]string, len(a.Values))
	for i, v := range a.Values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.ToLower(a.Field.Name()) + ":(" + strings.Join(quoted, ", ") + ")"
}

// SyntaxError reports malformed assignment text.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid assignment %q at position %d: %s", e.Input, e.Pos, e.Msg)
}

// ParseAssignments parses whitespace-separated field:value pairs.
// A value is a bare word, a double-quoted string, or a parenthesised
// comma-separated list of either, which may end with a trailing comma:
//
//	title:bar
//	title:"bar baz"
//	title : ( bar , foo, )
//	title:bar artist:baz
func ParseAssignments(input string) ([]Assignment, error) {
	s := &scanner{input: input}
	var out []Assignment

	for {
		s.skipSpace()
		if s.done() {
			break
		}

		start := s.pos
		name := s.word(func(r rune) bool { return r == ':' || unicode.IsSpace(r) })
		if name == "" {
			return nil, s.errorf(start, "expected field name")
		}
		field, err := tags.ParseField(name)
		if err != nil {
			return nil, s.errorf(start, "%v", err)
		}

		s.skipSpace()
		if !s.accept(':') {
			return nil, s.errorf(s.pos, "expected `:` after %s", name)
		}
		s.skipSpace()

		var values []string
		if s.accept('(') {
			values, err = s.list()
		} else {
			var v string
			v, err = s.value(func(r rune) bool { return unicode.IsSpace(r) })
			values = []string{v}
		}
		if err != nil {
			return nil, err
		}

		out = append(out, Assignment{Field: field, Values: values})
	}

	if len(out) == 0 {
		return nil, s.errorf(0, "no assignments")
	}
	return out, nil
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() rune {
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

func (s *scanner) accept(r rune) bool {
	if !s.done() && s.peek() == r {
		s.pos += utf8.RuneLen(r)
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for !s.done() && unicode.IsSpace(s.peek()) {
		_, size := utf8.DecodeRuneInString(s.input[s.pos:])
		s.pos += size
	}
}

// word consumes runes until stop matches or the input ends.
func (s *scanner) word(stop func(rune) bool) string {
	start := s.pos
	for !s.done() {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if stop(r) {
			break
		}
		s.pos += size
	}
	return s.input[start:s.pos]
}

// value consumes one quoted or bare value.
func (s *scanner) value(stop func(rune) bool) (string, error) {
	start := s.pos
	if s.accept('"') {
		end := strings.IndexByte(s.input[s.pos:], '"')
		if end < 0 {
			return "", s.errorf(start, "unterminated string")
		}
		v := s.input[s.pos : s.pos+end]
		s.pos += end + 1
		return v, nil
	}
	v := s.word(func(r rune) bool { return r == '"' || stop(r) })
	if v == "" {
		return "", s.errorf(start, "expected value")
	}
	return v, nil
}

// list consumes the rest of a parenthesised value list.
func (s *scanner) list() ([]string, error) {
	open := s.pos - 1
	var values []string
	for {
		s.skipSpace()
		if s.done() {
			return nil, s.errorf(open, "unbalanced `(`")
		}
		if s.accept(')') {
			break
		}

		v, err := s.value(func(r rune) bool {
			return r == ',' || r == ')' || r == '(' || unicode.IsSpace(r)
		})
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		s.skipSpace()
		if s.accept(')') {
			break
		}
		if !s.accept(',') {
			return nil, s.errorf(s.pos, "expected `,` or `)`")
		}
	}
	if len(values) == 0 {
		return nil, s.errorf(open, "empty value list")
	}
	return values, nil
}

func (s *scanner) errorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: s.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
