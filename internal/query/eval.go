package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/llehouerou/flaq/internal/tags"
)

// Environment gives read access to the tags of one file, keyed by
// canonical field name.
type Environment interface {
	Get(name string) ([]string, bool)
}

// MapEnv is an in-memory Environment.
type MapEnv map[string][]string

// Get implements Environment.
func (m MapEnv) Get(name string) ([]string, bool) {
	v, ok := m[name]
	return v, ok
}

// Eval evaluates expr against env. Children are evaluated before their
// parent; tag references are resolved against env as they are reached.
func Eval(expr Expr, env Environment) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		if ref, ok := e.Value.(TagRef); ok {
			return resolve(ref.Field, env)
		}
		return e.Value, nil
	case *Not:
		v, err := Eval(e.Operand, env)
		if err != nil {
			return nil, err
		}
		b, ok := v.(Bool)
		if !ok {
			return nil, evalErr(InvalidNot, v.Kind().String())
		}
		return !b, nil
	case *BinaryOp:
		lhs, err := Eval(e.Lhs, env)
		if err != nil {
			return nil, err
		}
		rhs, err := Eval(e.Rhs, env)
		if err != nil {
			return nil, err
		}
		lhs, rhs = yearAsInteger(e.Lhs, lhs, e.Rhs, rhs)
		ok, err := apply(lhs, e.Op, rhs)
		if err != nil {
			return nil, err
		}
		return Bool(ok), nil
	default:
		return nil, fmt.Errorf("query: unknown expression node %T", expr)
	}
}

// yearAsInteger reads a four-digit literal compared against an integer tag
// as an integer, so `tracknumber == 1000` compares numbers.
func yearAsInteger(lnode Expr, lhs Value, rnode Expr, rhs Value) (Value, Value) {
	if _, ok := rhs.(Integer); ok && isTagRef(rnode) {
		if n, ok := yearLiteral(lnode); ok {
			return n, rhs
		}
	}
	if _, ok := lhs.(Integer); ok && isTagRef(lnode) {
		if n, ok := yearLiteral(rnode); ok {
			return lhs, n
		}
	}
	return lhs, rhs
}

func isTagRef(e Expr) bool {
	lit, ok := e.(*Literal)
	if !ok {
		return false
	}
	_, ok = lit.Value.(TagRef)
	return ok
}

func yearLiteral(e Expr) (Integer, bool) {
	lit, ok := e.(*Literal)
	if !ok {
		return 0, false
	}
	d, ok := lit.Value.(Date)
	if !ok || d.Precision != PrecisionYear {
		return 0, false
	}
	return Integer(d.Year), true
}

// resolve turns a tag reference into a typed value. DATE and TRACKNUMBER
// are typed from their first stored value; every other field is a string
// list of all stored values, possibly empty.
func resolve(field tags.Field, env Environment) (Value, error) {
	values, ok := env.Get(field.Name())
	if !ok {
		return nil, evalErr(TagNotSet, field.Name())
	}
	id := field.ID()
	if len(values) == 0 && (id == tags.Date || id == tags.TrackNumber) {
		return nil, evalErr(TagNotSet, field.Name())
	}

	switch id {
	case tags.Date:
		d, err := ParseDate(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, evalErr(DateOperation, fmt.Sprintf("%s value %q is not a date", field.Name(), values[0]))
		}
		return d, nil
	case tags.TrackNumber:
		n, err := parseTrackNumber(values[0])
		if err != nil {
			return nil, evalErr(IntegerOperation, fmt.Sprintf("%s value %q is not a number", field.Name(), values[0]))
		}
		return n, nil
	default:
		if len(values) == 0 {
			return Strings{}, nil
		}
		return Strings(slices.Clone(values)), nil
	}
}

// parseTrackNumber accepts "N" and the common "N/M" (track N of M) form.
func parseTrackNumber(s string) (Integer, error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return Integer(n), nil
}

// apply dispatches a binary operator on the kinds of its operands.
func apply(lhs Value, op Operator, rhs Value) (bool, error) {
	if op.IsLogical() {
		a, aok := lhs.(Bool)
		b, bok := rhs.(Bool)
		if !aok || !bok {
			return false, evalErr(BooleanOperation, fmt.Sprintf("%s on %s and %s", op, lhs.Kind(), rhs.Kind()))
		}
		if op == And {
			return bool(a && b), nil
		}
		return bool(a || b), nil
	}

	if lhs.Kind() != rhs.Kind() {
		return false, &EvalError{Kind: MismatchingTypes, Detail: lhs.Kind().String(), Other: rhs.Kind().String()}
	}

	switch a := lhs.(type) {
	case Strings:
		b := rhs.(Strings)
		switch op {
		case Equals:
			return anyEqual(a, b), nil
		case NotEquals:
			return !anyEqual(a, b), nil
		case Contains:
			return anyContains(a, b), nil
		}
		return false, evalErr(StringOperation, op.String())
	case Bool:
		b := rhs.(Bool)
		switch op {
		case Equals:
			return a == b, nil
		case NotEquals:
			return a != b, nil
		}
		return false, evalErr(BooleanOperation, op.String())
	case Date:
		if op == Contains {
			return false, evalErr(DateOperation, op.String())
		}
		return ordered(a.Compare(rhs.(Date)), op), nil
	case Integer:
		if op == Contains {
			return false, evalErr(IntegerOperation, op.String())
		}
		b := rhs.(Integer)
		switch {
		case a < b:
			return ordered(-1, op), nil
		case a > b:
			return ordered(1, op), nil
		}
		return ordered(0, op), nil
	}

	return false, &EvalError{Kind: MismatchingTypes, Detail: lhs.Kind().String(), Other: rhs.Kind().String()}
}

// ordered applies a comparison operator to the result of a three-way
// comparison.
func ordered(c int, op Operator) bool {
	switch op {
	case Equals:
		return c == 0
	case NotEquals:
		return c != 0
	case Greater:
		return c > 0
	case GreaterEq:
		return c >= 0
	case Less:
		return c < 0
	case LessEq:
		return c <= 0
	}
	return false
}

// anyEqual reports whether some element of a equals some element of b.
func anyEqual(a, b Strings) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}

// anyContains reports whether some element of a contains some element of b,
// ignoring case.
func anyContains(a, b Strings) bool {
	fold := cases.Fold()
	needles := make([]string, len(b))
	for i, y := range b {
		needles[i] = fold.String(y)
	}
	for _, x := range a {
		hay := fold.String(x)
		for _, needle := range needles {
			if strings.Contains(hay, needle) {
				return true
			}
		}
	}
	return false
}
