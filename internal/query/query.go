// Package query compiles filter expressions over tag fields and evaluates
// them against the tags of individual files.
//
// A query combines comparisons of tags and literals with and/or/not:
//
//	artist ~ "nujabes" and (date >= 2004 or tracknumber < 3)
//
// Tag names resolve to typed values per file: DATE is a date, TRACKNUMBER
// an integer, every other field a list of strings.
package query

import "fmt"

// Query is a compiled filter expression. It is immutable and may be
// evaluated concurrently against any number of environments.
type Query struct {
	source string
	expr   Expr
}

// Compile parses and builds a query.
func Compile(source string) (*Query, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return &Query{source: source, expr: expr}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Query {
	q, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("query: Compile(%q): %v", source, err))
	}
	return q
}

// All combines queries into their conjunction, in order. The combined
// tree holds copies of the input trees. It returns nil when given no
// queries.
func All(queries ...*Query) *Query {
	if len(queries) == 0 {
		return nil
	}
	q := queries[0]
	for _, next := range queries[1:] {
		q = &Query{
			source: "(" + q.source + ") and (" + next.source + ")",
			expr:   Binary(clone(q.expr), And, clone(next.expr)),
		}
	}
	return q
}

// Expr returns the expression tree of the query.
func (q *Query) Expr() Expr { return q.expr }

// Source returns the query text the query was compiled from.
func (q *Query) Source() string { return q.source }

func (q *Query) String() string { return q.source }

// Match evaluates the query and requires a boolean verdict.
func (q *Query) Match(env Environment) (bool, error) {
	v, err := Eval(q.expr, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, evalErr(BadEvaluation, v.Kind().String())
	}
	return bool(b), nil
}
