package query

import (
	"fmt"
	"slices"
)

// Operator is a binary operator of the query language.
type Operator int

const (
	Equals Operator = iota
	NotEquals
	Contains
	Greater
	GreaterEq
	Less
	LessEq
	And
	Or
)

var operatorSymbols = [...]string{
	Equals:    "==",
	NotEquals: "!=",
	Contains:  "~",
	Greater:   ">",
	GreaterEq: ">=",
	Less:      "<",
	LessEq:    "<=",
	And:       "and",
	Or:        "or",
}

var operatorNames = [...]string{
	Equals:    "Equals",
	NotEquals: "NotEquals",
	Contains:  "Contains",
	Greater:   "Greater",
	GreaterEq: "GreaterEq",
	Less:      "Less",
	LessEq:    "LessEq",
	And:       "And",
	Or:        "Or",
}

// Symbol returns the canonical query spelling of the operator.
func (op Operator) Symbol() string {
	if op < Equals || op > Or {
		return "?"
	}
	return operatorSymbols[op]
}

func (op Operator) String() string {
	if op < Equals || op > Or {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorNames[op]
}

// IsLogical reports whether op combines two booleans.
func (op Operator) IsLogical() bool { return op == And || op == Or }

// Expr is a node of a compiled query. Trees are immutable once built and
// every node owns its children.
type Expr interface {
	String() string
	isExpr()
}

// Literal is a constant value or an unresolved tag reference.
type Literal struct {
	Value Value
}

// Not negates a boolean operand.
type Not struct {
	Operand Expr
}

// BinaryOp applies Op to the values of Lhs and Rhs.
type BinaryOp struct {
	Lhs Expr
	Op  Operator
	Rhs Expr
}

func (*Literal) isExpr()  {}
func (*Not) isExpr()      {}
func (*BinaryOp) isExpr() {}

func (l *Literal) String() string { return l.Value.String() }

func (n *Not) String() string { return "!" + n.Operand.String() }

func (b *BinaryOp) String() string {
	return "(" + b.Lhs.String() + " " + b.Op.Symbol() + " " + b.Rhs.String() + ")"
}

// Lit wraps a value in a Literal node.
func Lit(v Value) *Literal { return &Literal{Value: v} }

// Binary builds a BinaryOp node.
func Binary(lhs Expr, op Operator, rhs Expr) *BinaryOp {
	return &BinaryOp{Lhs: lhs, Op: op, Rhs: rhs}
}

// clone returns a deep copy of a tree.
func clone(e Expr) Expr {
	switch n := e.(type) {
	case *Literal:
		if s, ok := n.Value.(Strings); ok {
			return Lit(slices.Clone(s))
		}
		return Lit(n.Value)
	case *Not:
		return &Not{Operand: clone(n.Operand)}
	case *BinaryOp:
		return Binary(clone(n.Lhs), n.Op, clone(n.Rhs))
	default:
		return e
	}
}
