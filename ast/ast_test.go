package ast

import (
	"testing"

	"github.com/hatchlang/hatch/token"
	"github.com/stretchr/testify/require"
)

func TestProgramString(t *testing.T) {
	ident := &Ident{Token: token.Token{Type: token.IDENT, Literal: "x"}, Name: "x"}
	lit := &IntLiteral{Token: token.Token{Type: token.INT, Literal: "1"}, Value: 1}
	stmt := &VarStmt{
		Token: token.Token{Type: token.VAR},
		Scope: ScopeLocalVar,
		Name:  ident,
		Value: lit,
	}
	prog := &Program{Statements: []Stmt{stmt}}
	require.Equal(t, "var x = 1;\n", prog.String())
}

func TestWalkCountsNodes(t *testing.T) {
	left := &IntLiteral{Value: 1}
	right := &IntLiteral{Value: 2}
	infix := &InfixExpr{Left: left, Operator: "+", Right: right}
	stmt := &ExprStmt{Expr: infix}
	prog := &Program{Statements: []Stmt{stmt}}

	var count int
	var v visitorFunc
	v = func(n Node) Visitor {
		count++
		return v
	}
	Walk(v, prog)
	require.Equal(t, 5, count) // Program, ExprStmt, InfixExpr, left, right
}

type visitorFunc func(Node) Visitor

func (f visitorFunc) Visit(n Node) Visitor { return f(n) }
