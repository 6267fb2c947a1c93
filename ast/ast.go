// Package ast defines the abstract syntax tree produced by package parser.
package ast

import "github.com/hatchlang/hatch/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. Statements cause side effects but do not
// evaluate to a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value and
// may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// BadExpr represents an expression containing syntax errors. Used by the
// parser to continue parsing after an error so multiple errors can be
// reported per compile (the parser records the error, skips the offending
// token and returns a BadExpr in its place).
type BadExpr struct {
	From token.Position
	To   token.Position
}

func (x *BadExpr) exprNode()           {}
func (x *BadExpr) Pos() token.Position { return x.From }
func (x *BadExpr) End() token.Position { return x.To }
func (x *BadExpr) String() string      { return "<bad expression>" }

// BadStmt represents a statement containing syntax errors.
type BadStmt struct {
	From token.Position
	To   token.Position
}

func (x *BadStmt) stmtNode()           {}
func (x *BadStmt) Pos() token.Position { return x.From }
func (x *BadStmt) End() token.Position { return x.To }
func (x *BadStmt) String() string      { return "<bad statement>" }

// Program is the root node of every parsed module.
type Program struct {
	Statements []Stmt
}

func (p *Program) stmtNode() {}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.NoPos
	}
	return p.Statements[0].Pos()
}

func (p *Program) End() token.Position {
	if len(p.Statements) == 0 {
		return token.NoPos
	}
	return p.Statements[len(p.Statements)-1].End()
}

func (p *Program) String() string {
	var out string
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}
