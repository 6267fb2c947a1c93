package ast

import (
	"fmt"
	"strings"

	"github.com/hatchlang/hatch/token"
)

// Ident is a reference to a named variable, parameter, or function.
type Ident struct {
	Token token.Token
	Name  string
}

func (e *Ident) exprNode()           {}
func (e *Ident) Pos() token.Position { return e.Token.StartPosition }
func (e *Ident) End() token.Position { return e.Token.EndPosition }
func (e *Ident) String() string      { return e.Name }

// PrefixExpr is a unary expression: -x, !x, ~x, typeof x, new X(), ++x, --x.
type PrefixExpr struct {
	Token    token.Token
	Operator string
	Right    Expr
}

func (e *PrefixExpr) exprNode()           {}
func (e *PrefixExpr) Pos() token.Position { return e.Token.StartPosition }
func (e *PrefixExpr) End() token.Position { return e.Right.End() }
func (e *PrefixExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Operator, e.Right.String())
}

// PostfixExpr is x++ or x--.
type PostfixExpr struct {
	Token    token.Token
	Left     Expr
	Operator string
}

func (e *PostfixExpr) exprNode()           {}
func (e *PostfixExpr) Pos() token.Position { return e.Left.Pos() }
func (e *PostfixExpr) End() token.Position { return e.Token.EndPosition }
func (e *PostfixExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Left.String(), e.Operator)
}

// InfixExpr is a binary expression: x + y, x has y, x == y, etc.
type InfixExpr struct {
	Token    token.Token
	Left     Expr
	Operator string
	Right    Expr
}

func (e *InfixExpr) exprNode()           {}
func (e *InfixExpr) Pos() token.Position { return e.Left.Pos() }
func (e *InfixExpr) End() token.Position { return e.Right.End() }
func (e *InfixExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// TernaryExpr is cond ? consequence : alternative.
type TernaryExpr struct {
	Token       token.Token
	Condition   Expr
	Consequence Expr
	Alternative Expr
}

func (e *TernaryExpr) exprNode()           {}
func (e *TernaryExpr) Pos() token.Position { return e.Condition.Pos() }
func (e *TernaryExpr) End() token.Position { return e.Alternative.End() }
func (e *TernaryExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Condition, e.Consequence, e.Alternative)
}

// AssignExpr is `target op= value` for any of = += -= *= /= %= <<= >>= &= ^= |=.
type AssignExpr struct {
	Token    token.Token
	Target   Expr
	Operator string
	Value    Expr
}

func (e *AssignExpr) exprNode()           {}
func (e *AssignExpr) Pos() token.Position { return e.Target.Pos() }
func (e *AssignExpr) End() token.Position { return e.Value.End() }
func (e *AssignExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Target.String(), e.Operator, e.Value.String())
}

// CallExpr is callee(args...).
type CallExpr struct {
	Token    token.Token // the '('
	Callee   Expr
	Args     []Expr
	EndToken token.Token // the ')'
}

func (e *CallExpr) exprNode()           {}
func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (e *CallExpr) End() token.Position { return e.EndToken.EndPosition }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(args, ", "))
}

// MemberExpr is object.name (property/method access).
type MemberExpr struct {
	Token    token.Token
	Object   Expr
	Name     string
	IsSuper  bool // true if Object resolved via `super.name`
	EndToken token.Token
}

func (e *MemberExpr) exprNode()           {}
func (e *MemberExpr) Pos() token.Position { return e.Object.Pos() }
func (e *MemberExpr) End() token.Position { return e.EndToken.EndPosition }
func (e *MemberExpr) String() string {
	return fmt.Sprintf("%s.%s", e.Object.String(), e.Name)
}

// IndexExpr is object[index] (array/map element access).
type IndexExpr struct {
	Token    token.Token
	Object   Expr
	Index    Expr
	EndToken token.Token
}

func (e *IndexExpr) exprNode()           {}
func (e *IndexExpr) Pos() token.Position { return e.Object.Pos() }
func (e *IndexExpr) End() token.Position { return e.EndToken.EndPosition }
func (e *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Object.String(), e.Index.String())
}

// NewExpr is `new Class(args...)`.
type NewExpr struct {
	Token    token.Token
	Class    Expr
	Args     []Expr
	EndToken token.Token
}

func (e *NewExpr) exprNode()           {}
func (e *NewExpr) Pos() token.Position { return e.Token.StartPosition }
func (e *NewExpr) End() token.Position { return e.EndToken.EndPosition }
func (e *NewExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("new %s(%s)", e.Class.String(), strings.Join(args, ", "))
}

// FunctionLiteral is `function [name](params) { body }`, producing a
// Closure object at runtime; may capture enclosing locals as upvalues.
type FunctionLiteral struct {
	Token      token.Token
	Name       string // empty for an anonymous function expression
	Parameters []*Param
	Body       *BlockStmt
	EndToken   token.Token
}

// Param is a function/method parameter, optionally with a default value
// (making it optional; MinArity in the compiled Function excludes it).
type Param struct {
	Name    *Ident
	Default Expr // nil if required
}

func (e *FunctionLiteral) exprNode()           {}
func (e *FunctionLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *FunctionLiteral) End() token.Position { return e.EndToken.EndPosition }
func (e *FunctionLiteral) String() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.Name.String()
	}
	return fmt.Sprintf("function %s(%s) %s", e.Name, strings.Join(params, ", "), e.Body.String())
}

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expr
	EndToken token.Token
}

func (e *ArrayLiteral) exprNode()           {}
func (e *ArrayLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *ArrayLiteral) End() token.Position { return e.EndToken.EndPosition }
func (e *ArrayLiteral) String() string {
	elems := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = el.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}

// MapPair is one `key: value` entry of a MapLiteral.
type MapPair struct {
	Key   Expr
	Value Expr
}

// MapLiteral is `{ key: value, ... }` used in expression position (strings
// or identifiers as keys per the grammar).
type MapLiteral struct {
	Token    token.Token
	Pairs    []MapPair
	EndToken token.Token
}

func (e *MapLiteral) exprNode()           {}
func (e *MapLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *MapLiteral) End() token.Position { return e.EndToken.EndPosition }
func (e *MapLiteral) String() string {
	pairs := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		pairs[i] = fmt.Sprintf("%s: %s", p.Key.String(), p.Value.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(pairs, ", "))
}
