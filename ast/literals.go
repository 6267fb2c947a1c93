package ast

import "github.com/hatchlang/hatch/token"

// IntLiteral is an integer constant (decimal or 0x-prefixed hex).
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (e *IntLiteral) exprNode()           {}
func (e *IntLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *IntLiteral) End() token.Position { return e.Token.EndPosition }
func (e *IntLiteral) String() string      { return e.Token.Literal }

// DecimalLiteral is a 32-bit float constant (N.N syntax).
type DecimalLiteral struct {
	Token token.Token
	Value float32
}

func (e *DecimalLiteral) exprNode()           {}
func (e *DecimalLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *DecimalLiteral) End() token.Position { return e.Token.EndPosition }
func (e *DecimalLiteral) String() string      { return e.Token.Literal }

// StringLiteral is a quoted string constant with escapes already resolved.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) exprNode()           {}
func (e *StringLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *StringLiteral) End() token.Position { return e.Token.EndPosition }
func (e *StringLiteral) String() string      { return "\"" + e.Value + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) exprNode()           {}
func (e *BoolLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *BoolLiteral) End() token.Position { return e.Token.EndPosition }
func (e *BoolLiteral) String() string      { return e.Token.Literal }

// NullLiteral is `null`.
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) exprNode()           {}
func (e *NullLiteral) Pos() token.Position { return e.Token.StartPosition }
func (e *NullLiteral) End() token.Position { return e.Token.EndPosition }
func (e *NullLiteral) String() string      { return "null" }

// ThisExpr is `this`, the receiver in the current method/constructor frame.
type ThisExpr struct {
	Token token.Token
}

func (e *ThisExpr) exprNode()           {}
func (e *ThisExpr) Pos() token.Position { return e.Token.StartPosition }
func (e *ThisExpr) End() token.Position { return e.Token.EndPosition }
func (e *ThisExpr) String() string      { return "this" }
