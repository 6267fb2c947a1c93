package ast

import (
	"fmt"
	"strings"

	"github.com/hatchlang/hatch/token"
)

// ExprStmt wraps an expression evaluated for its side effect.
type ExprStmt struct {
	Token token.Token
	Expr  Expr
}

func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) End() token.Position { return s.Expr.End() }
func (s *ExprStmt) String() string      { return s.Expr.String() + ";" }

// BlockStmt is `{ statements... }`.
type BlockStmt struct {
	Token      token.Token
	Statements []Stmt
	EndToken   token.Token
}

func (s *BlockStmt) stmtNode()           {}
func (s *BlockStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *BlockStmt) End() token.Position { return s.EndToken.EndPosition }
func (s *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, st := range s.Statements {
		sb.WriteString("  " + st.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// VarScope distinguishes the four declaration forms in §4.2.
type VarScope int

const (
	ScopeLocalVar   VarScope = iota // `var` inside a block: function-local
	ScopeConst                      // `const`: requires a constant initializer
	ScopeModuleVar                  // `local var` at top level: module-local
	ScopeModuleConst                // `local const` at top level: module-local, constant
)

// VarStmt declares one local, module-local or constant.
type VarStmt struct {
	Token token.Token
	Scope VarScope
	Name  *Ident
	Value Expr // nil for an uninitialized `var` declaration
}

func (s *VarStmt) stmtNode()           {}
func (s *VarStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *VarStmt) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Name.End()
}
func (s *VarStmt) String() string {
	if s.Value == nil {
		return fmt.Sprintf("var %s;", s.Name)
	}
	return fmt.Sprintf("var %s = %s;", s.Name, s.Value)
}

// IfStmt is `if (cond) consequence [else alternative]`.
type IfStmt struct {
	Token       token.Token
	Condition   Expr
	Consequence *BlockStmt
	Alternative Stmt // *BlockStmt or *IfStmt, nil if no else
}

func (s *IfStmt) stmtNode()           {}
func (s *IfStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *IfStmt) End() token.Position {
	if s.Alternative != nil {
		return s.Alternative.End()
	}
	return s.Consequence.End()
}
func (s *IfStmt) String() string {
	out := fmt.Sprintf("if (%s) %s", s.Condition, s.Consequence)
	if s.Alternative != nil {
		out += " else " + s.Alternative.String()
	}
	return out
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Token     token.Token
	Condition Expr
	Body      *BlockStmt
}

func (s *WhileStmt) stmtNode()           {}
func (s *WhileStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *WhileStmt) End() token.Position { return s.Body.End() }
func (s *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition, s.Body)
}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	Token     token.Token
	Body      *BlockStmt
	Condition Expr
	EndToken  token.Token
}

func (s *DoWhileStmt) stmtNode()           {}
func (s *DoWhileStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *DoWhileStmt) End() token.Position { return s.EndToken.EndPosition }
func (s *DoWhileStmt) String() string {
	return fmt.Sprintf("do %s while (%s);", s.Body, s.Condition)
}

// ForStmt is `for (init; cond; step) body`. Init/Cond/Step may each be nil.
type ForStmt struct {
	Token     token.Token
	Init      Stmt
	Condition Expr
	Step      Stmt
	Body      *BlockStmt
}

func (s *ForStmt) stmtNode()           {}
func (s *ForStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *ForStmt) End() token.Position { return s.Body.End() }
func (s *ForStmt) String() string {
	return fmt.Sprintf("for (...;...;...) %s", s.Body)
}

// ForeachStmt is `foreach (name in expr) body`, desugared by the compiler
// to repeated calls of `expr.iterate(state)` / `expr.iteratorValue(state)`.
type ForeachStmt struct {
	Token    token.Token
	Name     *Ident
	Iterable Expr
	Body     *BlockStmt
}

func (s *ForeachStmt) stmtNode()           {}
func (s *ForeachStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *ForeachStmt) End() token.Position { return s.Body.End() }
func (s *ForeachStmt) String() string {
	return fmt.Sprintf("foreach (%s in %s) %s", s.Name, s.Iterable, s.Body)
}

// RepeatStmt is `repeat(n [, name [, remaining]]) body`; when Name is set
// the loop variable is implicitly `const` so the body cannot reassign it.
type RepeatStmt struct {
	Token     token.Token
	Count     Expr
	Name      *Ident // nil if the iteration variable form was not used
	Remaining *Ident // nil if not bound
	Body      *BlockStmt
}

func (s *RepeatStmt) stmtNode()           {}
func (s *RepeatStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *RepeatStmt) End() token.Position { return s.Body.End() }
func (s *RepeatStmt) String() string {
	return fmt.Sprintf("repeat (%s) %s", s.Count, s.Body)
}

// CaseClause is one `case expr: stmts` or `default: stmts` arm of a switch.
type CaseClause struct {
	Token       token.Token
	Values      []Expr // empty for `default`
	IsDefault   bool
	Consequence []Stmt
}

// SwitchStmt is `switch (expr) { case ...: ...; default: ... }`.
type SwitchStmt struct {
	Token    token.Token
	Value    Expr
	Cases    []*CaseClause
	EndToken token.Token
}

func (s *SwitchStmt) stmtNode()           {}
func (s *SwitchStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *SwitchStmt) End() token.Position { return s.EndToken.EndPosition }
func (s *SwitchStmt) String() string {
	return fmt.Sprintf("switch (%s) { ... }", s.Value)
}

// BreakStmt is `break;`.
type BreakStmt struct{ Token token.Token }

func (s *BreakStmt) stmtNode()           {}
func (s *BreakStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *BreakStmt) End() token.Position { return s.Token.EndPosition }
func (s *BreakStmt) String() string      { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Token token.Token }

func (s *ContinueStmt) stmtNode()           {}
func (s *ContinueStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *ContinueStmt) End() token.Position { return s.Token.EndPosition }
func (s *ContinueStmt) String() string      { return "continue;" }

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Token token.Token
	Value Expr // nil for a bare `return;`
}

func (s *ReturnStmt) stmtNode()           {}
func (s *ReturnStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *ReturnStmt) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Token.EndPosition
}
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value)
}

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Token token.Token
	Value Expr
}

func (s *PrintStmt) stmtNode()           {}
func (s *PrintStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *PrintStmt) End() token.Position { return s.Value.End() }
func (s *PrintStmt) String() string      { return fmt.Sprintf("print %s;", s.Value) }

// WithStmt is `with (expr [as name]) body`; iterates an ObjectList/Registry
// by name, or a single instance, rebinding the receiver for the duration.
type WithStmt struct {
	Token    token.Token
	Subject  Expr
	As       *Ident // nil if `as name` was not given
	Body     *BlockStmt
}

func (s *WithStmt) stmtNode()           {}
func (s *WithStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *WithStmt) End() token.Position { return s.Body.End() }
func (s *WithStmt) String() string {
	return fmt.Sprintf("with (%s) %s", s.Subject, s.Body)
}

// FieldDecl is a class field declared with `static var name [= value]`
// (static here means "per-class storage", per the grammar in §4.2).
type FieldDecl struct {
	Token token.Token
	Name  *Ident
	Value Expr
}

// MethodDecl is one method of a class. A method whose Name equals the
// class name is the initializer; a method named `event X` is flagged Event.
type MethodDecl struct {
	Token      token.Token
	Name       *Ident
	Parameters []*Param
	Body       *BlockStmt
	IsEvent    bool
	EndToken   token.Token
}

// ClassDecl is `class Name [+] [< Base] { members }`.
type ClassDecl struct {
	Token      token.Token
	Name       *Ident
	IsExtend   bool // `+` suffix: merge into an existing class of this name
	Base       *Ident
	Fields     []*FieldDecl
	Methods    []*MethodDecl
	EndToken   token.Token
}

func (s *ClassDecl) stmtNode()           {}
func (s *ClassDecl) Pos() token.Position { return s.Token.StartPosition }
func (s *ClassDecl) End() token.Position { return s.EndToken.EndPosition }
func (s *ClassDecl) String() string {
	base := ""
	if s.Base != nil {
		base = " < " + s.Base.String()
	}
	return fmt.Sprintf("class %s%s { ... }", s.Name, base)
}

// EnumMember is one `name [= expr]` entry of an EnumDecl.
type EnumMember struct {
	Name  *Ident
	Value Expr // nil when the value auto-increments from the previous one
}

// EnumDecl is `enum [Name] { members }`. An anonymous enum (Name == nil)
// emits per-name module-constant bindings instead of a named object.
type EnumDecl struct {
	Token    token.Token
	Name     *Ident // nil for an anonymous enum
	Members  []*EnumMember
	EndToken token.Token
}

func (s *EnumDecl) stmtNode()           {}
func (s *EnumDecl) Pos() token.Position { return s.Token.StartPosition }
func (s *EnumDecl) End() token.Position { return s.EndToken.EndPosition }
func (s *EnumDecl) String() string {
	if s.Name != nil {
		return fmt.Sprintf("enum %s { ... }", s.Name)
	}
	return "enum { ... }"
}

// ImportStmt is `import "path", ...;`, loading classes by symbolic name
// from the host module registry.
type ImportStmt struct {
	Token token.Token
	Names []string
}

func (s *ImportStmt) stmtNode()           {}
func (s *ImportStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *ImportStmt) End() token.Position { return s.Token.EndPosition }
func (s *ImportStmt) String() string      { return fmt.Sprintf("import %s;", strings.Join(s.Names, ", ")) }

// FromImportStmt is `from "path", ... import;`, loading whole modules.
type FromImportStmt struct {
	Token token.Token
	Paths []string
}

func (s *FromImportStmt) stmtNode()           {}
func (s *FromImportStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *FromImportStmt) End() token.Position { return s.Token.EndPosition }
func (s *FromImportStmt) String() string {
	return fmt.Sprintf("from %s import;", strings.Join(s.Paths, ", "))
}

// UsingNamespaceStmt is `using namespace X;`, merging every member of X
// into globals (honoring the class-extension rule for classes therein).
type UsingNamespaceStmt struct {
	Token     token.Token
	Namespace *Ident
}

func (s *UsingNamespaceStmt) stmtNode()           {}
func (s *UsingNamespaceStmt) Pos() token.Position { return s.Token.StartPosition }
func (s *UsingNamespaceStmt) End() token.Position { return s.Namespace.End() }
func (s *UsingNamespaceStmt) String() string {
	return fmt.Sprintf("using namespace %s;", s.Namespace)
}

// NamespaceDecl is `namespace X { members }`.
type NamespaceDecl struct {
	Token      token.Token
	Name       *Ident
	Statements []Stmt
	EndToken   token.Token
}

func (s *NamespaceDecl) stmtNode()           {}
func (s *NamespaceDecl) Pos() token.Position { return s.Token.StartPosition }
func (s *NamespaceDecl) End() token.Position { return s.EndToken.EndPosition }
func (s *NamespaceDecl) String() string      { return fmt.Sprintf("namespace %s { ... }", s.Name) }
