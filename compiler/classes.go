package compiler

import (
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/op"
)

// compileClassDecl builds a Class value on the stack: Class (or, for a `+`
// extension, ExtendMark+Class merging into the existing global of the same
// name), Inherit for the base class, then one Field/Method instruction per
// member, and finally binds the result under the class's name.
func (c *compiler) compileClassDecl(s *ast.ClassDecl) {
	nameIdx := c.cur.addName(s.Name.Name)
	if s.IsExtend {
		c.emit(op.ExtendMark)
	}
	c.emit(op.Class, nameIdx)

	if s.Base != nil {
		c.emit(op.Inherit, c.cur.addName(s.Base.Name))
	}

	for _, f := range s.Fields {
		if f.Value != nil {
			c.compileExpr(f.Value)
		} else {
			c.emit(op.Null)
		}
		c.emit(op.Field, c.cur.addName(f.Name.Name))
	}

	for _, m := range s.Methods {
		c.compileFunctionBody(m.Name.Name, m.Parameters, m.Body, true, m.IsEvent)
		c.emit(op.Method, c.cur.addName(m.Name.Name))
	}

	c.defineResolved(s.Name.Name)
}

// compileEnumDecl builds an Enum value (named) or, for an anonymous enum,
// binds each member directly as a module-local constant — the values
// auto-increment from the previous member when no explicit value is given,
// mirroring a C-style enum.
func (c *compiler) compileEnumDecl(s *ast.EnumDecl) {
	if s.Name == nil {
		c.compileAnonymousEnum(s)
		return
	}

	nameIdx := c.cur.addName(s.Name.Name)
	c.emit(op.Enum, nameIdx)

	next := int64(0)
	for _, m := range s.Members {
		hasValue := m.Value != nil
		if hasValue {
			c.compileExpr(m.Value)
			if lit, ok := m.Value.(*ast.IntLiteral); ok {
				next = lit.Value + 1
			}
		} else {
			c.emit(op.Constant, c.cur.addConstant(next))
			next++
		}
		flag := op.Code(0)
		if hasValue {
			flag = 1
		}
		c.emit(op.EnumMember, c.cur.addName(m.Name.Name), flag)
	}

	c.defineResolved(s.Name.Name)
}

func (c *compiler) compileAnonymousEnum(s *ast.EnumDecl) {
	next := int64(0)
	for _, m := range s.Members {
		if m.Value != nil {
			c.compileExpr(m.Value)
			if lit, ok := m.Value.(*ast.IntLiteral); ok {
				next = lit.Value + 1
			}
		} else {
			c.emit(op.Constant, c.cur.addConstant(next))
			next++
		}
		sym := c.symbolFor(m.Name.Name)
		c.storeModuleLocal(sym, true)
	}
}

// compileNamespaceDecl compiles a namespace body inline in the current Code
// block, bracketed by Namespace and NamespaceEnd, which populate a Namespace
// value bound under the namespace's name; `using namespace X` later merges its members into
// globals.
func (c *compiler) compileNamespaceDecl(s *ast.NamespaceDecl) {
	nameIdx := c.cur.addName(s.Name.Name)
	c.emit(op.Namespace, nameIdx)

	for _, stmt := range s.Statements {
		c.compileStmt(stmt)
	}

	c.emit(op.NamespaceEnd)
	c.defineResolved(s.Name.Name)
}
