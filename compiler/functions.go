package compiler

import (
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/op"
)

// compileFunctionBody compiles params/body into a child Code, wraps it in a
// functionBuilder constant, and emits Closure to materialize it at runtime
// with its captured upvalues, leaving the closure on the stack; binding it
// to a name is up to the caller.
func (c *compiler) compileFunctionBody(name string, params []*ast.Param, body *ast.BlockStmt, isMethod, isEvent bool) {
	child := c.cur.newChild(name)
	parent := c.cur
	c.cur = child

	paramNames := make([]string, len(params))
	defaults := make([]any, len(params))
	for i, p := range params {
		paramNames[i] = p.Name.Name
		child.symbols.Define(p.Name.Name, false)
		if p.Default != nil {
			defaults[i] = c.constantFor(p.Default)
		}
	}
	if isMethod {
		child.symbols.Define("this", false)
	}

	for _, st := range body.Statements {
		c.compileStmt(st)
	}
	c.emit(op.Null)
	c.emit(op.Return)

	c.cur = parent
	fb := &functionBuilder{
		name:       name,
		parameters: paramNames,
		defaults:   defaults,
		code:       child,
		isMethod:   isMethod,
		isEvent:    isEvent,
	}
	idx := c.cur.addConstant(fb)
	c.emit(op.Closure, idx, op.Code(len(child.freeVars)))
	for _, fv := range child.freeVars {
		isLocal := op.Code(0)
		if fv.IsLocal {
			isLocal = 1
		}
		c.emit(isLocal, op.Code(fv.Index))
	}
}

// constantFor evaluates a default-value expression at compile time. Default
// expressions in this grammar are restricted to literals (enforced by the
// parser's grammar, not re-checked here), so no bytecode needs to run for
// them.
func (c *compiler) constantFor(e ast.Expr) any {
	switch lit := e.(type) {
	case *ast.IntLiteral:
		return lit.Value
	case *ast.DecimalLiteral:
		return lit.Value
	case *ast.StringLiteral:
		return lit.Value
	case *ast.BoolLiteral:
		return lit.Value
	case *ast.NullLiteral:
		return nil
	default:
		c.errorf("compiler: default parameter values must be literals")
		return nil
	}
}
