package compiler

import (
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/op"
	"github.com/hatchlang/hatch/value"
)

func (c *compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		c.emit(op.Constant, c.cur.addConstant(e.Value))
	case *ast.DecimalLiteral:
		c.emit(op.Constant, c.cur.addConstant(e.Value))
	case *ast.StringLiteral:
		c.emit(op.Constant, c.cur.addConstant(e.Value))
	case *ast.BoolLiteral:
		if e.Value {
			c.emit(op.True)
		} else {
			c.emit(op.False)
		}
	case *ast.NullLiteral:
		c.emit(op.Null)
	case *ast.ThisExpr:
		c.compileThis()
	case *ast.Ident:
		c.compileIdent(e)
	case *ast.PrefixExpr:
		c.compilePrefixExpr(e)
	case *ast.PostfixExpr:
		c.compilePostfixExpr(e)
	case *ast.InfixExpr:
		c.compileInfixExpr(e)
	case *ast.TernaryExpr:
		c.compileTernaryExpr(e)
	case *ast.AssignExpr:
		c.compileAssignExpr(e)
	case *ast.CallExpr:
		c.compileCallExpr(e)
	case *ast.MemberExpr:
		c.compileMemberExpr(e)
	case *ast.IndexExpr:
		c.compileExpr(e.Object)
		c.compileExpr(e.Index)
		c.emit(op.GetElement)
	case *ast.NewExpr:
		c.compileNewExpr(e)
	case *ast.FunctionLiteral:
		c.compileFunctionBody(e.Name, e.Parameters, e.Body, false, false)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			c.compileExpr(el)
		}
		c.emit(op.NewArray, op.Code(len(e.Elements)))
	case *ast.MapLiteral:
		for _, pair := range e.Pairs {
			c.compileExpr(pair.Key)
			c.compileExpr(pair.Value)
		}
		c.emit(op.NewMap, op.Code(len(e.Pairs)))
	case *ast.BadExpr:
		c.emit(op.Null)
	default:
		c.errorf("compiler: unsupported expression %T", expr)
		c.emit(op.Null)
	}
}

// compileThis resolves `this` as an ordinary local named "this", bound by
// compileFunctionBody at slot len(parameters) for every method.
func (c *compiler) compileThis() {
	sym, ok := c.resolveIdent(c.cur, "this")
	if !ok {
		c.errorf("compiler: 'this' used outside a method")
		c.emit(op.Null)
		return
	}
	c.emitLoad(sym)
}

func (c *compiler) compileIdent(e *ast.Ident) {
	sym, ok := c.resolveIdent(c.cur, e.Name)
	if !ok {
		c.errorf("compiler: undefined name %q", e.Name)
		c.emit(op.Null)
		return
	}
	c.emitLoad(sym)
}

func (c *compiler) compilePrefixExpr(e *ast.PrefixExpr) {
	switch e.Operator {
	case "++", "--":
		c.compileIncDecTarget(e.Right, e.Operator, true)
		return
	case "typeof":
		c.compileExpr(e.Right)
		c.emit(op.Typeof)
		return
	}
	operandStart := c.cur.here()
	c.compileExpr(e.Right)
	operandEnd := c.cur.here()

	if operand, ok := literalValueInRange(c.cur, operandStart, operandEnd); ok {
		if folded, ok := foldPrefix(e.Operator, operand); ok {
			c.cur.truncate(operandStart)
			c.emit(op.Constant, c.cur.addConstant(folded))
			return
		}
	}

	switch e.Operator {
	case "-":
		c.emit(op.Negate)
	case "!":
		c.emit(op.Not)
	case "~":
		c.emit(op.BitNot)
	default:
		c.errorf("compiler: unsupported prefix operator %q", e.Operator)
	}
}

// literalValueInRange reports whether the instructions in [start, end) are
// exactly one Constant, True or False push, returning the value it pushes. Used by
// constant folding to recognise an already-compiled operand as a literal —
// including one a nested fold already collapsed, so folding cascades
// through a chain like `1 + 2 + 3` one operator at a time.
func literalValueInRange(c *Code, start, end int) (any, bool) {
	if end-start == 1 {
		switch c.instructions[start] {
		case op.True:
			return true, true
		case op.False:
			return false, true
		}
	}
	if end-start != 2 || c.instructions[start] != op.Constant {
		return nil, false
	}
	return c.constants[c.instructions[start+1]], true
}

// literalToValue converts a constant-pool entry (the Go-native types
// bytecode.Code stores constants as) into the value.Value the VM would
// push for it, so folding can reuse the VM's own arithmetic/comparison
// functions instead of re-deriving their semantics.
func literalToValue(v any) (value.Value, bool) {
	switch x := v.(type) {
	case int64:
		return value.Integer(int32(x)), true
	case float32:
		return value.Decimal(x), true
	case string:
		return value.FromObj(value.NewString(x)), true
	case bool:
		if x {
			return value.Integer(1), true
		}
		return value.Integer(0), true
	default:
		return value.Value{}, false
	}
}

// literalFromValue is literalToValue's inverse, for stashing a folded
// result back into the constant pool. ok is false for anything that isn't
// itself constant-pool-representable, which includes errors (e.g. the
// TypeError value.Add raises for incompatible operands) — the caller then
// leaves the original, unfolded instructions in place so the runtime
// raises the same error.
func literalFromValue(v value.Value) (any, bool) {
	switch v.Kind() {
	case value.KindInteger, value.KindLinkedInteger:
		return int64(v.Int()), true
	case value.KindDecimal, value.KindLinkedDecimal:
		return v.Dec(), true
	case value.KindObject:
		if s, ok := v.Obj().(*value.String); ok {
			return s.Value, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// foldPrefix evaluates a prefix operator over a literal operand at compile
// time, per §4.2's "logical-not" (and, by the same arithmetic/bitwise
// categories, unary minus and bitwise-not) participating in folding.
func foldPrefix(operator string, operand any) (any, bool) {
	v, ok := literalToValue(operand)
	if !ok {
		return nil, false
	}
	switch operator {
	case "-":
		return literalFromValue(value.Negate(v))
	case "!":
		return !v.IsTruthy(), true
	case "~":
		return literalFromValue(value.BitNot(v))
	default:
		return nil, false
	}
}

// foldInfix evaluates an infix operator over two literal operands at
// compile time, per §4.2: string concatenation, integer/decimal
// arithmetic (division/modulo by zero is left unfolded so the runtime
// raises the same ArithmeticError it would for the un-optimised form),
// bitwise ops, and comparisons.
func foldInfix(operator string, left, right any) (any, bool) {
	a, aok := literalToValue(left)
	b, bok := literalToValue(right)
	if !aok || !bok {
		return nil, false
	}
	switch operator {
	case "+":
		return literalFromValue(value.Add(a, b))
	case "-":
		return literalFromValue(value.Subtract(a, b))
	case "*":
		return literalFromValue(value.Multiply(a, b))
	case "/":
		r := value.Divide(a, b)
		if r.IsError() {
			return nil, false
		}
		return literalFromValue(r)
	case "%":
		r := value.Modulo(a, b)
		if r.IsError() {
			return nil, false
		}
		return literalFromValue(r)
	case "&":
		return literalFromValue(value.BitAnd(a, b))
	case "|":
		return literalFromValue(value.BitOr(a, b))
	case "^":
		return literalFromValue(value.BitXor(a, b))
	case "<<":
		return literalFromValue(value.Shl(a, b))
	case ">>":
		return literalFromValue(value.Shr(a, b))
	case "==":
		return value.ValuesSortaEqual(a, b), true
	case "!=":
		return !value.ValuesSortaEqual(a, b), true
	case "<":
		cmp, ok := value.Compare(a, b)
		return cmp < 0, ok
	case "<=":
		cmp, ok := value.Compare(a, b)
		return cmp <= 0, ok
	case ">":
		cmp, ok := value.Compare(a, b)
		return cmp > 0, ok
	case ">=":
		cmp, ok := value.Compare(a, b)
		return cmp >= 0, ok
	default:
		return nil, false
	}
}

func (c *compiler) compilePostfixExpr(e *ast.PostfixExpr) {
	c.compileIncDecTarget(e.Left, e.Operator, false)
}

// compileIncDecTarget compiles `++x`/`--x`/`x++`/`x--`. Prefix forms push
// the updated value; postfix forms push the value prior to the update.
func (c *compiler) compileIncDecTarget(target ast.Expr, operator string, prefix bool) {
	delta := op.Increment
	if operator == "--" {
		delta = op.Decrement
	}

	switch t := target.(type) {
	case *ast.Ident:
		sym, ok := c.resolveIdent(c.cur, t.Name)
		if !ok {
			c.errorf("compiler: undefined name %q", t.Name)
			c.emit(op.Null)
			return
		}
		c.emitLoad(sym)
		if !prefix {
			c.emit(op.Dup)
		}
		c.emit(delta)
		c.storeLocal(sym)
		if prefix {
			return
		}
		c.emit(op.Pop) // discard the post-update echo; the pre-update dup is the result
	case *ast.MemberExpr:
		nameIdx := c.cur.addName(t.Name)
		c.compileExpr(t.Object)
		c.emit(op.Dup)
		c.emit(op.GetProperty, nameIdx)
		if prefix {
			c.emit(delta)
			c.emit(op.SetProperty, nameIdx)
			return
		}
		oldSym := c.defineLocal(hiddenName("old"), false)
		c.emitLoad(*oldSym)
		c.emit(delta)
		c.emit(op.SetProperty, nameIdx)
		c.emit(op.Pop)
		c.emitLoad(*oldSym)
	default:
		c.errorf("compiler: %s target must be an identifier or member expression", operator)
		c.emit(op.Null)
	}
}

var infixOps = map[string]op.Code{
	"+": op.Add, "-": op.Subtract, "*": op.Multiply, "/": op.Divide, "%": op.Modulo,
	"==": op.Equal, "!=": op.NotEqual,
	"<": op.Less, "<=": op.LessEqual, ">": op.Greater, ">=": op.GreaterEqual,
	"&": op.BitAnd, "|": op.BitOr, "^": op.BitXor, "<<": op.Shl, ">>": op.Shr,
	"has": op.Has,
}

func (c *compiler) compileInfixExpr(e *ast.InfixExpr) {
	switch e.Operator {
	case "&&", "and":
		c.compileExpr(e.Left)
		end := c.emitJump(op.JumpIfFalse)
		c.emit(op.Pop)
		c.compileExpr(e.Right)
		c.patchJumpHere(end)
		return
	case "||", "or":
		c.compileExpr(e.Left)
		end := c.emitJump(op.JumpIfTrue)
		c.emit(op.Pop)
		c.compileExpr(e.Right)
		c.patchJumpHere(end)
		return
	}

	code, ok := infixOps[e.Operator]
	if !ok {
		c.errorf("compiler: unsupported infix operator %q", e.Operator)
		c.emit(op.Null)
		return
	}

	leftStart := c.cur.here()
	c.compileExpr(e.Left)
	leftEnd := c.cur.here()
	c.compileExpr(e.Right)
	rightEnd := c.cur.here()

	if left, ok := literalValueInRange(c.cur, leftStart, leftEnd); ok {
		if right, ok := literalValueInRange(c.cur, leftEnd, rightEnd); ok {
			if folded, ok := foldInfix(e.Operator, left, right); ok {
				c.cur.truncate(leftStart)
				c.emit(op.Constant, c.cur.addConstant(folded))
				return
			}
		}
	}

	c.emit(code)
}

func (c *compiler) compileTernaryExpr(e *ast.TernaryExpr) {
	c.compileExpr(e.Condition)
	elseJump := c.emitJump(op.JumpIfFalsePop)
	c.compileExpr(e.Consequence)
	endJump := c.emitJump(op.Jump)
	c.patchJumpHere(elseJump)
	c.compileExpr(e.Alternative)
	c.patchJumpHere(endJump)
}

var compoundBinOp = map[string]op.Code{
	"+=": op.Add, "-=": op.Subtract, "*=": op.Multiply, "/=": op.Divide, "%=": op.Modulo,
	"<<=": op.Shl, ">>=": op.Shr, "&=": op.BitAnd, "^=": op.BitXor, "|=": op.BitOr,
}

func (c *compiler) compileAssignExpr(e *ast.AssignExpr) {
	switch t := e.Target.(type) {
	case *ast.Ident:
		sym, ok := c.resolveIdent(c.cur, t.Name)
		if !ok {
			c.errorf("compiler: undefined name %q", t.Name)
			c.emit(op.Null)
			return
		}
		if sym.IsConst {
			c.errorf("compiler: cannot assign to constant %q", t.Name)
		}
		if e.Operator == "=" {
			c.compileExpr(e.Value)
		} else {
			c.emitLoad(sym)
			c.compileExpr(e.Value)
			c.emit(compoundBinOp[e.Operator])
		}
		c.storeLocal(sym)
	case *ast.MemberExpr:
		c.compileExpr(t.Object)
		nameIdx := c.cur.addName(t.Name)
		if e.Operator != "=" {
			c.emit(op.Dup)
			c.emit(op.GetProperty, nameIdx)
			c.compileExpr(e.Value)
			c.emit(compoundBinOp[e.Operator])
		} else {
			c.compileExpr(e.Value)
		}
		c.emit(op.SetProperty, nameIdx)
	case *ast.IndexExpr:
		// object and index are stashed in hidden locals so both survive
		// the GetElement read and are still available to the final
		// SetElement, which needs [object, index, value] together.
		c.compileExpr(t.Object)
		objSym := c.defineLocal(hiddenName("obj"), false)
		c.compileExpr(t.Index)
		idxSym := c.defineLocal(hiddenName("idx"), false)

		if e.Operator != "=" {
			c.emitLoad(*objSym)
			c.emitLoad(*idxSym)
			c.emit(op.GetElement)
			c.compileExpr(e.Value)
			c.emit(compoundBinOp[e.Operator])
		} else {
			c.compileExpr(e.Value)
		}
		newSym := c.defineLocal(hiddenName("new"), false)
		c.emitLoad(*objSym)
		c.emitLoad(*idxSym)
		c.emitLoad(*newSym)
		c.emit(op.SetElement)
	default:
		c.errorf("compiler: invalid assignment target")
		c.emit(op.Null)
	}
}

func (c *compiler) compileCallExpr(e *ast.CallExpr) {
	if member, ok := e.Callee.(*ast.MemberExpr); ok {
		c.compileExpr(member.Object)
		for _, a := range e.Args {
			c.compileExpr(a)
		}
		isSuper := op.Code(0)
		if member.IsSuper {
			isSuper = 1
		}
		c.emit(op.Invoke, c.cur.addName(member.Name), op.Code(len(e.Args)), isSuper)
		c.cur.noteCallArgs(len(e.Args))
		return
	}
	c.compileExpr(e.Callee)
	for _, a := range e.Args {
		c.compileExpr(a)
	}
	c.emit(op.Call, op.Code(len(e.Args)))
	c.cur.noteCallArgs(len(e.Args))
}

func (c *compiler) compileMemberExpr(e *ast.MemberExpr) {
	c.compileExpr(e.Object)
	nameIdx := c.cur.addName(e.Name)
	c.emit(op.GetProperty, nameIdx)
}

func (c *compiler) compileNewExpr(e *ast.NewExpr) {
	classIdent, ok := e.Class.(*ast.Ident)
	if !ok {
		c.errorf("compiler: new expects a class name")
		c.emit(op.Null)
		return
	}
	sym, ok := c.resolveIdent(c.cur, classIdent.Name)
	if !ok {
		c.errorf("compiler: undefined class %q", classIdent.Name)
		c.emit(op.Null)
		return
	}
	c.emitLoad(sym)
	for _, a := range e.Args {
		c.compileExpr(a)
	}
	c.emit(op.New, op.Code(len(e.Args)))
	c.cur.noteCallArgs(len(e.Args))
}
