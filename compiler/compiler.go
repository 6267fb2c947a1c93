// Package compiler lowers an *ast.Program into an immutable *bytecode.Code
// tree: a two-pass walk (collect top-level bindings, then emit) grounded on
// the teacher's compiler.Code/SymbolTable pairing, retargeted at this
// language's opcodes, classes, namespaces, and enums.
package compiler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/op"
)

// Compile turns prog into a root bytecode.Code ready for vm execution.
// Diagnostics from both the collection and emission passes are accumulated
// (not fatal-on-first) so a caller sees every compile error in one report.
func Compile(prog *ast.Program, filename string) (*bytecode.Code, error) {
	c := &compiler{}
	root := newRootCode(prog.String(), filename)
	c.root = root
	c.cur = root

	c.collectDecls(prog.Statements, root)
	for _, stmt := range prog.Statements {
		c.compileStmt(stmt)
	}
	c.emit(op.Halt)

	if c.errs != nil {
		return root.ToBytecode(), c.errs.ErrorOrNil()
	}
	return root.ToBytecode(), nil
}

// compiler holds the emission state for one compile. loopStack tracks
// break/continue patch points for the innermost enclosing loop.
type compiler struct {
	root *Code
	cur  *Code
	errs *multierror.Error

	loopStack []*loopCtx
}

type loopCtx struct {
	breakJumps    []int // indices of Jump placeholder operands to patch to loop-end
	continueIndex int   // instruction index continue jumps back to
}

func (c *compiler) errorf(format string, args ...any) {
	c.errs = multierror.Append(c.errs, fmt.Errorf(format, args...))
}

func (c *compiler) emit(code op.Code, operands ...op.Code) int {
	return c.cur.emit(code, operands...)
}

func (c *compiler) emitJump(code op.Code) int {
	pos := c.cur.emit(code, 0)
	return pos + 1 // index of the placeholder operand word
}

func (c *compiler) patchJumpHere(operandIdx int) {
	c.cur.patchOperand(operandIdx, op.Code(c.cur.here()))
}

// collectDecls pre-declares top-level and module-local bindings (vars,
// classes, enums, namespace members) so forward references within the same
// scope resolve regardless of source order.
func (c *compiler) collectDecls(stmts []ast.Stmt, code *Code) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarStmt:
			c.declareVar(s, code)
		case *ast.ClassDecl:
			if !s.IsExtend {
				code.symbols.Define(s.Name.Name, false)
			}
		case *ast.EnumDecl:
			if s.Name != nil {
				code.symbols.Define(s.Name.Name, true)
			} else {
				for _, m := range s.Members {
					code.symbols.DefineModuleLocal(m.Name.Name, true)
				}
			}
		case *ast.NamespaceDecl:
			code.symbols.Define(s.Name.Name, false)
		case *ast.ImportStmt:
			for _, name := range s.Names {
				code.symbols.Define(name, false)
			}
		}
	}
}

func (c *compiler) declareVar(s *ast.VarStmt, code *Code) {
	isConst := s.Scope == ast.ScopeConst || s.Scope == ast.ScopeModuleConst
	switch s.Scope {
	case ast.ScopeModuleVar, ast.ScopeModuleConst:
		code.symbols.DefineModuleLocal(s.Name.Name, isConst)
	default:
		code.symbols.Define(s.Name.Name, isConst)
	}
}

func (c *compiler) compileStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.compileExpr(s.Expr)
		c.emit(op.Pop)
	case *ast.BlockStmt:
		for _, st := range s.Statements {
			c.compileStmt(st)
		}
	case *ast.VarStmt:
		c.compileVarStmt(s)
	case *ast.IfStmt:
		c.compileIfStmt(s)
	case *ast.WhileStmt:
		c.compileWhileStmt(s)
	case *ast.DoWhileStmt:
		c.compileDoWhileStmt(s)
	case *ast.ForStmt:
		c.compileForStmt(s)
	case *ast.ForeachStmt:
		c.compileForeachStmt(s)
	case *ast.RepeatStmt:
		c.compileRepeatStmt(s)
	case *ast.SwitchStmt:
		c.compileSwitchStmt(s)
	case *ast.BreakStmt:
		c.compileBreakStmt(s)
	case *ast.ContinueStmt:
		c.compileContinueStmt(s)
	case *ast.ReturnStmt:
		if s.Value != nil {
			c.compileExpr(s.Value)
		} else {
			c.emit(op.Null)
		}
		c.emit(op.Return)
	case *ast.PrintStmt:
		c.compileExpr(s.Value)
		c.emit(op.Print)
	case *ast.WithStmt:
		c.compileWithStmt(s)
	case *ast.ClassDecl:
		c.compileClassDecl(s)
	case *ast.EnumDecl:
		c.compileEnumDecl(s)
	case *ast.ImportStmt:
		for _, name := range s.Names {
			idx := c.cur.addName(name)
			c.emit(op.Import, idx)
			c.defineResolved(name)
		}
	case *ast.FromImportStmt:
		for _, path := range s.Paths {
			idx := c.cur.addConstant(path)
			c.emit(op.ImportModule, idx)
			c.emit(op.Pop)
		}
	case *ast.UsingNamespaceStmt:
		idx := c.cur.addName(s.Namespace.Name)
		c.emit(op.UseNamespace, idx)
	case *ast.NamespaceDecl:
		c.compileNamespaceDecl(s)
	case *ast.BadStmt:
		// parser already recorded a diagnostic; nothing to emit.
	default:
		c.errorf("compiler: unsupported statement %T", stmt)
	}
}

func (c *compiler) compileVarStmt(s *ast.VarStmt) {
	if s.Value != nil {
		c.compileExpr(s.Value)
	} else {
		c.emit(op.Null)
	}
	name := s.Name.Name
	switch s.Scope {
	case ast.ScopeModuleVar, ast.ScopeModuleConst:
		sym := c.symbolFor(name)
		c.storeModuleLocal(sym, s.Scope == ast.ScopeModuleConst)
	default:
		c.defineLocal(name, s.Scope == ast.ScopeConst)
	}
}

// symbolFor returns the already-declared symbol for name in the current
// scope (module-local and top-level class/enum/namespace names are
// pre-declared by collectDecls).
func (c *compiler) symbolFor(name string) Symbol {
	sym, ok := c.resolveIdent(c.cur, name)
	if !ok {
		c.errorf("compiler: undefined name %q", name)
		return Symbol{}
	}
	return sym
}

// Define*/DefineConstant/DefineGlobal consume the value already on the
// stack (pure declaration, never used as an expression). Set* opcodes
// leave the assigned value on the stack instead, since assignment is an
// expression in this grammar (`x = y = 5`) — statement-context callers of
// Set* are responsible for the trailing Pop.
// storeModuleLocal initializes a module-local slot. Module-locals are
// compiler-private array slots, not named globals, so `local const`
// immutability is enforced purely at compile time (see the IsConst check
// in compileAssignExpr) rather than by a distinct runtime opcode.
func (c *compiler) storeModuleLocal(sym Symbol, isConst bool) {
	c.emit(op.SetModuleLocal, op.Code(sym.Index))
	c.emit(op.Pop)
}

// defineLocal defines name in the current function/global scope and emits
// the instruction that stores the value already on the stack.
func (c *compiler) defineLocal(name string, isConst bool) *Symbol {
	sym := c.cur.symbols.Define(name, isConst)
	switch sym.Scope {
	case ScopeGlobal:
		nameIdx := c.cur.addName(name)
		if isConst {
			c.emit(op.DefineConstant, nameIdx)
		} else {
			c.emit(op.DefineGlobal, nameIdx)
		}
	case ScopeLocal:
		c.emit(op.SetLocal, op.Code(sym.Index))
		c.emit(op.Pop)
	}
	return sym
}

// defineResolved stores the value on top of the stack into an already
// pre-declared binding (used for `import`, which both declares and assigns).
func (c *compiler) defineResolved(name string) {
	sym := c.symbolFor(name)
	switch sym.Scope {
	case ScopeGlobal:
		nameIdx := c.cur.addName(name)
		c.emit(op.DefineGlobal, nameIdx)
	case ScopeModuleLocal:
		c.emit(op.SetModuleLocal, op.Code(sym.Index))
		c.emit(op.Pop)
	case ScopeLocal:
		c.emit(op.SetLocal, op.Code(sym.Index))
		c.emit(op.Pop)
	}
}

func (c *compiler) compileIfStmt(s *ast.IfStmt) {
	c.compileExpr(s.Condition)
	elseJump := c.emitJump(op.JumpIfFalsePop)
	c.compileStmt(s.Consequence)
	if s.Alternative == nil {
		c.patchJumpHere(elseJump)
		return
	}
	endJump := c.emitJump(op.Jump)
	c.patchJumpHere(elseJump)
	c.compileStmt(s.Alternative)
	c.patchJumpHere(endJump)
}

func (c *compiler) compileWhileStmt(s *ast.WhileStmt) {
	loopStart := c.cur.here()
	c.compileExpr(s.Condition)
	exitJump := c.emitJump(op.JumpIfFalsePop)

	lc := &loopCtx{continueIndex: loopStart}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.emit(op.JumpBack, op.Code(loopStart))
	c.patchJumpHere(exitJump)
	c.patchBreaks(lc)
}

func (c *compiler) compileDoWhileStmt(s *ast.DoWhileStmt) {
	loopStart := c.cur.here()
	lc := &loopCtx{continueIndex: loopStart}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.compileExpr(s.Condition)
	exitJump := c.emitJump(op.JumpIfFalsePop)
	c.emit(op.JumpBack, op.Code(loopStart))
	c.patchJumpHere(exitJump)
	c.patchBreaks(lc)
}

func (c *compiler) compileForStmt(s *ast.ForStmt) {
	if s.Init != nil {
		c.compileStmt(s.Init)
	}
	condStart := c.cur.here()
	var exitJump int
	hasCond := s.Condition != nil
	if hasCond {
		c.compileExpr(s.Condition)
		exitJump = c.emitJump(op.JumpIfFalsePop)
	}

	bodyStart := c.cur.here()
	_ = bodyStart
	lc := &loopCtx{}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)

	continueTarget := c.cur.here()
	if s.Step != nil {
		c.compileStmt(s.Step)
	}
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
	lc.continueIndex = continueTarget

	c.emit(op.JumpBack, op.Code(condStart))
	if hasCond {
		c.patchJumpHere(exitJump)
	}
	c.patchBreaks(lc)
}

// compileForeachStmt desugars `foreach (name in iterable) body` into a
// Lua-style stateless iteration: `iterable.iterate(state)` advances the
// cursor and returns null when exhausted, `iterable.iteratorValue(state)`
// projects the cursor to the bound value.
func (c *compiler) compileForeachStmt(s *ast.ForeachStmt) {
	c.compileExpr(s.Iterable)
	iterableSym := c.defineLocal(hiddenName("iterable"), false)
	c.emit(op.Null)
	stateSym := c.defineLocal(hiddenName("state"), false)

	loopStart := c.cur.here()
	c.emitLoad(*iterableSym)
	c.emitLoad(*stateSym)
	c.emit(op.Invoke, c.cur.addName("iterate"), 1, 0)
	c.emit(op.Dup)
	c.storeLocal(*stateSym)
	c.emit(op.Pop) // discard storeLocal's echoed value; the truthiness copy remains
	exitJump := c.emitJump(op.JumpIfFalsePop)

	c.emitLoad(*iterableSym)
	c.emitLoad(*stateSym)
	c.emit(op.Invoke, c.cur.addName("iteratorValue"), 1, 0)
	c.defineLocal(s.Name.Name, false)

	lc := &loopCtx{continueIndex: loopStart}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.emit(op.JumpBack, op.Code(loopStart))
	c.patchJumpHere(exitJump)
	c.patchBreaks(lc)
}

// compileRepeatStmt desugars `repeat(n[, name[, remaining]]) body` into a
// counted while-loop over a hidden counter local.
func (c *compiler) compileRepeatStmt(s *ast.RepeatStmt) {
	c.compileExpr(s.Count)
	countSym := c.defineLocal(hiddenName("count"), false)
	c.emit(op.Constant, c.cur.addConstant(int64(0)))
	idxSym := c.defineLocal(hiddenName("i"), false)

	loopStart := c.cur.here()
	c.emitLoad(*idxSym)
	c.emitLoad(*countSym)
	c.emit(op.Less)
	exitJump := c.emitJump(op.JumpIfFalsePop)

	if s.Name != nil {
		c.emitLoad(*idxSym)
		c.defineLocal(s.Name.Name, true)
	}
	if s.Remaining != nil {
		c.emitLoad(*countSym)
		c.emitLoad(*idxSym)
		c.emit(op.Subtract)
		c.defineLocal(s.Remaining.Name, true)
	}

	lc := &loopCtx{continueIndex: loopStart}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.emitLoad(*idxSym)
	c.emit(op.Constant, c.cur.addConstant(int64(1)))
	c.emit(op.Add)
	c.storeLocal(*idxSym)
	c.emit(op.Pop)

	c.emit(op.JumpBack, op.Code(loopStart))
	c.patchJumpHere(exitJump)
	c.patchBreaks(lc)
}

// compileSwitchStmt emits a linear Equal/JumpIfTrue cascade over the
// switch value, matching the teacher's lack of a dedicated jump-table
// opcode for small switches; a SwitchTable entry is reserved in op for a
// future dense-integer fast path but is not yet emitted by this compiler.
func (c *compiler) compileSwitchStmt(s *ast.SwitchStmt) {
	c.compileExpr(s.Value)
	subjectSym := c.defineLocal(hiddenName("switch"), false)

	var endJumps []int
	var defaultClause *ast.CaseClause
	for _, clause := range s.Cases {
		if clause.IsDefault {
			defaultClause = clause
			continue
		}
		var trueJumps []int
		for _, v := range clause.Values {
			c.emitLoad(*subjectSym)
			c.compileExpr(v)
			c.emit(op.Equal)
			trueJumps = append(trueJumps, c.emitJump(op.JumpIfTrue))
			c.emit(op.Pop) // no match: discard false, fall through to the next value test
		}
		skip := c.emitJump(op.Jump) // none of this clause's values matched
		for _, j := range trueJumps {
			c.patchJumpHere(j)
		}
		c.emit(op.Pop) // discard the true result left on the stack by JumpIfTrue
		for _, st := range clause.Consequence {
			c.compileStmt(st)
		}
		endJumps = append(endJumps, c.emitJump(op.Jump))
		c.patchJumpHere(skip)
	}
	if defaultClause != nil {
		for _, st := range defaultClause.Consequence {
			c.compileStmt(st)
		}
	}
	for _, idx := range endJumps {
		c.patchJumpHere(idx)
	}
}

func (c *compiler) compileBreakStmt(s *ast.BreakStmt) {
	if len(c.loopStack) == 0 {
		c.errorf("compiler: break outside a loop")
		return
	}
	lc := c.loopStack[len(c.loopStack)-1]
	lc.breakJumps = append(lc.breakJumps, c.emitJump(op.Jump))
}

func (c *compiler) compileContinueStmt(s *ast.ContinueStmt) {
	if len(c.loopStack) == 0 {
		c.errorf("compiler: continue outside a loop")
		return
	}
	lc := c.loopStack[len(c.loopStack)-1]
	c.emit(op.JumpBack, op.Code(lc.continueIndex))
}

func (c *compiler) patchBreaks(lc *loopCtx) {
	for _, idx := range lc.breakJumps {
		c.patchJumpHere(idx)
	}
}

// compileWithStmt compiles `with (subject [as name]) body` using the
// WithInit/WithInitSlotted/WithIterate/WithFinish state machine: the vm
// owns the iteration cursor and rebinds `this` (or the named local) to each
// member in turn for the duration of body. body gets its own loopCtx so
// `break` lands on WithFinish (restoring the receiver) the same way a loop's
// break lands past the loop; `continue` re-enters the body without
// advancing, matching this compiler's do-while treatment of continue.
func (c *compiler) compileWithStmt(s *ast.WithStmt) {
	c.compileExpr(s.Subject)

	var exitOperand int
	if s.As != nil {
		var sym *Symbol
		if t := c.cur.symbols; t.parent == nil {
			// Top-level declarations are globals, which have no stack slot;
			// give the `as` binding a local slot of the top-level frame so
			// WithInitSlotted has one to rebind.
			sym = &Symbol{Name: s.As.Name, Scope: ScopeLocal, Index: len(t.order)}
			t.store[s.As.Name] = sym
			t.order = append(t.order, s.As.Name)
		} else {
			sym = c.cur.symbols.Define(s.As.Name, false)
		}
		pos := c.cur.emit(op.WithInitSlotted, 0, op.Code(sym.Index))
		exitOperand = pos + 1
	} else if thisSym, ok := c.resolveIdent(c.cur, "this"); ok && thisSym.Scope == ScopeLocal {
		// No `as name`: rebind the enclosing method's `this` slot to each
		// member in turn for the body's duration.
		pos := c.cur.emit(op.WithInitSlotted, 0, op.Code(thisSym.Index))
		exitOperand = pos + 1
	} else {
		pos := c.cur.emit(op.WithInit, 0)
		exitOperand = pos + 1
	}

	bodyStart := c.cur.here()
	lc := &loopCtx{continueIndex: bodyStart}
	c.loopStack = append(c.loopStack, lc)
	c.compileStmt(s.Body)
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.emit(op.WithIterate, op.Code(bodyStart))
	c.patchJumpHere(exitOperand)
	c.patchBreaks(lc)
	c.emit(op.WithFinish)
}

func hiddenName(tag string) string { return "$" + tag }

func (c *compiler) emitLoad(sym Symbol) {
	switch sym.Scope {
	case ScopeLocal:
		c.emit(op.GetLocal, op.Code(sym.Index))
	case ScopeUpvalue:
		c.emit(op.GetUpvalue, op.Code(sym.Index))
	case ScopeModuleLocal:
		c.emit(op.GetModuleLocal, op.Code(sym.Index))
	case ScopeGlobal:
		c.emit(op.GetGlobal, c.cur.addName(sym.Name))
	}
}

func (c *compiler) storeLocal(sym Symbol) {
	switch sym.Scope {
	case ScopeLocal:
		c.emit(op.SetLocal, op.Code(sym.Index))
	case ScopeUpvalue:
		c.emit(op.SetUpvalue, op.Code(sym.Index))
	case ScopeModuleLocal:
		c.emit(op.SetModuleLocal, op.Code(sym.Index))
	case ScopeGlobal:
		c.emit(op.SetGlobal, c.cur.addName(sym.Name))
	}
}

// resolveIdent finds name starting at code, walking outward through
// enclosing function bodies and registering upvalue captures (addFreeVar)
// along the way. Globals and module-locals are visible from any depth
// without a capture, since they are not stack slots.
func (c *compiler) resolveIdent(code *Code, name string) (Symbol, bool) {
	if sym, ok := code.symbols.store[name]; ok {
		if code.symbols.parent == nil {
			return Symbol{Name: sym.Name, Scope: sym.Scope, Index: sym.Index, IsConst: sym.IsConst}, true
		}
		return Symbol{Name: name, Scope: ScopeLocal, Index: sym.Index, IsConst: sym.IsConst}, true
	}
	if code.parent == nil {
		return Symbol{}, false
	}
	if sym, ok := code.parent.symbols.store[name]; ok {
		if code.parent.symbols.parent == nil {
			return Symbol{Name: sym.Name, Scope: sym.Scope, Index: sym.Index, IsConst: sym.IsConst}, true
		}
		idx := code.addFreeVar(name, true, sym.Index)
		return Symbol{Name: name, Scope: ScopeUpvalue, Index: idx, IsConst: sym.IsConst}, true
	}
	parentSym, ok := c.resolveIdent(code.parent, name)
	if !ok {
		return Symbol{}, false
	}
	if parentSym.Scope == ScopeGlobal || parentSym.Scope == ScopeModuleLocal {
		return parentSym, true
	}
	idx := code.addFreeVar(name, false, parentSym.Index)
	return Symbol{Name: name, Scope: ScopeUpvalue, Index: idx, IsConst: parentSym.IsConst}, true
}
