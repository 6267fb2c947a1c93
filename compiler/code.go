package compiler

import (
	"fmt"

	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/op"
)

// Code is the mutable, in-progress counterpart of bytecode.Code: one
// function/method/module body under construction. Converted to an
// immutable bytecode.Code via ToBytecode once compilation of that body
// finishes. Grounded on the teacher's compiler.Code builder (mutable
// instructions/constants/names slices, child list, ToBytecode lowering
// pass), trimmed of exception-handler bookkeeping the teacher's try/catch
// support needed and this language's grammar does not.
type Code struct {
	name       string
	isNamed    bool
	parent     *Code
	children   []*Code
	symbols    *SymbolTable

	instructions []op.Code
	constants    []any
	names        []string
	nameIndex    map[string]int
	source       string
	filename     string

	locations []bytecode.SourceLocation

	maxCallArgs int

	// freeVars records, in GetUpvalue/SetUpvalue index order, where each
	// captured variable lives in the immediately enclosing function: a
	// local slot (IsLocal) or that function's own upvalue index.
	freeVars    []freeVar
	freeVarIdx  map[string]int
}

type freeVar struct {
	Name    string
	IsLocal bool
	Index   int
}

// addFreeVar registers (or reuses) a capture of name from the enclosing
// function, returning this function's upvalue index for it.
func (c *Code) addFreeVar(name string, isLocal bool, index int) int {
	if c.freeVarIdx == nil {
		c.freeVarIdx = map[string]int{}
	}
	if idx, ok := c.freeVarIdx[name]; ok {
		return idx
	}
	idx := len(c.freeVars)
	c.freeVars = append(c.freeVars, freeVar{Name: name, IsLocal: isLocal, Index: index})
	c.freeVarIdx[name] = idx
	return idx
}

func newRootCode(source, filename string) *Code {
	return &Code{
		symbols:   NewGlobalSymbolTable(),
		source:    source,
		filename:  filename,
		nameIndex: map[string]int{},
	}
}

func (c *Code) newChild(name string) *Code {
	child := &Code{
		name:      name,
		isNamed:   name != "",
		parent:    c,
		symbols:   c.symbols.NewChild(),
		source:    c.source,
		filename:  c.filename,
		nameIndex: map[string]int{},
	}
	c.children = append(c.children, child)
	return child
}

func (c *Code) emit(code op.Code, operands ...op.Code) int {
	pos := len(c.instructions)
	c.instructions = append(c.instructions, code)
	c.instructions = append(c.instructions, operands...)
	for range append([]op.Code{code}, operands...) {
		c.locations = append(c.locations, bytecode.SourceLocation{})
	}
	return pos
}

func (c *Code) emitAt(loc bytecode.SourceLocation, code op.Code, operands ...op.Code) int {
	pos := c.emit(code, operands...)
	for i := pos; i < len(c.instructions); i++ {
		c.locations[i] = loc
	}
	return pos
}

// patchOperand overwrites the operand word at absolute instruction index
// idx (used to backpatch forward jump targets once the target is known).
func (c *Code) patchOperand(idx int, value op.Code) {
	c.instructions[idx] = value
}

func (c *Code) here() int { return len(c.instructions) }

// truncate rewinds emitted instructions (and their source locations) back
// to pos, discarding everything emitted since. Constant folding uses this
// to replace an already-compiled prefix/infix sequence with a single
// Constant push once both operands turn out to be literals.
func (c *Code) truncate(pos int) {
	c.instructions = c.instructions[:pos]
	c.locations = c.locations[:pos]
}

func (c *Code) addConstant(v any) op.Code {
	c.constants = append(c.constants, v)
	return op.Code(len(c.constants) - 1)
}

func (c *Code) addName(name string) op.Code {
	if idx, ok := c.nameIndex[name]; ok {
		return op.Code(idx)
	}
	idx := len(c.names)
	c.names = append(c.names, name)
	c.nameIndex[name] = idx
	return op.Code(idx)
}

func (c *Code) noteCallArgs(n int) {
	if n > c.maxCallArgs {
		c.maxCallArgs = n
	}
}

// ToBytecode lowers this mutable builder (and all descendants) into an
// immutable bytecode.Code tree, bottom-up so nested Function constants can
// reference their already-built Code.
func (c *Code) ToBytecode() *bytecode.Code {
	return c.toBytecode(map[*Code]*bytecode.Code{})
}

func (c *Code) toBytecode(seen map[*Code]*bytecode.Code) *bytecode.Code {
	children := make([]*bytecode.Code, len(c.children))
	for i, ch := range c.children {
		children[i] = ch.toBytecode(seen)
	}

	constants := make([]any, len(c.constants))
	for i, cst := range c.constants {
		if fn, ok := cst.(*functionBuilder); ok {
			childBC, ok := seen[fn.code]
			if !ok {
				panic(fmt.Sprintf("compiler: function %q's code was not compiled as a child", fn.name))
			}
			constants[i] = bytecode.NewFunction(bytecode.FunctionParams{
				Name:       fn.name,
				Parameters: fn.parameters,
				Defaults:   fn.defaults,
				Code:       childBC,
				IsMethod:   fn.isMethod,
				IsEvent:    fn.isEvent,
			})
		} else {
			constants[i] = cst
		}
	}

	bc := bytecode.NewCode(bytecode.CodeParams{
		Name:             c.name,
		IsNamed:          c.isNamed,
		Children:         children,
		Instructions:     c.instructions,
		Constants:        constants,
		Names:            c.names,
		Source:           c.source,
		Filename:         c.filename,
		Locations:        toBytecodeLocations(c.locations),
		MaxCallArgs:      c.maxCallArgs,
		LocalCount:       c.symbols.Count(),
		GlobalCount:      c.symbols.GlobalCount(),
		ModuleLocalCount: c.symbols.ModuleLocalCount(),
		GlobalNames:      c.symbols.GlobalNames(),
		LocalNames:       c.symbols.Names(),
	})
	seen[c] = bc
	return bc
}

func toBytecodeLocations(locs []bytecode.SourceLocation) []bytecode.SourceLocation {
	out := make([]bytecode.SourceLocation, len(locs))
	copy(out, locs)
	return out
}

// functionBuilder is the in-progress counterpart of bytecode.Function,
// held as a constant-pool entry until ToBytecode replaces it with the
// immutable bytecode.Function.
type functionBuilder struct {
	name       string
	parameters []string
	defaults   []any
	code       *Code
	isMethod   bool
	isEvent    bool
}
