// Package bytecode holds the compiled, immutable instruction containers
// produced by package compiler and executed by package vm: Code (one
// function body or the module's top level) and Function (the template a
// Closure is made from at runtime).
package bytecode

import (
	"strings"

	"github.com/hatchlang/hatch/op"
)

// Code represents a compiled instruction block: a module's top level, a
// function body, a method body, or a namespace initializer. It is immutable
// after construction and safe for concurrent use (the VM may run the same
// Code from more than one Closure at once).
type Code struct {
	id       string
	name     string
	isNamed  bool
	children []*Code
	parent   *Code

	instructions []op.Code
	constants    []any
	names        []string
	source       string
	filename     string
	functionID   string

	locations []SourceLocation

	maxCallArgs      int
	localCount       int
	globalCount      int
	moduleLocalCount int

	globalNames []string
	localNames  []string
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	ID               string
	Name             string
	IsNamed          bool
	Children         []*Code
	Instructions     []op.Code
	Constants        []any
	Names            []string
	Source           string
	Filename         string
	FunctionID       string
	Locations        []SourceLocation
	MaxCallArgs      int
	LocalCount       int
	GlobalCount      int
	ModuleLocalCount int
	GlobalNames      []string
	LocalNames       []string
}

// NewCode creates a new immutable Code from the given parameters. Input
// slices are copied so the result cannot be mutated through the caller's
// references.
func NewCode(params CodeParams) *Code {
	var children []*Code
	if len(params.Children) > 0 {
		children = make([]*Code, len(params.Children))
		copy(children, params.Children)
	}

	code := &Code{
		id:               params.ID,
		name:             params.Name,
		isNamed:          params.IsNamed,
		children:         children,
		instructions:     copyInstructions(params.Instructions),
		constants:        copyAny(params.Constants),
		names:            copyStrings(params.Names),
		source:           params.Source,
		filename:         params.Filename,
		functionID:       params.FunctionID,
		locations:        copyLocations(params.Locations),
		maxCallArgs:      params.MaxCallArgs,
		localCount:       params.LocalCount,
		globalCount:      params.GlobalCount,
		moduleLocalCount: params.ModuleLocalCount,
		globalNames:      copyStrings(params.GlobalNames),
		localNames:       copyStrings(params.LocalNames),
	}

	for _, child := range code.children {
		child.parent = code
	}

	return code
}

func (c *Code) ID() string         { return c.id }
func (c *Code) Name() string       { return c.name }
func (c *Code) IsNamed() bool      { return c.isNamed }
func (c *Code) FunctionID() string { return c.functionID }

func (c *Code) ChildCount() int      { return len(c.children) }
func (c *Code) ChildAt(i int) *Code  { return c.children[i] }

func (c *Code) InstructionCount() int          { return len(c.instructions) }
func (c *Code) InstructionAt(i int) op.Code    { return c.instructions[i] }

func (c *Code) ConstantCount() int      { return len(c.constants) }
func (c *Code) ConstantAt(i int) any    { return c.constants[i] }

func (c *Code) NameCount() int      { return len(c.names) }
func (c *Code) NameAt(i int) string { return c.names[i] }

func (c *Code) Source() string   { return c.source }
func (c *Code) Filename() string { return c.filename }

func (c *Code) LocalCount() int       { return c.localCount }
func (c *Code) GlobalCount() int      { return c.globalCount }
func (c *Code) ModuleLocalCount() int { return c.moduleLocalCount }
func (c *Code) MaxCallArgs() int      { return c.maxCallArgs }

// LocationAt returns the source location for the instruction at ip, or the
// zero SourceLocation if ip is out of range (synthetic instructions emitted
// without a source position).
func (c *Code) LocationAt(ip int) SourceLocation {
	if ip < 0 || ip >= len(c.locations) {
		return SourceLocation{}
	}
	return c.locations[ip]
}

func (c *Code) LocationCount() int { return len(c.locations) }

func (c *Code) GlobalNameCount() int { return len(c.globalNames) }

func (c *Code) GlobalNameAt(i int) string {
	if i < 0 || i >= len(c.globalNames) {
		return ""
	}
	return c.globalNames[i]
}

func (c *Code) LocalNameCount() int { return len(c.localNames) }

func (c *Code) LocalNameAt(i int) string {
	if i < 0 || i >= len(c.localNames) {
		return ""
	}
	return c.localNames[i]
}

// Flatten returns this Code and all descendants (nested function/method
// bodies) in a single slice, used by the disassembler and bytecode writer.
func (c *Code) Flatten() []*Code {
	codes := []*Code{c}
	for _, child := range c.children {
		codes = append(codes, child.Flatten()...)
	}
	return codes
}

// GetSourceLine returns the 1-based source line, looked up against the root
// Code's source so nested function bodies still report correct line text.
func (c *Code) GetSourceLine(lineNum int) string {
	if lineNum < 1 {
		return ""
	}
	source := c.getRootSource()
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (c *Code) getRootSource() string {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root.source
}

// Stats returns summary statistics about this code block.
func (c *Code) Stats() Stats {
	functionCount := 0
	for i := 0; i < c.ConstantCount(); i++ {
		if _, ok := c.ConstantAt(i).(*Function); ok {
			functionCount++
		}
	}
	return Stats{
		InstructionCount: c.InstructionCount(),
		ConstantCount:    c.ConstantCount(),
		GlobalCount:      c.GlobalCount(),
		FunctionCount:    functionCount,
		SourceBytes:      len(c.source),
	}
}

func (c *Code) GlobalNames() []string {
	if len(c.globalNames) == 0 {
		return nil
	}
	names := make([]string, len(c.globalNames))
	copy(names, c.globalNames)
	return names
}

// FunctionNames returns the names of all named functions declared directly
// in this code block. Anonymous function expressions are excluded.
func (c *Code) FunctionNames() []string {
	var names []string
	for i := 0; i < c.ConstantCount(); i++ {
		if fn, ok := c.ConstantAt(i).(*Function); ok {
			if name := fn.Name(); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
