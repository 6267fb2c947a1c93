package bytecode

import (
	"strings"
	"testing"

	"github.com/hatchlang/hatch/op"
	"github.com/stretchr/testify/require"
)

func TestDisassembleDecodesOperandsAndAnnotations(t *testing.T) {
	code := NewCode(CodeParams{
		Name:         "main",
		Instructions: []op.Code{op.Constant, 0, op.DefineGlobal, 0, op.Halt},
		Constants:    []any{int64(7)},
		GlobalNames:  []string{"answer"},
		GlobalCount:  1,
	})

	instrs := Disassemble(code)
	require.Len(t, instrs, 3)
	require.Equal(t, "CONSTANT", instrs[0].Name)
	require.Equal(t, "7", instrs[0].Annotation)
	require.Equal(t, "DEFINE_GLOBAL", instrs[1].Name)
	require.Equal(t, "answer", instrs[1].Annotation)
	require.Equal(t, "HALT", instrs[2].Name)
	require.Equal(t, 4, instrs[2].Offset)
}

func TestListingIncludesNestedFunctionBodies(t *testing.T) {
	inner := NewCode(CodeParams{
		Name:         "greet",
		IsNamed:      true,
		Instructions: []op.Code{op.Null, op.Return},
	})
	fn := NewFunction(FunctionParams{Name: "greet", Code: inner})
	root := NewCode(CodeParams{
		Instructions: []op.Code{op.Constant, 0, op.Pop, op.Halt},
		Constants:    []any{fn},
	})

	out := Listing(root)
	require.Contains(t, out, "== <module> ==")
	require.Contains(t, out, "func:greet")
	require.Contains(t, out, "== greet ==")
	require.True(t, strings.Index(out, "== <module> ==") < strings.Index(out, "== greet =="))
}
