package bytecode

import (
	"testing"

	"github.com/hatchlang/hatch/op"
	"github.com/stretchr/testify/require"
)

func TestNewCodeBasics(t *testing.T) {
	code := NewCode(CodeParams{
		Name:         "main",
		Instructions: []op.Code{op.Constant, 0, op.Print, op.Halt},
		Constants:    []any{int64(42)},
		Source:       "print 42;",
		Filename:     "main.hatch",
		LocalCount:   2,
		GlobalCount:  1,
	})

	require.Equal(t, "main", code.Name())
	require.Equal(t, 4, code.InstructionCount())
	require.Equal(t, op.Constant, code.InstructionAt(0))
	require.Equal(t, int64(42), code.ConstantAt(0))
	require.Equal(t, 2, code.LocalCount())
	require.Equal(t, "print 42;", code.GetSourceLine(1))
}

func TestCodeIsImmutable(t *testing.T) {
	instructions := []op.Code{op.Null, op.Return}
	code := NewCode(CodeParams{Instructions: instructions})
	instructions[0] = op.True
	require.Equal(t, op.Null, code.InstructionAt(0))
}

func TestCodeFlattenIncludesChildren(t *testing.T) {
	child := NewCode(CodeParams{Name: "inner"})
	parent := NewCode(CodeParams{Name: "outer", Children: []*Code{child}})

	flat := parent.Flatten()
	require.Len(t, flat, 2)
	require.Equal(t, "outer", flat[0].Name())
	require.Equal(t, "inner", flat[1].Name())
}

func TestCodeStats(t *testing.T) {
	fn := NewFunction(FunctionParams{Name: "helper", Code: NewCode(CodeParams{})})
	code := NewCode(CodeParams{
		Instructions: []op.Code{op.Return},
		Constants:    []any{fn},
		Source:       "function helper() {}",
	})
	stats := code.Stats()
	require.Equal(t, 1, stats.InstructionCount)
	require.Equal(t, 1, stats.ConstantCount)
	require.Equal(t, 1, stats.FunctionCount)
}

func TestFunctionRequiredArgsCount(t *testing.T) {
	fn := NewFunction(FunctionParams{
		Name:       "greet",
		Parameters: []string{"name", "greeting"},
		Defaults:   []any{nil, "hello"},
		Code:       NewCode(CodeParams{}),
	})
	require.Equal(t, 1, fn.RequiredArgsCount())
	require.Equal(t, "hello", fn.Default(1))
}
