package bytecode

import (
	"bytes"
	"testing"

	"github.com/hatchlang/hatch/op"
	"github.com/stretchr/testify/require"
)

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	inner := NewCode(CodeParams{
		Name:         "helper",
		IsNamed:      true,
		Instructions: []op.Code{op.GetLocal, 0, op.Return},
		LocalNames:   []string{"name"},
		Source:       "function helper(name) { return name; }",
		Filename:     "main.hatch",
	})
	fn := NewFunction(FunctionParams{
		Name:       "helper",
		Parameters: []string{"name"},
		Defaults:   []any{nil},
		Code:       inner,
	})
	root := NewCode(CodeParams{
		Name:         "<module>",
		Children:     []*Code{inner},
		Instructions: []op.Code{op.Constant, 0, op.Constant, 1, op.Call, 1, op.Print, op.Halt},
		Constants:    []any{fn, "world"},
		Names:        []string{"helper"},
		Source:       "print helper(\"world\");",
		Filename:     "main.hatch",
		LocalCount:   0,
		GlobalCount:  1,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteFile(&buf, root))

	decoded, err := ReadFile(&buf)
	require.NoError(t, err)

	require.Equal(t, root.Name(), decoded.Name())
	require.Equal(t, root.Filename(), decoded.Filename())
	require.Equal(t, root.InstructionCount(), decoded.InstructionCount())
	for i := 0; i < root.InstructionCount(); i++ {
		require.Equal(t, root.InstructionAt(i), decoded.InstructionAt(i))
	}
	require.Equal(t, 1, decoded.ChildCount())
	require.Equal(t, "helper", decoded.ChildAt(0).Name())

	decodedFn, ok := decoded.ConstantAt(0).(*Function)
	require.True(t, ok)
	require.Equal(t, "helper", decodedFn.Name())
	require.Equal(t, "name", decodedFn.Parameter(0))
	require.Nil(t, decodedFn.Default(0))
	require.Equal(t, "world", decoded.ConstantAt(1))

	require.Equal(t, 3, decodedFn.Code().InstructionCount())
	require.Equal(t, op.GetLocal, decodedFn.Code().InstructionAt(0))
}

func TestReadFileRejectsBadMagic(t *testing.T) {
	_, err := ReadFile(bytes.NewReader([]byte("not bytecode")))
	require.Error(t, err)
}
