package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(Closure)
	require.Equal(t, "CLOSURE", info.Name)
	require.Equal(t, 2, info.OperandCount)
	require.Equal(t, Closure, info.Code)
}

func TestGetInfoMultiOperand(t *testing.T) {
	info := GetInfo(Invoke)
	require.Equal(t, "INVOKE", info.Name)
	require.Equal(t, 3, info.OperandCount)
}

func TestGetInfoZeroOperand(t *testing.T) {
	info := GetInfo(Return)
	require.Equal(t, "RETURN", info.Name)
	require.Equal(t, 0, info.OperandCount)
}
