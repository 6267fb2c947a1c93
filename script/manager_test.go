package script

import (
	"bytes"
	"testing"

	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/hatchlang/hatch/value"
	"github.com/hatchlang/hatch/vm"
	"github.com/stretchr/testify/require"
)

func mustRunWith(t *testing.T, m *Manager, src string) string {
	t.Helper()
	prog, err := parser.New(lexer.New(src)).Parse()
	require.NoError(t, err)
	code, err := compiler.Compile(prog, "test.hatch")
	require.NoError(t, err)

	var out bytes.Buffer
	thread := m.NewThread(vm.WithOutput(&out))
	require.NoError(t, thread.Run(code))
	return out.String()
}

func TestRegisterFunctionIsCallableFromScript(t *testing.T) {
	m := New()
	m.RegisterFunction("double", func(args []value.Value) value.Value {
		if len(args) != 1 {
			return ArgError("double", 1, len(args))
		}
		return value.Integer(args[0].Int() * 2)
	})
	out := mustRunWith(t, m, `print double(21);`)
	require.Equal(t, "42\n", out)
}

func TestRegisterClassMethodsAndNativeInit(t *testing.T) {
	m := New()
	cls := NewNativeClass("Vector").
		Init(func(this *value.Instance, args []value.Value) value.Value {
			x, y := value.Integer(0), value.Integer(0)
			if len(args) > 0 {
				x = args[0]
			}
			if len(args) > 1 {
				y = args[1]
			}
			this.Fields[value.HashIdent("x")] = x
			this.Fields[value.HashIdent("y")] = y
			return value.Null
		}).
		Method("length", func(this *value.Instance, args []value.Value) value.Value {
			x := this.Fields[value.HashIdent("x")].Int()
			y := this.Fields[value.HashIdent("y")].Int()
			return value.Integer(x*x + y*y)
		}).
		Build()
	m.RegisterClass("Vector", cls)

	out := mustRunWith(t, m, `
var v = new Vector(3, 4);
print v.x;
print v.length();
`)
	require.Equal(t, "3\n25\n", out)
}

func TestSharedGlobalAcrossThreads(t *testing.T) {
	m := New()
	mustRunWith(t, m, `var shared = 10;`)
	out := mustRunWith(t, m, `print shared;`)
	require.Equal(t, "10\n", out)
}
