package vm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/stretchr/testify/require"

	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/herr"
)

func mustRun(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.New(lexer.New(src)).Parse()
	require.NoError(t, err)
	code, err := compiler.Compile(prog, "test.hatch")
	require.NoError(t, err)

	var out bytes.Buffer
	v := New(NewGlobal(), WithOutput(&out))
	err = v.Run(code)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := mustRun(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestVarAssignmentAndWhileLoop(t *testing.T) {
	out, err := mustRun(t, `
var total = 0;
var i = 0;
while (i < 5) {
	total += i;
	i += 1;
}
print total;
`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestFunctionCallWithDefaultArg(t *testing.T) {
	out, err := mustRun(t, `
function greet(name, greeting = "hello") {
	return greeting + " " + name;
}
print greet("world");
print greet("there", "hi");
`)
	require.NoError(t, err)
	require.Equal(t, "hello world\nhi there\n", out)
}

func TestClosureCapturesOuterLocal(t *testing.T) {
	out, err := mustRun(t, `
function counter() {
	var n = 0;
	return function() {
		n += 1;
		return n;
	};
}
var next = counter();
print next();
print next();
print next();
`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestClassConstructorAndMethod(t *testing.T) {
	out, err := mustRun(t, `
class Entity {
	Entity(name) {
		this.name = name;
		this.health = 100;
	}
	function damage(amount) {
		this.health -= amount;
		return this.health;
	}
}
var e = new Entity("hero");
print e.name;
print e.damage(30);
`)
	require.NoError(t, err)
	require.Equal(t, "hero\n70\n", out)
}

func TestClassInheritanceAndOverride(t *testing.T) {
	out, err := mustRun(t, `
class Animal {
	function speak() {
		return "...";
	}
}
class Dog < Animal {
	function speak() {
		return "bark";
	}
}
var d = new Dog();
print d.speak();
`)
	require.NoError(t, err)
	require.Equal(t, "bark\n", out)
}

func TestArrayIndexingAndForeach(t *testing.T) {
	out, err := mustRun(t, `
var nums = [1, 2, 3];
var total = 0;
foreach (n in nums) {
	total += n;
}
print total;
print nums[1];
`)
	require.NoError(t, err)
	require.Equal(t, "6\n2\n", out)
}

func TestMapAndHas(t *testing.T) {
	out, err := mustRun(t, `
var m = {"a": 1, "b": 2};
print m["a"];
print (1 has [1, 2, 3]);
`)
	require.NoError(t, err)
	require.Equal(t, "1\n1\n", out)
}

func TestNamedEnumMembers(t *testing.T) {
	out, err := mustRun(t, `
enum Direction {
	North,
	South,
	East,
	West,
}
print Direction.North;
`)
	require.NoError(t, err)
	require.Contains(t, out, "0")
}

func TestNamespaceAndUsing(t *testing.T) {
	out, err := mustRun(t, `
namespace Geometry {
	var pi = 3;
}
using namespace Geometry;
print pi;
`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestWithRebindsReceiver(t *testing.T) {
	out, err := mustRun(t, `
class Widget {
	Widget(label) {
		this.label = label;
	}
	function describe() {
		return this.label;
	}
}
var widgets = [new Widget("a"), new Widget("b")];
with (widgets as w) {
	print w.describe();
}
`)
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", out)
}

func TestDivisionByZeroIsScriptError(t *testing.T) {
	out, err := mustRun(t, `print 1 / 0;`)
	require.NoError(t, err)
	require.Equal(t, "null\n", out)
}

func TestDivisionByZeroAbortsWhenPolicySaysAbort(t *testing.T) {
	prog, err := parser.New(lexer.New(`print 1 / 0;`)).Parse()
	require.NoError(t, err)
	code, err := compiler.Compile(prog, "test.hatch")
	require.NoError(t, err)

	var out bytes.Buffer
	policy := func(e *herr.Error) ErrorAction { return ActionAbort }
	v := New(NewGlobal(), WithOutput(&out), WithErrorPolicy(policy))
	err = v.Run(code)

	require.Error(t, err)
	var herrErr *herr.Error
	require.True(t, errors.As(err, &herrErr))
	require.Equal(t, herr.Arithmetic, herrErr.Kind)
	require.False(t, herrErr.IsFatal())
}

func TestDivisionByZeroIgnoreAllSkipsPolicyOnRepeat(t *testing.T) {
	prog, err := parser.New(lexer.New(`
var i = 0;
while (i < 3) {
	print 1 / 0;
	i += 1;
}
`)).Parse()
	require.NoError(t, err)
	code, err := compiler.Compile(prog, "test.hatch")
	require.NoError(t, err)

	calls := 0
	policy := func(e *herr.Error) ErrorAction {
		calls++
		return ActionIgnoreAll
	}
	var out bytes.Buffer
	v := New(NewGlobal(), WithOutput(&out), WithErrorPolicy(policy))
	err = v.Run(code)

	require.NoError(t, err)
	require.Equal(t, "null\nnull\nnull\n", out.String())
	require.Equal(t, 1, calls)
}
