package compiler

import (
	"testing"

	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/op"
	"github.com/hatchlang/hatch/parser"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, src string) (*codeWrapper, error) {
	t.Helper()
	prog, err := parser.New(lexer.New(src)).Parse()
	require.NoError(t, err)
	bc, err := Compile(prog, "test.hatch")
	return &codeWrapper{bc}, err
}

// codeWrapper gives tests a terse way to read out instruction opcodes
// without re-deriving bytecode.Code's accessor names each time.
type codeWrapper struct{ c interface {
	InstructionCount() int
	InstructionAt(int) op.Code
	ConstantCount() int
	ConstantAt(int) any
} }

func (w *codeWrapper) opsAt(i int) op.Code { return w.c.InstructionAt(i) }

// ops returns every opcode in the compiled sequence, for asserting an
// opcode is (or isn't) present anywhere rather than at one fixed index.
func (w *codeWrapper) ops() []op.Code {
	out := make([]op.Code, w.c.InstructionCount())
	for i := range out {
		out[i] = w.c.InstructionAt(i)
	}
	return out
}

func (w *codeWrapper) containsOp(code op.Code) bool {
	for _, o := range w.ops() {
		if o == code {
			return true
		}
	}
	return false
}

func (w *codeWrapper) constants() []any {
	out := make([]any, w.c.ConstantCount())
	for i := range out {
		out[i] = w.c.ConstantAt(i)
	}
	return out
}

func TestCompileVarAndArithmeticEndsInHalt(t *testing.T) {
	w, err := mustCompile(t, `var x = 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, op.Halt, w.opsAt(w.c.InstructionCount()-1))
}

func TestCompileIfElseNoError(t *testing.T) {
	_, err := mustCompile(t, `
var x = 5;
if (x > 0) {
	print "pos";
} else {
	print "non-pos";
}`)
	require.NoError(t, err)
}

func TestCompileWhileBreakContinue(t *testing.T) {
	_, err := mustCompile(t, `
var i = 0;
while (i < 10) {
	i += 1;
	if (i == 5) { continue; }
	if (i == 8) { break; }
}`)
	require.NoError(t, err)
}

func TestCompileClosureCapturesOuterLocal(t *testing.T) {
	_, err := mustCompile(t, `
function outer() {
	var x = 10;
	var inner = function() { return x + 1; };
	return inner();
}
var y = outer();
`)
	require.NoError(t, err)
}

func TestCompileClassWithInheritanceAndEvent(t *testing.T) {
	_, err := mustCompile(t, `
class Entity {
	static var health = 100;
	Entity(name) { this.name = name; }
}
class Player < Entity {
	event Update() { this.health = this.health - 1; }
}
var p = new Player("hero");
`)
	require.NoError(t, err)
}

func TestCompileEnumNamedAndAnonymous(t *testing.T) {
	_, err := mustCompile(t, `
enum Direction { North, East, South, West }
enum { Tag = 5, OtherTag }
var d = Direction;
`)
	require.NoError(t, err)
}

func TestCompileForeachRepeatSwitch(t *testing.T) {
	_, err := mustCompile(t, `
var items = [1, 2, 3];
foreach (item in items) { print item; }
repeat (3, i) { print i; }
switch (1) {
case 1, 2:
	print "low";
default:
	print "other";
}
`)
	require.NoError(t, err)
}

func TestCompileWithStmt(t *testing.T) {
	_, err := mustCompile(t, `
var enemies = [1, 2];
with (enemies as e) { print e; }
`)
	require.NoError(t, err)
}

func TestCompileModuleLocalAndConst(t *testing.T) {
	_, err := mustCompile(t, `
local var score = 0;
local const MAX = 100;
score += 1;
`)
	require.NoError(t, err)
}

func TestCompileUndefinedNameReportsError(t *testing.T) {
	_, err := mustCompile(t, `print undefinedThing;`)
	require.Error(t, err)
}

func TestCompileNamespace(t *testing.T) {
	_, err := mustCompile(t, `
namespace Util {
	var helper = 1;
}
using namespace Util;
`)
	require.NoError(t, err)
}

func TestConstantFoldingArithmeticChain(t *testing.T) {
	w, err := mustCompile(t, `var x = 1 + 2 * 3;`)
	require.NoError(t, err)
	require.False(t, w.containsOp(op.Add), "1 + 2*3 should fold to a single constant")
	require.False(t, w.containsOp(op.Multiply))
	require.Contains(t, w.constants(), int64(7))
}

func TestConstantFoldingStringConcat(t *testing.T) {
	w, err := mustCompile(t, `var s = "a" + "b";`)
	require.NoError(t, err)
	require.False(t, w.containsOp(op.Add))
	require.Contains(t, w.constants(), "ab")
}

func TestConstantFoldingComparisonAcrossIntDecimal(t *testing.T) {
	w, err := mustCompile(t, `var eq = (1.0 == 1);`)
	require.NoError(t, err)
	require.False(t, w.containsOp(op.Equal))
	require.Contains(t, w.constants(), true)
}

func TestConstantFoldingLogicalNot(t *testing.T) {
	w, err := mustCompile(t, `var b = !true;`)
	require.NoError(t, err)
	require.False(t, w.containsOp(op.Not))
	require.Contains(t, w.constants(), false)
}

func TestConstantFoldingSuppressedOnDivisionByZero(t *testing.T) {
	w, err := mustCompile(t, `var x = 1 / 0;`)
	require.NoError(t, err)
	require.True(t, w.containsOp(op.Divide), "division by zero must stay unfolded so the VM raises it at run time")
}

func TestConstantFoldingDoesNotFoldVariables(t *testing.T) {
	w, err := mustCompile(t, `
var a = 1;
var b = a + 2;
`)
	require.NoError(t, err)
	require.True(t, w.containsOp(op.Add))
}
