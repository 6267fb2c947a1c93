package parser

import (
	"testing"

	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/lexer"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestParseVarAndArithmetic(t *testing.T) {
	prog := mustParse(t, `var x = 1 + 2 * 3;`)
	require.Len(t, prog.Statements, 1)
	stmt := prog.Statements[0].(*ast.VarStmt)
	require.Equal(t, "x", stmt.Name.Name)
	infix := stmt.Value.(*ast.InfixExpr)
	require.Equal(t, "+", infix.Operator)
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `if (x > 0) { print x; } else { print 0; }`)
	stmt := prog.Statements[0].(*ast.IfStmt)
	require.NotNil(t, stmt.Alternative)
}

func TestParseFunctionLiteralAndCall(t *testing.T) {
	prog := mustParse(t, `var f = function(a, b=2) { return a + b; }; f(1);`)
	require.Len(t, prog.Statements, 2)
	varStmt := prog.Statements[0].(*ast.VarStmt)
	fn := varStmt.Value.(*ast.FunctionLiteral)
	require.Len(t, fn.Parameters, 2)
	require.NotNil(t, fn.Parameters[1].Default)

	exprStmt := prog.Statements[1].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.CallExpr)
	require.Len(t, call.Args, 1)
}

func TestParseClassDecl(t *testing.T) {
	prog := mustParse(t, `
class Player < Entity {
	static var health = 100;
	Player(name) {
		this.name = name;
	}
	event Update() {
		this.health = this.health - 1;
	}
}`)
	decl := prog.Statements[0].(*ast.ClassDecl)
	require.Equal(t, "Player", decl.Name.Name)
	require.Equal(t, "Entity", decl.Base.Name)
	require.Len(t, decl.Fields, 1)
	require.Len(t, decl.Methods, 2)
	require.True(t, decl.Methods[1].IsEvent)
}

func TestParseWithStmt(t *testing.T) {
	prog := mustParse(t, `with (Enemies as e) { e.health = 0; }`)
	stmt := prog.Statements[0].(*ast.WithStmt)
	require.Equal(t, "e", stmt.As.Name)
}

func TestParseForeachAndRepeat(t *testing.T) {
	prog := mustParse(t, `
foreach (item in items) { print item; }
repeat (3, i) { print i; }
`)
	_, ok := prog.Statements[0].(*ast.ForeachStmt)
	require.True(t, ok)
	_, ok = prog.Statements[1].(*ast.RepeatStmt)
	require.True(t, ok)
}

func TestParseSwitchStmt(t *testing.T) {
	prog := mustParse(t, `
switch (x) {
case 1, 2:
	print "low";
default:
	print "other";
}`)
	stmt := prog.Statements[0].(*ast.SwitchStmt)
	require.Len(t, stmt.Cases, 2)
	require.Len(t, stmt.Cases[0].Values, 2)
	require.True(t, stmt.Cases[1].IsDefault)
}

func TestParseTernaryAndAssignOps(t *testing.T) {
	prog := mustParse(t, `x += y > 0 ? 1 : -1;`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	assign := stmt.Expr.(*ast.AssignExpr)
	require.Equal(t, "+=", assign.Operator)
	_, ok := assign.Value.(*ast.TernaryExpr)
	require.True(t, ok)
}

func TestParseNewAndMember(t *testing.T) {
	prog := mustParse(t, `var e = new Enemy(5).health;`)
	stmt := prog.Statements[0].(*ast.VarStmt)
	member := stmt.Value.(*ast.MemberExpr)
	require.Equal(t, "health", member.Name)
	_, ok := member.Object.(*ast.NewExpr)
	require.True(t, ok)
}
