package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksoft/loom-lang/ast"
	"github.com/aksoft/loom-lang/lexer"
	"github.com/aksoft/loom-lang/token"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parser errors: %v", p.Errors())
	return program
}

func TestLetStatements(t *testing.T) {
	program := parseProgram(t, "let x = 5; let y = true; let foobar = y;")
	require.Len(t, program.Statements, 3)

	names := []string{"x", "y", "foobar"}
	for i, name := range names {
		stmt, ok := program.Statements[i].(*ast.LetStatement)
		require.True(t, ok, "statement %d is not a LetStatement", i)
		assert.Equal(t, name, stmt.Name.Name)
		assert.Equal(t, "let", stmt.TokenLiteral())
	}
}

func TestLetStatement_MissingIdentifierRecordsUnexpectedToken(t *testing.T) {
	p := New(lexer.New("let = 3;"))
	p.ParseProgram()

	require.NotEmpty(t, p.Errors())
	found := false
	for _, e := range p.Errors() {
		if e.kind == unexpectedToken && e.Expected == token.IDENT {
			found = true
		}
	}
	assert.True(t, found, "expected an UnexpectedToken error naming IDENT, got %v", p.Errors())
}

func TestReturnStatements(t *testing.T) {
	program := parseProgram(t, "return 5; return 993322;")
	require.Len(t, program.Statements, 2)
	for _, stmt := range program.Statements {
		ret, ok := stmt.(*ast.ReturnStatement)
		require.True(t, ok)
		assert.Equal(t, "return", ret.TokenLiteral())
	}
}

func TestIdentifierExpression(t *testing.T) {
	program := parseProgram(t, "foobar;")
	require.Len(t, program.Statements, 1)
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ident, ok := stmt.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "foobar", ident.Name)
}

func TestIntegerLiteralExpression(t *testing.T) {
	program := parseProgram(t, "5;")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.EqualValues(t, 5, lit.Value)
}

func TestPrefixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{"!5;", "!"},
		{"-15;", "-"},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		pe, ok := stmt.Expression.(*ast.PrefixExpression)
		require.True(t, ok)
		assert.Equal(t, tt.operator, pe.Operator)
	}
}

func TestInfixExpressions_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parseProgram(t, tt.input)
			assert.Equal(t, tt.expected, program.String())
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	program := parseProgram(t, "true; false;")
	require.Len(t, program.Statements, 2)
	for i, want := range []bool{true, false} {
		stmt := program.Statements[i].(*ast.ExpressionStatement)
		b := stmt.Expression.(*ast.BooleanLiteral)
		assert.Equal(t, want, b.Value)
	}
}

func TestIfExpression_WithoutElse(t *testing.T) {
	program := parseProgram(t, "if (x < y) { x }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ifExpr, ok := stmt.Expression.(*ast.IfExpression)
	require.True(t, ok)
	require.Len(t, ifExpr.Consequence.Statements, 1)
	assert.Nil(t, ifExpr.Alternative)
}

func TestIfExpression_WithElse(t *testing.T) {
	program := parseProgram(t, "if (x < y) { x } else { y }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ifExpr := stmt.Expression.(*ast.IfExpression)
	require.NotNil(t, ifExpr.Alternative)
	require.Len(t, ifExpr.Alternative.Statements, 1)
}

func TestFunctionLiteral_Parameters(t *testing.T) {
	tests := []struct {
		input  string
		params []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		fn := stmt.Expression.(*ast.FunctionLiteral)
		require.Len(t, fn.Parameters, len(tt.params))
		for i, name := range tt.params {
			assert.Equal(t, name, fn.Parameters[i].Name)
		}
	}
}

func TestCallExpression_Arguments(t *testing.T) {
	program := parseProgram(t, "add(1, 2 * 3, 4 + 5);")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	require.True(t, ok)

	ident, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "add", ident.Name)
	require.Len(t, call.Arguments, 3)
}

func TestCallExpression_FunctionLiteralCalleeIsValid(t *testing.T) {
	program := parseProgram(t, "fn(x) { x }(5);")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	require.True(t, ok)
	_, ok = call.Callee.(*ast.FunctionLiteral)
	assert.True(t, ok)
	require.Len(t, call.Arguments, 1)
}

func TestCallExpression_ResultOfCallIsNotCallable(t *testing.T) {
	// make(2)(40) — the parenthesized call result is not a valid
	// callee per I3/§4.2, so parseExpression stops after make(2) and
	// the trailing "(40)" is parsed as its own, unrelated grouped
	// expression statement rather than folded into a nested Call.
	p := New(lexer.New("make(2)(40);"))
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 2)

	first := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := first.Expression.(*ast.CallExpression)
	require.True(t, ok, "make(2) itself still parses as a call")
	ident, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "make", ident.Name)
	require.Len(t, call.Arguments, 1)

	second := program.Statements[1].(*ast.ExpressionStatement)
	lit, ok := second.Expression.(*ast.IntegerLiteral)
	require.True(t, ok, "the dangling (40) parses as a standalone grouped expression")
	assert.EqualValues(t, 40, lit.Value)
}

func TestOperatorPrecedence_String(t *testing.T) {
	program := parseProgram(t, "3 > 5 == false")
	assert.Equal(t, "((3 > 5) == false)", program.String())
}

func TestParserError_Rendering(t *testing.T) {
	p := New(lexer.New("let x 5;"))
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, fmt.Sprintf("Expected: %s, got: %s", token.ASSIGN, "INTEGER"), p.Errors()[0].Error())
}
