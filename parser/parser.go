/*
File    : loom-lang/parser/parser.go

Package parser implements a Pratt (top-down operator precedence) parser
that turns a token stream from lexer.Lexer into an ast.Program, following
the grammar and precedence table in spec.md §4.2.
*/
package parser

import (
	"strconv"

	"github.com/aksoft/loom-lang/ast"
	"github.com/aksoft/loom-lang/lexer"
	"github.com/aksoft/loom-lang/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser drives a lexer.Lexer through two tokens of lookahead (current,
// peek) and accumulates ParserErrors instead of panicking on malformed
// input (§7).
type Parser struct {
	lex *lexer.Lexer

	current token.Token
	peek    token.Token

	errors []ParserError

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New primes current and peek via two lexer reads and registers the
// prefix/infix dispatch tables (§4.2).
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.LPAREN:   p.parseGroupedExpression,
		token.IF:       p.parseIfExpression,
		token.FUNCTION: p.parseFunctionLiteral,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOTEQ:    p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every ParserError accumulated during ParseProgram.
func (p *Parser) Errors() []ParserError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

// ParseProgram drains tokens until EOF, collecting successful statements
// and recording errors for failed ones; it never panics (§4.2).
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.current.Is(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let IDENT = expression [;]`. On failure to
// match IDENT or ASSIGN it records an error and returns nil; the caller
// (ParseProgram) advances one token, so parsing resumes with the offending
// token as the start of the next statement.
func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.current}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.current, Name: p.current.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peek.Is(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseReturnStatement parses `return expression [;]`.
func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.current}
	p.nextToken()

	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}

	if p.peek.Is(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseExpressionStatement parses a bare expression used as a statement,
// with an optional trailing semicolon.
func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.current}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peek.Is(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseExpression is the Pratt core: dispatch on current's prefix role,
// then repeatedly fold in infix operators (including calls) while peek
// binds tighter than precedence.
func (p *Parser) parseExpression(precedence precedence) ast.Expression {
	prefix, ok := p.prefixFns[p.current.Type]
	if !ok {
		p.errors = append(p.errors, unknownPrefixError(p.current))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peek.Is(token.SEMICOLON) && precedence < precedenceOf(p.peek.Type) {
		if p.peek.Is(token.LPAREN) {
			if !isValidCallee(left) {
				return left
			}
			p.nextToken()
			left = p.parseCallExpression(left)
			continue
		}

		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

// isValidCallee enforces I3/§4.2: a Call's callee must be syntactically
// an Identifier or a FunctionLiteral. In particular the result of a
// previous call is not callable in this grammar, which is why
// `make(2)(40)` is rejected even though `let addTwo = make(2);
// addTwo(40);` is accepted — addTwo is an Identifier.
func isValidCallee(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.FunctionLiteral:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.current, Name: p.current.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.current}

	value, err := strconv.ParseInt(p.current.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, unexpectedTokenError(token.INT, p.current))
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.current, Value: p.current.Is(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.current, Operator: p.current.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parseInfixExpression builds left <op> right. All listed infix operators
// are left-associative: the right operand is parsed at the operator's own
// precedence, not one tier higher (§4.2).
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.current,
		Left:     left,
		Operator: p.current.Literal,
	}
	opPrecedence := precedenceOf(p.current.Type)
	p.nextToken()
	expr.Right = p.parseExpression(opPrecedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.current}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockStatement()

	if p.peek.Is(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
	}

	return expr
}

// parseBlockStatement parses statements until RBRACE or EOF, having
// entered on the LBRACE token (the caller must already have consumed it
// into current).
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.current, Statements: []ast.Statement{}}
	p.nextToken()

	for !p.current.Is(token.RBRACE) && !p.current.Is(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.current}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Parameters = p.parseFunctionParameters()
	if fn.Parameters == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()

	return fn
}

// parseFunctionParameters parses a comma-separated, possibly empty
// identifier list terminated by RPAREN.
func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	params := []*ast.Identifier{}

	if p.peek.Is(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	if !p.current.Is(token.IDENT) {
		p.errors = append(p.errors, unexpectedTokenError(token.IDENT, p.current))
		return nil
	}
	params = append(params, &ast.Identifier{Token: p.current, Name: p.current.Literal})

	for p.peek.Is(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if !p.current.Is(token.IDENT) {
			p.errors = append(p.errors, unexpectedTokenError(token.IDENT, p.current))
			return nil
		}
		params = append(params, &ast.Identifier{Token: p.current, Name: p.current.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

// parseCallExpression parses the argument list following an LPAREN that
// has already been validated as following a callable left side.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.current, Callee: callee}
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

// parseCallArguments parses a comma-separated, possibly empty expression
// list terminated by RPAREN, each argument parsed at LOWEST.
func (p *Parser) parseCallArguments() ([]ast.Expression, bool) {
	args := []ast.Expression{}

	if p.peek.Is(token.RPAREN) {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, false
	}
	args = append(args, first)

	for p.peek.Is(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}

// expectPeek is the payload-insensitive peek-assertion from §4.2: it
// matches peek's Type only (IDENT/INT payload is ignored). On success it
// advances past the matched token; on failure it records an
// UnexpectedToken error and leaves the cursor where it was so the caller
// can abandon its parse path.
func (p *Parser) expectPeek(kind token.Type) bool {
	if p.peek.Is(kind) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, unexpectedTokenError(kind, p.peek))
	return false
}
