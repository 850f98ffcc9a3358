/*
File    : loom-lang/lexer/lexer_test.go
*/
package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aksoft/loom-lang/token"
)

type tokenCase struct {
	name   string
	input  string
	expect []token.Token
}

func TestNextToken(t *testing.T) {
	cases := []tokenCase{
		{
			name:  "punctuation and operators",
			input: "=+(){},;!*/<>",
			expect: []token.Token{
				token.New(token.ASSIGN, "="),
				token.New(token.PLUS, "+"),
				token.New(token.LPAREN, "("),
				token.New(token.RPAREN, ")"),
				token.New(token.LBRACE, "{"),
				token.New(token.RBRACE, "}"),
				token.New(token.COMMA, ","),
				token.New(token.SEMICOLON, ";"),
				token.New(token.BANG, "!"),
				token.New(token.ASTERISK, "*"),
				token.New(token.SLASH, "/"),
				token.New(token.LT, "<"),
				token.New(token.GT, ">"),
				token.New(token.EOF, ""),
			},
		},
		{
			name:  "multi-character operators disambiguate from their prefixes",
			input: "== != = !",
			expect: []token.Token{
				token.New(token.EQ, "=="),
				token.New(token.NOTEQ, "!="),
				token.New(token.ASSIGN, "="),
				token.New(token.BANG, "!"),
				token.New(token.EOF, ""),
			},
		},
		{
			name: "let statement with a function literal and a call",
			input: `let add = fn(x, y) {
  x + y;
};
let result = add(five, 10);`,
			expect: []token.Token{
				token.New(token.LET, "let"),
				token.New(token.IDENT, "add"),
				token.New(token.ASSIGN, "="),
				token.New(token.FUNCTION, "fn"),
				token.New(token.LPAREN, "("),
				token.New(token.IDENT, "x"),
				token.New(token.COMMA, ","),
				token.New(token.IDENT, "y"),
				token.New(token.RPAREN, ")"),
				token.New(token.LBRACE, "{"),
				token.New(token.IDENT, "x"),
				token.New(token.PLUS, "+"),
				token.New(token.IDENT, "y"),
				token.New(token.SEMICOLON, ";"),
				token.New(token.RBRACE, "}"),
				token.New(token.SEMICOLON, ";"),
				token.New(token.LET, "let"),
				token.New(token.IDENT, "result"),
				token.New(token.ASSIGN, "="),
				token.New(token.IDENT, "add"),
				token.New(token.LPAREN, "("),
				token.New(token.IDENT, "five"),
				token.New(token.COMMA, ","),
				token.New(token.INT, "10"),
				token.New(token.RPAREN, ")"),
				token.New(token.SEMICOLON, ";"),
				token.New(token.EOF, ""),
			},
		},
		{
			name:  "conditionals and booleans",
			input: "if (5 < 10) { return true; } else { return false; }",
			expect: []token.Token{
				token.New(token.IF, "if"),
				token.New(token.LPAREN, "("),
				token.New(token.INT, "5"),
				token.New(token.LT, "<"),
				token.New(token.INT, "10"),
				token.New(token.RPAREN, ")"),
				token.New(token.LBRACE, "{"),
				token.New(token.RETURN, "return"),
				token.New(token.TRUE, "true"),
				token.New(token.SEMICOLON, ";"),
				token.New(token.RBRACE, "}"),
				token.New(token.ELSE, "else"),
				token.New(token.LBRACE, "{"),
				token.New(token.RETURN, "return"),
				token.New(token.FALSE, "false"),
				token.New(token.SEMICOLON, ";"),
				token.New(token.RBRACE, "}"),
				token.New(token.EOF, ""),
			},
		},
		{
			name:  "identifiers may contain underscores",
			input: "_foo bar_baz __qux__",
			expect: []token.Token{
				token.New(token.IDENT, "_foo"),
				token.New(token.IDENT, "bar_baz"),
				token.New(token.IDENT, "__qux__"),
				token.New(token.EOF, ""),
			},
		},
		{
			name:  "unrecognized ASCII bytes lex as ILLEGAL",
			input: "@#$",
			expect: []token.Token{
				token.New(token.ILLEGAL, "@"),
				token.New(token.ILLEGAL, "#"),
				token.New(token.ILLEGAL, "$"),
				token.New(token.EOF, ""),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.input)
			for i, want := range tc.expect {
				got := l.NextToken()
				assert.Equalf(t, want.Type, got.Type, "token %d type", i)
				assert.Equalf(t, want.Literal, got.Literal, "token %d literal", i)
			}
		})
	}
}

func TestNextToken_EOFIsIdempotent(t *testing.T) {
	l := New("x")
	l.NextToken() // IDENT x
	first := l.NextToken()
	second := l.NextToken()
	assert.Equal(t, token.EOF, first.Type)
	assert.Equal(t, token.EOF, second.Type)
}

func TestNextToken_TotalOverAnyByteString(t *testing.T) {
	// Lexing totality: every byte sequence eventually reaches EOF, even
	// strings made entirely of bytes the lexer does not recognize.
	input := string([]byte{1, 2, 3, 255, 254}) + strings.Repeat("!", 3)
	l := New(input)
	count := 0
	for {
		tok := l.NextToken()
		count++
		if tok.Type == token.EOF {
			break
		}
		if count > 1000 {
			t.Fatal("lexer did not reach EOF")
		}
	}
}
