/*
File    : loom-lang/token/token.go

Package token defines the lexical token types shared by the lexer and
parser. A Token is a tagged pair of (Type, Literal); IDENT and INT tokens
additionally carry their source text in Literal, parsed lazily by callers
that need the typed payload (the parser does this for INT via
strconv.ParseInt).
*/
package token

import "fmt"

// Type identifies the syntactic category of a Token. It is defined as a
// string so tokens print readably without a lookup table.
type Type string

// Token types, grouped the way the grammar groups them: sentinels,
// literals with payload, single/double-byte punctuation, then keywords.
const (
	// ILLEGAL marks a byte the lexer does not recognize. EOF marks the
	// end of input; NextToken keeps returning EOF once reached.
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Literals with payload. The payload lives in Token.Literal.
	IDENT Type = "IDENT"
	INT   Type = "INT"

	// Single-character operators and delimiters.
	ASSIGN    Type = "="
	PLUS      Type = "+"
	MINUS     Type = "-"
	BANG      Type = "!"
	ASTERISK  Type = "*"
	SLASH     Type = "/"
	LT        Type = "<"
	GT        Type = ">"
	COMMA     Type = ","
	SEMICOLON Type = ";"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"

	// Two-character operators, disambiguated from their single-character
	// prefixes by one byte of lookahead in the lexer.
	EQ    Type = "=="
	NOTEQ Type = "!="

	// Keywords.
	FUNCTION Type = "FUNCTION"
	LET      Type = "LET"
	TRUE     Type = "TRUE"
	FALSE    Type = "FALSE"
	IF       Type = "IF"
	ELSE     Type = "ELSE"
	RETURN   Type = "RETURN"
)

// keywords maps the literal spelling of each reserved word to its Type.
// LookupIdent consults this table to distinguish keywords from ordinary
// identifiers.
var keywords = map[string]Type{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent classifies an identifier-shaped string as a keyword Type or,
// failing that, as a plain IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer: a Type plus the
// source text that produced it. Line/Column are 1-indexed and exist for
// error reporting; they are not part of token equality.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

// New builds a Token without position metadata. Used by the parser and
// tests where position does not matter.
func New(t Type, literal string) Token {
	return Token{Type: t, Literal: literal}
}

// NewAt builds a Token with source position metadata, as the lexer does
// for every token it emits.
func NewAt(t Type, literal string, line, column int) Token {
	return Token{Type: t, Literal: literal, Line: line, Column: column}
}

// Is reports whether the token's Type matches kind, ignoring Literal. This
// is the "same kind" comparison the parser's peek-assertion uses: two
// IDENT tokens are the same kind regardless of name, two INT tokens the
// same kind regardless of value.
func (t Token) Is(kind Type) bool {
	return t.Type == kind
}

// Render produces the human-readable rendering used in parser error
// messages (§6): an IDENT renders as its name, an INT renders as the
// literal "INTEGER", and everything else renders as its Type.
func (t Token) Render() string {
	switch t.Type {
	case IDENT:
		return t.Literal
	case INT:
		return "INTEGER"
	default:
		return string(t.Type)
	}
}

// String implements fmt.Stringer so tokens print usefully in test
// failures and debug traces.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
}
