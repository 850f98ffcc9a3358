/*
File    : loom-lang/parser/errors.go

ParserError is the typed, accumulated error the parser produces (§7):
parsing never panics or aborts early, it records an error, abandons the
current statement, and resumes parsing at the next token. Kept as a typed value rather than a bare
string so callers (and tests) can distinguish the two kinds §6 names
without parsing the rendered message back apart.
*/
package parser

import (
	"fmt"

	"github.com/aksoft/loom-lang/token"
)

// ParserError is one of UnexpectedToken(expected, got) or
// UnknownPrefix(got), matching §6's error taxonomy.
type ParserError struct {
	Expected token.Type  // zero value for UnknownPrefix
	Got      token.Token
	kind     errorKind
}

type errorKind int

const (
	unexpectedToken errorKind = iota
	unknownPrefix
)

// Error renders the message exactly as §6 specifies.
func (e ParserError) Error() string {
	switch e.kind {
	case unexpectedToken:
		return fmt.Sprintf("Expected: %s, got: %s", e.Expected, e.Got.Render())
	case unknownPrefix:
		return fmt.Sprintf("Unknown prefix, got: %s", e.Got.Render())
	default:
		return "unknown parser error"
	}
}

func unexpectedTokenError(expected token.Type, got token.Token) ParserError {
	return ParserError{Expected: expected, Got: got, kind: unexpectedToken}
}

func unknownPrefixError(got token.Token) ParserError {
	return ParserError{Got: got, kind: unknownPrefix}
}
