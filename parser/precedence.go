/*
File    : loom-lang/parser/precedence.go

Precedence constants for the Pratt expression parser, in the strict order
spec.md §4.2 mandates. Higher values bind tighter.
*/
package parser

import "github.com/aksoft/loom-lang/token"

type precedence int

const (
	_ precedence = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x or !x
	CALL        // f(x)
)

// precedences maps an infix-capable token to its precedence tier. LPAREN
// is included here (CALL) so the Pratt loop's "does peek bind tighter
// than my caller's precedence" test treats a call like any other infix
// operator; the call-vs-callee-shape restriction (I3) is enforced
// separately in parseExpression via isValidCallee.
var precedences = map[token.Type]precedence{
	token.EQ:       EQUALS,
	token.NOTEQ:    EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
}

func precedenceOf(t token.Type) precedence {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}
