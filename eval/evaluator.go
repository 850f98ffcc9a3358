/*
File    : loom-lang/eval/evaluator.go

Package eval implements the tree-walking evaluator described in spec.md
§4.3: it walks an ast.Program against a chain of object.Environment
frames and produces an Outcome — a Value, a Returned control-flow signal,
or an Error.
*/
package eval

import (
	"fmt"

	"github.com/aksoft/loom-lang/ast"
	"github.com/aksoft/loom-lang/object"
)

// outcomeKind distinguishes the three Outcome shapes without resorting to
// a type switch at every call site.
type outcomeKind int

const (
	valueOutcome outcomeKind = iota
	returnedOutcome
	errorOutcome
)

// Outcome is the tagged result of evaluating a statement, block, or
// program. Returned is only meant to be externally visible at program top
// level; every call boundary unwraps it back into a plain Value (§4.3
// step 5).
type Outcome struct {
	kind  outcomeKind
	value object.Value
	err   string
}

// Value builds a plain-value Outcome.
func Value(v object.Value) Outcome { return Outcome{kind: valueOutcome, value: v} }

// Returned builds a Returned Outcome, the internal control-flow signal
// produced by a return statement.
func Returned(v object.Value) Outcome { return Outcome{kind: returnedOutcome, value: v} }

// Errorf builds an Error Outcome with a formatted message.
func Errorf(format string, args ...interface{}) Outcome {
	return Outcome{kind: errorOutcome, err: fmt.Sprintf(format, args...)}
}

// IsError reports whether this Outcome is a terminal runtime error.
func (o Outcome) IsError() bool { return o.kind == errorOutcome }

// IsReturned reports whether this Outcome is an unwound return signal
// still in flight (has not yet crossed a call boundary).
func (o Outcome) IsReturned() bool { return o.kind == returnedOutcome }

// ValueOrNil returns the carried object.Value for Value and Returned
// outcomes, and nil for an Error outcome.
func (o Outcome) ValueOrNil() object.Value {
	if o.kind == errorOutcome {
		return nil
	}
	return o.value
}

// Message returns the error text of an Error outcome, or "" otherwise.
func (o Outcome) Message() string { return o.err }

// unwrapReturn turns a Returned outcome back into a plain Value outcome;
// Error and Value outcomes pass through unchanged. This is the one place
// (the call boundary, §4.3 step 5) where Returned is consumed.
func unwrapReturn(o Outcome) Outcome {
	if o.kind == returnedOutcome {
		return Value(o.value)
	}
	return o
}

// Evaluator walks an ast.Program against a persistent root environment.
// Reusing the same Evaluator across successive Eval calls (as the REPL
// does) lets later input see bindings made by earlier input, the
// incremental-definition behavior §6 calls out.
type Evaluator struct {
	env *object.Environment
}

// New creates an Evaluator with a fresh root environment.
func New() *Evaluator {
	return &Evaluator{env: object.NewEnvironment()}
}

// Eval evaluates program against the evaluator's root environment and
// returns the resulting Outcome.
func (e *Evaluator) Eval(program *ast.Program) Outcome {
	return e.evalStatements(program.Statements, e.env)
}

// evalStatements evaluates a sequence of statements in env, stopping at
// the first Error or Returned outcome and propagating it unchanged. An
// empty sequence evaluates to Unit.
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *object.Environment) Outcome {
	result := Value(object.UNIT)
	for _, stmt := range stmts {
		result = e.evalStatement(stmt, env)
		if result.IsError() || result.IsReturned() {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *object.Environment) Outcome {
	switch node := stmt.(type) {
	case *ast.LetStatement:
		val := e.evalExpression(node.Value, env)
		if val.IsError() {
			return val
		}
		env.Set(node.Name.Name, val.ValueOrNil())
		return Value(object.UNIT)

	case *ast.ReturnStatement:
		val := e.evalExpression(node.ReturnValue, env)
		if val.IsError() {
			return val
		}
		return Returned(val.ValueOrNil())

	case *ast.ExpressionStatement:
		return e.evalExpression(node.Expression, env)

	default:
		return Errorf("unknown statement type: %T", stmt)
	}
}

func (e *Evaluator) evalExpression(expr ast.Expression, env *object.Environment) Outcome {
	switch node := expr.(type) {
	case *ast.Identifier:
		val, ok := env.Get(node.Name)
		if !ok {
			return Errorf("Invalid variable name %s", node.Name)
		}
		return Value(val)

	case *ast.IntegerLiteral:
		return Value(&object.Integer{Value: node.Value})

	case *ast.BooleanLiteral:
		return Value(object.NativeBool(node.Value))

	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)

	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)

	case *ast.IfExpression:
		return e.evalIfExpression(node, env)

	case *ast.FunctionLiteral:
		return Value(&object.Function{
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        env,
		})

	case *ast.CallExpression:
		return e.evalCallExpression(node, env)

	default:
		return Errorf("unknown expression type: %T", expr)
	}
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *object.Environment) Outcome {
	right := e.evalExpression(node.Right, env)
	if right.IsError() {
		return right
	}

	switch node.Operator {
	case "!":
		return Value(object.NativeBool(!object.IsTruthy(right.ValueOrNil())))
	case "-":
		intVal, ok := right.ValueOrNil().(*object.Integer)
		if !ok {
			return Errorf("Right side of - operator is not a valid integer")
		}
		return Value(&object.Integer{Value: -intVal.Value})
	default:
		return Errorf("unknown prefix operator: %s", node.Operator)
	}
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *object.Environment) Outcome {
	left := e.evalExpression(node.Left, env)
	if left.IsError() {
		return left
	}
	right := e.evalExpression(node.Right, env)
	if right.IsError() {
		return right
	}
	lv, rv := left.ValueOrNil(), right.ValueOrNil()

	switch node.Operator {
	case "<":
		return Value(object.NativeBool(object.Compare(lv, rv) < 0))
	case ">":
		return Value(object.NativeBool(object.Compare(lv, rv) > 0))
	case "==":
		return Value(object.NativeBool(object.Equal(lv, rv)))
	case "!=":
		return Value(object.NativeBool(!object.Equal(lv, rv)))
	}

	leftInt, ok := lv.(*object.Integer)
	if !ok {
		return Errorf("Left side of expression is not an int %s", lv.Inspect())
	}
	rightInt, ok := rv.(*object.Integer)
	if !ok {
		return Errorf("Right side of expression is not an int %s", rv.Inspect())
	}

	switch node.Operator {
	case "+":
		return Value(&object.Integer{Value: leftInt.Value + rightInt.Value})
	case "-":
		return Value(&object.Integer{Value: leftInt.Value - rightInt.Value})
	case "*":
		return Value(&object.Integer{Value: leftInt.Value * rightInt.Value})
	case "/":
		if rightInt.Value == 0 {
			return Errorf("divide by zero")
		}
		// Go's integer division already truncates toward zero, matching
		// §4.3's SLASH semantics directly.
		return Value(&object.Integer{Value: leftInt.Value / rightInt.Value})
	default:
		return Errorf("unknown infix operator: %s", node.Operator)
	}
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *object.Environment) Outcome {
	cond := e.evalExpression(node.Condition, env)
	if cond.IsError() {
		return cond
	}

	// Block evaluation happens in the current environment: if-blocks do
	// not open a new frame (§4.3).
	if object.IsTruthy(cond.ValueOrNil()) {
		return e.evalStatements(node.Consequence.Statements, env)
	}
	if node.Alternative != nil {
		return e.evalStatements(node.Alternative.Statements, env)
	}
	return Value(object.UNIT)
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *object.Environment) Outcome {
	calleeOutcome := e.evalExpression(node.Callee, env)
	if calleeOutcome.IsError() {
		return calleeOutcome
	}
	fn, ok := calleeOutcome.ValueOrNil().(*object.Function)
	if !ok {
		return Errorf("Invalid function name/expression getting called")
	}

	args := make([]object.Value, len(node.Arguments))
	for i, a := range node.Arguments {
		// Each arg is evaluated in the caller's environment, left to
		// right (§4.3 step 2), before the call frame is created.
		argOutcome := e.evalExpression(a, env)
		if argOutcome.IsError() {
			return argOutcome
		}
		args[i] = argOutcome.ValueOrNil()
	}

	// The new frame's outer is the function's captured environment, not
	// the caller's — this is the lexical-scope guarantee of §3.4/§4.3.
	callEnv := object.NewEnclosedEnvironment(fn.Env)
	bindArguments(fn.Parameters, args, callEnv)

	result := e.evalStatements(fn.Body.Statements, callEnv)
	// A local return does not escape further than this call boundary
	// (§4.3 step 5); unwrapReturn is the only place that consumes it.
	return unwrapReturn(result)
}

// bindArguments binds each parameter name to its corresponding argument
// value, in order. Extra arguments are ignored and missing arguments
// leave their parameters unbound — an identifier error surfaces only if
// an unbound parameter is later referenced. This mirrors the original
// source's `params.iter().zip(args)`, which silently stops at the shorter
// sequence; §4.3 step 4 and §9 both call out preserving this rather than
// rejecting arity mismatches.
func bindArguments(params []*ast.Identifier, args []object.Value, env *object.Environment) {
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		env.Set(params[i].Name, args[i])
	}
}
