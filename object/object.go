/*
File    : loom-lang/object/object.go

Package object defines the runtime value representation produced by the
evaluator: Integer, Boolean, Function (closures), and Unit (the
absence-of-value result of let-statements, empty blocks, and a false
if-without-else). It also defines Environment, the lexically-scoped
variable chain closures capture by reference.
*/
package object

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aksoft/loom-lang/ast"
)

// Kind identifies the concrete type of a Value, used for type checking in
// the evaluator (e.g. rejecting `-true`) and for cross-kind comparisons.
type Kind string

const (
	IntegerKind  Kind = "INTEGER"
	BooleanKind  Kind = "BOOLEAN"
	FunctionKind Kind = "FUNCTION"
	UnitKind     Kind = "UNIT"
)

// Value is the interface every runtime value implements.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Integer wraps a signed 64-bit integer.
type Integer struct {
	Value int64
}

func (i *Integer) Kind() Kind        { return IntegerKind }
func (i *Integer) Inspect() string   { return fmt.Sprintf("%d", i.Value) }

// Boolean wraps a bool.
type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() Kind      { return BooleanKind }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

// Unit is the result of evaluating something that produces no meaningful
// value: a let-statement, an empty block, or an if-without-else whose
// condition was false.
type Unit struct{}

func (u *Unit) Kind() Kind      { return UnitKind }
func (u *Unit) Inspect() string { return "unit" }

// Shared singletons avoid allocating a fresh Boolean/Unit for every
// evaluation step, mirroring how most tree-walking interpreters intern
// their handful of constant values.
var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	UNIT  = &Unit{}
)

// NativeBool returns the shared TRUE or FALSE singleton for a Go bool.
func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Function is a closure: the parameter list and body of a function
// literal, bundled with a reference to the Environment active when the
// literal was evaluated. That reference, not a copy, is what gives Loom
// lexical scoping: the closure sees whatever its defining scope looks
// like at call time, including later let-bindings made after the closure
// was captured but before it is called, as long as they land in the same
// frame objects.
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Kind() Kind { return FunctionKind }
func (f *Function) Inspect() string {
	var out bytes.Buffer
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") {\n")
	out.WriteString(f.Body.String())
	out.WriteString("\n}")
	return out.String()
}

// IsTruthy implements §3.3's truthiness rule: Boolean(false) is the only
// falsy value; everything else, including Integer(0) and Unit, is truthy.
func IsTruthy(v Value) bool {
	if b, ok := v.(*Boolean); ok {
		return b.Value
	}
	return true
}

// rank orders Value kinds for cross-kind LT/GT comparison (§3.3): Integer
// sorts below Boolean, matching the declaration order of the original
// source's Object enum (Integer, Boolean, Function, NoOp), whose derived
// PartialOrd ranks variants by that order. The evaluator passes any pair
// of operands of LT/GT here; Function and Unit share the rank above
// Boolean, so they sort after every Integer and Boolean and compare equal
// to each other.
func rank(v Value) int {
	switch v.(type) {
	case *Integer:
		return 0
	case *Boolean:
		return 1
	default:
		return 2
	}
}

// numeric extracts a comparable numeric value for ranking within a kind:
// false/true become 0/1, Integer is itself, anything else (Function,
// Unit) is 0.
func numeric(v Value) int64 {
	switch val := v.(type) {
	case *Boolean:
		if val.Value {
			return 1
		}
		return 0
	case *Integer:
		return val.Value
	default:
		return 0
	}
}

// Compare implements the ordering from §3.3: Integer values compare
// numerically, Boolean orders false < true, and a Boolean compared
// against an Integer compares structurally (by rank, then by the
// within-kind numeric value) rather than refusing the comparison. It
// returns a negative number, zero, or a positive number the way
// strings.Compare and friends do.
func Compare(left, right Value) int {
	lr, rr := rank(left), rank(right)
	if lr != rr {
		return lr - rr
	}
	ln, rn := numeric(left), numeric(right)
	switch {
	case ln < rn:
		return -1
	case ln > rn:
		return 1
	default:
		return 0
	}
}

// Equal implements EQ/NOTEQ (§3.3): equality between different kinds is
// always false (so NOTEQ between different kinds is always true);
// equality within a kind compares payload.
func Equal(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case *Integer:
		return l.Value == right.(*Integer).Value
	case *Boolean:
		return l.Value == right.(*Boolean).Value
	case *Unit:
		return true
	case *Function:
		// The original source's Function variant stores only its
		// parameter list and body (no captured environment) and gets
		// structural equality from the derived PartialEq. Loom's
		// Function additionally carries Env, so two closures built from
		// identical source but capturing different frames would compare
		// structurally equal despite observing different variables —
		// deliberately using pointer identity instead so EQ reflects
		// "the same closure instance," not "the same source text."
		return l == right.(*Function)
	default:
		return false
	}
}
