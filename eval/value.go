package eval

import (
	"strconv"
	"strings"

	"github.com/metaphox/ember/ast"
)

// Kind names the variant of a Value.
type Kind int

const (
	IntKind Kind = iota
	DoubleKind
	FunctionKind
	AbsentKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case DoubleKind:
		return "Double"
	case FunctionKind:
		return "Function"
	case AbsentKind:
		return "null"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a runtime value. The set of implementations is closed: Int,
// Double, *Function and Absent.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Int is a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind       { return IntKind }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (Int) value()           {}

// Double is an IEEE-754 double.
type Double float64

func (Double) Kind() Kind { return DoubleKind }

// String always shows a fractional part or exponent so a Double never reads
// like an Int: 2.0, 0.5, 1e+21, +Inf, NaN.
func (v Double) String() string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
func (Double) value() {}

// Function is a user-defined function. Defined is the scope in which the
// FN expression was evaluated; it is only consulted under lexical scoping.
type Function struct {
	Name    string
	Params  []string
	Body    ast.Expr
	Defined *Scope
}

func (*Function) Kind() Kind { return FunctionKind }
func (f *Function) String() string {
	if f.Name == "" {
		return "<function: <anonymous>>"
	}
	return "<function: " + f.Name + ">"
}
func (*Function) value() {}

// Absent is the result of an IF with no matching case and no ELSE branch.
type Absent struct{}

func (Absent) Kind() Kind     { return AbsentKind }
func (Absent) String() string { return "null" }
func (Absent) value()         {}

// Truthy reports whether v counts as true: a nonzero number. Other kinds are
// not valid conditions.
func Truthy(v Value) (bool, bool) {
	switch x := v.(type) {
	case Int:
		return x != 0, true
	case Double:
		return x != 0, true
	}
	return false, false
}

func boolValue(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Double:
		return float64(x), true
	}
	return 0, false
}
