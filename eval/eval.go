// Package eval walks an Ember expression tree against a chain of scopes.
//
// A function call runs its body in a fresh child scope holding the
// parameters. Under DynamicScoping (the default) that child's parent is the
// scope active at the call site; under LexicalScoping it is the scope in
// which the function was defined.
package eval

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/metaphox/ember/ast"
)

// Scoping selects how a call's local scope is parented.
type Scoping int

const (
	DynamicScoping Scoping = iota
	LexicalScoping
)

func (s Scoping) String() string {
	if s == LexicalScoping {
		return "lexical"
	}
	return "dynamic"
}

// ParseScoping accepts "dynamic" or "lexical".
func ParseScoping(s string) (Scoping, error) {
	switch s {
	case "dynamic", "":
		return DynamicScoping, nil
	case "lexical":
		return LexicalScoping, nil
	}
	return DynamicScoping, fmt.Errorf("unknown scoping %q (want dynamic or lexical)", s)
}

// DefaultMaxDepth bounds nested calls.
const DefaultMaxDepth = 10000

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithScoping sets the scoping model for calls.
func WithScoping(s Scoping) Option {
	return func(in *Interpreter) { in.scoping = s }
}

// WithMaxDepth sets the maximum call nesting. n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

// WithLogger routes debug events (calls, loop completion) to l.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Interpreter evaluates trees. It keeps only the current call depth, so one
// Interpreter must not be used from several goroutines at once.
type Interpreter struct {
	scoping  Scoping
	maxDepth int
	log      *slog.Logger
	depth    int
}

// New returns an Interpreter with dynamic scoping and DefaultMaxDepth.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		maxDepth: DefaultMaxDepth,
		log:      discardLogger,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Scoping reports the configured scoping model.
func (in *Interpreter) Scoping() Scoping { return in.scoping }

// Eval evaluates node against scope with default settings.
func Eval(node ast.Expr, scope *Scope) (Value, error) {
	return New().Eval(node, scope)
}

// Eval evaluates node against scope. Errors are *EvalError.
func (in *Interpreter) Eval(node ast.Expr, scope *Scope) (Value, error) {
	in.depth = 0
	return in.eval(node, scope)
}

func (in *Interpreter) eval(node ast.Expr, scope *Scope) (Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return evalNumber(n)
	case *ast.VarAccess:
		v, ok := scope.Get(n.Name)
		if !ok {
			return nil, errorAt(n, UnboundVariable, "%s is not defined", n.Name)
		}
		return v, nil
	case *ast.VarAssign:
		v, err := in.eval(n.Value, scope)
		if err != nil {
			return nil, err
		}
		scope.Set(n.Name, v)
		return v, nil
	case *ast.BinaryOp:
		return in.evalBinary(n, scope)
	case *ast.UnaryOp:
		return in.evalUnary(n, scope)
	case *ast.If:
		return in.evalIf(n, scope)
	case *ast.For:
		return in.evalFor(n, scope)
	case *ast.While:
		return in.evalWhile(n, scope)
	case *ast.FuncDef:
		fn := &Function{Name: n.Name, Params: n.Params, Body: n.Body, Defined: scope}
		if n.Name != "" {
			scope.Set(n.Name, fn)
		}
		return fn, nil
	case *ast.Call:
		return in.evalCall(n, scope)
	case nil:
		return nil, &EvalError{Kind: UnknownNode, Msg: "nil node"}
	}
	return nil, errorAt(node, UnknownNode, "unknown node %T", node)
}

func evalNumber(n *ast.NumberLiteral) (Value, error) {
	switch n.Token.Type {
	case ast.INT:
		i, err := strconv.ParseInt(n.Token.Literal, 10, 64)
		if err != nil {
			return nil, errorAt(n, InvalidNumber, "integer literal %s out of range", n.Token.Literal)
		}
		return Int(i), nil
	case ast.DOUBLE:
		f, err := strconv.ParseFloat(n.Token.Literal, 64)
		if err != nil {
			return nil, errorAt(n, InvalidNumber, "bad double literal %s", n.Token.Literal)
		}
		return Double(f), nil
	}
	return nil, errorAt(n, UnknownNode, "number literal with token %v", n.Token.Type)
}

// ── Operators ────────────────────────────────────────────────────────────────

// evalBinary evaluates both operands before applying the operator; AND and
// OR do not short-circuit.
func (in *Interpreter) evalBinary(n *ast.BinaryOp, scope *Scope) (Value, error) {
	left, err := in.eval(n.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right, scope)
	if err != nil {
		return nil, err
	}

	switch n.Op.Type {
	case ast.PLUS, ast.MINUS, ast.MUL, ast.DIV:
		return arithmetic(n, left, right)
	case ast.EE, ast.NE, ast.LT, ast.GT, ast.LTE, ast.GTE:
		return compare(n, left, right)
	case ast.KEYWORD:
		if n.Op.Literal == ast.KwAnd || n.Op.Literal == ast.KwOr {
			l, lok := Truthy(left)
			r, rok := Truthy(right)
			if !lok || !rok {
				return nil, operandError(n, left, right)
			}
			if n.Op.Literal == ast.KwAnd {
				return boolValue(l && r), nil
			}
			return boolValue(l || r), nil
		}
	}
	return nil, errorAt(n, UnknownNode, "unknown binary operator %s", n.Op.Lexeme)
}

func arithmetic(n *ast.BinaryOp, left, right Value) (Value, error) {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			if n.Op.Type == ast.DIV && r == 0 {
				return nil, errorAt(n.Right, DivisionByZero, "integer division by zero")
			}
			v, ok := intArithmetic(n.Op.Type, l, r)
			if !ok {
				return nil, errorAt(n, IntegerOverflow, "integer overflow in %v %s %v", l, n.Op.Lexeme, r)
			}
			return v, nil
		}
	}

	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return nil, operandError(n, left, right)
	}
	switch n.Op.Type {
	case ast.PLUS:
		return Double(l + r), nil
	case ast.MINUS:
		return Double(l - r), nil
	case ast.MUL:
		return Double(l * r), nil
	default:
		return Double(l / r), nil
	}
}

// intArithmetic applies op to two Ints and reports false when the result
// does not fit in 64 bits. r is non-zero for DIV.
func intArithmetic(op ast.TokenType, l, r Int) (Int, bool) {
	switch op {
	case ast.PLUS:
		s := l + r
		return s, (l^s)&(r^s) >= 0
	case ast.MINUS:
		d := l - r
		return d, (l^r)&(l^d) >= 0
	case ast.MUL:
		if l == 0 || r == 0 {
			return 0, true
		}
		p := l * r
		if (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) || p/r != l {
			return 0, false
		}
		return p, true
	default:
		if l == math.MinInt64 && r == -1 {
			return 0, false
		}
		return l / r, true
	}
}

// compare converts both operands to float64 and yields Int 1 or 0.
func compare(n *ast.BinaryOp, left, right Value) (Value, error) {
	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return nil, operandError(n, left, right)
	}
	c := compareFloat(l, r)
	switch n.Op.Type {
	case ast.EE:
		return boolValue(c == 0), nil
	case ast.NE:
		return boolValue(c != 0), nil
	case ast.LT:
		return boolValue(c < 0), nil
	case ast.GT:
		return boolValue(c > 0), nil
	case ast.LTE:
		return boolValue(c <= 0), nil
	default:
		return boolValue(c >= 0), nil
	}
}

// compareFloat orders NaN above every other value, +Inf included, and
// equal to itself. -0.0 and 0.0 compare equal.
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(a, b)
}

func operandError(n *ast.BinaryOp, left, right Value) error {
	return errorAt(n, OperandType, "unsupported operand types for %s: %v and %v", n.Op.Lexeme, left.Kind(), right.Kind())
}

func (in *Interpreter) evalUnary(n *ast.UnaryOp, scope *Scope) (Value, error) {
	v, err := in.eval(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Op.Type == ast.MINUS:
		switch x := v.(type) {
		case Int:
			if x == math.MinInt64 {
				return nil, errorAt(n, IntegerOverflow, "integer overflow in -(%v)", x)
			}
			return -x, nil
		case Double:
			return -x, nil
		}
	case n.Op.Type == ast.PLUS:
		switch v.(type) {
		case Int, Double:
			return v, nil
		}
	case n.Op.Is(ast.KwNot):
		if t, ok := Truthy(v); ok {
			return boolValue(!t), nil
		}
	default:
		return nil, errorAt(n, UnknownNode, "unknown unary operator %s", n.Op.Lexeme)
	}
	return nil, errorAt(n, OperandType, "unsupported operand type for unary %s: %v", n.Op.Lexeme, v.Kind())
}

// ── Control flow ─────────────────────────────────────────────────────────────

// condition evaluates e and applies truthiness.
func (in *Interpreter) condition(e ast.Expr, scope *Scope) (bool, error) {
	v, err := in.eval(e, scope)
	if err != nil {
		return false, err
	}
	t, ok := Truthy(v)
	if !ok {
		return false, errorAt(e, OperandType, "%v cannot be used as a condition", v.Kind())
	}
	return t, nil
}

func (in *Interpreter) evalIf(n *ast.If, scope *Scope) (Value, error) {
	for _, c := range n.Cases {
		ok, err := in.condition(c.Cond, scope)
		if err != nil {
			return nil, err
		}
		if ok {
			return in.eval(c.Body, scope)
		}
	}
	if n.Else != nil {
		return in.eval(n.Else, scope)
	}
	return Absent{}, nil
}

// evalFor evaluates the bounds once, then rebinds the loop variable in scope
// (not a per-iteration scope) before each run of the body.
func (in *Interpreter) evalFor(n *ast.For, scope *Scope) (Value, error) {
	start, err := in.number(n.Start, scope)
	if err != nil {
		return nil, err
	}
	end, err := in.number(n.End, scope)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if n.Step != nil {
		if step, err = in.number(n.Step, scope); err != nil {
			return nil, err
		}
	}

	var result Value = Int(0)
	iterations := 0
	for cur := start; (step >= 0 && cur < end) || (step < 0 && cur > end); cur += step {
		scope.Set(n.Var, Double(cur))
		if result, err = in.eval(n.Body, scope); err != nil {
			return nil, err
		}
		iterations++
	}
	in.log.Debug("for loop done",
		slog.String("var", n.Var),
		slog.Int("iterations", iterations))
	return result, nil
}

func (in *Interpreter) number(e ast.Expr, scope *Scope) (float64, error) {
	v, err := in.eval(e, scope)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, errorAt(e, OperandType, "expected a number, got %v", v.Kind())
	}
	return f, nil
}

func (in *Interpreter) evalWhile(n *ast.While, scope *Scope) (Value, error) {
	var result Value = Int(0)
	iterations := 0
	for {
		ok, err := in.condition(n.Cond, scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if result, err = in.eval(n.Body, scope); err != nil {
			return nil, err
		}
		iterations++
	}
	in.log.Debug("while loop done", slog.Int("iterations", iterations))
	return result, nil
}

// ── Calls ────────────────────────────────────────────────────────────────────

func (in *Interpreter) evalCall(n *ast.Call, scope *Scope) (Value, error) {
	callee, err := in.eval(n.Callee, scope)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Function)
	if !ok {
		return nil, errorAt(n, NotCallable, "cannot call a value of type %v", callee.Kind())
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		if args[i], err = in.eval(a, scope); err != nil {
			return nil, err
		}
	}
	if len(args) != len(fn.Params) {
		return nil, errorAt(n, ArityMismatch, "%v expects %d argument(s), got %d", fn, len(fn.Params), len(args))
	}

	if in.depth >= in.maxDepth {
		return nil, errorAt(n, CallDepthExceeded, "maximum call depth %d exceeded", in.maxDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	parent := scope
	if in.scoping == LexicalScoping {
		parent = fn.Defined
	}
	local := NewScope(parent)
	for i, p := range fn.Params {
		local.Set(p, args[i])
	}

	in.log.Debug("function call",
		slog.String("function", fn.String()),
		slog.Int("argument-count", len(args)),
		slog.Int("depth", in.depth))
	return in.eval(fn.Body, local)
}
