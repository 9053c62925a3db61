package eval

import (
	"fmt"

	"github.com/metaphox/ember/ast"
)

// ErrorKind classifies an EvalError.
type ErrorKind int

const (
	UnboundVariable ErrorKind = iota + 1
	NotCallable
	ArityMismatch
	OperandType
	DivisionByZero
	InvalidNumber
	UnknownNode
	CallDepthExceeded
	IntegerOverflow
)

var errorKindNames = map[ErrorKind]string{
	UnboundVariable:   "unbound variable",
	NotCallable:       "not callable",
	ArityMismatch:     "arity mismatch",
	OperandType:       "operand type",
	DivisionByZero:    "division by zero",
	InvalidNumber:     "invalid number",
	UnknownNode:       "unknown node",
	CallDepthExceeded: "call depth exceeded",
	IntegerOverflow:   "integer overflow",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EvalError aborts evaluation of the current unit. Line and Col are the
// 1-based position of the node that failed.
type EvalError struct {
	Kind ErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("EVAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func errorAt(n ast.Expr, kind ErrorKind, format string, args ...any) *EvalError {
	tok := n.Pos()
	return &EvalError{Kind: kind, Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}
