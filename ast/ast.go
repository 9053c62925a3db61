// Package ast defines the Abstract Syntax Tree (AST) node types for Ember.
//
// Ember is expression-only: every construct, including loops and function
// definitions, is an Expr and produces a value. The closed set of variants is:
//
//	Expr (interface)
//	  NumberLiteral, VarAccess, VarAssign
//	  BinaryOp, UnaryOp
//	  If, For, While
//	  FuncDef, Call
//
// The tree owns its children; nodes are never shared.
//
// String renders a node back to Ember source. Every composite node is wrapped
// in parentheses, so scanning and parsing the output yields a tree that
// [Equal] reports identical to the tree it was rendered from.
package ast

import (
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Expr is the interface implemented by every AST node.
type Expr interface {
	// Pos returns the token at which the node starts, for error reporting.
	Pos() Token
	// String renders the node as re-parseable Ember source.
	String() string
	exprNode()
}

// ── Leaves ────────────────────────────────────────────────────────────────────

// NumberLiteral is an INT or DOUBLE token. The value is parsed from the
// token's text when the node is evaluated.
type NumberLiteral struct {
	Token Token
}

func (e *NumberLiteral) exprNode()      {}
func (e *NumberLiteral) Pos() Token     { return e.Token }
func (e *NumberLiteral) String() string { return e.Token.Lexeme }

// VarAccess reads a variable.
type VarAccess struct {
	Token Token
	Name  string
}

func (e *VarAccess) exprNode()      {}
func (e *VarAccess) Pos() Token     { return e.Token }
func (e *VarAccess) String() string { return e.Name }

// VarAssign binds Name in the innermost scope.
//
//	VAR x = 5
//	x = x + 1
type VarAssign struct {
	Token Token // 'VAR', or the identifier for a bare assignment
	Name  string
	Value Expr
}

func (e *VarAssign) exprNode()  {}
func (e *VarAssign) Pos() Token { return e.Token }
func (e *VarAssign) String() string {
	return "(VAR " + e.Name + " = " + e.Value.String() + ")"
}

// ── Operators ────────────────────────────────────────────────────────────────

// BinaryOp applies an arithmetic, comparison, or logical (AND/OR) operator.
type BinaryOp struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *BinaryOp) exprNode()  {}
func (e *BinaryOp) Pos() Token { return e.Left.Pos() }
func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + e.Op.Lexeme + " " + e.Right.String() + ")"
}

// UnaryOp is a prefix +, - or NOT.
type UnaryOp struct {
	Op      Token
	Operand Expr
}

func (e *UnaryOp) exprNode()  {}
func (e *UnaryOp) Pos() Token { return e.Op }
func (e *UnaryOp) String() string {
	if e.Op.Type == KEYWORD {
		return "(" + e.Op.Lexeme + " " + e.Operand.String() + ")"
	}
	return "(" + e.Op.Lexeme + e.Operand.String() + ")"
}

// ── Control flow ─────────────────────────────────────────────────────────────

// IfCase is one condition/body pair of an If.
type IfCase struct {
	Cond Expr
	Body Expr
}

// If evaluates Cases in order and yields the body of the first truthy one.
// Else is nil when there is no ELSE branch.
//
//	IF x < 0 THEN 0 ELIF x > 9 THEN 9 ELSE x
type If struct {
	Token Token // the 'IF' token
	Cases []IfCase
	Else  Expr
}

func (e *If) exprNode()  {}
func (e *If) Pos() Token { return e.Token }
func (e *If) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, c := range e.Cases {
		if i == 0 {
			b.WriteString("IF ")
		} else {
			b.WriteString(" ELIF ")
		}
		b.WriteString(c.Cond.String())
		b.WriteString(" THEN ")
		b.WriteString(c.Body.String())
	}
	if e.Else != nil {
		b.WriteString(" ELSE ")
		b.WriteString(e.Else.String())
	}
	b.WriteString(")")
	return b.String()
}

// For is a counted loop. Step is nil when omitted (defaults to 1).
//
//	FOR i = 0 TO 10 STEP 2 THEN VAR total = total + i
type For struct {
	Token Token // the 'FOR' token
	Var   string
	Start Expr
	End   Expr
	Step  Expr
	Body  Expr
}

func (e *For) exprNode()  {}
func (e *For) Pos() Token { return e.Token }
func (e *For) String() string {
	out := "(FOR " + e.Var + " = " + e.Start.String() + " TO " + e.End.String()
	if e.Step != nil {
		out += " STEP " + e.Step.String()
	}
	return out + " THEN " + e.Body.String() + ")"
}

// While loops while Cond is truthy.
type While struct {
	Token Token // the 'WHILE' token
	Cond  Expr
	Body  Expr
}

func (e *While) exprNode()  {}
func (e *While) Pos() Token { return e.Token }
func (e *While) String() string {
	return "(WHILE " + e.Cond.String() + " THEN " + e.Body.String() + ")"
}

// ── Functions ────────────────────────────────────────────────────────────────

// FuncDef declares a function. Name is empty for an anonymous function.
//
//	FN add(a, b) -> a + b
//	FN (x) -> x * x
type FuncDef struct {
	Token  Token // the 'FN' token
	Name   string
	Params []string
	Body   Expr
}

func (e *FuncDef) exprNode()  {}
func (e *FuncDef) Pos() Token { return e.Token }
func (e *FuncDef) String() string {
	head := "(FN "
	if e.Name != "" {
		head += e.Name
	}
	return head + "(" + strings.Join(e.Params, ", ") + ") -> " + e.Body.String() + ")"
}

// Call invokes Callee with Args.
type Call struct {
	Token  Token // the '(' token
	Callee Expr
	Args   []Expr
}

func (e *Call) exprNode()  {}
func (e *Call) Pos() Token { return e.Callee.Pos() }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return "(" + e.Callee.String() + "(" + strings.Join(args, ", ") + "))"
}
