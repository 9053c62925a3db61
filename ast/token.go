// Package ast defines the token types, the Token struct, and the expression
// tree shared by the Ember lexer, parser, and evaluator.
//
// Tokens are the smallest meaningful units of an input line. Every token
// carries its type, the exact source text it was scanned from, an optional
// literal payload, and its source position (line + column, both 1-based).
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// EOF marks the end of the input. Every scan ends with exactly one.
	EOF TokenType = iota

	// ── Delimiters ──────────────────────────────────────────────────────────────

	// LPAREN is the left parenthesis: (
	LPAREN
	// RPAREN is the right parenthesis: )
	RPAREN
	// COMMA separates call arguments and parameter names: ,
	COMMA
	// ARROW separates a function's parameter list from its body: ->
	ARROW

	// ── Arithmetic operators ────────────────────────────────────────────────────

	// PLUS is addition or unary plus: a + b  /  +x
	PLUS
	// MINUS is subtraction or unary negation: a - b  /  -x
	MINUS
	// MUL is multiplication: a * b
	MUL
	// DIV is division: a / b (truncating when both operands are integers)
	DIV

	// ── Comparison operators ────────────────────────────────────────────────────

	// EE is the equality operator: a == b
	EE
	// NE is the inequality operator: a != b
	NE
	// LT is less-than: a < b
	LT
	// GT is greater-than: a > b
	GT
	// LTE is less-than-or-equal: a <= b
	LTE
	// GTE is greater-than-or-equal: a >= b
	GTE

	// EQUAL is the assignment sign used by VAR, bare assignment and FOR: =
	EQUAL

	// ── Literals ───────────────────────────────────────────────────────────────

	// INT is a decimal integer literal, e.g. 0, 42.
	INT
	// DOUBLE is a decimal literal with a fractional part, e.g. 3.14.
	DOUBLE
	// IDENTIFIER is a run of letters that is not a keyword.
	IDENTIFIER
	// KEYWORD is one of the reserved words; Literal holds the word itself.
	KEYWORD
)

var tokenNames = [...]string{
	EOF:        "EOF",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COMMA:      "COMMA",
	ARROW:      "ARROW",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MUL:        "MUL",
	DIV:        "DIV",
	EE:         "EE",
	NE:         "NE",
	LT:         "LT",
	GT:         "GT",
	LTE:        "LTE",
	GTE:        "GTE",
	EQUAL:      "EQUAL",
	INT:        "INT",
	DOUBLE:     "DOUBLE",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
}

// String returns the upper-case name of the token type.
func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Keyword spellings. Keywords are case-sensitive and upper-case only.
const (
	KwVar   = "VAR"
	KwAnd   = "AND"
	KwOr    = "OR"
	KwNot   = "NOT"
	KwIf    = "IF"
	KwThen  = "THEN"
	KwElif  = "ELIF"
	KwElse  = "ELSE"
	KwFor   = "FOR"
	KwTo    = "TO"
	KwStep  = "STEP"
	KwWhile = "WHILE"
	KwFn    = "FN"
)

var keywords = map[string]bool{
	KwVar: true, KwAnd: true, KwOr: true, KwNot: true,
	KwIf: true, KwThen: true, KwElif: true, KwElse: true,
	KwFor: true, KwTo: true, KwStep: true, KwWhile: true,
	KwFn: true,
}

// LookupIdent reports KEYWORD if ident is reserved and IDENTIFIER otherwise.
func LookupIdent(ident string) TokenType {
	if keywords[ident] {
		return KEYWORD
	}
	return IDENTIFIER
}

// Token is a single lexical unit produced by the lexer.
//
// Lexeme is the exact source text. Literal is the payload carried by
// identifiers, keywords and numbers (their text); it is empty for operators
// and delimiters.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Col     int
}

// Is reports whether t is the keyword kw.
func (t Token) Is(kw string) bool {
	return t.Type == KEYWORD && t.Literal == kw
}

// String returns the lexeme, or "end of input" for EOF.
func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return t.Lexeme
}
