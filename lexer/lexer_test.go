// Package lexer_test contains tests for the Ember lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords    : the thirteen keywords and keyword boundaries
//   - TestLexer_Operators   : every operator including two-character ones
//   - TestLexer_Numbers     : INT and DOUBLE literals
//   - TestLexer_Identifiers : letter runs, digits split identifiers
//   - TestLexer_Illegal     : skipped characters and their diagnostics
//   - TestLexer_Position    : line and column tracking
package lexer_test

import (
	"errors"
	"testing"

	"github.com/metaphox/ember/ast"
	"github.com/metaphox/ember/lexer"
)

// tokenCase is a single (type, lexeme) expectation used in table-driven tests.
type tokenCase struct {
	expectedType   ast.TokenType
	expectedLexeme string
}

// runCases scans input and fails the test if the tokens differ from want.
// It also fails if the scan reported diagnostics.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	toks, errs := lexer.Scan(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	checkTokens(t, toks, want)
}

func checkTokens(t *testing.T, toks []ast.Token, want []tokenCase) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("token count: got %d %v, want %d", len(toks), toks, len(want))
	}
	for i, tc := range want {
		if toks[i].Type != tc.expectedType {
			t.Errorf("case %d: type mismatch: got %v, want %v (lexeme %q)", i, toks[i].Type, tc.expectedType, toks[i].Lexeme)
		}
		if toks[i].Lexeme != tc.expectedLexeme {
			t.Errorf("case %d: lexeme mismatch: got %q, want %q", i, toks[i].Lexeme, tc.expectedLexeme)
		}
	}
}

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestLexer_Keywords(t *testing.T) {
	input := `VAR AND OR NOT IF THEN ELIF ELSE FOR TO STEP WHILE FN`
	var want []tokenCase
	for _, kw := range []string{"VAR", "AND", "OR", "NOT", "IF", "THEN", "ELIF", "ELSE", "FOR", "TO", "STEP", "WHILE", "FN"} {
		want = append(want, tokenCase{ast.KEYWORD, kw})
	}
	want = append(want, tokenCase{ast.EOF, ""})
	runCases(t, input, want)

	toks, _ := lexer.Scan("WHILE")
	if toks[0].Literal != "WHILE" || !toks[0].Is(ast.KwWhile) {
		t.Errorf("keyword literal: got %q", toks[0].Literal)
	}
}

// TestLexer_KeywordBoundary checks that keywords are matched on the whole
// word and are case-sensitive.
func TestLexer_KeywordBoundary(t *testing.T) {
	runCases(t, `VARS var IFFY Fn`, []tokenCase{
		{ast.IDENTIFIER, "VARS"},
		{ast.IDENTIFIER, "var"},
		{ast.IDENTIFIER, "IFFY"},
		{ast.IDENTIFIER, "Fn"},
		{ast.EOF, ""},
	})
}

// ── Operators ────────────────────────────────────────────────────────────────

func TestLexer_Operators(t *testing.T) {
	input := `+ - * / = == != < > <= >= -> ( ) ,`
	runCases(t, input, []tokenCase{
		{ast.PLUS, "+"},
		{ast.MINUS, "-"},
		{ast.MUL, "*"},
		{ast.DIV, "/"},
		{ast.EQUAL, "="},
		{ast.EE, "=="},
		{ast.NE, "!="},
		{ast.LT, "<"},
		{ast.GT, ">"},
		{ast.LTE, "<="},
		{ast.GTE, ">="},
		{ast.ARROW, "->"},
		{ast.LPAREN, "("},
		{ast.RPAREN, ")"},
		{ast.COMMA, ","},
		{ast.EOF, ""},
	})
}

// TestLexer_OperatorsAdjacent checks greedy matching without whitespace.
func TestLexer_OperatorsAdjacent(t *testing.T) {
	runCases(t, `a->-b<=c===d`, []tokenCase{
		{ast.IDENTIFIER, "a"},
		{ast.ARROW, "->"},
		{ast.MINUS, "-"},
		{ast.IDENTIFIER, "b"},
		{ast.LTE, "<="},
		{ast.IDENTIFIER, "c"},
		{ast.EE, "=="},
		{ast.EQUAL, "="},
		{ast.IDENTIFIER, "d"},
		{ast.EOF, ""},
	})
}

// ── Numbers ──────────────────────────────────────────────────────────────────

func TestLexer_Numbers(t *testing.T) {
	toks, errs := lexer.Scan(`0 42 3.14 100.0 7`)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	checkTokens(t, toks, []tokenCase{
		{ast.INT, "0"},
		{ast.INT, "42"},
		{ast.DOUBLE, "3.14"},
		{ast.DOUBLE, "100.0"},
		{ast.INT, "7"},
		{ast.EOF, ""},
	})
	if toks[2].Literal != "3.14" {
		t.Errorf("double literal payload: got %q", toks[2].Literal)
	}
}

// TestLexer_NumberTrailingDot checks that "5." is an INT followed by an
// illegal '.', not a DOUBLE.
func TestLexer_NumberTrailingDot(t *testing.T) {
	toks, errs := lexer.Scan(`5.`)
	checkTokens(t, toks, []tokenCase{
		{ast.INT, "5"},
		{ast.EOF, ""},
	})
	if len(errs) != 1 {
		t.Fatalf("expected one diagnostic, got %v", errs)
	}
}

// ── Identifiers ──────────────────────────────────────────────────────────────

// TestLexer_Identifiers checks that identifiers are letter-only: a digit ends
// the identifier and starts a number.
func TestLexer_Identifiers(t *testing.T) {
	runCases(t, `foo Bar x1 ñame`, []tokenCase{
		{ast.IDENTIFIER, "foo"},
		{ast.IDENTIFIER, "Bar"},
		{ast.IDENTIFIER, "x"},
		{ast.INT, "1"},
		{ast.IDENTIFIER, "ñame"},
		{ast.EOF, ""},
	})
}

// ── Illegal characters ───────────────────────────────────────────────────────

func TestLexer_Illegal(t *testing.T) {
	toks, errs := lexer.Scan(`1 @ 2 _ 3`)
	checkTokens(t, toks, []tokenCase{
		{ast.INT, "1"},
		{ast.INT, "2"},
		{ast.INT, "3"},
		{ast.EOF, ""},
	})
	if len(errs) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(errs), errs)
	}
	if errs[0].Col != 3 || errs[1].Col != 7 {
		t.Errorf("diagnostic columns: got %d and %d, want 3 and 7", errs[0].Col, errs[1].Col)
	}
	var le *lexer.LexError
	if !errors.As(error(errs[0]), &le) {
		t.Fatal("diagnostic is not a *LexError")
	}
	if got, want := le.Error(), `LEX ERROR at 1:3: illegal character '@'`; got != want {
		t.Errorf("message: got %q, want %q", got, want)
	}
}

// TestLexer_LoneBang checks that '!' without '=' is reported and dropped.
func TestLexer_LoneBang(t *testing.T) {
	toks, errs := lexer.Scan(`a ! b`)
	checkTokens(t, toks, []tokenCase{
		{ast.IDENTIFIER, "a"},
		{ast.IDENTIFIER, "b"},
		{ast.EOF, ""},
	})
	if len(errs) != 1 {
		t.Fatalf("expected one diagnostic, got %v", errs)
	}
}

// TestLexer_Whitespace checks that whitespace never produces tokens and that
// empty input still yields exactly one EOF.
func TestLexer_Whitespace(t *testing.T) {
	runCases(t, "", []tokenCase{{ast.EOF, ""}})
	runCases(t, " \t\r\n ", []tokenCase{{ast.EOF, ""}})
}

// ── Positions ────────────────────────────────────────────────────────────────

func TestLexer_Position(t *testing.T) {
	toks, _ := lexer.Scan("VAR x\n  = 10")
	want := []struct{ line, col int }{
		{1, 1}, // VAR
		{1, 5}, // x
		{2, 3}, // =
		{2, 5}, // 10
	}
	for i, w := range want {
		if toks[i].Line != w.line || toks[i].Col != w.col {
			t.Errorf("token %d (%q): got %d:%d, want %d:%d", i, toks[i].Lexeme, toks[i].Line, toks[i].Col, w.line, w.col)
		}
	}
}

// TestLexer_NextTokenAfterEOF checks that EOF is sticky.
func TestLexer_NextTokenAfterEOF(t *testing.T) {
	l := lexer.New("1")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != ast.EOF {
			t.Fatalf("call %d: got %v, want EOF", i, tok.Type)
		}
	}
}
