// Package lexer implements the Ember lexer (tokeniser).
//
// The lexer converts one input line into a flat slice of [ast.Token] values
// terminated by exactly one [ast.EOF]. Call [Scan] for the whole slice, or
// [New] and [Lexer.NextToken] to pull tokens one at a time.
//
// Design notes:
//   - Single-pass, rune-by-rune scanning using a read position cursor.
//   - No global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based).
//   - Scanning never fails. A character that cannot start a token is recorded
//     as a [LexError] and skipped; it contributes no token.
//   - Multi-character operators (->, ==, !=, <=, >=) need one rune of
//     look-ahead and are handled by peekChar.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/metaphox/ember/ast"
)

// LexError reports a character that was skipped during scanning.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEX ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer holds all state required to tokenise a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // byte offset of ch
	readPos int    // byte offset of the rune after ch
	ch      rune   // current rune under examination, 0 at end of input

	line int // current 1-based line number
	col  int // 1-based column of ch

	errors []*LexError
}

// New creates a [Lexer] positioned at the first rune of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Scan tokenises src completely. The returned slice always ends with one EOF
// token; the diagnostics describe any characters that were skipped.
func Scan(src string) ([]ast.Token, []*LexError) {
	l := New(src)
	var toks []ast.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks, l.Errors()
		}
	}
}

// Errors returns the diagnostics collected so far.
func (l *Lexer) Errors() []*LexError {
	return l.errors
}

// NextToken returns the next token from the input. Once the input is
// exhausted it returns an EOF token on every call.
func (l *Lexer) NextToken() ast.Token {
	for {
		l.skipWhitespace()

		var tok ast.Token
		switch l.ch {
		case 0:
			if l.pos >= len(l.input) {
				return l.makeToken(ast.EOF, "")
			}
			l.illegal()
			continue

		case '(':
			tok = l.makeToken(ast.LPAREN, "(")
		case ')':
			tok = l.makeToken(ast.RPAREN, ")")
		case ',':
			tok = l.makeToken(ast.COMMA, ",")
		case '+':
			tok = l.makeToken(ast.PLUS, "+")
		case '*':
			tok = l.makeToken(ast.MUL, "*")
		case '/':
			tok = l.makeToken(ast.DIV, "/")

		case '-':
			if l.peekChar() == '>' {
				tok = l.makeToken(ast.ARROW, "->")
				l.readChar()
			} else {
				tok = l.makeToken(ast.MINUS, "-")
			}
		case '=':
			if l.peekChar() == '=' {
				tok = l.makeToken(ast.EE, "==")
				l.readChar()
			} else {
				tok = l.makeToken(ast.EQUAL, "=")
			}
		case '!':
			if l.peekChar() != '=' {
				l.errorf("'!' must be followed by '='")
				l.readChar()
				continue
			}
			tok = l.makeToken(ast.NE, "!=")
			l.readChar()
		case '<':
			if l.peekChar() == '=' {
				tok = l.makeToken(ast.LTE, "<=")
				l.readChar()
			} else {
				tok = l.makeToken(ast.LT, "<")
			}
		case '>':
			if l.peekChar() == '=' {
				tok = l.makeToken(ast.GTE, ">=")
				l.readChar()
			} else {
				tok = l.makeToken(ast.GT, ">")
			}

		default:
			if isLetter(l.ch) {
				return l.readIdentifier()
			}
			if isDigit(l.ch) {
				return l.readNumber()
			}
			l.illegal()
			continue
		}

		l.readChar() // advance past the last character of this token
		return tok
	}
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one rune. At end of input l.ch is 0.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.col++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
	l.col++
}

// peekChar returns the rune after ch without consuming it, or 0 at the end.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// makeToken builds a token at the current position. The cursor is not moved.
func (l *Lexer) makeToken(tt ast.TokenType, lexeme string) ast.Token {
	return ast.Token{Type: tt, Lexeme: lexeme, Line: l.line, Col: l.col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// illegal records the current rune as unrecognised and skips it.
func (l *Lexer) illegal() {
	l.errorf("illegal character %q", l.ch)
	l.readChar()
}

func (l *Lexer) errorf(format string, args ...any) {
	l.errors = append(l.errors, &LexError{
		Line: l.line,
		Col:  l.col,
		Msg:  fmt.Sprintf(format, args...),
	})
}

// readIdentifier scans a run of letters and classifies it via
// [ast.LookupIdent]. It returns with the cursor on the first rune after the
// identifier, so NextToken must not advance again.
func (l *Lexer) readIdentifier() ast.Token {
	startLine, startCol, start := l.line, l.col, l.pos
	for isLetter(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	return ast.Token{
		Type:    ast.LookupIdent(text),
		Lexeme:  text,
		Literal: text,
		Line:    startLine,
		Col:     startCol,
	}
}

// readNumber scans an INT, or a DOUBLE when a '.' is followed by at least one
// digit. A '.' with no digit after it is left for the next call, which
// reports it as illegal.
func (l *Lexer) readNumber() ast.Token {
	startLine, startCol, start := l.line, l.col, l.pos
	tt := ast.INT

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tt = ast.DOUBLE
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	text := l.input[start:l.pos]
	return ast.Token{Type: tt, Lexeme: text, Literal: text, Line: startLine, Col: startCol}
}

// isLetter reports whether r may appear in an identifier. Digits and
// underscores may not.
func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

// isDigit reports whether r is an ASCII decimal digit (0–9).
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
