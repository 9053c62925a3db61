// Package parser implements the Ember recursive-descent parser.
//
// The parser reads the complete token slice produced by [lexer.Scan] and
// builds one [ast.Expr]. Each grammar level has its own method, from the
// loosest binding to the tightest:
//
//	expr      := "VAR" IDENT "=" arithExpr
//	           | IDENT "=" arithExpr          (IDENT already bound)
//	           | compExpr (("AND"|"OR") compExpr)*
//	compExpr  := "NOT" compExpr
//	           | arithExpr (("=="|"!="|"<"|">"|"<="|">=") arithExpr)*
//	arithExpr := term (("+"|"-") term)*
//	term      := callExpr (("*"|"/") factor)*
//	callExpr  := factor ("(" (expr ("," expr)*)? ")")?
//	factor    := ("+"|"-") factor | INT | DOUBLE | IDENT | "(" expr ")"
//	           | ifExpr | forExpr | whileExpr | funcDef
//
// Usage:
//
//	toks, _ := lexer.Scan(line)
//	root, err := parser.Parse(toks, globals)
//
// There is no error recovery: the first unexpected token aborts the parse
// with a [*ParseError].
package parser

import (
	"fmt"

	"github.com/metaphox/ember/ast"
)

// Symbols reports whether a name is already bound. The parser consults it
// to decide whether `name = value` is an assignment.
type Symbols interface {
	Has(name string) bool
}

// ParseError reports the token at which parsing stopped.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parser holds the token slice and the cursor into it.
type Parser struct {
	tokens  []ast.Token
	pos     int
	cur     ast.Token
	symbols Symbols
}

// New creates a Parser over tokens, which should end with an EOF token.
// symbols may be nil, in which case no name counts as bound.
func New(tokens []ast.Token, symbols Symbols) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.EOF {
		// Cap the slice so append copies instead of writing into the caller's array.
		tokens = append(tokens[:len(tokens):len(tokens)], ast.Token{Type: ast.EOF})
	}
	p := &Parser{tokens: tokens, symbols: symbols}
	p.cur = tokens[0]
	return p
}

// Parse parses one expression from tokens and requires that it consumes
// everything up to EOF.
func Parse(tokens []ast.Token, symbols Symbols) (ast.Expr, error) {
	return New(tokens, symbols).Parse()
}

// Parse builds the tree for the whole token slice.
func (p *Parser) Parse() (ast.Expr, error) {
	if p.curIs(ast.EOF) {
		return nil, p.errorf("empty input")
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.curIs(ast.EOF) {
		return nil, p.errorf("unexpected %q after expression", p.cur.Lexeme)
	}
	return root, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// advance moves to the next token. It stays on EOF once reached.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.cur = p.tokens[p.pos]
}

// peek returns the token after cur.
func (p *Parser) peek() ast.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(tt ast.TokenType) bool { return p.cur.Type == tt }

// curKeyword reports whether the current token is the keyword kw.
func (p *Parser) curKeyword(kw string) bool { return p.cur.Is(kw) }

// expect consumes a token of type tt or fails with what was wanted.
func (p *Parser) expect(tt ast.TokenType, want string) (ast.Token, error) {
	if !p.curIs(tt) {
		return ast.Token{}, p.errorf("expected %s, got %q", want, p.cur.String())
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// expectKeyword consumes the keyword kw.
func (p *Parser) expectKeyword(kw string) error {
	if !p.curKeyword(kw) {
		return p.errorf("expected '%s', got %q", kw, p.cur.String())
	}
	p.advance()
	return nil
}

// errorf builds a ParseError at the current token.
func (p *Parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.cur.Line, Col: p.cur.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) bound(name string) bool {
	return p.symbols != nil && p.symbols.Has(name)
}

// ── Grammar levels ────────────────────────────────────────────────────────────

func (p *Parser) expr() (ast.Expr, error) {
	if p.curKeyword(ast.KwVar) {
		tok := p.cur
		p.advance()
		name, err := p.expect(ast.IDENTIFIER, "identifier after 'VAR'")
		if err != nil {
			return nil, err
		}
		return p.assignment(tok, name.Literal)
	}

	if p.curIs(ast.IDENTIFIER) && p.peek().Type == ast.EQUAL {
		tok := p.cur
		if !p.bound(tok.Literal) {
			return nil, p.errorf("cannot assign to undeclared variable %s (use VAR %s = ...)", tok.Literal, tok.Literal)
		}
		p.advance()
		return p.assignment(tok, tok.Literal)
	}

	left, err := p.compExpr()
	if err != nil {
		return nil, err
	}
	for p.curKeyword(ast.KwAnd) || p.curKeyword(ast.KwOr) {
		op := p.cur
		p.advance()
		right, err := p.compExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// assignment parses `= arithExpr` for both the VAR and the bare form.
func (p *Parser) assignment(tok ast.Token, name string) (ast.Expr, error) {
	if _, err := p.expect(ast.EQUAL, "'='"); err != nil {
		return nil, err
	}
	value, err := p.arithExpr()
	if err != nil {
		return nil, err
	}
	return &ast.VarAssign{Token: tok, Name: name, Value: value}, nil
}

func (p *Parser) compExpr() (ast.Expr, error) {
	if p.curKeyword(ast.KwNot) {
		op := p.cur
		p.advance()
		operand, err := p.compExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}

	left, err := p.arithExpr()
	if err != nil {
		return nil, err
	}
	for isComparison(p.cur.Type) {
		op := p.cur
		p.advance()
		right, err := p.arithExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func isComparison(tt ast.TokenType) bool {
	switch tt {
	case ast.EE, ast.NE, ast.LT, ast.GT, ast.LTE, ast.GTE:
		return true
	}
	return false
}

func (p *Parser) arithExpr() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.PLUS) || p.curIs(ast.MINUS) {
		op := p.cur
		p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// term takes a callExpr on the left but only a factor on the right of * and
// /, so `a * f(x)` needs parentheses around the call.
func (p *Parser) term() (ast.Expr, error) {
	left, err := p.callExpr()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.MUL) || p.curIs(ast.DIV) {
		op := p.cur
		p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// callExpr allows a single call suffix; f()() is not accepted.
func (p *Parser) callExpr() (ast.Expr, error) {
	callee, err := p.factor()
	if err != nil {
		return nil, err
	}
	if !p.curIs(ast.LPAREN) {
		return callee, nil
	}
	tok := p.cur
	p.advance()

	var args []ast.Expr
	if !p.curIs(ast.RPAREN) {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.curIs(ast.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(ast.RPAREN, "',' or ')'"); err != nil {
		return nil, err
	}
	return &ast.Call{Token: tok, Callee: callee, Args: args}, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case ast.PLUS, ast.MINUS:
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: tok, Operand: operand}, nil

	case ast.INT, ast.DOUBLE:
		p.advance()
		return &ast.NumberLiteral{Token: tok}, nil

	case ast.IDENTIFIER:
		p.advance()
		return &ast.VarAccess{Token: tok, Name: tok.Literal}, nil

	case ast.LPAREN:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case ast.KEYWORD:
		switch tok.Literal {
		case ast.KwIf:
			return p.ifExpr()
		case ast.KwFor:
			return p.forExpr()
		case ast.KwWhile:
			return p.whileExpr()
		case ast.KwFn:
			return p.funcDef()
		}
	}
	return nil, p.errorf("expected an expression, got %q", tok.String())
}
