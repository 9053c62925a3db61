package parser

import "github.com/metaphox/ember/ast"

// ifExpr parses
//
//	IF expr THEN expr (ELIF expr THEN expr)* (ELSE expr)?
func (p *Parser) ifExpr() (ast.Expr, error) {
	node := &ast.If{Token: p.cur}
	p.advance() // consume 'IF'

	for {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(ast.KwThen); err != nil {
			return nil, err
		}
		body, err := p.expr()
		if err != nil {
			return nil, err
		}
		node.Cases = append(node.Cases, ast.IfCase{Cond: cond, Body: body})

		if !p.curKeyword(ast.KwElif) {
			break
		}
		p.advance()
	}

	if p.curKeyword(ast.KwElse) {
		p.advance()
		elseBody, err := p.expr()
		if err != nil {
			return nil, err
		}
		node.Else = elseBody
	}
	return node, nil
}

// forExpr parses
//
//	FOR IDENT = expr TO expr (STEP expr)? THEN expr
func (p *Parser) forExpr() (ast.Expr, error) {
	node := &ast.For{Token: p.cur}
	p.advance() // consume 'FOR'

	name, err := p.expect(ast.IDENTIFIER, "loop variable after 'FOR'")
	if err != nil {
		return nil, err
	}
	node.Var = name.Literal
	if _, err := p.expect(ast.EQUAL, "'='"); err != nil {
		return nil, err
	}
	if node.Start, err = p.expr(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(ast.KwTo); err != nil {
		return nil, err
	}
	if node.End, err = p.expr(); err != nil {
		return nil, err
	}
	if p.curKeyword(ast.KwStep) {
		p.advance()
		if node.Step, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword(ast.KwThen); err != nil {
		return nil, err
	}
	if node.Body, err = p.expr(); err != nil {
		return nil, err
	}
	return node, nil
}

// whileExpr parses
//
//	WHILE expr THEN expr
func (p *Parser) whileExpr() (ast.Expr, error) {
	node := &ast.While{Token: p.cur}
	p.advance() // consume 'WHILE'

	var err error
	if node.Cond, err = p.expr(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(ast.KwThen); err != nil {
		return nil, err
	}
	if node.Body, err = p.expr(); err != nil {
		return nil, err
	}
	return node, nil
}

// funcDef parses
//
//	FN IDENT? ( (IDENT (, IDENT)*)? ) -> expr
func (p *Parser) funcDef() (ast.Expr, error) {
	node := &ast.FuncDef{Token: p.cur}
	p.advance() // consume 'FN'

	if p.curIs(ast.IDENTIFIER) {
		node.Name = p.cur.Literal
		p.advance()
	}
	if _, err := p.expect(ast.LPAREN, "'('"); err != nil {
		return nil, err
	}

	node.Params = []string{}
	if p.curIs(ast.IDENTIFIER) {
		for {
			param, err := p.expect(ast.IDENTIFIER, "parameter name")
			if err != nil {
				return nil, err
			}
			node.Params = append(node.Params, param.Literal)
			if !p.curIs(ast.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(ast.RPAREN, "',' or ')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ARROW, "'->'"); err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}
