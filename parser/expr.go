package parser

import (
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/lexer"
)

// parseExpr is the grammar's entry point: OR, lowest to highest precedence
// down to primary (spec.md §4.2).
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.KwOr) {
		tok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "OR", Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.KwAnd) {
		tok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "AND", Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Eq) || p.at(lexer.Ne) {
		tok := p.advance()
		op := "=="
		if tok.Kind == lexer.Ne {
			op = "!="
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Lt) || p.at(lexer.Gt) || p.at(lexer.Le) || p.at(lexer.Ge) {
		tok := p.advance()
		op := map[lexer.Kind]string{lexer.Lt: "<", lexer.Gt: ">", lexer.Le: "<=", lexer.Ge: ">="}[tok.Kind]
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		tok := p.advance()
		op := "+"
		if tok.Kind == lexer.Minus {
			op = "-"
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Star) || p.at(lexer.Slash) || p.at(lexer.Percent) {
		tok := p.advance()
		op := map[lexer.Kind]string{lexer.Star: "*", lexer.Slash: "/", lexer.Percent: "%"}[tok.Kind]
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(lexer.KwNot) {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "NOT", Operand: operand, P: astPos(tok.Line, tok.Col)}, nil
	}
	if p.at(lexer.Minus) {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "-", Operand: operand, P: astPos(tok.Line, tok.Col)}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(lexer.LParen):
			tok := p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args, P: astPos(tok.Line, tok.Col)}
		case p.at(lexer.LBracket):
			tok := p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBracket); err != nil {
				return nil, err
			}
			expr = &ast.Index{Collection: expr, Index: idx, P: astPos(tok.Line, tok.Col)}
		case p.at(lexer.Dot):
			tok := p.advance()
			nameTok, err := p.expect(lexer.Ident)
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Name: nameTok.Text, P: astPos(tok.Line, tok.Col)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if !p.at(lexer.RParen) {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.at(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	pos := astPos(tok.Line, tok.Col)
	switch tok.Kind {
	case lexer.Int:
		p.advance()
		return &ast.IntLit{Value: tok.Int, P: pos}, nil
	case lexer.Float:
		p.advance()
		return &ast.FloatLit{Value: tok.Float, P: pos}, nil
	case lexer.Duration:
		p.advance()
		return &ast.DurationLit{Milliseconds: tok.Int, P: pos}, nil
	case lexer.String:
		p.advance()
		return &ast.StringLit{Value: tok.Text, P: pos}, nil
	case lexer.Bool:
		p.advance()
		return &ast.BoolLit{Value: tok.Bool, P: pos}, nil
	case lexer.VoidKw:
		p.advance()
		return &ast.VoidLit{P: pos}, nil
	case lexer.KwThis:
		p.advance()
		return &ast.Identifier{Name: "THIS", P: pos}, nil
	case lexer.Ident:
		p.advance()
		return &ast.Identifier{Name: tok.Text, P: pos}, nil
	case lexer.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LBracket:
		return p.parseArrayLit()
	case lexer.LBrace:
		return p.parseMapLit()
	default:
		return nil, p.errAt(tok, "unexpected token %s in expression", tok.Kind)
	}
}

func (p *Parser) parseArrayLit() (ast.Expr, error) {
	start := p.advance() // [
	var elems []ast.Expr
	for !p.at(lexer.RBracket) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(lexer.Comma) {
			p.advance()
			if p.at(lexer.RBracket) {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Elements: elems, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseMapLit() (ast.Expr, error) {
	start := p.advance() // {
	var keys []string
	var values []ast.Expr
	for !p.at(lexer.RBrace) {
		var key string
		switch {
		case p.at(lexer.Ident):
			key = p.advance().Text
		case p.at(lexer.String):
			key = p.advance().Text
		default:
			return nil, p.errAt(p.peek(), "expected a map key, found %s", p.peek().Kind)
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, v)
		if p.at(lexer.Comma) {
			p.advance()
			if p.at(lexer.RBrace) {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.MapLit{Keys: keys, Values: values, P: astPos(start.Line, start.Col)}, nil
}

// ---- Entity expressions (valid only inside ~ATH(...)) ----

func (p *Parser) parseEntityExpr() (ast.EntityExpr, error) { return p.parseEntityOr() }

func (p *Parser) parseEntityOr() (ast.EntityExpr, error) {
	left, err := p.parseEntityAnd()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.OrOr) {
		tok := p.advance()
		right, err := p.parseEntityAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.EntityOr{Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseEntityAnd() (ast.EntityExpr, error) {
	left, err := p.parseEntityNot()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.AndAnd) {
		tok := p.advance()
		right, err := p.parseEntityNot()
		if err != nil {
			return nil, err
		}
		left = &ast.EntityAnd{Left: left, Right: right, P: astPos(tok.Line, tok.Col)}
	}
	return left, nil
}

func (p *Parser) parseEntityNot() (ast.EntityExpr, error) {
	if p.at(lexer.Bang) {
		tok := p.advance()
		operand, err := p.parseEntityNot()
		if err != nil {
			return nil, err
		}
		return &ast.EntityNot{Operand: operand, P: astPos(tok.Line, tok.Col)}, nil
	}
	return p.parseEntityPrimary()
}

func (p *Parser) parseEntityPrimary() (ast.EntityExpr, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.KwThis:
		p.advance()
		return &ast.EntityIdent{Name: "THIS", P: astPos(tok.Line, tok.Col)}, nil
	case lexer.Ident:
		p.advance()
		return &ast.EntityIdent{Name: tok.Text, P: astPos(tok.Line, tok.Col)}, nil
	case lexer.LParen:
		p.advance()
		e, err := p.parseEntityExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errAt(tok, "expected an entity expression, found %s", tok.Kind)
	}
}
