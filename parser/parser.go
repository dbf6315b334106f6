// Package parser implements the recursive-descent parser of spec.md §4.2:
// statement dispatch on the leading token, postfix-then-lookahead
// disambiguation of DIE/assignment/expression statements, precedence-climbing
// expression grammar, and the separate entity-expression sub-grammar valid
// only inside ~ATH(...).
package parser

import (
	"github.com/robinpie/ath/aerr"
	"github.com/robinpie/ath/ast"
	"github.com/robinpie/ath/lexer"
)

// Parser holds the full token stream and a cursor into it.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse lexes and parses src into a Program, or returns the first lexer or
// parser error encountered.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, aerr.New(aerr.KindLex, aerr.Position{Line: le.Line, Col: le.Col}, "%s", le.Msg)
		}
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func astPos(line, col int) ast.Position { return ast.Position{Line: line, Col: col} }

func (p *Parser) peek() lexer.Token { return p.toks[p.pos] }

func (p *Parser) at(k lexer.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) errAt(t lexer.Token, format string, args ...interface{}) error {
	return aerr.New(aerr.KindParse, astPos(t.Line, t.Col), format, args...)
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if !p.at(k) {
		return lexer.Token{}, p.errAt(p.peek(), "expected %s, found %s", k, p.peek().Kind)
	}
	return p.advance(), nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	var stmts []ast.Statement
	for !p.at(lexer.EOF) {
		s, err := p.parseStatement(lexer.EOF, false)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &ast.Program{Statements: stmts}, nil
}

// parseBlock consumes an already-open '{' body up to and including its
// closing '}'.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.at(lexer.RBrace) {
		s, err := p.parseStatement(lexer.RBrace, false)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseExecuteBody consumes an already-open '(' EXECUTE body up to and
// including its closing ')'. At least one statement is required; the final
// statement, if an expression statement, may omit its trailing semicolon.
func (p *Parser) parseExecuteBody() ([]ast.Statement, error) {
	if p.at(lexer.RParen) {
		return nil, p.errAt(p.peek(), "EXECUTE() requires at least one statement")
	}
	var stmts []ast.Statement
	for !p.at(lexer.RParen) {
		s, err := p.parseStatement(lexer.RParen, true)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseStatement dispatches on the leading token. end and allowNoSemi are
// threaded through to the expression-statement path only, so the EXECUTE
// trailing-semicolon leniency (spec.md §9) never leaks into ordinary blocks.
func (p *Parser) parseStatement(end lexer.Kind, allowNoSemi bool) (ast.Statement, error) {
	switch p.peek().Kind {
	case lexer.KwImport:
		return p.parseImport()
	case lexer.KwBifurcate:
		return p.parseBifurcate()
	case lexer.KwAth:
		return p.parseAth()
	case lexer.KwBirth, lexer.KwEntomb:
		return p.parseVarDecl()
	case lexer.KwRite:
		return p.parseRiteDef()
	case lexer.KwShould:
		return p.parseConditional()
	case lexer.KwAttempt:
		return p.parseAttemptSalvage()
	case lexer.KwCondemn:
		return p.parseCondemn()
	case lexer.KwBequeath:
		return p.parseBequeath()
	case lexer.Ident, lexer.KwThis, lexer.LBracket:
		return p.parseIdentLeadStatement(end, allowNoSemi)
	default:
		return p.parseExprStatement(end, allowNoSemi)
	}
}

func (p *Parser) parseImport() (ast.Statement, error) {
	start := p.advance() // import
	kindTok := p.advance()
	var kind string
	switch kindTok.Kind {
	case lexer.KwTimer:
		kind = "timer"
	case lexer.KwProcess:
		kind = "process"
	case lexer.KwConnection:
		kind = "connection"
	case lexer.KwWatcher:
		kind = "watcher"
	default:
		return nil, p.errAt(kindTok, "expected timer, process, connection, or watcher, found %s", kindTok.Kind)
	}
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
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
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Kind: kind, Name: nameTok.Text, Args: args, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseBifurcate() (ast.Statement, error) {
	start := p.advance() // bifurcate
	srcTok := p.advance()
	var source string
	switch srcTok.Kind {
	case lexer.KwThis:
		source = "THIS"
	case lexer.Ident:
		source = srcTok.Text
	default:
		return nil, p.errAt(srcTok, "expected an entity name or THIS, found %s", srcTok.Kind)
	}
	if _, err := p.expect(lexer.LBracket); err != nil {
		return nil, err
	}
	leftTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Comma); err != nil {
		return nil, err
	}
	rightTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.BifurcateStmt{Source: source, Left: leftTok.Text, Right: rightTok.Text, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseAth() (ast.Statement, error) {
	start := p.advance() // ~ATH
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	entityExpr, err := p.parseEntityExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwExecute); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	exec, err := p.parseExecuteBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.AthStmt{Entity: entityExpr, Body: body, Execute: exec, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	kwTok := p.advance() // BIRTH or ENTOMB
	constant := kwTok.Kind == lexer.KwEntomb
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	var val ast.Expr
	if p.at(lexer.KwWith) {
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: nameTok.Text, Value: val, Constant: constant, P: astPos(kwTok.Line, kwTok.Col)}, nil
}

func (p *Parser) parseRiteDef() (ast.Statement, error) {
	start := p.advance() // RITE
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []string
	if !p.at(lexer.RParen) {
		for {
			pt, err := p.expect(lexer.Ident)
			if err != nil {
				return nil, err
			}
			params = append(params, pt.Text)
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
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.RiteDef{Name: nameTok.Text, Params: params, Body: body, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseConditional() (ast.Statement, error) {
	start := p.advance() // SHOULD
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseStmts []ast.Statement
	if p.at(lexer.KwLest) {
		p.advance()
		if _, err := p.expect(lexer.LBrace); err != nil {
			return nil, err
		}
		elseStmts, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Conditional{Cond: cond, Then: then, Else: elseStmts, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseAttemptSalvage() (ast.Statement, error) {
	start := p.advance() // ATTEMPT
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	try, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwSalvage); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	catch, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.AttemptSalvage{Try: try, ErrName: nameTok.Text, Catch: catch, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseCondemn() (ast.Statement, error) {
	start := p.advance() // CONDEMN
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Condemn{Value: val, P: astPos(start.Line, start.Col)}, nil
}

func (p *Parser) parseBequeath() (ast.Statement, error) {
	start := p.advance() // BEQUEATH
	var val ast.Expr
	if !p.at(lexer.Semicolon) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Bequeath{Value: val, P: astPos(start.Line, start.Col)}, nil
}

// parseIdentLeadStatement disambiguates DIE / assignment / expression
// statements that start with an identifier, THIS, or '[' (spec.md §4.2).
func (p *Parser) parseIdentLeadStatement(end lexer.Kind, allowNoSemi bool) (ast.Statement, error) {
	if stmt, ok, err := p.tryParseDieStmt(); err != nil {
		return nil, err
	} else if ok {
		return stmt, nil
	}

	exprStart := p.peek()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.Assign) {
		p.advance()
		if !isLvalue(expr) {
			return nil, p.errAt(exprStart, "invalid assignment target")
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.Assignment{Target: expr, Value: val, P: astPos(exprStart.Line, exprStart.Col)}, nil
	}
	return p.finishExprStatement(expr, exprStart, end, allowNoSemi)
}

func isLvalue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Index, *ast.Member:
		return true
	default:
		return false
	}
}

func (p *Parser) parseExprStatement(end lexer.Kind, allowNoSemi bool) (ast.Statement, error) {
	start := p.peek()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.finishExprStatement(expr, start, end, allowNoSemi)
}

func (p *Parser) finishExprStatement(expr ast.Expr, start lexer.Token, end lexer.Kind, allowNoSemi bool) (ast.Statement, error) {
	if p.at(lexer.Semicolon) {
		p.advance()
	} else if !(allowNoSemi && p.at(end)) {
		return nil, p.errAt(p.peek(), "expected ;, found %s", p.peek().Kind)
	}
	return &ast.ExprStmt{Value: expr, P: astPos(start.Line, start.Col)}, nil
}

// tryParseDieStmt attempts the DIE-target grammar at the current position.
// It rewinds and reports ok=false if the prefix does not resolve to
// TARGET.DIE(); once '.DIE(' has matched, any further failure is a real
// parse error since no other statement form can follow that prefix.
func (p *Parser) tryParseDieStmt() (ast.Statement, bool, error) {
	start := p.pos
	target, err := p.parseDieTarget()
	if err != nil {
		p.pos = start
		return nil, false, nil
	}
	if !p.at(lexer.Dot) {
		p.pos = start
		return nil, false, nil
	}
	p.advance() // .
	if !p.at(lexer.KwDie) {
		p.pos = start
		return nil, false, nil
	}
	p.advance() // DIE
	if !p.at(lexer.LParen) {
		p.pos = start
		return nil, false, nil
	}
	p.advance()
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, true, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, true, err
	}
	return &ast.DieStmt{Target: target, P: target.Pos()}, true, nil
}

func (p *Parser) parseDieTarget() (ast.DieTarget, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.KwThis:
		p.advance()
		return &ast.DieIdent{Name: "THIS", P: astPos(tok.Line, tok.Col)}, nil
	case lexer.Ident:
		p.advance()
		return &ast.DieIdent{Name: tok.Text, P: astPos(tok.Line, tok.Col)}, nil
	case lexer.LBracket:
		p.advance()
		left, err := p.parseDieTarget()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Comma); err != nil {
			return nil, err
		}
		right, err := p.parseDieTarget()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return &ast.DiePair{Left: left, Right: right, P: astPos(tok.Line, tok.Col)}, nil
	default:
		return nil, p.errAt(tok, "expected a DIE target, found %s", tok.Kind)
	}
}
