package parser

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(tokens.OPEN_CURLY)
	block := &ast.Block{}

	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.current == before {
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_CURLY)

	block.Location = p.makeLocation(start.Start)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Kind {
	case tokens.OPEN_CURLY:
		return p.parseBlock()
	case tokens.LET_TOKEN, tokens.VAR_TOKEN:
		return p.parseVarDecl()
	case tokens.IF_TOKEN:
		return p.parseIf()
	case tokens.WHILE_TOKEN:
		return p.parseWhile()
	case tokens.DO_TOKEN:
		return p.parseDoWhile()
	case tokens.LOOP_TOKEN, tokens.REV_TOKEN:
		return p.parseLoop()
	case tokens.RETURN_TOKEN:
		return p.parseReturn()
	case tokens.BREAK_TOKEN:
		tok := p.advance()
		p.expect(tokens.SEMICOLON_TOKEN)
		return &ast.BreakStmt{Location: p.makeLocation(tok.Start)}
	case tokens.CONTINUE_TOKEN:
		tok := p.advance()
		p.expect(tokens.SEMICOLON_TOKEN)
		return &ast.ContinueStmt{Location: p.makeLocation(tok.Start)}
	case tokens.SEMICOLON_TOKEN:
		p.advance() // stray semicolon
		return nil
	default:
		start := p.peek()
		expr := p.parseExpr()
		p.expect(tokens.SEMICOLON_TOKEN)
		return &ast.ExpressionStmt{
			X:        expr,
			Location: p.makeLocation(start.Start),
		}
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	start := p.peek()
	isLet := p.advance().Kind == tokens.LET_TOKEN

	decl := &ast.VarDeclStmt{
		IsLet: isLet,
		Name:  p.parseIdentifier(),
	}
	if p.match(tokens.COLON_TOKEN) {
		p.advance()
		decl.TypeAnn = p.parseType()
	}
	if p.match(tokens.EQUALS_TOKEN) {
		p.advance()
		decl.Init = p.parseExpr()
	}
	p.expect(tokens.SEMICOLON_TOKEN)

	decl.Location = p.makeLocation(start.Start)
	return decl
}

func (p *Parser) parseIf() ast.Statement {
	start := p.advance() // if
	stmt := &ast.IfStmt{}

	p.expect(tokens.OPEN_PAREN)
	stmt.Cond = p.parseExpr()
	p.expect(tokens.CLOSE_PAREN)
	stmt.Then = p.parseBlock()

	for p.match(tokens.ELIF_TOKEN) {
		elifStart := p.advance()
		clause := ast.ElseIfClause{}
		p.expect(tokens.OPEN_PAREN)
		clause.Cond = p.parseExpr()
		p.expect(tokens.CLOSE_PAREN)
		clause.Then = p.parseBlock()
		clause.Location = p.makeLocation(elifStart.Start)
		stmt.Elifs = append(stmt.Elifs, clause)
	}

	if p.match(tokens.ELSE_TOKEN) {
		p.advance()
		stmt.Else = p.parseBlock()
	}

	stmt.Location = p.makeLocation(start.Start)
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.advance() // while
	stmt := &ast.WhileStmt{}

	p.expect(tokens.OPEN_PAREN)
	stmt.Cond = p.parseExpr()
	p.expect(tokens.CLOSE_PAREN)
	stmt.Body = p.parseBlock()

	stmt.Location = p.makeLocation(start.Start)
	return stmt
}

func (p *Parser) parseDoWhile() ast.Statement {
	start := p.advance() // do
	stmt := &ast.DoWhileStmt{}

	stmt.Body = p.parseBlock()
	p.expect(tokens.WHILE_TOKEN)
	p.expect(tokens.OPEN_PAREN)
	stmt.Cond = p.parseExpr()
	p.expect(tokens.CLOSE_PAREN)
	p.expect(tokens.SEMICOLON_TOKEN)

	stmt.Location = p.makeLocation(start.Start)
	return stmt
}

// parseLoop parses `[rev] loop (i: from..to [step expr]) { ... }`.
// `..=` makes the upper bound inclusive.
func (p *Parser) parseLoop() ast.Statement {
	start := p.peek()
	stmt := &ast.LoopStmt{}

	if p.match(tokens.REV_TOKEN) {
		stmt.Reverse = true
		p.advance()
	}
	p.expect(tokens.LOOP_TOKEN)

	p.expect(tokens.OPEN_PAREN)
	stmt.Var = p.parseIdentifier()
	p.expect(tokens.COLON_TOKEN)
	stmt.From = p.parseTernary()
	if p.match(tokens.RANGE_INCLUSIVE_TOKEN) {
		stmt.Inclusive = true
		p.advance()
	} else {
		p.expect(tokens.RANGE_TOKEN)
	}
	stmt.To = p.parseTernary()
	if p.match(tokens.STEP_TOKEN) {
		p.advance()
		stmt.Step = p.parseTernary()
	}
	p.expect(tokens.CLOSE_PAREN)
	stmt.Body = p.parseBlock()

	stmt.Location = p.makeLocation(start.Start)
	return stmt
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.advance() // ret
	stmt := &ast.ReturnStmt{}

	if !p.match(tokens.SEMICOLON_TOKEN) {
		stmt.Value = p.parseExpr()
	}
	p.expect(tokens.SEMICOLON_TOKEN)

	stmt.Location = p.makeLocation(start.Start)
	return stmt
}
