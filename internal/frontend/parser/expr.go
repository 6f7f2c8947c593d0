package parser

import (
	"fmt"
	"strings"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

// Expression nesting beyond this depth is rejected rather than risking
// stack exhaustion on pathological input.
const maxExprDepth = 100

// parseExpr is the entry point of the precedence cascade. Each tier
// parses the next-tighter tier and loops on its own operators, so
// precedence falls directly out of the call structure. Subexpressions
// re-enter here (parens, indexes, call arguments), so the counter
// bounds every recursion path except unary chains, which parseUnary
// counts itself.
func (p *Parser) parseExpr() ast.Expression {
	if p.exprDepth >= maxExprDepth {
		return p.nestingTooDeep()
	}
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	target := p.parseTernary()

	if p.match(tokens.EQUALS_TOKEN, tokens.PLUS_EQUALS_TOKEN, tokens.MINUS_EQUALS_TOKEN,
		tokens.MUL_EQUALS_TOKEN, tokens.DIV_EQUALS_TOKEN, tokens.MOD_EQUALS_TOKEN) {
		op := p.advance()
		value := p.parseAssignment()

		if !isAssignTarget(target) {
			p.diagnostics.Add(
				diagnostics.NewError("invalid assignment target").
					WithCode(diagnostics.ErrInvalidAssignTarget).
					WithPrimaryLabel(p.safeLoc(target), "cannot assign to this expression").
					WithHelp("only variables and member accesses can be assigned to"),
			)
			return p.invalidExprAt(p.safeLoc(target))
		}

		return &ast.AssignExpr{
			Target:   target,
			Op:       op,
			Value:    value,
			Location: *source.Merge(p.safeLoc(target), p.safeLoc(value)),
		}
	}

	return target
}

func isAssignTarget(e ast.Expression) bool {
	switch t := e.(type) {
	case *ast.IdentifierExpr:
		return true
	case *ast.SelectorExpr:
		return true
	case *ast.IndexExpr:
		return isAssignTarget(t.X)
	default:
		return false
	}
}

func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseLogicalOr()

	if p.match(tokens.QUESTION_TOKEN) {
		p.advance()
		then := p.parseExpr()
		p.expect(tokens.COLON_TOKEN)
		// right associative: a ? b : c ? d : e nests in the else arm
		els := p.parseTernary()
		return &ast.TernaryExpr{
			Cond:     cond,
			Then:     then,
			Else:     els,
			Location: *source.Merge(p.safeLoc(cond), p.safeLoc(els)),
		}
	}

	return cond
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.match(tokens.OR_TOKEN) {
		op := p.advance()
		right := p.parseLogicalAnd()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseBitOr()
	for p.match(tokens.AND_TOKEN) {
		op := p.advance()
		right := p.parseBitOr()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.match(tokens.BIT_OR_TOKEN) {
		op := p.advance()
		right := p.parseBitXor()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.match(tokens.BIT_XOR_TOKEN) {
		op := p.advance()
		right := p.parseBitAnd()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseEquality()
	for p.match(tokens.BIT_AND_TOKEN) {
		op := p.advance()
		right := p.parseEquality()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.match(tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN) {
		op := p.advance()
		right := p.parseComparison()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseShift()
	for p.match(tokens.LESS_TOKEN, tokens.GREATER_TOKEN, tokens.LESS_EQUAL_TOKEN, tokens.GREATER_EQUAL_TOKEN) {
		op := p.advance()
		right := p.parseShift()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for p.match(tokens.SHIFT_LEFT_TOKEN, tokens.SHIFT_RIGHT_TOKEN) {
		op := p.advance()
		right := p.parseAdditive()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.match(tokens.PLUS_TOKEN, tokens.MINUS_TOKEN) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary(0)
	for p.match(tokens.MUL_TOKEN, tokens.DIV_TOKEN, tokens.MOD_TOKEN) {
		op := p.advance()
		right := p.parseUnary(0)
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) binary(left ast.Expression, op tokens.Token, right ast.Expression) ast.Expression {
	return &ast.BinaryExpr{
		X:        left,
		Op:       op,
		Y:        right,
		Location: *source.Merge(p.safeLoc(left), p.safeLoc(right)),
	}
}

func (p *Parser) nestingTooDeep() ast.Expression {
	tok := p.peek()
	p.diagnostics.Add(
		diagnostics.NewError("expression is nested too deeply").
			WithCode(diagnostics.ErrMaxNestingDepth).
			WithPrimaryLabel(source.NewLocation(&p.filepath, &tok.Start, &tok.End), "").
			WithHelp("simplify the expression"),
	)
	p.synchronize()
	return p.invalidExpr()
}

func (p *Parser) parseUnary(depth int) ast.Expression {
	if depth > maxExprDepth {
		return p.nestingTooDeep()
	}

	switch p.peek().Kind {
	case tokens.NOT_TOKEN, tokens.MINUS_TOKEN, tokens.BIT_NOT_TOKEN:
		op := p.advance()
		operand := p.parseUnary(depth + 1)
		return &ast.UnaryExpr{
			Op:       op,
			X:        operand,
			Location: *source.Merge(source.NewLocation(&p.filepath, &op.Start, &op.End), p.safeLoc(operand)),
		}
	case tokens.PLUS_PLUS_TOKEN, tokens.MINUS_MINUS_TOKEN:
		op := p.advance()
		operand := p.parseUnary(depth + 1)
		return &ast.PrefixExpr{
			Op:       op,
			X:        operand,
			Location: *source.Merge(source.NewLocation(&p.filepath, &op.Start, &op.End), p.safeLoc(operand)),
		}
	}

	return p.parsePostfix(depth)
}

// parsePostfix parses a primary expression and then any chain of call,
// index, selector, projection, cast, struct literal, and increment or
// decrement suffixes.
func (p *Parser) parsePostfix(depth int) ast.Expression {
	expr := p.parsePrimary(depth)

	for {
		switch p.peek().Kind {
		case tokens.OPEN_PAREN:
			expr = p.parseCall(expr)
		case tokens.OPEN_BRACKET:
			p.advance()
			index := p.parseExpr()
			p.expect(tokens.CLOSE_BRACKET)
			expr = &ast.IndexExpr{
				X:        expr,
				Index:    index,
				Location: p.mergeToPrevious(expr),
			}
		case tokens.DOT_TOKEN:
			// `.` then `(` is always a projection, never a call
			if p.peekAhead(1).Kind == tokens.OPEN_PAREN {
				expr = p.parseProjection(expr)
			} else {
				p.advance()
				field := p.parseIdentifier()
				expr = &ast.SelectorExpr{
					X:        expr,
					Field:    field,
					Location: p.mergeToPrevious(expr),
				}
			}
		case tokens.SCOPE_TOKEN:
			// Enum::Case and Type::CONST reuse the selector node; the
			// checker distinguishes them by the resolved receiver.
			p.advance()
			field := p.parseIdentifier()
			expr = &ast.SelectorExpr{
				X:        expr,
				Field:    field,
				Location: p.mergeToPrevious(expr),
			}
		case tokens.AS_TOKEN:
			p.advance()
			target := p.parseType()
			expr = &ast.CastExpr{
				X:        expr,
				Target:   target,
				Location: p.mergeToPrevious(expr),
			}
		case tokens.PLUS_PLUS_TOKEN, tokens.MINUS_MINUS_TOKEN:
			op := p.advance()
			expr = &ast.PostfixExpr{
				Op:       op,
				X:        expr,
				Location: p.mergeToPrevious(expr),
			}
		case tokens.OPEN_CURLY:
			ident, ok := expr.(*ast.IdentifierExpr)
			if ok && p.looksLikeStructLiteral() {
				expr = p.parseStructLiteral(ident)
				continue
			}
			return expr
		default:
			return expr
		}
	}
}

// looksLikeStructLiteral checks the raw lookahead for `{ ident :` or
// `{}` so that `if (x) {` never swallows the statement block.
func (p *Parser) looksLikeStructLiteral() bool {
	if p.peekAhead(1).Kind == tokens.CLOSE_CURLY {
		return true
	}
	return p.peekAhead(1).Kind == tokens.IDENTIFIER_TOKEN && p.peekAhead(2).Kind == tokens.COLON_TOKEN
}

func (p *Parser) parseStructLiteral(typeName *ast.IdentifierExpr) ast.Expression {
	p.advance() // {
	lit := &ast.StructLiteralExpr{TypeName: typeName}

	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		name := p.parseIdentifier()
		p.expect(tokens.COLON_TOKEN)
		value := p.parseExpr()
		lit.Fields = append(lit.Fields, ast.FieldInit{Name: name, Value: value})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
		p.advance()
	}
	p.expect(tokens.CLOSE_CURLY)

	lit.Location = *source.Merge(typeName.Loc(), p.previousLoc())
	return lit
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	p.advance() // (
	call := &ast.CallExpr{Fun: callee}

	for !p.match(tokens.CLOSE_PAREN) && !p.isAtEnd() {
		call.Args = append(call.Args, p.parseExpr())
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
		p.advance()
	}
	p.expect(tokens.CLOSE_PAREN)

	call.Location = p.mergeToPrevious(callee)
	return call
}

// parseProjection parses `value.(a, b, c)`: a narrowing of a struct or
// class value to a subset of its fields. Anything other than a plain
// identifier list is rejected as a whole.
func (p *Parser) parseProjection(receiver ast.Expression) ast.Expression {
	p.advance() // .
	open := p.advance()
	_ = open // (

	proj := &ast.ProjectionExpr{X: receiver}
	valid := true

	for !p.match(tokens.CLOSE_PAREN) && !p.isAtEnd() {
		if p.peek().Kind != tokens.IDENTIFIER_TOKEN {
			valid = false
			break
		}
		proj.Fields = append(proj.Fields, p.parseIdentifier())
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
		p.advance()
	}

	if !valid || len(proj.Fields) == 0 {
		loc := source.Merge(p.safeLoc(receiver), p.currentLoc())
		p.diagnostics.Add(
			diagnostics.NewError("invalid projection").
				WithCode(diagnostics.ErrInvalidProjection).
				WithPrimaryLabel(loc, "expected a comma separated list of field names").
				WithHelp("write value.(field1, field2)"),
		)
		p.synchronize()
		return p.invalidExprAt(loc)
	}
	p.expect(tokens.CLOSE_PAREN)

	proj.Location = p.mergeToPrevious(receiver)
	return proj
}

func (p *Parser) parsePrimary(depth int) ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case tokens.NUMBER_TOKEN:
		p.advance()
		num := &ast.NumberLiteralExpr{
			Raw:      tok.Value,
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}
		if tok.Numeric != nil {
			num.Value = *tok.Numeric
		}
		return num

	case tokens.STRING_TOKEN:
		p.advance()
		return &ast.StringLiteralExpr{
			Value:    tok.Value,
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}

	case tokens.CHAR_TOKEN:
		p.advance()
		r := rune(0)
		for _, c := range tok.Value {
			r = c
			break
		}
		return &ast.CharLiteralExpr{
			Value:    r,
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}

	case tokens.TRUE_TOKEN, tokens.FALSE_TOKEN:
		p.advance()
		return &ast.BoolLiteralExpr{
			Value:    tok.Kind == tokens.TRUE_TOKEN,
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}

	case tokens.NULL_TOKEN:
		p.advance()
		return &ast.NullLiteralExpr{
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}

	case tokens.IDENTIFIER_TOKEN:
		return p.parseIdentifier()

	case tokens.OPEN_PAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(tokens.CLOSE_PAREN)
		return inner

	case tokens.OPEN_BRACKET:
		return p.parseArrayLiteral(depth)

	default:
		if tokens.IsBuiltinType(tok.Value) {
			// builtin type names appear as expressions in metadata
			// accesses like i32::MAX
			p.advance()
			return &ast.IdentifierExpr{
				Name:     tok.Value,
				Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
			}
		}
		p.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("expected an expression, found %s", describeToken(tok))).
				WithCode(diagnostics.ErrInvalidExpression).
				WithPrimaryLabel(source.NewLocation(&p.filepath, &tok.Start, &tok.End), ""),
		)
		p.synchronize()
		return p.invalidExpr()
	}
}

func (p *Parser) parseArrayLiteral(depth int) ast.Expression {
	open := p.advance() // [
	lit := &ast.ArrayLiteralExpr{}

	for !p.match(tokens.CLOSE_BRACKET) && !p.isAtEnd() {
		lit.Elements = append(lit.Elements, p.parseExpr())
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
		p.advance()
	}
	p.expect(tokens.CLOSE_BRACKET)

	lit.Location = p.makeLocation(open.Start)
	return lit
}

func describeToken(tok tokens.Token) string {
	switch tok.Kind {
	case tokens.EOF_TOKEN:
		return "end of file"
	default:
		if strings.TrimSpace(tok.Value) == "" {
			return string(tok.Kind)
		}
		return fmt.Sprintf("%q", tok.Value)
	}
}

func (p *Parser) invalidExprAt(loc *source.Location) *ast.InvalidExpr {
	return &ast.InvalidExpr{Location: *loc}
}

func (p *Parser) previousLoc() *source.Location {
	tok := p.previous()
	return source.NewLocation(&p.filepath, &tok.Start, &tok.End)
}

func (p *Parser) currentLoc() *source.Location {
	tok := p.peek()
	return source.NewLocation(&p.filepath, &tok.Start, &tok.End)
}

// mergeToPrevious spans a node from an existing child to the token just
// consumed.
func (p *Parser) mergeToPrevious(from ast.Expression) source.Location {
	return *source.Merge(p.safeLoc(from), p.previousLoc())
}
