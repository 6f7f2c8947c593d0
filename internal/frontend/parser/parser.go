package parser

import (
	"fmt"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

// Parser holds temporary state while building an AST from one token
// stream. All failures become diagnostics; the parser never panics on
// user input and recovery keeps it moving forward.
type Parser struct {
	tokens      []tokens.Token
	current     int
	diagnostics *diagnostics.Bag
	filepath    string
	exprDepth   int
}

// Parse consumes a token stream and returns the parsed file. The token
// slice must be EOF-terminated (the lexer guarantees this).
func Parse(toks []tokens.Token, filepath string, diag *diagnostics.Bag) *ast.File {
	p := &Parser{
		tokens:      toks,
		current:     0,
		diagnostics: diag,
		filepath:    filepath,
	}
	return p.parseFile()
}

func (p *Parser) parseFile() *ast.File {
	file := &ast.File{
		Filename: p.filepath,
		Decls:    []ast.Declaration{},
	}

	if p.match(tokens.MODULE_TOKEN) {
		file.Module = p.parseModuleDecl()
	}
	for p.match(tokens.IMPORT_TOKEN) {
		if imp := p.parseImport(); imp != nil {
			file.Imports = append(file.Imports, imp)
		}
	}

	for !p.isAtEnd() {
		before := p.current
		decl := p.parseTopLevel()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		}
		// a malformed construct must never stall the parser
		if p.current == before {
			p.advance()
		}
	}

	return file
}

func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	start := p.advance() // mod
	name := p.parseIdentifier()
	p.expect(tokens.SEMICOLON_TOKEN)
	return &ast.ModuleDecl{
		Name:     name,
		Location: p.makeLocation(start.Start),
	}
}

// parseImport parses `import a.b.c;` and `import a.b::{x, y as z};`
func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.advance() // import

	segments := []string{}
	seg := p.expect(tokens.IDENTIFIER_TOKEN)
	segments = append(segments, seg.Value)
	for p.match(tokens.DOT_TOKEN) {
		p.advance()
		seg = p.expect(tokens.IDENTIFIER_TOKEN)
		segments = append(segments, seg.Value)
	}

	items := []ast.ImportItem{}
	if p.match(tokens.SCOPE_TOKEN) {
		p.advance()
		p.expect(tokens.OPEN_CURLY)
		for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
			name := p.parseIdentifier()
			item := ast.ImportItem{Name: name}
			if p.match(tokens.AS_TOKEN) {
				p.advance()
				item.Alias = p.parseIdentifier()
			}
			items = append(items, item)
			if !p.match(tokens.COMMA_TOKEN) {
				break
			}
			p.advance()
		}
		p.expect(tokens.CLOSE_CURLY)
	}
	p.expect(tokens.SEMICOLON_TOKEN)

	return &ast.ImportDecl{
		Segments: segments,
		Items:    items,
		Location: p.makeLocation(start.Start),
	}
}

// parseTopLevel parses one declaration, handling the optional leading
// visibility and final modifiers.
func (p *Parser) parseTopLevel() ast.Declaration {
	start := p.peek()
	vis := ast.VisDefault
	switch start.Kind {
	case tokens.PUBLIC_TOKEN:
		vis = ast.VisPublic
		p.advance()
	case tokens.PRIVATE_TOKEN:
		vis = ast.VisPrivate
		p.advance()
	case tokens.PROTECTED_TOKEN:
		vis = ast.VisProtected
		p.advance()
	}
	isFinal := false
	if p.match(tokens.FINAL_TOKEN) {
		isFinal = true
		p.advance()
	}

	switch p.peek().Kind {
	case tokens.FUNCTION_TOKEN:
		return p.parseFuncDecl(vis, false)
	case tokens.CLASS_TOKEN:
		return p.parseClassDecl(vis)
	case tokens.STRUCT_TOKEN:
		return p.parseStructDecl(vis)
	case tokens.ENUM_TOKEN:
		return p.parseEnumDecl(vis)
	case tokens.LET_TOKEN, tokens.VAR_TOKEN:
		return p.parseGlobalVarDecl(vis, isFinal)
	case tokens.IMPORT_TOKEN:
		imp := p.parseImport()
		p.diagnostics.Add(
			diagnostics.NewError("import statements must appear before other declarations").
				WithCode(diagnostics.ErrInvalidDeclaration).
				WithPrimaryLabel(imp.Loc(), "cannot import here"),
		)
		return nil
	default:
		tok := p.peek()
		if vis != ast.VisDefault || isFinal {
			p.diagnostics.Add(
				diagnostics.NewError("modifier is not followed by a declaration").
					WithCode(diagnostics.ErrDanglingModifier).
					WithPrimaryLabel(source.NewLocation(&p.filepath, &tok.Start, &tok.End), "expected fn, class, struct, enum, let, or var").
					WithHelp("remove the modifier or add a declaration after it"),
			)
		} else {
			p.error(fmt.Sprintf("unexpected token %q at top level", tok.Value))
		}
		p.synchronize()
		return &ast.InvalidDecl{Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End)}
	}
}

// parseFuncDecl parses fn name(p: T, ...) -> T { ... } as well as
// builder declarations inside classes and enums.
func (p *Parser) parseFuncDecl(vis ast.Visibility, isBuilder bool) *ast.FuncDecl {
	start := p.advance() // fn or builder

	fn := &ast.FuncDecl{Visibility: vis, IsBuilder: isBuilder}
	if !isBuilder {
		fn.Name = p.parseIdentifier()
	}

	p.expect(tokens.OPEN_PAREN)
	for !p.match(tokens.CLOSE_PAREN) && !p.isAtEnd() {
		name := p.parseIdentifier()
		p.expect(tokens.COLON_TOKEN)
		typ := p.parseType()
		fn.Params = append(fn.Params, ast.Param{Name: name, Type: typ})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
		p.advance()
	}
	p.expect(tokens.CLOSE_PAREN)

	if p.match(tokens.ARROW_TOKEN) {
		p.advance()
		fn.ReturnType = p.parseType()
	}

	fn.Body = p.parseBlock()
	fn.Location = p.makeLocation(start.Start)
	return fn
}

func (p *Parser) parseClassDecl(vis ast.Visibility) *ast.ClassDecl {
	start := p.advance() // class
	decl := &ast.ClassDecl{Visibility: vis, Name: p.parseIdentifier()}

	p.expect(tokens.OPEN_CURLY)
	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current
		p.parseMember(decl.Name.Name, func(f *ast.FieldDecl) {
			decl.Fields = append(decl.Fields, f)
		}, func(fn *ast.FuncDecl) {
			if fn.IsBuilder {
				decl.Builders = append(decl.Builders, fn)
			} else {
				decl.Methods = append(decl.Methods, fn)
			}
		})
		if p.current == before {
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_CURLY)

	decl.Location = p.makeLocation(start.Start)
	return decl
}

func (p *Parser) parseStructDecl(vis ast.Visibility) *ast.StructDecl {
	start := p.advance() // struct
	decl := &ast.StructDecl{Visibility: vis, Name: p.parseIdentifier()}

	p.expect(tokens.OPEN_CURLY)
	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current
		p.parseMember(decl.Name.Name, func(f *ast.FieldDecl) {
			decl.Fields = append(decl.Fields, f)
		}, func(fn *ast.FuncDecl) {
			if fn.IsBuilder {
				p.diagnostics.Add(
					diagnostics.NewError("structs cannot declare builders").
						WithCode(diagnostics.ErrInvalidDeclaration).
						WithPrimaryLabel(fn.Loc(), "builder not allowed here").
						WithHelp("construct structs with a literal: " + decl.Name.Name + "{...}"),
				)
			} else {
				decl.Methods = append(decl.Methods, fn)
			}
		})
		if p.current == before {
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_CURLY)

	decl.Location = p.makeLocation(start.Start)
	return decl
}

// parseMember parses one field, method, or builder inside a class or
// struct body. Fields use the arrow form: name -> type;
func (p *Parser) parseMember(owner string, onField func(*ast.FieldDecl), onFunc func(*ast.FuncDecl)) {
	vis := ast.VisDefault
	switch p.peek().Kind {
	case tokens.PUBLIC_TOKEN:
		vis = ast.VisPublic
		p.advance()
	case tokens.PRIVATE_TOKEN:
		vis = ast.VisPrivate
		p.advance()
	case tokens.PROTECTED_TOKEN:
		vis = ast.VisProtected
		p.advance()
	}
	isFinal := false
	if p.match(tokens.FINAL_TOKEN) {
		isFinal = true
		p.advance()
	}

	switch p.peek().Kind {
	case tokens.FUNCTION_TOKEN:
		onFunc(p.parseFuncDecl(vis, false))
	case tokens.BUILDER_TOKEN:
		onFunc(p.parseFuncDecl(vis, true))
	case tokens.IDENTIFIER_TOKEN:
		start := p.peek()
		name := p.parseIdentifier()
		p.expect(tokens.ARROW_TOKEN)
		typ := p.parseType()
		p.expect(tokens.SEMICOLON_TOKEN)
		onField(&ast.FieldDecl{
			Visibility: vis,
			IsFinal:    isFinal,
			Name:       name,
			Type:       typ,
			Location:   p.makeLocation(start.Start),
		})
	default:
		p.error(fmt.Sprintf("unexpected token %q in %s body", p.peek().Value, owner))
		p.synchronize()
	}
}

func (p *Parser) parseEnumDecl(vis ast.Visibility) *ast.EnumDecl {
	start := p.advance() // enum
	decl := &ast.EnumDecl{Visibility: vis, Name: p.parseIdentifier()}

	p.expect(tokens.OPEN_CURLY)
	for !p.match(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current
		if p.match(tokens.BUILDER_TOKEN) {
			builder := p.parseFuncDecl(ast.VisDefault, true)
			if decl.Builder != nil {
				p.diagnostics.Add(
					diagnostics.NewError("enum declares more than one builder").
						WithCode(diagnostics.ErrInvalidDeclaration).
						WithPrimaryLabel(builder.Loc(), "second builder here").
						WithSecondaryLabel(decl.Builder.Loc(), "first builder here"),
				)
			} else {
				decl.Builder = builder
			}
		} else if p.match(tokens.IDENTIFIER_TOKEN) {
			c := ast.EnumCase{Name: p.parseIdentifier()}
			if p.match(tokens.OPEN_PAREN) {
				p.advance()
				for !p.match(tokens.CLOSE_PAREN) && !p.isAtEnd() {
					c.Args = append(c.Args, p.parseExpr())
					if !p.match(tokens.COMMA_TOKEN) {
						break
					}
					p.advance()
				}
				p.expect(tokens.CLOSE_PAREN)
			}
			decl.Cases = append(decl.Cases, c)
			if p.match(tokens.COMMA_TOKEN) || p.match(tokens.SEMICOLON_TOKEN) {
				p.advance()
			}
		} else {
			p.error(fmt.Sprintf("unexpected token %q in enum body", p.peek().Value))
			p.synchronize()
		}
		if p.current == before {
			p.advance()
		}
	}
	p.expect(tokens.CLOSE_CURLY)

	decl.Location = p.makeLocation(start.Start)
	return decl
}

func (p *Parser) parseGlobalVarDecl(vis ast.Visibility, isFinal bool) *ast.GlobalVarDecl {
	start := p.peek()
	isLet := p.advance().Kind == tokens.LET_TOKEN

	decl := &ast.GlobalVarDecl{
		Visibility: vis,
		IsFinal:    isFinal,
		IsLet:      isLet,
		Name:       p.parseIdentifier(),
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

// parseType parses a type annotation: zero or more [] prefixes, a named
// base type, and an optional ? suffix.
func (p *Parser) parseType() ast.TypeNode {
	start := p.peek()

	if p.match(tokens.OPEN_BRACKET) {
		p.advance()
		p.expect(tokens.CLOSE_BRACKET)
		elem := p.parseType()
		return &ast.ArrayTypeNode{
			Element:  elem,
			Location: p.makeLocation(start.Start),
		}
	}

	var base ast.TypeNode
	tok := p.peek()
	if tok.Kind == tokens.IDENTIFIER_TOKEN || tokens.IsBuiltinType(tok.Value) {
		p.advance()
		base = &ast.NamedType{
			Name:     tok.Value,
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}
	} else {
		p.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("expected a type, found %q", tok.Value)).
				WithCode(diagnostics.ErrMissingType).
				WithPrimaryLabel(source.NewLocation(&p.filepath, &tok.Start, &tok.End), ""),
		)
		base = &ast.NamedType{
			Name:     "<invalid>",
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}
	}

	if p.match(tokens.QUESTION_TOKEN) {
		p.advance()
		return &ast.NullableTypeNode{
			Inner:    base,
			Location: p.makeLocation(start.Start),
		}
	}
	return base
}

// ---------- token stream helpers ----------

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Kind == tokens.EOF_TOKEN
}

func (p *Parser) peek() tokens.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// peekAhead looks n tokens past the current one without consuming.
func (p *Parser) peekAhead(n int) tokens.Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() tokens.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() tokens.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	p.current++
	return p.tokens[p.current-1]
}

func (p *Parser) match(kinds ...tokens.TOKEN) bool {
	for _, kind := range kinds {
		if p.peek().Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind tokens.TOKEN) tokens.Token {
	if p.match(kind) {
		return p.advance()
	}

	if kind == tokens.SEMICOLON_TOKEN {
		// point at the end of the previous token as the likely spot
		prevTok := p.previous()
		loc := source.NewLocation(&p.filepath, &prevTok.End, &prevTok.End)
		p.diagnostics.Add(
			diagnostics.NewError("expected ';' at end of statement").
				WithCode(diagnostics.ErrMissingSemiCol).
				WithPrimaryLabel(loc, "add semicolon here"),
		)
		return p.peek()
	}

	p.error(fmt.Sprintf("unexpected token %q, expected %q", p.peek().Value, string(kind)))
	return p.peek()
}

func (p *Parser) error(msg string) {
	tok := p.peek()
	loc := source.NewLocation(&p.filepath, &tok.Start, &tok.End)
	p.diagnostics.Add(
		diagnostics.NewError(msg).
			WithCode(diagnostics.ErrUnexpectedToken).
			WithPrimaryLabel(loc, ""),
	)
}

// safeLoc gets the location of a node, falling back to the current token.
func (p *Parser) safeLoc(node ast.Node) *source.Location {
	if node == nil || node.Loc() == nil {
		tok := p.peek()
		return source.NewLocation(&p.filepath, &tok.Start, &tok.End)
	}
	return node.Loc()
}

func (p *Parser) invalidExpr() *ast.InvalidExpr {
	tok := p.peek()
	return &ast.InvalidExpr{
		Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
	}
}

// makeLocation spans from start to the end of the last consumed token.
func (p *Parser) makeLocation(start source.Position) source.Location {
	end := p.previous().End
	return *source.NewLocation(&p.filepath, &start, &end)
}

func (p *Parser) parseIdentifier() *ast.IdentifierExpr {
	tok := p.peek()
	if tok.Kind != tokens.IDENTIFIER_TOKEN {
		p.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("expected identifier, found %q", tok.Value)).
				WithCode(diagnostics.ErrMissingIdentifier).
				WithPrimaryLabel(source.NewLocation(&p.filepath, &tok.Start, &tok.End), ""),
		)
		return &ast.IdentifierExpr{
			Name:     "<invalid>",
			Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
		}
	}
	p.advance()
	return &ast.IdentifierExpr{
		Name:     tok.Value,
		Location: *source.NewLocation(&p.filepath, &tok.Start, &tok.End),
	}
}

// synchronize discards tokens after a parse error until a statement
// terminator, a closing brace, or a token that can start a new
// declaration. It always consumes at least one token so recovery makes
// forward progress.
func (p *Parser) synchronize() {
	if p.isAtEnd() {
		return
	}
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == tokens.SEMICOLON_TOKEN {
			return
		}
		switch p.peek().Kind {
		case tokens.CLOSE_CURLY,
			tokens.CLASS_TOKEN, tokens.STRUCT_TOKEN, tokens.ENUM_TOKEN,
			tokens.FUNCTION_TOKEN, tokens.BUILDER_TOKEN,
			tokens.LET_TOKEN, tokens.VAR_TOKEN,
			tokens.IMPORT_TOKEN, tokens.RETURN_TOKEN,
			tokens.IF_TOKEN, tokens.WHILE_TOKEN, tokens.DO_TOKEN, tokens.LOOP_TOKEN,
			tokens.PUBLIC_TOKEN, tokens.PRIVATE_TOKEN, tokens.PROTECTED_TOKEN:
			return
		}
		p.advance()
	}
}
