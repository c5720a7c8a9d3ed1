package syntax

import (
	"pinsc/ast"
	"strconv"
)

// source = defs EOF
func (p *Parser) parseSource() ast.NodeID {
	start := p.tok.Span
	defs := p.parseDefs()

	if !p.got(TOK_EOF) {
		p.reject()
	}

	return p.add(&ast.Program{
		ASTBase: ast.NewASTBaseOver(start, p.tok.Span),
		Defs:    defs,
	})
}

// defs = def {';' def}
func (p *Parser) parseDefs() []ast.NodeID {
	defs := []ast.NodeID{p.parseDef()}

	for p.got(TOK_SEMI) {
		p.next()
		defs = append(defs, p.parseDef())
	}

	return defs
}

// def = type_def | fun_def | var_def
func (p *Parser) parseDef() ast.NodeID {
	switch p.tok.Kind {
	case TOK_TYP:
		return p.parseTypeDef()
	case TOK_FUN:
		return p.parseFunDef()
	case TOK_VAR:
		return p.parseVarDef()
	}

	if p.got(TOK_EOF) {
		p.reject()
	}

	p.rejectWithMsg("expected a definition but got `%s`", p.tok.Value)
	return ast.NoNode
}

// type_def = 'typ' id ':' type
func (p *Parser) parseTypeDef() ast.NodeID {
	start := p.want(TOK_TYP).Span
	name := p.want(TOK_IDENT)
	p.want(TOK_COLON)
	typ := p.parseType()

	return p.add(&ast.TypeDef{
		ASTBase: ast.NewASTBaseOver(start, p.spanOf(typ)),
		Name:    name.Value,
		Type:    typ,
	})
}

// var_def = 'var' id ':' type
func (p *Parser) parseVarDef() ast.NodeID {
	start := p.want(TOK_VAR).Span
	name := p.want(TOK_IDENT)
	p.want(TOK_COLON)
	typ := p.parseType()

	return p.add(&ast.VarDef{
		ASTBase: ast.NewASTBaseOver(start, p.spanOf(typ)),
		Name:    name.Value,
		Type:    typ,
	})
}

// fun_def = 'fun' id '(' [param {',' param}] ')' ':' type '=' expr
func (p *Parser) parseFunDef() ast.NodeID {
	start := p.want(TOK_FUN).Span
	name := p.want(TOK_IDENT)
	p.want(TOK_LPAREN)

	var params []ast.NodeID
	if !p.got(TOK_RPAREN) {
		params = append(params, p.parseParam())

		for p.got(TOK_COMMA) {
			p.next()
			params = append(params, p.parseParam())
		}
	}

	p.want(TOK_RPAREN)
	p.want(TOK_COLON)
	result := p.parseType()
	p.want(TOK_ASSIGN)
	body := p.parseExpr()

	return p.add(&ast.FunDef{
		ASTBase: ast.NewASTBaseOver(start, p.spanOf(body)),
		Name:    name.Value,
		Params:  params,
		Result:  result,
		Body:    body,
	})
}

// param = id ':' type
func (p *Parser) parseParam() ast.NodeID {
	name := p.want(TOK_IDENT)
	p.want(TOK_COLON)
	typ := p.parseType()

	return p.add(&ast.Param{
		ASTBase: ast.NewASTBaseOver(name.Span, p.spanOf(typ)),
		Name:    name.Value,
		Type:    typ,
	})
}

// -----------------------------------------------------------------------------

// type = id | 'integer' | 'logical' | 'string' | 'arr' '[' int ']' type
func (p *Parser) parseType() ast.NodeID {
	tok := p.tok

	switch tok.Kind {
	case TOK_IDENT:
		p.next()
		return p.add(&ast.TypeName{ASTBase: ast.NewASTBaseOn(tok.Span), Name: tok.Value})
	case TOK_INTEGER:
		p.next()
		return p.add(&ast.AtomType{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.AtomInteger})
	case TOK_LOGICAL:
		p.next()
		return p.add(&ast.AtomType{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.AtomLogical})
	case TOK_STRING:
		p.next()
		return p.add(&ast.AtomType{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.AtomString})
	case TOK_ARR:
		p.next()
		p.want(TOK_LBRACKET)

		sizeTok := p.tok
		p.assert(TOK_INTLIT)
		size, _ := strconv.Atoi(sizeTok.Value)
		if size <= 0 {
			p.rejectWithMsg("array length must be positive")
		}
		p.next()

		p.want(TOK_RBRACKET)
		elem := p.parseType()

		return p.add(&ast.ArrayType{
			ASTBase: ast.NewASTBaseOver(tok.Span, p.spanOf(elem)),
			Size:    size,
			Elem:    elem,
		})
	}

	p.rejectWithMsg("expected a type but got `%s`", tok.Value)
	return ast.NoNode
}
