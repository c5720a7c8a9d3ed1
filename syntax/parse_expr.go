package syntax

import (
	"pinsc/ast"
	"pinsc/report"
)

// expr = or_expr ['{' 'where' defs '}']
func (p *Parser) parseExpr() ast.NodeID {
	expr := p.parseBinOpExpr()

	// where clauses can be chained: `e { where ... } { where ... }`
	for p.got(TOK_LBRACE) {
		p.next()
		p.want(TOK_WHERE)
		defs := p.parseDefs()
		end := p.want(TOK_RBRACE).Span

		expr = p.add(&ast.Where{
			ASTBase: ast.NewASTBaseOver(p.spanOf(expr), end),
			Expr:    expr,
			Defs:    defs,
		})
	}

	return expr
}

// -----------------------------------------------------------------------------

// or_expr = and_expr {'|' and_expr}
// and_expr = cmp_expr {'&' cmp_expr}
// cmp_expr = add_expr [('=='|'!='|'<'|'>'|'<='|'>=') add_expr]
// add_expr = mul_expr {('+'|'-') mul_expr}
// mul_expr = prefix {('*'|'/'|'%') prefix}
func (p *Parser) parseBinOpExpr() ast.NodeID {
	return p.precedenceParse(len(precTable) - 1)
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_EQ, TOK_NEQ, TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_AND},
	{TOK_OR},
}

// compareLevel is the precedence level of comparison operators.  Comparisons
// are not associative: `a < b < c` is a syntax error.
const compareLevel = 2

// binaryOps maps operator tokens to their AST operators.
var binaryOps = map[int]ast.BinaryOp{
	TOK_STAR:  ast.OpMul,
	TOK_DIV:   ast.OpDiv,
	TOK_MOD:   ast.OpMod,
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_EQ:    ast.OpEq,
	TOK_NEQ:   ast.OpNeq,
	TOK_LT:    ast.OpLt,
	TOK_GT:    ast.OpGt,
	TOK_LTEQ:  ast.OpLeq,
	TOK_GTEQ:  ast.OpGeq,
	TOK_AND:   ast.OpAnd,
	TOK_OR:    ast.OpOr,
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// precedenceParse parses a left-associative chain of binary operators at the
// given precedence level.
func (p *Parser) precedenceParse(level int) ast.NodeID {
	if level < 0 {
		return p.parsePrefixExpr()
	}

	lhs := p.precedenceParse(level - 1)
	for p.gotOneOf(precTable[level]...) {
		op := binaryOps[p.tok.Kind]
		p.next()

		rhs := p.precedenceParse(level - 1)
		lhs = p.add(&ast.Binary{
			ASTBase: ast.NewASTBaseOver(p.spanOf(lhs), p.spanOf(rhs)),
			Op:      op,
			Left:    lhs,
			Right:   rhs,
		})

		if level == compareLevel {
			if p.gotOneOf(precTable[level]...) {
				p.rejectWithMsg("comparison operators cannot be chained")
			}

			break
		}
	}

	return lhs
}

// prefix = ('+'|'-'|'!') prefix | postfix
func (p *Parser) parsePrefixExpr() ast.NodeID {
	var op ast.UnaryOp
	switch p.tok.Kind {
	case TOK_PLUS:
		op = ast.OpPlus
	case TOK_MINUS:
		op = ast.OpNeg
	case TOK_NOT:
		op = ast.OpNot
	default:
		return p.parsePostfixExpr()
	}

	start := p.tok.Span
	p.next()
	operand := p.parsePrefixExpr()

	return p.add(&ast.Unary{
		ASTBase: ast.NewASTBaseOver(start, p.spanOf(operand)),
		Op:      op,
		Operand: operand,
	})
}

// postfix = atom {'[' expr ']'}
func (p *Parser) parsePostfixExpr() ast.NodeID {
	expr := p.parseAtomExpr()

	for p.got(TOK_LBRACKET) {
		p.next()
		index := p.parseExpr()
		end := p.want(TOK_RBRACKET).Span

		expr = p.add(&ast.Index{
			ASTBase: ast.NewASTBaseOver(p.spanOf(expr), end),
			Array:   expr,
			Index:   index,
		})
	}

	return expr
}

// -----------------------------------------------------------------------------

// atom = const | id ['(' [expr {',' expr}] ')'] | '(' expr {',' expr} ')'
//      | '{' compound '}'
func (p *Parser) parseAtomExpr() ast.NodeID {
	tok := p.tok

	switch tok.Kind {
	case TOK_INTLIT:
		p.next()
		return p.add(&ast.Literal{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.LitInteger, Value: tok.Value})
	case TOK_LOGLIT:
		p.next()
		return p.add(&ast.Literal{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.LitLogical, Value: tok.Value})
	case TOK_STRLIT:
		p.next()
		return p.add(&ast.Literal{ASTBase: ast.NewASTBaseOn(tok.Span), Kind: ast.LitString, Value: tok.Value})
	case TOK_IDENT:
		p.next()
		if p.got(TOK_LPAREN) {
			return p.parseCall(tok)
		}

		return p.add(&ast.Name{ASTBase: ast.NewASTBaseOn(tok.Span), Name: tok.Value})
	case TOK_LPAREN:
		p.next()
		exprs := p.parseExprList()
		end := p.want(TOK_RPAREN).Span

		return p.add(&ast.Block{
			ASTBase: ast.NewASTBaseOver(tok.Span, end),
			Exprs:   exprs,
		})
	case TOK_LBRACE:
		return p.parseCompoundExpr()
	}

	if tok.Kind == TOK_EOF {
		p.reject()
	}

	p.rejectWithMsg("expected an expression but got `%s`", tok.Value)
	return ast.NoNode
}

// expr_list = expr {',' expr}
func (p *Parser) parseExprList() []ast.NodeID {
	exprs := []ast.NodeID{p.parseExpr()}

	for p.got(TOK_COMMA) {
		p.next()
		exprs = append(exprs, p.parseExpr())
	}

	return exprs
}

// call = id '(' [expr_list] ')'
func (p *Parser) parseCall(name *Token) ast.NodeID {
	p.want(TOK_LPAREN)

	var args []ast.NodeID
	if !p.got(TOK_RPAREN) {
		args = p.parseExprList()
	}

	end := p.want(TOK_RPAREN).Span

	return p.add(&ast.Call{
		ASTBase: ast.NewASTBaseOver(name.Span, end),
		Name:    name.Value,
		Args:    args,
	})
}

// compound = expr '=' expr
//          | 'if' expr 'then' expr ['else' expr]
//          | 'while' expr ':' expr
//          | 'for' id '=' expr ',' expr ',' expr ':' expr
func (p *Parser) parseCompoundExpr() ast.NodeID {
	start := p.want(TOK_LBRACE).Span

	var node ast.Node
	switch p.tok.Kind {
	case TOK_IF:
		p.next()
		cond := p.parseExpr()
		p.want(TOK_THEN)
		then := p.parseExpr()

		elseExpr := ast.NoNode
		if p.got(TOK_ELSE) {
			p.next()
			elseExpr = p.parseExpr()
		}

		node = &ast.IfThenElse{Cond: cond, Then: then, Else: elseExpr}
	case TOK_WHILE:
		p.next()
		cond := p.parseExpr()
		p.want(TOK_COLON)
		body := p.parseExpr()

		node = &ast.While{Cond: cond, Body: body}
	case TOK_FOR:
		p.next()
		counterTok := p.want(TOK_IDENT)
		counter := p.add(&ast.Name{ASTBase: ast.NewASTBaseOn(counterTok.Span), Name: counterTok.Value})
		p.want(TOK_ASSIGN)
		low := p.parseExpr()
		p.want(TOK_COMMA)
		high := p.parseExpr()
		p.want(TOK_COMMA)
		step := p.parseExpr()
		p.want(TOK_COLON)
		body := p.parseExpr()

		node = &ast.For{Counter: counter, Low: low, High: high, Step: step, Body: body}
	default:
		target := p.parseExpr()
		p.want(TOK_ASSIGN)
		value := p.parseExpr()

		node = &ast.Assign{Target: target, Value: value}
	}

	end := p.want(TOK_RBRACE).Span
	return p.add(withSpan(node, report.NewSpanOver(start, end)))
}

// withSpan sets the span of a compound expression node once its closing brace
// has been parsed.
func withSpan(node ast.Node, span *report.TextSpan) ast.Node {
	base := ast.NewASTBaseOn(span)

	switch v := node.(type) {
	case *ast.IfThenElse:
		v.ASTBase = base
	case *ast.While:
		v.ASTBase = base
	case *ast.For:
		v.ASTBase = base
	case *ast.Assign:
		v.ASTBase = base
	}

	return node
}
