package syntax

import (
	"bufio"
	"io"
	"pinsc/ast"
	"pinsc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a PINS source file.  It is a recursive descent
// parser which builds the tree directly into an AST arena.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.  Errors are raised as
// panics and caught by Parse.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// tree is the arena the parser is adding nodes to.
	tree *ast.Tree
}

// NewParser creates a new parser for the given source reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(bufio.NewReader(r)),
		tree:  ast.NewTree(),
	}
}

// Parse parses a source file and returns the resulting tree.
func (p *Parser) Parse() (tree *ast.Tree, err error) {
	defer report.Catch(&err)

	// move the parser onto the first token
	p.next()

	p.tree.Root = p.parseSource()
	return p.tree, nil
}

// ParseSource is a convenience function which parses source text from a
// reader.
func ParseSource(r io.Reader) (*ast.Tree, error) {
	return NewParser(r).Parse()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		if cerr, ok := err.(*report.CompileError); ok {
			panic(cerr)
		}

		panic(report.Raise(report.SyntaxError, nil, "failed to read source: %s", err))
	}

	p.tok = tok
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// want asserts that the parser is on a token of a given kind, moves the parser
// forward, and returns the asserted token.
func (p *Parser) want(kind int) *Token {
	p.assert(kind)

	tok := p.tok
	p.next()
	return tok
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.tok.Kind == TOK_EOF {
		panic(report.Raise(report.SyntaxError, p.tok.Span, "unexpected end of file"))
	}

	panic(report.Raise(report.SyntaxError, p.tok.Span, "unexpected token `%s`", p.tok.Value))
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, args ...interface{}) {
	panic(report.Raise(report.SyntaxError, p.tok.Span, msg, args...))
}

// add adds a node to the tree.
func (p *Parser) add(n ast.Node) ast.NodeID {
	return p.tree.Add(n)
}

// spanOf returns the span of a node already in the tree.
func (p *Parser) spanOf(id ast.NodeID) *report.TextSpan {
	return p.tree.Span(id)
}
