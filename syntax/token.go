package syntax

import "pinsc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token: must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  For string constants, this is the
	// content of the string with quotes removed and escapes processed.
	Value string

	// The span of the token in source text.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_EOF = iota

	TOK_ARR
	TOK_ELSE
	TOK_FOR
	TOK_FUN
	TOK_IF
	TOK_THEN
	TOK_TYP
	TOK_VAR
	TOK_WHERE
	TOK_WHILE

	TOK_LOGICAL
	TOK_INTEGER
	TOK_STRING

	TOK_LOGLIT
	TOK_INTLIT
	TOK_STRLIT

	TOK_IDENT

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_AND
	TOK_OR
	TOK_NOT

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE

	TOK_COLON
	TOK_SEMI
	TOK_DOT
	TOK_COMMA
	TOK_ASSIGN
)
