package syntax

import (
	"bufio"
	"io"
	"pinsc/report"
	"strconv"
	"strings"
)

// Lexer is responsible for tokenizing a PINS source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    0,
		col:     0,
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r':
			l.skip()
		case '#':
			if err := l.skipComment(); err != nil {
				return nil, err
			}
		case '\'':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexIntLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"%": TOK_MOD,

	"&": TOK_AND,
	"|": TOK_OR,
	"!": TOK_NOT,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,

	":": TOK_COLON,
	";": TOK_SEMI,
	".": TOK_DOT,
	",": TOK_COMMA,
	"=": TOK_ASSIGN,
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, report.Raise(report.SyntaxError, l.getSpan(), "unknown character `%s`", l.tokBuff.String())
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"arr":   TOK_ARR,
	"else":  TOK_ELSE,
	"for":   TOK_FOR,
	"fun":   TOK_FUN,
	"if":    TOK_IF,
	"then":  TOK_THEN,
	"typ":   TOK_TYP,
	"var":   TOK_VAR,
	"where": TOK_WHERE,
	"while": TOK_WHILE,

	"logical": TOK_LOGICAL,
	"integer": TOK_INTEGER,
	"string":  TOK_STRING,

	"true":  TOK_LOGLIT,
	"false": TOK_LOGLIT,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexIntLit lexes a decimal integer literal.
func (l *Lexer) lexIntLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	// Literals must fit in a machine word.
	if _, err := strconv.ParseInt(l.tokBuff.String(), 10, 32); err != nil {
		return nil, report.Raise(report.SyntaxError, l.getSpan(), "integer constant `%s` is too large", l.tokBuff.String())
	}

	return l.makeToken(TOK_INTLIT), nil
}

// lexStringLit lexes a string literal.  A quote inside a string is written as
// two quotes.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			return nil, report.Raise(report.SyntaxError, l.getSpan(), "unclosed string literal")
		case '\'':
			l.skip()

			c, err = l.peek()
			if err != nil {
				return nil, err
			}

			if c != '\'' {
				return l.makeToken(TOK_STRLIT), nil
			}

			l.eat()
		default:
			if c < ' ' || c > '~' {
				l.eat()
				return nil, report.Raise(report.SyntaxError, l.getSpan(), "invalid character in string literal")
			}

			l.eat()
		}
	}
}

// skipComment skips a comment running until the end of the line.
func (l *Lexer) skipComment() error {
	for {
		c, err := l.skip()
		if err != nil {
			return err
		}

		if c == '\n' || c == -1 {
			return nil
		}
	}
}

// -----------------------------------------------------------------------------

// mark marks the beginning of a token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.  The end
// column is the column of the last rune consumed.
func (l *Lexer) getSpan() *report.TextSpan {
	endCol := l.col - 1
	if l.line == l.startLine && endCol < l.startCol {
		endCol = l.startCol
	}

	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    endCol,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
// PINS identifiers are ASCII only.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
