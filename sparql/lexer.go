package sparql

import (
	"fmt"
	"strings"
)

// TokKind enumerates SPARQL lexical token classes.
type TokKind uint8

const (
	TokEOF TokKind = iota
	TokIRIRef
	TokPrefixedName
	TokVar
	TokString
	TokNumber
	TokBool
	TokKeyword // case-insensitive keyword, normalized upper-case in Text
	TokPunct   // { } ( ) . , ; | / ^ ! + * ? = != < <= > >= && ||
	TokA       // the "a" shorthand for rdf:type
	TokIdent   // a bare identifier that is not a reserved keyword (function names, SEPARATOR, ...)
)

type Token struct {
	Kind    TokKind
	Text    string
	Prefix  string // TokPrefixedName only
	Local   string // TokPrefixedName only
	Lang    string // TokString only, set when an @lang tag immediately follows
	HasLang bool
	Line    int
	Col     int
}

var keywords = map[string]bool{
	"SELECT": true, "WHERE": true, "ASK": true, "CONSTRUCT": true,
	"PREFIX": true, "BASE": true, "FILTER": true, "OPTIONAL": true,
	"UNION": true, "BIND": true, "AS": true, "ORDER": true, "BY": true,
	"ASC": true, "DESC": true, "GROUP": true, "HAVING": true,
	"LIMIT": true, "OFFSET": true, "DISTINCT": true, "REDUCED": true,
	"GRAPH": true, "FROM": true, "NAMED": true, "NOT": true, "IN": true,
	"EXISTS": true,
}

// lexer tokenizes SPARQL query text. It is a thin byte scanner in the
// same style as parse.cursor, kept separate because SPARQL's token set
// (keywords, ?vars, operators) differs enough from Turtle's to not share
// code cleanly.
type lexer struct {
	s    string
	pos  int
	line int
	col  int
}

func newLexer(s string) *lexer { return &lexer{s: s, line: 1, col: 1} }

func (l *lexer) errf(format string, args ...any) error {
	return fmt.Errorf("sparql: %d:%d: %s", l.line, l.col, fmt.Sprintf(format, args...))
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.s) {
		return 0
	}
	return l.s[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.s) {
		return 0
	}
	return l.s[l.pos+off]
}

func (l *lexer) advance() byte {
	b := l.s[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.s) {
		b := l.peek()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance()
			continue
		}
		if b == '#' {
			for l.pos < len(l.s) && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b >= 0x80
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}

// Next scans and returns the next token.
func (l *lexer) Next() (Token, error) {
	l.skipTrivia()
	line, col := l.line, l.col
	if l.pos >= len(l.s) {
		return Token{Kind: TokEOF, Line: line, Col: col}, nil
	}
	b := l.peek()
	iriAhead := false
	if b == '<' {
		if end := strings.IndexAny(l.s[l.pos:], "> \t\r\n"); end >= 0 {
			iriAhead = l.s[l.pos+end] == '>'
		}
	}
	switch {
	case b == '<' && l.peekAt(1) != '<' && iriAhead:
		return l.lexIRIRef(line, col)
	case (b == '?' || b == '$') && (isIdentStart(l.peekAt(1)) || (l.peekAt(1) >= '0' && l.peekAt(1) <= '9')):
		return l.lexVar(line, col)
	case b == '"' || b == '\'':
		return l.lexString(line, col)
	case b >= '0' && b <= '9':
		return l.lexNumber(line, col)
	case b == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9':
		return l.lexNumber(line, col)
	case b == ':' || isIdentStart(b):
		return l.lexNameOrKeyword(line, col)
	default:
		return l.lexPunct(line, col)
	}
}

func (l *lexer) lexIRIRef(line, col int) (Token, error) {
	l.advance() // '<'
	start := l.pos
	for {
		if l.pos >= len(l.s) {
			return Token{}, l.errf("unterminated IRI reference")
		}
		if l.peek() == '>' {
			break
		}
		l.advance()
	}
	text := l.s[start:l.pos]
	l.advance() // '>'
	return Token{Kind: TokIRIRef, Text: text, Line: line, Col: col}, nil
}

func (l *lexer) lexVar(line, col int) (Token, error) {
	l.advance() // sigil
	start := l.pos
	for l.pos < len(l.s) && isIdentChar(l.peek()) {
		l.advance()
	}
	if l.pos == start {
		return Token{}, l.errf("empty variable name")
	}
	return Token{Kind: TokVar, Text: l.s[start:l.pos], Line: line, Col: col}, nil
}

func (l *lexer) lexString(line, col int) (Token, error) {
	quote := l.peek()
	l.advance()
	var b strings.Builder
	for {
		if l.pos >= len(l.s) {
			return Token{}, l.errf("unterminated string literal")
		}
		c := l.peek()
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' {
			l.advance()
			esc := l.peek()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\'', '\\':
				b.WriteByte(esc)
			default:
				b.WriteByte(esc)
			}
			l.advance()
			continue
		}
		b.WriteByte(c)
		l.advance()
	}
	tok := Token{Kind: TokString, Text: b.String(), Line: line, Col: col}
	if l.peek() == '@' {
		l.advance()
		start := l.pos
		for l.pos < len(l.s) && (isIdentStart(l.peek()) || (l.peek() >= '0' && l.peek() <= '9') || l.peek() == '-') {
			l.advance()
		}
		if l.pos == start {
			return Token{}, l.errf("empty language tag")
		}
		tok.Lang = l.s[start:l.pos]
		tok.HasLang = true
	}
	return tok, nil
}

func (l *lexer) lexNumber(line, col int) (Token, error) {
	start := l.pos
	for l.pos < len(l.s) && l.peek() >= '0' && l.peek() <= '9' {
		l.advance()
	}
	if l.peek() == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9' {
		l.advance()
		for l.pos < len(l.s) && l.peek() >= '0' && l.peek() <= '9' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for l.pos < len(l.s) && l.peek() >= '0' && l.peek() <= '9' {
			l.advance()
		}
	}
	return Token{Kind: TokNumber, Text: l.s[start:l.pos], Line: line, Col: col}, nil
}

func (l *lexer) lexNameOrKeyword(line, col int) (Token, error) {
	if l.peek() == ':' {
		return l.lexPrefixedName(line, col, "")
	}
	start := l.pos
	for l.pos < len(l.s) && isIdentChar(l.peek()) {
		l.advance()
	}
	word := l.s[start:l.pos]
	if l.peek() == ':' {
		return l.lexPrefixedName(line, col, word)
	}
	upper := strings.ToUpper(word)
	if keywords[upper] {
		return Token{Kind: TokKeyword, Text: upper, Line: line, Col: col}, nil
	}
	if upper == "TRUE" || upper == "FALSE" {
		return Token{Kind: TokBool, Text: strings.ToLower(word), Line: line, Col: col}, nil
	}
	if word == "a" {
		return Token{Kind: TokA, Text: "a", Line: line, Col: col}, nil
	}
	return Token{Kind: TokIdent, Text: upper, Line: line, Col: col}, nil
}

func (l *lexer) lexPrefixedName(line, col int, prefix string) (Token, error) {
	l.advance() // ':'
	start := l.pos
	for l.pos < len(l.s) && isIdentChar(l.peek()) {
		l.advance()
	}
	local := l.s[start:l.pos]
	return Token{Kind: TokPrefixedName, Prefix: prefix, Local: local, Line: line, Col: col}, nil
}

func (l *lexer) lexPunct(line, col int) (Token, error) {
	two := ""
	if l.pos+1 < len(l.s) {
		two = l.s[l.pos : l.pos+2]
	}
	switch two {
	case "&&", "||", "!=", "<=", ">=", "^^":
		l.advance()
		l.advance()
		return Token{Kind: TokPunct, Text: two, Line: line, Col: col}, nil
	}
	b := l.advance()
	switch b {
	case '{', '}', '(', ')', '.', ',', ';', '|', '/', '^', '!', '+', '*', '?',
		'=', '<', '>', '-', '[', ']':
		return Token{Kind: TokPunct, Text: string(b), Line: line, Col: col}, nil
	}
	return Token{}, l.errf("unexpected character %q", b)
}
