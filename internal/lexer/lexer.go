// Package lexer splits .jbind sources into tagged tokens.
package lexer

import (
	"goforeigner/internal/diag"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	file   string
	src    string
	offset int
	line   int
	column int
}

func New(file, src string) *Lexer {
	return &Lexer{file: file, src: src, line: 1, column: 1}
}

// Tokenize returns every token of src followed by a single EOF token.
func Tokenize(file, src string) ([]Token, error) {
	l := New(file, src)
	tokens := make([]Token, 0, len(src)/3+1)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) Next() (Token, error) {
	l.skipTrivia()

	pos := l.pos()
	if l.offset >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	r := l.peekRune()
	switch {
	case isIdentStart(r):
		return Token{Kind: Ident, Text: l.readWhile(isIdentPart), Pos: pos}, nil
	case isDigit(r):
		return Token{Kind: Int, Text: l.readWhile(isDigit), Pos: pos}, nil
	case r == '\'':
		l.advance()
		if !isIdentStart(l.peekRune()) {
			return Token{}, diag.New(diag.SyntaxError, pos, "expected lifetime name after `'`")
		}
		return Token{Kind: Lifetime, Text: "'" + l.readWhile(isIdentPart), Pos: pos}, nil
	}

	l.advance()
	switch r {
	case '&':
		return l.token(Amp, "&", pos), nil
	case '*':
		return l.token(Star, "*", pos), nil
	case ',':
		return l.token(Comma, ",", pos), nil
	case ';':
		return l.token(Semi, ";", pos), nil
	case '.':
		return l.token(Dot, ".", pos), nil
	case '<':
		return l.token(Lt, "<", pos), nil
	case '>':
		return l.token(Gt, ">", pos), nil
	case '(':
		return l.token(LParen, "(", pos), nil
	case ')':
		return l.token(RParen, ")", pos), nil
	case '{':
		return l.token(LBrace, "{", pos), nil
	case '}':
		return l.token(RBrace, "}", pos), nil
	case '[':
		return l.token(LBracket, "[", pos), nil
	case ']':
		return l.token(RBracket, "]", pos), nil
	case ':':
		if l.peekRune() == ':' {
			l.advance()
			return l.token(DoubleColon, "::", pos), nil
		}
		return l.token(Colon, ":", pos), nil
	case '-':
		if l.peekRune() == '>' {
			l.advance()
			return l.token(Arrow, "->", pos), nil
		}
	}

	return Token{}, diag.Newf(diag.SyntaxError, pos, "unexpected character %q", r)
}

func (l *Lexer) token(kind Kind, text string, pos diag.Pos) Token {
	return Token{Kind: kind, Text: text, Pos: pos}
}

func (l *Lexer) pos() diag.Pos {
	return diag.Pos{File: l.file, Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *Lexer) skipTrivia() {
	for l.offset < len(l.src) {
		r := l.peekRune()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.offset+1 < len(l.src) && l.src[l.offset+1] == '/':
			for l.offset < len(l.src) && l.peekRune() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) peekRune() rune {
	if l.offset >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return r
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.offset
	for l.offset < len(l.src) && pred(l.peekRune()) {
		l.advance()
	}
	return l.src[start:l.offset]
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
