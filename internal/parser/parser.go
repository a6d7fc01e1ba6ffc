// Package parser turns .jbind token streams into method descriptors.
//
// A source holds one or more class blocks:
//
//	class Counter {
//	    constructor Counter.new(start: i32);
//	    method Counter.add(&mut self, delta: i32) -> i32;
//	    static_method Counter.zero() -> i32;
//	}
//
// Any syntax error aborts the whole block. Receivers written as raw pointers
// are parsed so the rest of the block can be checked, but they are reported
// and the block still fails.
package parser

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/lexer"
	"goforeigner/internal/metadata"
)

const (
	classKeyword    = "class"
	receiverKeyword = "self"
	mutKeyword      = "mut"
	constKeyword    = "const"
)

type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  diag.List
}

// New returns a parser over tokens. A missing trailing EOF token is added.
func New(tokens []lexer.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.EOF {
		var eofPos diag.Pos
		if n > 0 {
			eofPos = tokens[n-1].Pos
		}
		tokens = append(tokens[:n:n], lexer.Token{Kind: lexer.EOF, Pos: eofPos})
	}
	return &Parser{tokens: tokens}
}

// ParseClass parses exactly one class block. The returned class is only
// usable when err is nil.
func ParseClass(tokens []lexer.Token) (*metadata.Class, error) {
	p := New(tokens)
	class, err := p.Class()
	if err != nil {
		return nil, p.fail(err)
	}
	if tok := p.peek(0); tok.Kind != lexer.EOF {
		return nil, p.fail(diag.Newf(diag.SyntaxError, tok.Pos, "unexpected %s after class body", tok))
	}
	return class, p.diags.Err()
}

// ParseFile lexes and parses every class block of a source file.
func ParseFile(file, src string) ([]*metadata.Class, error) {
	tokens, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}

	p := New(tokens)
	classes := make([]*metadata.Class, 0, 1)
	for p.peek(0).Kind != lexer.EOF {
		class, err := p.Class()
		if err != nil {
			return nil, p.fail(err)
		}
		classes = append(classes, class)
	}
	if err := p.diags.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

// Class parses `class Name { method* }`.
func (p *Parser) Class() (*metadata.Class, error) {
	start := p.peek(0)
	if !start.Is(classKeyword) {
		return nil, diag.Newf(diag.SyntaxError, start.Pos, "expected keyword `%s`, found %s", classKeyword, start)
	}
	p.bump()

	name, err := p.expectIdent("class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}

	class := &metadata.Class{Name: name.Text, Pos: start.Pos}
	for {
		tok := p.peek(0)
		switch tok.Kind {
		case lexer.RBrace:
			p.bump()
			return class, nil
		case lexer.EOF:
			return nil, diag.Newf(diag.SyntaxError, tok.Pos, "unterminated body of class `%s`: expected `}`", class.Name)
		}

		method, err := p.method()
		if err != nil {
			return nil, err
		}
		class.Methods = append(class.Methods, method)
	}
}

func (p *Parser) method() (metadata.MethodDescriptor, error) {
	keyword, err := p.expectIdent("`constructor`, `method` or `static_method`")
	if err != nil {
		return metadata.MethodDescriptor{}, err
	}
	variant, found := metadata.TryGetVariant(keyword.Text)
	if !found {
		return metadata.MethodDescriptor{}, diag.Newf(diag.UnknownVariant, keyword.Pos,
			"expected `constructor`, `method` or `static_method`, found %s", keyword)
	}

	target, err := p.path()
	if err != nil {
		return metadata.MethodDescriptor{}, err
	}

	signature, err := p.signature(variant == metadata.Method)
	if err != nil {
		return metadata.MethodDescriptor{}, err
	}

	if _, err := p.expect(lexer.Semi); err != nil {
		return metadata.MethodDescriptor{}, err
	}

	return metadata.MethodDescriptor{
		Variant:   variant,
		Target:    target,
		Signature: signature,
		Pos:       keyword.Pos,
	}, nil
}

// path parses Ident (("." | "::") Ident)*.
func (p *Parser) path() (metadata.Path, error) {
	first, err := p.expectIdent("path")
	if err != nil {
		return nil, err
	}
	path := metadata.Path{first.Text}
	for {
		switch p.peek(0).Kind {
		case lexer.Dot, lexer.DoubleColon:
			p.bump()
			segment, err := p.expectIdent("path segment")
			if err != nil {
				return nil, err
			}
			path = append(path, segment.Text)
		default:
			return path, nil
		}
	}
}

// signature parses "(" [Receiver ","] Param* ")" ["->" Type]. The receiver
// is only attempted for methods.
func (p *Parser) signature(withReceiver bool) (metadata.Signature, error) {
	var sig metadata.Signature
	if _, err := p.expect(lexer.LParen); err != nil {
		return sig, err
	}

	if withReceiver {
		receiver, err := p.receiver()
		if err != nil {
			return sig, err
		}
		if receiver != nil {
			sig.Receiver = receiver
			switch tok := p.peek(0); tok.Kind {
			case lexer.Comma:
				p.bump()
			case lexer.RParen:
			default:
				return sig, diag.Newf(diag.SyntaxError, tok.Pos, "expected `,` or `)` after receiver, found %s", tok)
			}
		}
	}

	params, err := p.params()
	if err != nil {
		return sig, err
	}
	sig.Params = params

	if _, err := p.expect(lexer.RParen); err != nil {
		return sig, err
	}

	if p.peek(0).Kind == lexer.Arrow {
		p.bump()
		ret, err := p.typeExpr()
		if err != nil {
			return sig, err
		}
		sig.Return = &ret
	}
	return sig, nil
}

// params parses comma separated parameters up to, not including, ")".
// A trailing comma is allowed.
func (p *Parser) params() ([]metadata.Param, error) {
	var params []metadata.Param
	for p.peek(0).Kind != lexer.RParen {
		param, err := p.param()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		switch tok := p.peek(0); tok.Kind {
		case lexer.Comma:
			p.bump()
		case lexer.RParen:
		default:
			return nil, diag.Newf(diag.SyntaxError, tok.Pos, "expected `,` or `)`, found %s", tok)
		}
	}
	return params, nil
}

func (p *Parser) param() (metadata.Param, error) {
	name, err := p.expectIdent("parameter name")
	if err != nil {
		return metadata.Param{}, err
	}
	if name.Text == receiverKeyword {
		return metadata.Param{}, diag.New(diag.SyntaxError, name.Pos, "`self` is only allowed as the first parameter of a method")
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return metadata.Param{}, err
	}
	typ, err := p.typeExpr()
	if err != nil {
		return metadata.Param{}, err
	}
	return metadata.Param{Name: name.Text, Type: typ, Pos: name.Pos}, nil
}

// peek returns the token n positions ahead without consuming anything.
// Looking past the end yields the EOF token.
func (p *Parser) peek(n int) lexer.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) bump() lexer.Token {
	tok := p.peek(0)
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) skip(n int) {
	for range n {
		p.bump()
	}
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.peek(0)
	if tok.Kind != kind {
		return tok, diag.Newf(diag.SyntaxError, tok.Pos, "expected %s, found %s", kind, tok)
	}
	return p.bump(), nil
}

func (p *Parser) expectIdent(what string) (lexer.Token, error) {
	tok := p.peek(0)
	if tok.Kind != lexer.Ident {
		return tok, diag.Newf(diag.SyntaxError, tok.Pos, "expected %s, found %s", what, tok)
	}
	return p.bump(), nil
}

// fail records err behind any non-fatal diagnostics and returns them all.
func (p *Parser) fail(err error) error {
	for _, d := range diag.All(err) {
		p.diags.Add(d)
	}
	if p.diags.Len() == 0 {
		return err
	}
	return p.diags.Err()
}
