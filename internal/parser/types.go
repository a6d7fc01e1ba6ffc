package parser

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/lexer"
	"goforeigner/internal/metadata"
)

// typeExpr parses a native type:
//
//	&['a] [mut] T | *const T | *mut T | [T] | [T; N] | (T, ...) | Path[<T, ...>]
func (p *Parser) typeExpr() (metadata.TypeExpr, error) {
	start := p.peek(0)

	switch start.Kind {
	case lexer.Amp:
		p.bump()
		typ := metadata.TypeExpr{Kind: metadata.RefType, Pos: start.Pos}
		if tok := p.peek(0); tok.Kind == lexer.Lifetime {
			typ.Lifetime = tok.Text
			p.bump()
		}
		if p.peek(0).Is(mutKeyword) {
			typ.Mutable = true
			p.bump()
		}
		return p.withElem(typ)

	case lexer.Star:
		p.bump()
		tok := p.peek(0)
		if !isMutability(tok) {
			return metadata.TypeExpr{}, diag.Newf(diag.SyntaxError, tok.Pos, "expected `const` or `mut` after `*`, found %s", tok)
		}
		p.bump()
		return p.withElem(metadata.TypeExpr{Kind: metadata.PtrType, Mutable: tok.Is(mutKeyword), Pos: start.Pos})

	case lexer.LBracket:
		p.bump()
		elem, err := p.typeExpr()
		if err != nil {
			return metadata.TypeExpr{}, err
		}
		typ := metadata.TypeExpr{Kind: metadata.SliceType, Elem: &elem, Pos: start.Pos}
		if p.peek(0).Kind == lexer.Semi {
			p.bump()
			length, err := p.expect(lexer.Int)
			if err != nil {
				return metadata.TypeExpr{}, err
			}
			typ.Kind = metadata.ArrayType
			typ.Len = length.Text
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return metadata.TypeExpr{}, err
		}
		return typ, nil

	case lexer.LParen:
		p.bump()
		members, trailingComma, err := p.typeList(lexer.RParen)
		if err != nil {
			return metadata.TypeExpr{}, err
		}
		// (T) is just T, (T,) is a one-element tuple.
		if len(members) == 1 && !trailingComma {
			return members[0], nil
		}
		return metadata.TypeExpr{Kind: metadata.TupleType, Args: members, Pos: start.Pos}, nil

	case lexer.Ident:
		path, err := p.path()
		if err != nil {
			return metadata.TypeExpr{}, err
		}
		typ := metadata.TypeExpr{Kind: metadata.NamedType, Path: path, Pos: start.Pos}
		if p.peek(0).Kind == lexer.Lt {
			p.bump()
			args, _, err := p.typeList(lexer.Gt)
			if err != nil {
				return metadata.TypeExpr{}, err
			}
			if len(args) == 0 {
				return metadata.TypeExpr{}, diag.New(diag.SyntaxError, start.Pos, "empty generic argument list")
			}
			typ.Args = args
		}
		return typ, nil
	}

	return metadata.TypeExpr{}, diag.Newf(diag.SyntaxError, start.Pos, "expected type, found %s", start)
}

func (p *Parser) withElem(typ metadata.TypeExpr) (metadata.TypeExpr, error) {
	elem, err := p.typeExpr()
	if err != nil {
		return metadata.TypeExpr{}, err
	}
	typ.Elem = &elem
	return typ, nil
}

// typeList parses comma separated types up to and including the closing token.
func (p *Parser) typeList(closing lexer.Kind) (types []metadata.TypeExpr, trailingComma bool, err error) {
	for p.peek(0).Kind != closing {
		typ, err := p.typeExpr()
		if err != nil {
			return nil, false, err
		}
		types = append(types, typ)
		trailingComma = false

		switch tok := p.peek(0); tok.Kind {
		case lexer.Comma:
			p.bump()
			trailingComma = true
		case closing:
		default:
			return nil, false, diag.Newf(diag.SyntaxError, tok.Pos, "expected `,` or %s, found %s", closing, tok)
		}
	}
	p.bump()
	return types, trailingComma, nil
}
