package parser

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/lexer"
	"goforeigner/internal/metadata"
)

// receiver parses an optional leading receiver. Receivers and ordinary
// parameters share prefixes (`&`, `*`, identifiers), so the forms are matched
// by lookahead and nothing is consumed unless a whole form matches:
//
//	&self  &mut self  &'a self  &'a mut self
//	*self  *const self  *mut self           (rejected)
//	self  self: T  mut self  mut self: T
//
// A nil receiver and nil error mean the list has no receiver and the
// position is unchanged.
func (p *Parser) receiver() (*metadata.Receiver, error) {
	start := p.peek(0)

	switch start.Kind {
	case lexer.Amp:
		receiver := &metadata.Receiver{Form: metadata.ByReference, Pos: start.Pos}
		switch {
		case p.peek(1).Is(receiverKeyword):
			p.skip(2)
		case p.peek(1).Is(mutKeyword) && p.peek(2).Is(receiverKeyword):
			receiver.Mutable = true
			p.skip(3)
		case p.peek(1).Kind == lexer.Lifetime && p.peek(2).Is(receiverKeyword):
			receiver.Lifetime = p.peek(1).Text
			p.skip(3)
		case p.peek(1).Kind == lexer.Lifetime && p.peek(2).Is(mutKeyword) && p.peek(3).Is(receiverKeyword):
			receiver.Lifetime = p.peek(1).Text
			receiver.Mutable = true
			p.skip(4)
		default:
			return nil, nil
		}
		return receiver, nil

	case lexer.Star:
		switch {
		case p.peek(1).Is(receiverKeyword):
			p.skip(2)
		case isMutability(p.peek(1)) && p.peek(2).Is(receiverKeyword):
			p.skip(3)
		default:
			return nil, nil
		}
		p.diags.Add(diag.New(diag.UnsupportedReceiverForm, start.Pos, "cannot pass `self` by raw pointer"))
		return &metadata.Receiver{Form: metadata.ByValue, RawPointer: true, Pos: start.Pos}, nil

	case lexer.Ident:
		mutable := false
		switch {
		case start.Is(receiverKeyword):
			p.skip(1)
		case start.Is(mutKeyword) && p.peek(1).Is(receiverKeyword):
			mutable = true
			p.skip(2)
		default:
			return nil, nil
		}

		receiver := &metadata.Receiver{Form: metadata.ByValue, Mutable: mutable, Pos: start.Pos}
		if p.peek(0).Kind == lexer.Colon {
			p.bump()
			typ, err := p.typeExpr()
			if err != nil {
				return nil, err
			}
			receiver.Form = metadata.ByExplicitType
			receiver.Type = &typ
		}
		return receiver, nil
	}

	return nil, nil
}

func isMutability(tok lexer.Token) bool {
	return tok.Is(mutKeyword) || tok.Is(constKeyword)
}
