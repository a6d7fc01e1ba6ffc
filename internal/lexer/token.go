package lexer

import "goforeigner/internal/diag"

// Kind tags a token. Parsers switch on Kind and never infer a token's
// shape from an earlier check.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Ident    // class, self, Foo, i32
	Lifetime // 'a
	Int      // 16

	Amp         // &
	Star        // *
	Colon       // :
	DoubleColon // ::
	Comma       // ,
	Semi        // ;
	Dot         // .
	Arrow       // ->
	Lt          // <
	Gt          // >
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
)

var kindNames = [...]string{
	Illegal:     "illegal token",
	EOF:         "end of input",
	Ident:       "identifier",
	Lifetime:    "lifetime",
	Int:         "integer",
	Amp:         "`&`",
	Star:        "`*`",
	Colon:       "`:`",
	DoubleColon: "`::`",
	Comma:       "`,`",
	Semi:        "`;`",
	Dot:         "`.`",
	Arrow:       "`->`",
	Lt:          "`<`",
	Gt:          "`>`",
	LParen:      "`(`",
	RParen:      "`)`",
	LBrace:      "`{`",
	RBrace:      "`}`",
	LBracket:    "`[`",
	RBracket:    "`]`",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown token"
}

type Token struct {
	Kind Kind
	Text string
	Pos  diag.Pos
}

// Is reports whether t is the identifier word.
func (t Token) Is(word string) bool {
	return t.Kind == Ident && t.Text == word
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Lifetime, Int, Illegal:
		return "`" + t.Text + "`"
	}
	return t.Kind.String()
}
