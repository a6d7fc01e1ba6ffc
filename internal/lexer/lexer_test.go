package lexer

import (
	"goforeigner/internal/diag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeMethodDeclaration(t *testing.T) {
	tokens, err := Tokenize("foo.jbind", "method Foo::bar(&'a mut self, x: i32) -> i32;")
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		Ident, Ident, DoubleColon, Ident, LParen,
		Amp, Lifetime, Ident, Ident, Comma,
		Ident, Colon, Ident, RParen, Arrow, Ident, Semi, EOF,
	}, kinds(tokens))
	assert.Equal(t, "'a", tokens[6].Text)
	assert.True(t, tokens[8].Is("self"))
}

func TestTokenizeTracksPositions(t *testing.T) {
	tokens, err := Tokenize("foo.jbind", "class Foo {\n  // a comment\n  method Foo.len(&self);\n}")
	require.NoError(t, err)

	method := tokens[3]
	require.True(t, method.Is("method"))
	assert.Equal(t, 3, method.Pos.Line)
	assert.Equal(t, 3, method.Pos.Column)
	assert.Equal(t, "foo.jbind", method.Pos.File)

	last := tokens[len(tokens)-1]
	assert.Equal(t, EOF, last.Kind)
	assert.Equal(t, 4, last.Pos.Line)
}

func TestTokenizeArraysAndPointers(t *testing.T) {
	tokens, err := Tokenize("", "*const [u8; 16]")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Star, Ident, LBracket, Ident, Semi, Int, RBracket, EOF}, kinds(tokens))
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	_, err := Tokenize("bad.jbind", "class Foo { method Foo.bar(self) = 1; }")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.SyntaxError))
	assert.Contains(t, err.Error(), "bad.jbind:1:34")
}

func TestTokenizeRejectsBareQuote(t *testing.T) {
	_, err := Tokenize("", "&' self")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.SyntaxError))
}

func TestLoneMinusIsIllegal(t *testing.T) {
	_, err := Tokenize("", "- i32")
	assert.True(t, diag.IsKind(err, diag.SyntaxError))
}
