package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticError(t *testing.T) {
	d := New(SyntaxError, Pos{File: "a.jbind", Line: 3, Column: 7}, "expected `;`")
	assert.Equal(t, "a.jbind:3:7: syntax error: expected `;`", d.Error())

	d = New(ConfigError, Pos{File: "goforeigner.toml"}, "jobs must be at least 1")
	assert.Equal(t, "goforeigner.toml: config error: jobs must be at least 1", d.Error())

	d = New(SyntaxError, Pos{Line: 1, Column: 1}, "oops")
	assert.Equal(t, "<input>:1:1: syntax error: oops", d.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	d := Wrap(fs.ErrNotExist, IOError, "could not read x.jbind")
	assert.ErrorIs(t, d, fs.ErrNotExist)
	assert.Contains(t, d.Error(), "could not read x.jbind")
	assert.Contains(t, d.Error(), fs.ErrNotExist.Error())
}

func TestListErr(t *testing.T) {
	var list List
	assert.NoError(t, list.Err())

	first := New(UnsupportedReceiverForm, Pos{Line: 1, Column: 20}, "cannot pass `self` by raw pointer")
	list.Add(first)
	assert.Same(t, first, list.Err())

	list.Add(New(SyntaxError, Pos{Line: 2, Column: 1}, "expected `}`"))
	err := list.Err()
	assert.Equal(t, 2, list.Len())
	assert.Contains(t, err.Error(), "\n")
	assert.ErrorIs(t, err, first)
}

func TestAllFollowsWrapping(t *testing.T) {
	a := New(SyntaxError, Pos{File: "a.jbind", Line: 1, Column: 1}, "a")
	b := New(UnsupportedType, Pos{File: "b.jbind", Line: 1, Column: 1}, "b")
	c := New(IOError, Pos{File: "c.jbind"}, "c")

	joined := errors.Join(fmt.Errorf("first: %w", a), List{b, c})
	assert.Equal(t, []*Diagnostic{a, b, c}, All(joined))
	assert.True(t, IsKind(joined, IOError))
	assert.False(t, IsKind(joined, ConfigError))

	assert.Empty(t, All(errors.New("plain")))
	assert.Empty(t, All(nil))
}
