// Package diag describes the errors reported while expanding binding declarations.
package diag

import (
	"fmt"
	"strings"
)

type Kind string

const (
	SyntaxError             Kind = "syntax error"
	UnknownVariant          Kind = "unknown variant"
	UnsupportedType         Kind = "unsupported type"
	UnsupportedReceiverForm Kind = "unsupported receiver form"
	ConfigError             Kind = "config error"
	IOError                 Kind = "io error"
)

// Pos is a location in a .jbind source. Line and Column are 1-based.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	file := p.File
	if file == "" {
		file = "<input>"
	}
	if !p.IsValid() {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

type Diagnostic struct {
	Kind    Kind
	Pos     Pos
	Message string
	Err     error
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
	if d.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, d.Err)
	}
	return msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

func New(kind Kind, pos Pos, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: msg}
}

func Newf(kind Kind, pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: msg, Err: err}
}

// List accumulates diagnostics that do not stop parsing immediately.
// A non-empty List still fails the expansion as a whole.
type List []*Diagnostic

func (l *List) Add(d *Diagnostic) {
	*l = append(*l, d)
}

func (l List) Len() int {
	return len(l)
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, 0, len(l))
	for _, d := range l {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}

// Err returns nil for an empty list, the single diagnostic for a list of
// one, and the list itself otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	}
	return l
}

func (l List) Unwrap() []error {
	errs := make([]error, 0, len(l))
	for _, d := range l {
		errs = append(errs, d)
	}
	return errs
}

// IsKind reports whether err is, or wraps, a diagnostic of the given kind.
func IsKind(err error, kind Kind) bool {
	for _, d := range All(err) {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// All flattens err into the diagnostics it carries, following both single
// and joined wrapping.
func All(err error) []*Diagnostic {
	var out []*Diagnostic
	collect(err, &out)
	return out
}

func collect(err error, out *[]*Diagnostic) {
	switch e := err.(type) {
	case nil:
	case *Diagnostic:
		*out = append(*out, e)
	case List:
		*out = append(*out, e...)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collect(inner, out)
		}
	case interface{ Unwrap() error }:
		collect(e.Unwrap(), out)
	}
}
