// The package used for describing parsed binding declarations and the bridge
// functions generated from them.
package metadata

import (
	"fmt"
	"goforeigner/internal/diag"
	"strings"
)

type MethodVariant int

const (
	Constructor MethodVariant = iota
	Method
	StaticMethod
)

var variantKeywords = map[string]MethodVariant{
	"constructor":   Constructor,
	"method":        Method,
	"static_method": StaticMethod,
}

// Tries to classify a declaration keyword. Only exact matches are accepted.
func TryGetVariant(keyword string) (variant MethodVariant, found bool) {
	variant, found = variantKeywords[keyword]
	return variant, found
}

func (v MethodVariant) String() string {
	switch v {
	case Constructor:
		return "constructor"
	case Method:
		return "method"
	case StaticMethod:
		return "static_method"
	}
	return fmt.Sprintf("MethodVariant(%d)", int(v))
}

// Path is a dotted identifier sequence such as Foo.bar.
type Path []string

func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

type ReceiverForm int

const (
	ByValue ReceiverForm = iota
	ByReference
	ByExplicitType
)

func (f ReceiverForm) String() string {
	switch f {
	case ByValue:
		return "value"
	case ByReference:
		return "reference"
	case ByExplicitType:
		return "explicit"
	}
	return fmt.Sprintf("ReceiverForm(%d)", int(f))
}

type Receiver struct {
	Form     ReceiverForm
	Mutable  bool
	Lifetime string    // only for ByReference
	Type     *TypeExpr // only for ByExplicitType
	// RawPointer marks `*self` forms. They parse as ByValue and are always
	// reported as unsupported.
	RawPointer bool
	Pos        diag.Pos
}

func (r Receiver) String() string {
	var sb strings.Builder
	switch r.Form {
	case ByReference:
		sb.WriteString("&")
		if r.Lifetime != "" {
			sb.WriteString(r.Lifetime)
			sb.WriteString(" ")
		}
		if r.Mutable {
			sb.WriteString("mut ")
		}
		sb.WriteString("self")
	case ByExplicitType:
		if r.Mutable {
			sb.WriteString("mut ")
		}
		sb.WriteString("self: ")
		if r.Type != nil {
			sb.WriteString(r.Type.String())
		}
	default:
		if r.RawPointer {
			sb.WriteString("*")
		} else if r.Mutable {
			sb.WriteString("mut ")
		}
		sb.WriteString("self")
	}
	return sb.String()
}

type Param struct {
	Name string
	Type TypeExpr
	Pos  diag.Pos
}

type Signature struct {
	Receiver *Receiver
	Params   []Param
	Return   *TypeExpr
}

type MethodDescriptor struct {
	Variant   MethodVariant
	Target    Path
	Signature Signature
	Pos       diag.Pos
}

// Class is one parsed `class Name { ... }` block. Methods keep declaration order.
type Class struct {
	Name    string
	Methods []MethodDescriptor
	Pos     diag.Pos
}
