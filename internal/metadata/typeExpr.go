package metadata

import (
	"goforeigner/internal/diag"
	"strings"
)

type TypeKind int

const (
	NamedType TypeKind = iota
	RefType
	PtrType
	SliceType
	ArrayType
	TupleType
)

// TypeExpr is a native type expression as written in a declaration.
type TypeExpr struct {
	Kind     TypeKind
	Path     Path       // NamedType
	Args     []TypeExpr // NamedType generic arguments, TupleType members
	Elem     *TypeExpr  // RefType, PtrType, SliceType, ArrayType
	Mutable  bool       // RefType, PtrType
	Lifetime string     // RefType
	Len      string     // ArrayType
	Pos      diag.Pos
}

func Named(segments ...string) TypeExpr {
	return TypeExpr{Kind: NamedType, Path: segments}
}

// String renders the canonical text used as the type registry key.
// Named paths are joined with "::" whatever separator the source used.
func (t TypeExpr) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeExpr) write(sb *strings.Builder) {
	switch t.Kind {
	case NamedType:
		sb.WriteString(strings.Join(t.Path, "::"))
		if len(t.Args) > 0 {
			sb.WriteString("<")
			writeList(sb, t.Args)
			sb.WriteString(">")
		}
	case RefType:
		sb.WriteString("&")
		if t.Lifetime != "" {
			sb.WriteString(t.Lifetime)
			sb.WriteString(" ")
		}
		if t.Mutable {
			sb.WriteString("mut ")
		}
		t.writeElem(sb)
	case PtrType:
		if t.Mutable {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}
		t.writeElem(sb)
	case SliceType:
		sb.WriteString("[")
		t.writeElem(sb)
		sb.WriteString("]")
	case ArrayType:
		sb.WriteString("[")
		t.writeElem(sb)
		sb.WriteString("; ")
		sb.WriteString(t.Len)
		sb.WriteString("]")
	case TupleType:
		sb.WriteString("(")
		writeList(sb, t.Args)
		if len(t.Args) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	}
}

func (t TypeExpr) writeElem(sb *strings.Builder) {
	if t.Elem != nil {
		t.Elem.write(sb)
	}
}

func writeList(sb *strings.Builder, types []TypeExpr) {
	for i, arg := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		arg.write(sb)
	}
}
