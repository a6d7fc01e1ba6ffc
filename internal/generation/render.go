package generation

import (
	"fmt"
	"goforeigner/internal"
	"goforeigner/internal/metadata"
	"goforeigner/internal/typemap"

	"github.com/dave/jennifer/jen"
)

// Render returns the cgo declaration of a bridge, including its //export line.
func Render(fn metadata.GeneratedFunction) *jen.Statement {
	statement := jen.Commentf("%s forwards to %s.", fn.ExternalName, fn.Body.Target).Line().
		Comment("The handle must address a live " + fn.Body.ClassName + "; only nil is rejected.").Line().
		Comment("go vet reports the handle conversion as a possible misuse of unsafe.Pointer.").Line()
	if fn.Export {
		statement.Comment("//export " + fn.ExternalName).Line()
	}

	statement.Func().Id(fn.ExternalName).ParamsFunc(func(g *jen.Group) {
		for _, param := range fn.Params {
			g.Id(param.Name).Add(bridgeType(param.Type))
		}
	})

	if fn.ReturnsValue() {
		statement.Add(bridgeType(fn.Return))
	}

	return statement.BlockFunc(func(g *jen.Group) {
		writeBody(g, fn)
	})
}

func writeBody(g *jen.Group, fn metadata.GeneratedFunction) {
	body := fn.Body

	g.Id(body.Binding).Op(":=").
		Parens(jen.Op("*").Id(body.ClassName)).
		Call(jen.Qual("unsafe", "Pointer").Call(jen.Id("uintptr").Call(jen.Id(body.Handle))))
	g.If(jen.Id(body.Binding).Op("==").Nil()).Block(
		jen.Panic(jen.Lit(fmt.Sprintf("%s: nil %s handle", fn.ExternalName, body.ClassName))),
	)

	call := target(body).CallFunc(func(g *jen.Group) {
		if body.Deref {
			g.Op("*").Id(body.Binding)
		} else {
			g.Id(body.Binding)
		}
		for _, arg := range body.Args {
			g.Id(arg)
		}
	})

	if fn.ReturnsValue() {
		g.Return(call)
	} else {
		g.Add(call)
	}
}

func target(body metadata.BridgeBody) *jen.Statement {
	path := body.Target
	if len(path) == 0 {
		return jen.Id(body.ClassName)
	}

	var statement *jen.Statement
	if body.MethodExpr {
		statement = jen.Parens(jen.Op("*").Id(path[0]))
	} else {
		statement = jen.Id(path[0])
	}
	for _, segment := range path[1:] {
		statement.Dot(segment)
	}
	return statement
}

func bridgeType(name string) *jen.Statement {
	if name == metadata.EnvType {
		return jen.Op("*").Qual("C", "JNIEnv")
	}
	if !typemap.IsBridgeType(name) {
		internal.PanicOnError(fmt.Errorf("%q is not a JNI type", name))
	}
	return jen.Qual("C", name)
}
