// Package expansion drives parsing and bridge emission for whole class blocks.
package expansion

import (
	"goforeigner/internal/generation"
	"goforeigner/internal/lexer"
	"goforeigner/internal/logger"
	"goforeigner/internal/metadata"
	"goforeigner/internal/parser"
	"goforeigner/internal/typemap"
)

const DefaultPackageName = "example_com"

type Options struct {
	// PackageName is the package segment of every bridge name.
	PackageName string
	Registry    *typemap.Registry
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = DefaultPackageName
	}
	if o.Registry == nil {
		o.Registry = typemap.Default()
	}
	return o
}

// Expand emits the bridges of class in declaration order. Constructors and
// static methods produce nothing. The first failure discards every bridge
// of the block.
func Expand(class *metadata.Class, opts Options) (metadata.ClassBinding, error) {
	opts = opts.withDefaults()

	binding := metadata.ClassBinding{Name: class.Name, Source: class.Pos.File}
	functions := make([]metadata.GeneratedFunction, 0, len(class.Methods))
	for _, desc := range class.Methods {
		fn, err := generation.Emit(desc, class.Name, opts.PackageName, opts.Registry)
		if err != nil {
			return metadata.ClassBinding{Name: class.Name, Source: class.Pos.File}, err
		}
		if fn == nil {
			logger.Debug("No bridge for declaration", "class", class.Name, "target", desc.Target.String(), "variant", desc.Variant.String())
			binding.Skipped++
			continue
		}
		functions = append(functions, *fn)
	}

	binding.Functions = functions
	return binding, nil
}

// ExpandTokens parses exactly one class block and expands it.
func ExpandTokens(tokens []lexer.Token, opts Options) (metadata.ClassBinding, error) {
	class, err := parser.ParseClass(tokens)
	if err != nil {
		return metadata.ClassBinding{}, err
	}
	return Expand(class, opts)
}

// ExpandSource parses and expands every class block of one source file.
// Any parse or emission failure yields no bindings for the whole file.
func ExpandSource(file, src string, opts Options) ([]metadata.ClassBinding, error) {
	opts = opts.withDefaults()

	logger.LogPhase("parse", file)
	classes, err := parser.ParseFile(file, src)
	if err != nil {
		return nil, err
	}

	logger.LogPhase("emit", file)
	bindings := make([]metadata.ClassBinding, 0, len(classes))
	for _, class := range classes {
		binding, err := Expand(class, opts)
		if err != nil {
			return nil, err
		}
		logger.LogExpansion(file, binding.Name, len(binding.Functions), binding.Skipped)
		bindings = append(bindings, binding)
	}
	return bindings, nil
}
