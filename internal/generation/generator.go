package generation

import (
	"errors"
	"fmt"
	"goforeigner/internal/logger"
	"goforeigner/internal/metadata"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/hashicorp/go-version"
)

const (
	cgoPreamble = "#include <jni.h>"
	onLoadFile  = "jni_onload.go"
)

type Generator struct {
	Classes     []metadata.ClassBinding
	PackageName string
	OutputPath  string
	JNIVersion  *version.Version
}

func NewGenerator(packageName string, outputPath string, jniVersion *version.Version) Generator {
	return Generator{
		make([]metadata.ClassBinding, 0),
		packageName,
		outputPath,
		jniVersion,
	}
}

func (generator *Generator) RegisterClass(binding metadata.ClassBinding) {
	generator.Classes = append(generator.Classes, binding)
}

// Generate writes one file per registered class plus the JNI_OnLoad file and
// returns the written paths. Nothing is written when two classes or two
// bridges would collide.
func (generator *Generator) Generate() ([]string, error) {
	if err := generator.CheckCollisions(); err != nil {
		return nil, err
	}

	err := os.MkdirAll(generator.OutputPath, os.ModePerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	written := make([]string, 0, len(generator.Classes)+1)
	for _, binding := range generator.Classes {
		path := filepath.Join(generator.OutputPath, FileName(binding.Name))
		if err := generator.RenderClass(binding).Save(path); err != nil {
			return written, fmt.Errorf("could not write bridges of class %s: %w", binding.Name, err)
		}
		logger.Debug("Wrote bridges", "class", binding.Name, "path", path, "functions", len(binding.Functions))
		written = append(written, path)
	}

	if generator.JNIVersion != nil {
		path := filepath.Join(generator.OutputPath, onLoadFile)
		if err := generator.RenderOnLoad().Save(path); err != nil {
			return written, fmt.Errorf("could not write %s: %w", onLoadFile, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// RenderClass returns the cgo file holding every bridge of binding.
func (generator *Generator) RenderClass(binding metadata.ClassBinding) *jen.File {
	file := newFile(generator.PackageName, binding.Source)
	for _, fn := range binding.Functions {
		file.Add(Render(fn))
		file.Line()
	}
	return file
}

// RenderOnLoad returns the file exporting JNI_OnLoad, which reports the
// configured JNI version to the virtual machine.
func (generator *Generator) RenderOnLoad() *jen.File {
	file := newFile(generator.PackageName, "")
	file.Comment("//export JNI_OnLoad")
	file.Func().Id("JNI_OnLoad").Params(
		jen.Id("_").Op("*").Qual("C", "JavaVM"),
		jen.Id("_").Qual("unsafe", "Pointer"),
	).Qual("C", "jint").Block(
		jen.Return(jen.Qual("C", JNIVersionConstant(generator.JNIVersion))),
	)
	return file
}

// CheckCollisions fails when two classes share an output file or two bridges
// share a symbol.
func (generator *Generator) CheckCollisions() error {
	classes := make(map[string]string, len(generator.Classes))
	symbols := make(map[string]string)
	for _, binding := range generator.Classes {
		fileName := FileName(binding.Name)
		if previous, found := classes[fileName]; found {
			return fmt.Errorf("class %s in %s and class %s in %s would both be written to %s",
				previous, sourceOf(generator.Classes, previous), binding.Name, binding.Source, fileName)
		}
		classes[fileName] = binding.Name

		for _, fn := range binding.Functions {
			if previous, found := symbols[fn.ExternalName]; found {
				return fmt.Errorf("bridge %s is generated twice (class %s and class %s)", fn.ExternalName, previous, binding.Name)
			}
			symbols[fn.ExternalName] = binding.Name
		}
	}
	return nil
}

func sourceOf(bindings []metadata.ClassBinding, class string) string {
	for _, binding := range bindings {
		if binding.Name == class {
			return binding.Source
		}
	}
	return ""
}

func newFile(packageName, source string) *jen.File {
	file := jen.NewFile(packageName)
	if source != "" {
		file.HeaderComment(fmt.Sprintf("Code generated by goforeigner from %s. DO NOT EDIT.", filepath.Base(source)))
	} else {
		file.HeaderComment("Code generated by goforeigner. DO NOT EDIT.")
	}
	file.CgoPreamble(cgoPreamble)
	return file
}

// FileName returns the output file of a class: Counter -> counter_bridge.go,
// HTTPClient -> http_client_bridge.go.
func FileName(className string) string {
	runes := []rune(className)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String() + "_bridge.go"
}
