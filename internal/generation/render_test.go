package generation

import (
	"fmt"
	"goforeigner/internal/metadata"
	"goforeigner/internal/typemap"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitOne(t *testing.T, src string) metadata.GeneratedFunction {
	t.Helper()
	class, methods := descriptors(t, src)
	fn, err := Emit(methods[0], class, "example_com", typemap.Default())
	require.NoError(t, err)
	require.NotNil(t, fn)
	return *fn
}

func TestRenderReferenceReceiver(t *testing.T) {
	code := fmt.Sprintf("%#v", Render(emitOne(t, "class Foo { method Foo.bar(&self, x: i32) -> i32; }")))

	assert.Contains(t, code, "// go vet reports the handle conversion as a possible misuse of unsafe.Pointer.\n//export Bridge_example_com_Foo_bar\n")
	assert.Contains(t, code, "func Bridge_example_com_Foo_bar(_ *C.JNIEnv, _ C.jclass, this C.jlong, a_0 C.jint) C.jint {")
	assert.Contains(t, code, "self := (*Foo)(unsafe.Pointer(uintptr(this)))")
	assert.Contains(t, code, "if self == nil {")
	assert.Contains(t, code, `panic("Bridge_example_com_Foo_bar: nil Foo handle")`)
	assert.Contains(t, code, "return (*Foo).bar(self, a_0)")
}

func TestRenderValueReceiverWithoutResult(t *testing.T) {
	code := fmt.Sprintf("%#v", Render(emitOne(t, "class Foo { method Foo.consume(self, a: i32, b: i32); }")))

	assert.Contains(t, code, "func Bridge_example_com_Foo_consume(_ *C.JNIEnv, _ C.jclass, this C.jlong, a_0 C.jint, a_1 C.jint) {")
	assert.Contains(t, code, "\tFoo.consume(*self, a_0, a_1)\n")
	assert.NotContains(t, code, "return")
}

func TestRenderFreeFunctionTarget(t *testing.T) {
	code := fmt.Sprintf("%#v", Render(emitOne(t, "class Foo { method ops.Bump(&mut self) -> i32; }")))

	assert.Contains(t, code, "return ops.Bump(self)")
}

func TestRenderOmitsExportWhenNotExported(t *testing.T) {
	fn := emitOne(t, "class Foo { method Foo.bar(&self); }")
	fn.Export = false

	code := fmt.Sprintf("%#v", Render(fn))
	assert.NotContains(t, code, "//export")
}

func TestRenderPanicsOnForeignBridgeType(t *testing.T) {
	fn := emitOne(t, "class Foo { method Foo.bar(&self) -> i32; }")
	fn.Return = "double"

	assert.Panics(t, func() { Render(fn) })
}

func TestGeneratorWritesClassFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	jniVersion, err := ParseJNIVersion("1.8")
	require.NoError(t, err)

	generator := NewGenerator("main", dir, jniVersion)
	generator.RegisterClass(metadata.ClassBinding{
		Name:      "HTTPClient",
		Source:    "bindings/client.jbind",
		Functions: []metadata.GeneratedFunction{emitOne(t, "class HTTPClient { method HTTPClient.send(&self, x: i32) -> i32; }")},
	})

	written, err := generator.Generate()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "http_client_bridge.go"),
		filepath.Join(dir, "jni_onload.go"),
	}, written)

	source, err := os.ReadFile(written[0])
	require.NoError(t, err)
	text := string(source)
	assert.Contains(t, text, "// Code generated by goforeigner from client.jbind. DO NOT EDIT.")
	assert.Contains(t, text, "package main")
	assert.Contains(t, text, "#include <jni.h>")
	assert.Contains(t, text, `import "C"`)
	assert.Contains(t, text, `"unsafe"`)
	assert.Contains(t, text, "//export Bridge_example_com_HTTPClient_send")

	onLoad, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(onLoad), "//export JNI_OnLoad")
	assert.Contains(t, string(onLoad), "return C.JNI_VERSION_1_8")
}

func TestGeneratorSkipsOnLoadWithoutVersion(t *testing.T) {
	dir := t.TempDir()
	generator := NewGenerator("bridges", dir, nil)
	generator.RegisterClass(metadata.ClassBinding{Name: "Foo", Functions: []metadata.GeneratedFunction{emitOne(t, "class Foo { method Foo.bar(&self); }")}})

	written, err := generator.Generate()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "foo_bridge.go")}, written)
}

func TestGeneratorRejectsCollisions(t *testing.T) {
	fn := emitOne(t, "class Foo { method Foo.bar(&self); }")

	t.Run("same class twice", func(t *testing.T) {
		dir := t.TempDir()
		generator := NewGenerator("main", dir, nil)
		generator.RegisterClass(metadata.ClassBinding{Name: "Foo", Source: "a.jbind"})
		generator.RegisterClass(metadata.ClassBinding{Name: "Foo", Source: "b.jbind"})

		_, err := generator.Generate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foo_bridge.go")

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("same bridge twice", func(t *testing.T) {
		generator := NewGenerator("main", t.TempDir(), nil)
		generator.RegisterClass(metadata.ClassBinding{Name: "Foo", Functions: []metadata.GeneratedFunction{fn, fn}})

		_, err := generator.Generate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Bridge_example_com_Foo_bar")
	})
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Counter":    "counter_bridge.go",
		"HTTPClient": "http_client_bridge.go",
		"myClass2D":  "my_class2_d_bridge.go",
		"foo":        "foo_bridge.go",
	}
	for class, want := range tests {
		assert.Equal(t, want, FileName(class), class)
	}
}

func TestJNIVersions(t *testing.T) {
	v, err := ParseJNIVersion("21")
	require.NoError(t, err)
	assert.Equal(t, "JNI_VERSION_21", JNIVersionConstant(v))

	v, err = ParseJNIVersion(" 1.6 ")
	require.NoError(t, err)
	assert.Equal(t, "JNI_VERSION_1_6", JNIVersionConstant(v))

	_, err = ParseJNIVersion("1.7")
	assert.ErrorContains(t, err, "unsupported JNI version")

	_, err = ParseJNIVersion("latest")
	assert.ErrorContains(t, err, "invalid JNI version")

	versions := SupportedJNIVersions()
	assert.Equal(t, "1.1", versions[0].Original())
	assert.Equal(t, "24", versions[len(versions)-1].Original())
}
