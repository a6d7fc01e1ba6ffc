package metadata

const (
	// BridgeVoid is the bridge return type of declarations without `-> T`.
	BridgeVoid = "void"

	EnvType    = "*JNIEnv"
	ClassType  = "jclass"
	HandleType = "jlong"

	HandleParam = "this"
	Binding     = "self"
)

type BridgeParam struct {
	Name string
	Type string
}

// BridgeBody is the forwarding body of a bridge: reinterpret Handle as a
// *ClassName, stop on a nil pointer, then call Target with the receiver
// followed by Args.
type BridgeBody struct {
	ClassName string
	Handle    string
	Binding   string
	// Deref passes the receiver by value instead of by pointer.
	Deref bool
	// MethodExpr calls Target as a pointer method expression, (*Class).name.
	MethodExpr bool
	Target     Path
	Args       []string
}

// GeneratedFunction is one exported bridge.
//
// The handle parameter is trusted: it must hold the address of a live
// ClassName value produced by the matching constructor bridge. Only a nil
// handle is detected. Constructor bridges are not generated yet, so callers
// currently have to produce handles themselves.
//
// Turning the handle back into a pointer goes through uintptr, which go vet
// reports as a possible misuse of unsafe.Pointer in every generated file.
// The handle is an address by contract, so the report is expected.
type GeneratedFunction struct {
	ExternalName string
	Params       []BridgeParam
	Return       string
	Body         BridgeBody
	Export       bool
	Public       bool
}

func (f GeneratedFunction) ReturnsValue() bool {
	return f.Return != "" && f.Return != BridgeVoid
}

// DeclaredParams returns the parameters after the environment, class and handle.
func (f GeneratedFunction) DeclaredParams() []BridgeParam {
	if len(f.Params) < 3 {
		return nil
	}
	return f.Params[3:]
}

// ClassBinding holds the bridges generated for one class block.
type ClassBinding struct {
	Name      string
	Source    string
	Functions []GeneratedFunction
	// Skipped counts constructors and static methods that have no bridge.
	Skipped int
}
