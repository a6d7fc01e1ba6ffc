package generation

import (
	"fmt"
	"goforeigner/internal/metadata"
	"goforeigner/internal/typemap"
)

const bridgePrefix = "Bridge"

// ExternalName returns the exported symbol of a bridge:
// Bridge_<package>_<class>_<method>.
func ExternalName(packageName, className, methodName string) string {
	return fmt.Sprintf("%s_%s_%s_%s", bridgePrefix, packageName, className, methodName)
}

// Emit builds the bridge of one descriptor. Constructors and static methods
// are accepted by the parser but have no bridge yet, so they yield nil.
// A parameter or return type missing from registry fails the whole emission.
func Emit(desc metadata.MethodDescriptor, className, packageName string, registry *typemap.Registry) (*metadata.GeneratedFunction, error) {
	switch desc.Variant {
	case metadata.Constructor, metadata.StaticMethod:
		return nil, nil
	case metadata.Method:
	default:
		return nil, fmt.Errorf("unknown method variant %v", desc.Variant)
	}

	name := ExternalName(packageName, className, desc.Target.Last())

	params := make([]metadata.BridgeParam, 0, 3+len(desc.Signature.Params))
	params = append(params,
		metadata.BridgeParam{Name: "_", Type: metadata.EnvType},
		metadata.BridgeParam{Name: "_", Type: metadata.ClassType},
		metadata.BridgeParam{Name: metadata.HandleParam, Type: metadata.HandleType},
	)

	args := make([]string, 0, len(desc.Signature.Params))
	for i, param := range desc.Signature.Params {
		bridgeType, err := registry.LookupType(param.Type)
		if err != nil {
			return nil, err
		}
		arg := fmt.Sprintf("a_%d", i)
		params = append(params, metadata.BridgeParam{Name: arg, Type: bridgeType})
		args = append(args, arg)
	}

	returnType, err := bridgeReturnType(desc.Signature.Return, registry)
	if err != nil {
		return nil, err
	}

	byPointer := passesPointer(desc.Signature.Receiver)
	return &metadata.GeneratedFunction{
		ExternalName: name,
		Params:       params,
		Return:       returnType,
		Body: metadata.BridgeBody{
			ClassName:  className,
			Handle:     metadata.HandleParam,
			Binding:    metadata.Binding,
			Deref:      !byPointer,
			MethodExpr: byPointer && len(desc.Target) > 1 && desc.Target[0] == className,
			Target:     desc.Target,
			Args:       args,
		},
		Export: true,
		Public: true,
	}, nil
}

func bridgeReturnType(ret *metadata.TypeExpr, registry *typemap.Registry) (string, error) {
	if ret == nil || isUnit(*ret) {
		return metadata.BridgeVoid, nil
	}
	return registry.LookupType(*ret)
}

func isUnit(t metadata.TypeExpr) bool {
	return t.Kind == metadata.TupleType && len(t.Args) == 0
}

// passesPointer reports whether the native target expects the receiver by
// pointer. A declaration without a receiver is forwarded by pointer too.
func passesPointer(receiver *metadata.Receiver) bool {
	if receiver == nil {
		return true
	}
	switch receiver.Form {
	case metadata.ByReference:
		return true
	case metadata.ByExplicitType:
		return receiver.Type != nil && receiver.Type.Kind == metadata.RefType
	}
	return false
}
