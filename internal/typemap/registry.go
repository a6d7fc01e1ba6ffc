// Package typemap translates native type names into JNI bridge type names.
package typemap

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/metadata"
	"maps"
	"sort"
)

// The map of native types understood by a bridge out of the box.
// Deployments extend it through the [types] table of the config file.
var seedTypes = map[string]string{
	"i32": "jint",
}

// The JNI types a native type may be mapped to.
var bridgeTypes = map[string]bool{
	"jboolean":      true,
	"jbyte":         true,
	"jchar":         true,
	"jshort":        true,
	"jint":          true,
	"jlong":         true,
	"jfloat":        true,
	"jdouble":       true,
	"jobject":       true,
	"jstring":       true,
	"jclass":        true,
	"jthrowable":    true,
	"jarray":        true,
	"jobjectArray":  true,
	"jbooleanArray": true,
	"jbyteArray":    true,
	"jcharArray":    true,
	"jshortArray":   true,
	"jintArray":     true,
	"jlongArray":    true,
	"jfloatArray":   true,
	"jdoubleArray":  true,
}

type Entry struct {
	Native string
	Bridge string
}

// Registry is immutable once built and safe for concurrent lookups.
type Registry struct {
	entries map[string]string
}

// Seed returns a copy of the shipped table.
func Seed() map[string]string {
	return maps.Clone(seedTypes)
}

func Default() *Registry {
	return New(seedTypes)
}

func New(entries map[string]string) *Registry {
	return &Registry{entries: maps.Clone(entries)}
}

// Extend returns a new registry holding the receiver's entries overlaid with extra.
func (r *Registry) Extend(extra map[string]string) *Registry {
	merged := maps.Clone(r.entries)
	if merged == nil {
		merged = make(map[string]string, len(extra))
	}
	maps.Copy(merged, extra)
	return &Registry{entries: merged}
}

func (r *Registry) Lookup(native string) (string, error) {
	return r.lookup(native, diag.Pos{})
}

// LookupType looks up the canonical rendering of t and tags failures with its position.
func (r *Registry) LookupType(t metadata.TypeExpr) (string, error) {
	return r.lookup(t.String(), t.Pos)
}

func (r *Registry) lookup(native string, pos diag.Pos) (string, error) {
	bridge, found := r.entries[native]
	if !found {
		return "", diag.Newf(diag.UnsupportedType, pos, "no bridge type for native type `%s`", native)
	}
	return bridge, nil
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the table sorted by native type name.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.entries))
	for native, bridge := range r.entries {
		entries = append(entries, Entry{Native: native, Bridge: bridge})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Native < entries[j].Native })
	return entries
}

func IsBridgeType(name string) bool {
	return bridgeTypes[name]
}
