package generation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
)

// The JNI versions declared by jni.h. Versions from 9 on are named by their
// major number alone.
var jniVersions = []string{"1.1", "1.2", "1.4", "1.6", "1.8", "9", "10", "19", "20", "21", "24"}

const DefaultJNIVersion = "1.8"

// SupportedJNIVersions returns the known versions, oldest first.
func SupportedJNIVersions() version.Collection {
	versions := make(version.Collection, 0, len(jniVersions))
	for _, raw := range jniVersions {
		versions = append(versions, version.Must(version.NewVersion(raw)))
	}
	sort.Sort(versions)
	return versions
}

// ParseJNIVersion accepts a JNI version such as "1.8" or "21" and returns
// the matching supported version.
func ParseJNIVersion(raw string) (*version.Version, error) {
	requested, err := version.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JNI version %q: %w", raw, err)
	}
	for _, supported := range SupportedJNIVersions() {
		if supported.Equal(requested) {
			return supported, nil
		}
	}
	return nil, fmt.Errorf("unsupported JNI version %q (supported: %s)", raw, strings.Join(jniVersions, ", "))
}

// JNIVersionConstant returns the jni.h constant of v, e.g. JNI_VERSION_1_8
// or JNI_VERSION_21.
func JNIVersionConstant(v *version.Version) string {
	segments := v.Segments()
	if segments[0] == 1 {
		return fmt.Sprintf("JNI_VERSION_1_%d", segments[1])
	}
	return fmt.Sprintf("JNI_VERSION_%d", segments[0])
}
