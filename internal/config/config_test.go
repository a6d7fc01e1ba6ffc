package config

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/logger"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("inputs = [\"bindings/*.jbind\"]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "example_com", cfg.PackageName)
	assert.Equal(t, "main", cfg.GoPackage)
	assert.Equal(t, "./output/", cfg.OutputDir)
	assert.Equal(t, "1.8", cfg.JNIVersion)
	assert.Equal(t, []string{"bindings/*.jbind"}, cfg.Inputs)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.False(t, cfg.ForceClean)
}

func TestParseFullDocument(t *testing.T) {
	doc := `
package_name = "org_demo"
go_package = "bridges"
output_dir = "gen"
jni_version = "21"
inputs = ["api/**.jbind"]
exclude = ["api/internal/**"]
force_clean = true
jobs = 2

[types]
f64 = "jdouble"
bool = "jboolean"

[log]
level = "debug"
format = "json"

[watch]
debounce = "1s"
`
	cfg, err := Parse("goforeigner.toml", doc)
	require.NoError(t, err)

	assert.Equal(t, "org_demo", cfg.PackageName)
	assert.Equal(t, "bridges", cfg.GoPackage)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, []string{"api/internal/**"}, cfg.Exclude)
	assert.True(t, cfg.ForceClean)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "21", cfg.ParsedJNIVersion().Original())

	registry := cfg.Registry()
	bridge, err := registry.Lookup("f64")
	require.NoError(t, err)
	assert.Equal(t, "jdouble", bridge)
	bridge, err = registry.Lookup("i32")
	require.NoError(t, err)
	assert.Equal(t, "jint", bridge)

	logCfg := cfg.LoggerConfig()
	assert.Equal(t, logger.LevelDebug, logCfg.Level)
	assert.Equal(t, "json", logCfg.Format)

	opts := cfg.ExpansionOptions()
	assert.Equal(t, "org_demo", opts.PackageName)
	assert.Equal(t, 3, opts.Registry.Len())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"package name", `package_name = "org.demo"`, "package_name"},
		{"go package", `go_package = "my-pkg"`, "not a Go identifier"},
		{"jni version", `jni_version = "1.7"`, "unsupported JNI version"},
		{"bridge type", "[types]\nf64 = \"double\"", "unknown JNI type"},
		{"jobs", `jobs = -1`, "jobs must be at least 1"},
		{"glob", `inputs = ["[a"]`, "invalid glob"},
		{"log level", "[log]\nlevel = \"loud\"", "log.level"},
		{"log format", "[log]\nformat = \"xml\"", "log.format"},
		{"unknown key", `outptu_dir = "x"`, "unknown keys: outptu_dir"},
		{"bad toml", `package_name = `, "invalid TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("bad.toml", tt.doc)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, diag.IsKind(err, diag.ConfigError))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "bad.toml")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.IOError))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Registry().Len())
}
