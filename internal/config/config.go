// Package config loads goforeigner.toml.
package config

import (
	"fmt"
	"goforeigner/internal/diag"
	"goforeigner/internal/expansion"
	"goforeigner/internal/generation"
	"goforeigner/internal/logger"
	"goforeigner/internal/typemap"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-version"
)

const DefaultFile = "goforeigner.toml"

type Config struct {
	PackageName string            `toml:"package_name"`
	GoPackage   string            `toml:"go_package"`
	OutputDir   string            `toml:"output_dir"`
	JNIVersion  string            `toml:"jni_version"`
	Inputs      []string          `toml:"inputs"`
	Exclude     []string          `toml:"exclude"`
	ForceClean  bool              `toml:"force_clean"`
	Jobs        int               `toml:"jobs"`
	Types       map[string]string `toml:"types"`
	Log         LogConfig         `toml:"log"`
	Watch       WatchConfig       `toml:"watch"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

var (
	packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	goIdentPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(err, diag.IOError, "could not read config")
	}
	return Parse(path, string(data))
}

// Parse decodes, defaults and validates a TOML document. name is only used
// in error messages.
func Parse(name, data string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, configError(name, fmt.Sprintf("invalid TOML: %v", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, configError(name, "unknown keys: "+strings.Join(keys, ", "))
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, configError(name, err.Error())
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.PackageName) == "" {
		cfg.PackageName = expansion.DefaultPackageName
	}
	if strings.TrimSpace(cfg.GoPackage) == "" {
		cfg.GoPackage = "main"
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "./output/"
	}
	if strings.TrimSpace(cfg.JNIVersion) == "" {
		cfg.JNIVersion = generation.DefaultJNIVersion
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{"**.jbind"}
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 4
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "warn"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
}

// Validate checks a config after flags have been applied to it.
func (cfg *Config) Validate() error {
	if !packageNamePattern.MatchString(cfg.PackageName) {
		return fmt.Errorf("package_name %q may only contain letters, digits and underscores", cfg.PackageName)
	}
	if !goIdentPattern.MatchString(cfg.GoPackage) {
		return fmt.Errorf("go_package %q is not a Go identifier", cfg.GoPackage)
	}
	if _, err := generation.ParseJNIVersion(cfg.JNIVersion); err != nil {
		return fmt.Errorf("jni_version: %w", err)
	}
	for _, pattern := range append(append([]string{}, cfg.Inputs...), cfg.Exclude...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
	}
	for native, bridge := range cfg.Types {
		if strings.TrimSpace(native) == "" {
			return fmt.Errorf("types: empty native type name")
		}
		if !typemap.IsBridgeType(bridge) {
			return fmt.Errorf("types: %q maps to unknown JNI type %q", native, bridge)
		}
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", cfg.Log.Format)
	}
	return nil
}

// Registry returns the seed type registry extended with the [types] table.
func (cfg *Config) Registry() *typemap.Registry {
	return typemap.Default().Extend(cfg.Types)
}

func (cfg *Config) ParsedJNIVersion() *version.Version {
	v, err := generation.ParseJNIVersion(cfg.JNIVersion)
	if err != nil {
		return nil
	}
	return v
}

func (cfg *Config) ExpansionOptions() expansion.Options {
	return expansion.Options{PackageName: cfg.PackageName, Registry: cfg.Registry()}
}

func (cfg *Config) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(cfg.Log.Level)
	out := logger.DefaultConfig()
	out.Level = level
	out.Format = cfg.Log.Format
	return out
}

func configError(name, msg string) error {
	return diag.New(diag.ConfigError, diag.Pos{File: name}, msg)
}
