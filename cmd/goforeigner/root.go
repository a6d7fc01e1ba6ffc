package main

import (
	"goforeigner/internal/config"
	"goforeigner/internal/diag"
	"goforeigner/internal/expansion"
	"goforeigner/internal/generation"
	"goforeigner/internal/logger"
	"goforeigner/internal/sources"
	"os"

	"github.com/spf13/cobra"
)

const rootLongDescription = `goforeigner reads class binding declarations (.jbind files) and writes
one cgo file per class holding an exported JNI bridge for every method.

A declaration block looks like:

  class Counter {
      constructor Counter.new(start: i32);
      method Counter.add(&mut self, delta: i32) -> i32;
      method Counter.get(&self) -> i32;
  }

Paths may be files or directories. Directories are searched with the
inputs/exclude globs of the config file. Without paths the current
directory is searched.`

var (
	configFlag      string
	packageNameFlag string
	logLevelFlag    string
	logFormatFlag   string

	outputFlag     string
	goPackageFlag  string
	jniVersionFlag string
	jobsFlag       int
	forceCleanFlag bool
	watchFlag      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "goforeigner [paths...]",
		Short:         "Generate JNI bridges from class binding declarations",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runGenerate,
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&configFlag, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")
	persistent.StringVar(&packageNameFlag, "package-name", expansion.DefaultPackageName, "package segment of bridge names")
	persistent.StringVar(&logLevelFlag, "log-level", "warn", "log level: debug, info, warn or error")
	persistent.StringVar(&logFormatFlag, "log-format", "text", "log format: text or json")

	flags := cmd.Flags()
	flags.StringVarP(&outputFlag, "output", "o", "./output/", "directory the generated files are written to")
	flags.StringVar(&goPackageFlag, "go-package", "main", "package clause of the generated files")
	flags.StringVar(&jniVersionFlag, "jni-version", generation.DefaultJNIVersion, "JNI version reported by JNI_OnLoad")
	flags.IntVarP(&jobsFlag, "jobs", "j", 4, "number of source files expanded in parallel")
	flags.BoolVarP(&forceCleanFlag, "force-clean", "f", false, "clear a non-empty output directory without asking")
	flags.BoolVarP(&watchFlag, "watch", "w", false, "regenerate whenever a source changes")

	cmd.AddCommand(newListCmd(), newTypesCmd())
	return cmd
}

// loadConfig reads the config file, applies the flags the user set
// explicitly and initializes logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case configFlag != "":
		cfg, err = config.Load(configFlag)
	case fileExists(config.DefaultFile):
		cfg, err = config.Load(config.DefaultFile)
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("package-name") {
		cfg.PackageName = packageNameFlag
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormatFlag
	}
	if flags.Lookup("output") != nil {
		if flags.Changed("output") {
			cfg.OutputDir = outputFlag
		}
		if flags.Changed("go-package") {
			cfg.GoPackage = goPackageFlag
		}
		if flags.Changed("jni-version") {
			cfg.JNIVersion = jniVersionFlag
		}
		if flags.Changed("jobs") {
			cfg.Jobs = jobsFlag
		}
		if flags.Changed("force-clean") {
			cfg.ForceClean = forceCleanFlag
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, diag.New(diag.ConfigError, diag.Pos{File: "command line"}, err.Error())
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if err := logger.Init(logCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSources turns the positional arguments into the files to expand.
func resolveSources(cfg *config.Config, args []string) (*sources.Matcher, []string, error) {
	matcher, err := sources.NewMatcher(cfg.Inputs, cfg.Exclude)
	if err != nil {
		return nil, nil, err
	}
	files, err := matcher.Resolve(roots(args))
	if err != nil {
		return nil, nil, diag.Wrap(err, diag.IOError, "could not resolve sources")
	}
	return matcher, files, nil
}

func roots(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
