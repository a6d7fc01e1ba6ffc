package main

import (
	"context"
	"errors"
	"fmt"
	"goforeigner/internal/config"
	"goforeigner/internal/expansion"
	"goforeigner/internal/generation"
	"goforeigner/internal/logger"
	"goforeigner/internal/sources"
	"goforeigner/internal/watcher"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// failedRun reports source files that could not be expanded. The
// diagnostics stay reachable through Unwrap.
type failedRun struct {
	failed int
	total  int
	err    error
}

func (e *failedRun) Error() string {
	return fmt.Sprintf("%d of %d source files failed, nothing was written", e.failed, e.total)
}

func (e *failedRun) Unwrap() error {
	return e.err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	matcher, files, err := resolveSources(cfg, args)
	if err != nil {
		return err
	}

	u := newUI(cmd)
	ctx := cmd.Context()
	err = generateOnce(ctx, cfg, files, u, cfg.ForceClean)
	if !watchFlag {
		return err
	}
	if err != nil {
		u.Error(err)
	}
	return watch(ctx, cfg, matcher, roots(args), u, err == nil)
}

// generateOnce expands files and writes their bridges. Nothing is written
// unless every file expands and no two bridges collide.
func generateOnce(ctx context.Context, cfg *config.Config, files []string, u *ui, force bool) error {
	if len(files) == 0 {
		return errors.New("no binding sources found")
	}

	batch := expansion.Batch{Options: cfg.ExpansionOptions(), Jobs: cfg.Jobs}
	results, err := batch.Run(ctx, files)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
			}
		}
		return &failedRun{failed: failed, total: len(files), err: err}
	}

	generator := generation.NewGenerator(cfg.GoPackage, cfg.OutputDir, cfg.ParsedJNIVersion())
	bridges := 0
	for _, result := range results {
		for _, binding := range result.Bindings {
			generator.RegisterClass(binding)
			bridges += len(binding.Functions)
		}
	}
	if err := generator.CheckCollisions(); err != nil {
		return err
	}

	if err := clearOutput(cfg.OutputDir, force, u); err != nil {
		return err
	}
	written, err := generator.Generate()
	if err != nil {
		return err
	}

	logger.Info("Generation finished", "sources", len(files), "classes", len(generator.Classes), "bridges", bridges)
	u.Printf("Generated %d bridges for %d classes in %s (%d files)\n", bridges, len(generator.Classes), cfg.OutputDir, len(written))
	return nil
}

// clearOutput empties a non-empty output directory. Unless force is set the
// user has to agree first, which needs an interactive stdin.
func clearOutput(path string, force bool, u *ui) error {
	entries, err := os.ReadDir(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if !force {
		if !u.interactive {
			return fmt.Errorf("output directory %s is not empty, pass --force-clean to clear it", path)
		}
		if !u.Confirm("Output directory is not empty. Continuing removes every file in it. Proceed? [Y/n] ") {
			return errors.New("explicit agreement was not given")
		}
	}

	logger.Info("Cleaning output directory", "path", path)
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// watch regenerates everything after each debounced batch of source
// changes until ctx is cancelled. The output directory is only cleared
// without asking once it holds nothing but files this process generated,
// that is after the first successful run, or when force_clean is set.
func watch(ctx context.Context, cfg *config.Config, matcher *sources.Matcher, paths []string, u *ui, generated bool) error {
	isSource := func(path string) bool {
		return strings.HasSuffix(path, sources.Extension)
	}
	w, err := watcher.New(cfg.Watch.Debounce, isSource, func(changed []string) {
		logger.Info("Sources changed", "files", changed)
		files, err := matcher.Resolve(paths)
		if err == nil {
			err = generateOnce(ctx, cfg, files, u, cfg.ForceClean || generated)
		}
		if err == nil {
			generated = true
		}
		if err != nil && ctx.Err() == nil {
			u.Error(err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}

	u.Printf("Watching %s for changes\n", strings.Join(paths, ", "))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
