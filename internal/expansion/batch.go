package expansion

import (
	"context"
	"errors"
	"fmt"
	"goforeigner/internal/diag"
	"goforeigner/internal/logger"
	"goforeigner/internal/metadata"
	"os"

	"golang.org/x/sync/errgroup"
)

type Result struct {
	Path     string
	Bindings []metadata.ClassBinding
	Err      error
}

// Batch expands independent source files concurrently. All workers share
// the registry in opts, which is never written after construction.
type Batch struct {
	Options Options
	Jobs    int
}

// Run returns one result per path, in the order of paths. The error joins
// every per-file failure; a cancelled context stops the remaining work.
func (b Batch) Run(ctx context.Context, paths []string) ([]Result, error) {
	opts := b.Options.withDefaults()
	jobs := b.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = expandFile(path, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
		}
	}
	return results, errors.Join(errs...)
}

func expandFile(path string, opts Options) Result {
	log := logger.With("file", path)

	src, err := os.ReadFile(path)
	if err != nil {
		log.Error("Could not read source", "error", err)
		return Result{Path: path, Err: diag.Wrap(err, diag.IOError, fmt.Sprintf("could not read %s", path))}
	}

	bindings, err := ExpandSource(path, string(src), opts)
	if err != nil {
		log.Warn("Expansion failed", "error", err)
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Bindings: bindings}
}
