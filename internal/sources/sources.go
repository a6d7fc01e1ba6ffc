// Package sources finds the binding declaration files a run should expand.
package sources

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

const Extension = ".jbind"

// Matcher selects files by slash-separated path relative to a root.
// A file is selected when it matches an include pattern and no exclude
// pattern.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewMatcher(include, exclude []string) (*Matcher, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}
	return &Matcher{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range m.exclude {
		if g.Match(rel) {
			return false
		}
	}
	for _, g := range m.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Excluded reports whether a directory can be skipped entirely.
func (m *Matcher) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range m.exclude {
		if g.Match(rel) || g.Match(rel+"/") {
			return true
		}
	}
	return false
}

// Discover walks root and returns the matching files in lexical order.
func (m *Matcher) Discover(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if rel != "." && m.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.Match(rel) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// Resolve expands command line arguments into source files. Directories are
// searched with the matcher, plain files are taken as given. Duplicates are
// dropped and the first occurrence keeps its place.
func (m *Matcher) Resolve(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		discovered, err := m.Discover(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range discovered {
			add(path)
		}
	}
	return files, nil
}
