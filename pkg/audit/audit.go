package audit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hellenic-development/gl-header/pkg/allowlist"
	"github.com/hellenic-development/gl-header/pkg/source"

	"golang.org/x/sync/errgroup"
)

// DefaultFiles are the sources that call into the generated header.
var DefaultFiles = []string{"sdl_gl_platform.cpp"}

const defaultConcurrency = 4

var (
	constantRe = regexp.MustCompile(`\bGL_[A-Z0-9_]+`)
	functionRe = regexp.MustCompile(`\bgl[A-Za-z0-9]+`)
)

// Config selects what to scan.
type Config struct {
	Dir         string   // searched recursively
	Files       []string // base names to scan; empty = DefaultFiles
	Concurrency int      // files scanned in parallel; <= 0 = 4
}

// Report lists the scanned files and the allow-listed names nobody references.
type Report struct {
	Files           []string
	Counts          map[string]int
	UnusedConstants []string
	UnusedFunctions []string
}

// Unused returns the total number of unreferenced names.
func (r *Report) Unused() int {
	return len(r.UnusedConstants) + len(r.UnusedFunctions)
}

// Scan counts references to allow-listed names in the selected files under cfg.Dir.
func Scan(ctx context.Context, cfg Config, list *allowlist.List) (*Report, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: no directory given", source.ErrMissingInput)
	}
	if info, err := os.Stat(cfg.Dir); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrMissingInput, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", source.ErrMissingInput, cfg.Dir)
	}

	files, err := collect(cfg)
	if err != nil {
		return nil, err
	}

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	perFile := make([]map[string]int, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range files {
		i, path := i, path // per-iteration copies (Go <1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts, err := scanFile(path, list)
			if err != nil {
				return err
			}
			perFile[i] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: files, Counts: make(map[string]int)}
	for _, name := range list.Constants {
		report.Counts[name] = 0
	}
	for _, name := range list.Functions {
		report.Counts[name] = 0
	}
	for _, counts := range perFile {
		for name, n := range counts {
			report.Counts[name] += n
		}
	}

	for _, name := range list.Constants {
		if report.Counts[name] == 0 {
			report.UnusedConstants = append(report.UnusedConstants, name)
		}
	}
	for _, name := range list.Functions {
		if report.Counts[name] == 0 {
			report.UnusedFunctions = append(report.UnusedFunctions, name)
		}
	}

	return report, nil
}

func collect(cfg Config) ([]string, error) {
	names := cfg.Files
	if len(names) == 0 {
		names = DefaultFiles
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := wanted[d.Name()]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", cfg.Dir, err)
	}
	return files, nil
}

func scanFile(path string, list *allowlist.List) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	counts := make(map[string]int)
	for _, name := range constantRe.FindAllString(string(data), -1) {
		if list.HasConstant(name) {
			counts[name]++
		}
	}
	for _, name := range functionRe.FindAllString(string(data), -1) {
		if list.HasFunction(name) {
			counts[name]++
		}
	}
	return counts, nil
}
