package parser

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ReadFile resolves a repository-relative path to its source bytes.
type ReadFile func(path string) ([]byte, error)

// OSReadFile joins path onto root and reads it with the OS filesystem.
func OSReadFile(root string) ReadFile {
	return func(path string) ([]byte, error) {
		return os.ReadFile(root + string(os.PathSeparator) + path)
	}
}

// ParseAll parses files concurrently, one tree-sitter instance per file
// (grammars are never shared across goroutines), and returns results in
// the same order as files so downstream hashing/diffing stays
// reproducible regardless of goroutine scheduling. A file that fails to
// read or parse yields a zero-value FileResult with Err set rather than
// aborting the whole batch (spec §4.1 "Failures").
func ParseAll(ctx context.Context, files []string, read ReadFile) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			lang, ok := DetectFile(file)
			if !ok {
				results[i] = FileResult{File: file}
				return nil
			}
			src, err := read(file)
			if err != nil {
				results[i] = FileResult{File: file, Language: lang, Err: err}
				return nil
			}
			results[i] = ParseFile(lang, file, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
