package parser

import (
	"path/filepath"
	"sort"
	"strings"
)

// DetectResult is one language's share of a directory scan.
type DetectResult struct {
	Language  Language
	FileCount int
}

// DetectAll scans every source file under root (as produced by a file
// walker respecting .gitignore/.rpgignore) and returns every language
// present, ordered by file count descending then language name ascending
// for determinism.
func DetectAll(files []string) []DetectResult {
	counts := map[Language]int{}
	for _, f := range files {
		if lang, ok := DetectFile(f); ok {
			counts[lang]++
		}
	}
	results := make([]DetectResult, 0, len(counts))
	for lang, n := range counts {
		results = append(results, DetectResult{Language: lang, FileCount: n})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].FileCount != results[j].FileCount {
			return results[i].FileCount > results[j].FileCount
		}
		return results[i].Language < results[j].Language
	})
	return results
}

// DetectFile returns the language owning a single file's extension.
func DetectFile(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extensions[ext]
	return lang, ok
}
