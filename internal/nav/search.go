package nav

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/scopeglob"
)

// Mode selects which part of an entity the query is matched against.
type Mode string

const (
	ModeFeatures Mode = "features"
	ModeSnippets Mode = "snippets"
	ModeAuto     Mode = "auto"
)

// SearchOptions narrows a search beyond the free-text query.
type SearchOptions struct {
	Mode        Mode
	Scope       string // lifting-scope expression: "*", a file glob, or an ID list; a hierarchy-path expression selects no entities here
	LineStart   int    // 0 means unset
	LineEnd     int    // 0 means unset
	FilePattern string // glob against entity.File

	// RepoRoot, when set, lets ModeSnippets/ModeAuto read source text off
	// disk for entities whose semantic_features don't match. Left empty,
	// snippet matching is skipped (features-only).
	RepoRoot string
}

// SearchResult is one ranked hit.
type SearchResult struct {
	EntityID string
	Score    float64
	Matched  string // the feature phrase or snippet line that scored
}

// Search ranks doc's entities against query using lexical overlap against
// semantic features (ModeFeatures), source snippets (ModeSnippets), or
// both (ModeAuto), after narrowing to opts.Scope/LineStart-LineEnd/
// FilePattern. Hybrid lexical+semantic ranking (an ANN index over
// embeddings) is an external collaborator per spec §2; this is the
// lexical half those navigation utilities build on.
func Search(doc *graph.Document, query string, opts SearchOptions) ([]SearchResult, error) {
	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, rpgerr.New(rpgerr.KindInvalid, "search", "empty query")
	}

	ids, err := resolveCandidates(doc, opts)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, id := range ids {
		e := doc.Entities[id]
		best := SearchResult{EntityID: id}

		if opts.Mode == ModeFeatures || opts.Mode == ModeAuto {
			if score, phrase, ok := bestFeatureMatch(terms, e.SemanticFeatures); ok && score > best.Score {
				best = SearchResult{EntityID: id, Score: score, Matched: phrase}
			}
		}
		if (opts.Mode == ModeSnippets || opts.Mode == ModeAuto) && opts.RepoRoot != "" {
			if score, line, ok := bestSnippetMatch(terms, opts.RepoRoot, e); ok && score > best.Score {
				best = SearchResult{EntityID: id, Score: score, Matched: line}
			}
		}
		if best.Score > 0 {
			results = append(results, best)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].EntityID < results[j].EntityID
	})
	return results, nil
}

func resolveCandidates(doc *graph.Document, opts SearchOptions) ([]string, error) {
	var ids []string
	if opts.Scope != "" {
		scope, err := scopeglob.Parse(opts.Scope)
		if err != nil {
			return nil, rpgerr.Wrap(rpgerr.KindInvalid, "search", "parse scope", err)
		}
		for id, e := range doc.Entities {
			if e.Kind == graph.KindModule {
				continue
			}
			if scope.MatchesID(id) || scope.MatchesFile(e.File) {
				ids = append(ids, id)
			}
		}
	} else {
		for id, e := range doc.Entities {
			if e.Kind != graph.KindModule {
				ids = append(ids, id)
			}
		}
	}

	var g glob.Glob
	if opts.FilePattern != "" {
		var err error
		g, err = glob.Compile(opts.FilePattern, '/')
		if err != nil {
			return nil, rpgerr.Wrap(rpgerr.KindInvalid, "search", "compile file pattern", err)
		}
	}

	filtered := ids[:0]
	for _, id := range ids {
		e := doc.Entities[id]
		if g != nil && !g.Match(e.File) {
			continue
		}
		if opts.LineStart > 0 && e.LineEnd < opts.LineStart {
			continue
		}
		if opts.LineEnd > 0 && e.LineStart > opts.LineEnd {
			continue
		}
		filtered = append(filtered, id)
	}
	sort.Strings(filtered)
	return filtered, nil
}

func bestFeatureMatch(terms []string, features []string) (float64, string, bool) {
	best := 0.0
	bestPhrase := ""
	for _, phrase := range features {
		score := overlapScore(terms, tokenize(phrase))
		if score > best {
			best = score
			bestPhrase = phrase
		}
	}
	return best, bestPhrase, best > 0
}

func bestSnippetMatch(terms []string, repoRoot string, e *graph.Entity) (float64, string, bool) {
	data, err := os.ReadFile(repoRoot + string(os.PathSeparator) + e.File)
	if err != nil {
		return 0, "", false
	}
	lines := strings.Split(string(data), "\n")
	start, end := e.LineStart-1, e.LineEnd
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return 0, "", false
	}

	best := 0.0
	bestLine := ""
	for _, line := range lines[start:end] {
		score := overlapScore(terms, tokenize(line))
		if score > best {
			best = score
			bestLine = strings.TrimSpace(line)
		}
	}
	return best, bestLine, best > 0
}

// overlapScore is the fraction of query terms present in candidate, a
// deliberately simple lexical metric: deterministic, dependency-free, and
// good enough to rank within the narrowed candidate set the scope/glob
// filters already produced.
func overlapScore(terms, candidate []string) float64 {
	if len(terms) == 0 || len(candidate) == 0 {
		return 0
	}
	set := map[string]bool{}
	for _, c := range candidate {
		set[c] = true
	}
	hit := 0
	for _, t := range terms {
		if set[t] {
			hit++
		}
	}
	return float64(hit) / float64(len(terms))
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return fields
}

// parseLineRange parses a "A-B" line-range flag value.
func parseLineRange(raw string) (start, end int, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, rpgerr.New(rpgerr.KindInvalid, "search", "line range must be A-B")
	}
	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, rpgerr.Wrap(rpgerr.KindInvalid, "search", "parse line range start", err)
	}
	end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, rpgerr.Wrap(rpgerr.KindInvalid, "search", "parse line range end", err)
	}
	return start, end, nil
}

// ParseLineRange is the exported form used by CLI/MCP argument parsing.
func ParseLineRange(raw string) (int, int, error) { return parseLineRange(raw) }
