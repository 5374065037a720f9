// Package scopeglob resolves a lifting-scope expression ("*"/"all", a file
// glob, a hierarchy path, or an explicit entity ID list) against a set of
// candidate entities. Glob matching uses gobwas/glob for its compiled,
// allocation-light matcher rather than path/filepath.Match's per-call
// parsing.
package scopeglob

import (
	"strings"

	"github.com/gobwas/glob"
)

// Kind classifies a parsed scope expression.
type Kind int

const (
	KindAll Kind = iota
	KindFileGlob
	KindHierarchyPath
	KindEntityList
)

// Scope is a parsed lifting-scope expression ready to test candidates
// against.
type Scope struct {
	kind  Kind
	g     glob.Glob
	path  string
	ids   map[string]bool
}

// Parse interprets expr per the lifting scope grammar:
//   - "*" or "all" matches everything
//   - a string containing a glob metacharacter (*,?,[) is a file glob
//   - a string of the form "area/subcategory/subsubcategory" (exactly two
//     "/" separators, no glob metacharacters) is a hierarchy path
//   - otherwise a comma-separated list of explicit entity IDs
func Parse(expr string) (*Scope, error) {
	expr = strings.TrimSpace(expr)
	if expr == "*" || expr == "all" || expr == "" {
		return &Scope{kind: KindAll}, nil
	}

	if strings.ContainsAny(expr, "*?[") {
		g, err := glob.Compile(expr, '/')
		if err != nil {
			return nil, err
		}
		return &Scope{kind: KindFileGlob, g: g}, nil
	}

	if strings.Count(expr, "/") == 2 && !strings.Contains(expr, ",") {
		return &Scope{kind: KindHierarchyPath, path: expr}, nil
	}

	ids := map[string]bool{}
	for _, id := range strings.Split(expr, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids[id] = true
		}
	}
	return &Scope{kind: KindEntityList, ids: ids}, nil
}

// MatchesFile reports whether file falls within a KindAll or KindFileGlob
// scope. It always returns false for KindHierarchyPath/KindEntityList,
// whose callers must test HierarchyPath/MatchesID instead.
func (s *Scope) MatchesFile(file string) bool {
	switch s.kind {
	case KindAll:
		return true
	case KindFileGlob:
		return s.g.Match(file)
	default:
		return false
	}
}

// HierarchyPath returns the parsed hierarchy path and whether the scope is
// of that kind.
func (s *Scope) HierarchyPath() (string, bool) {
	return s.path, s.kind == KindHierarchyPath
}

// MatchesID reports whether id is in a KindAll or KindEntityList scope.
func (s *Scope) MatchesID(id string) bool {
	switch s.kind {
	case KindAll:
		return true
	case KindEntityList:
		return s.ids[id]
	default:
		return false
	}
}

// Kind exposes the parsed scope kind for dispatch in callers that resolve
// candidates differently per kind (e.g. hierarchy path needs graph lookup).
func (s *Scope) Kind() Kind { return s.kind }
