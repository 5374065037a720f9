// Package lifting implements the three-tier semantic feature pipeline:
// deterministic auto-lifting, LLM batching, and aggregation/synthesis, plus
// the three-level semantic hierarchy construction protocol.
package lifting

import (
	"sort"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/scopeglob"
)

// ResolveScope parses expr and returns the ordered set of candidate entity
// IDs it selects from doc, restricted to non-Module entities. When
// unliftedOnly is true (the "*"/"all" eager-batch case), entities that
// already carry semantic features are excluded.
func ResolveScope(doc *graph.Document, expr string, unliftedOnly bool) ([]string, error) {
	scope, err := scopeglob.Parse(expr)
	if err != nil {
		return nil, err
	}

	var ids []string
	switch scope.Kind() {
	case scopeglob.KindHierarchyPath:
		path, _ := scope.HierarchyPath()
		for _, id := range idsUnderHierarchyPath(doc, path) {
			if e, ok := doc.Entities[id]; ok && e.Kind != graph.KindModule {
				ids = append(ids, id)
			}
		}
	default:
		for id, e := range doc.Entities {
			if e.Kind == graph.KindModule {
				continue
			}
			if scope.MatchesFile(e.File) || scope.MatchesID(id) {
				ids = append(ids, id)
			}
		}
	}

	if unliftedOnly {
		filtered := ids[:0]
		for _, id := range ids {
			if len(doc.Entities[id].SemanticFeatures) == 0 {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}

	sort.Strings(ids)
	return ids, nil
}

// idsUnderHierarchyPath resolves a hierarchy path like "Auth/login" to the
// entity IDs attached at or beneath that node.
func idsUnderHierarchyPath(doc *graph.Document, path string) []string {
	node := doc.FindHierarchyNodeByID("h:" + path)
	if node == nil {
		return nil
	}
	var ids []string
	collect(node, &ids)
	return ids
}

func collect(node *graph.HierarchyNode, ids *[]string) {
	*ids = append(*ids, node.Entities...)
	for _, name := range node.ChildNames() {
		collect(node.Children[name], ids)
	}
}
