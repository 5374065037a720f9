package nav

import (
	"sort"

	"github.com/viant/rpg/internal/graph"
)

// ContextPack bundles everything a code-generation task typically needs
// about a small set of entities: the entities themselves, their immediate
// dependency neighbors (one hop, both directions, deduplicated), and the
// hierarchy nodes they live under. It is a pure projection over the graph
// — the MCP context_pack tool's payload.
type ContextPack struct {
	Entities   []*graph.Entity
	Neighbors  []*graph.Entity
	Hierarchy  []*graph.HierarchyNode
}

// BuildContextPack assembles a ContextPack for ids, skipping any ID that
// doesn't resolve rather than failing the whole request (the caller may
// have passed a mixed valid/stale list from a prior plan).
func BuildContextPack(doc *graph.Document, ids []string) *ContextPack {
	pack := &ContextPack{}
	seen := map[string]bool{}
	hierSeen := map[string]bool{}

	for _, id := range sortedCopy(ids) {
		e, ok := doc.Entities[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		pack.Entities = append(pack.Entities, e)

		if e.HierarchyPath != "" {
			if node := doc.FindHierarchyNodeByID(hierarchyIDFromPath(e.HierarchyPath)); node != nil && !hierSeen[node.ID] {
				hierSeen[node.ID] = true
				pack.Hierarchy = append(pack.Hierarchy, node)
			}
		}

		for _, edge := range doc.EdgesFor(id) {
			if edge.Kind == graph.EdgeContains {
				continue
			}
			other := edge.Target
			if other == id {
				other = edge.Source
			}
			if seen[other] {
				continue
			}
			if ne, ok := doc.Entities[other]; ok {
				seen[other] = true
				pack.Neighbors = append(pack.Neighbors, ne)
			}
		}
	}

	return pack
}

func hierarchyIDFromPath(path string) string { return "h:" + path }

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
