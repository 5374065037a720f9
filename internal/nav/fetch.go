package nav

import (
	"strings"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
)

// FetchResult is the projection returned by the "fetch" CLI command and
// the fetch_node MCP tool: exactly one of Entity/Hierarchy is set.
type FetchResult struct {
	Entity    *graph.Entity
	Hierarchy *graph.HierarchyNode
}

// Fetch resolves id to its entity or hierarchy-node detail. Hierarchy
// node IDs are distinguished by the "h:" prefix (spec §3).
func Fetch(doc *graph.Document, id string) (*FetchResult, error) {
	if strings.HasPrefix(id, "h:") {
		node := doc.FindHierarchyNodeByID(id)
		if node == nil {
			return nil, rpgerr.New(rpgerr.KindNotFound, "fetch", "no hierarchy node with id "+id)
		}
		return &FetchResult{Hierarchy: node}, nil
	}

	e, ok := doc.Entities[id]
	if !ok {
		return nil, rpgerr.New(rpgerr.KindNotFound, "fetch", "no entity with id "+id)
	}
	return &FetchResult{Entity: e}, nil
}
