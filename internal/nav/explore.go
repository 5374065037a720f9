package nav

import (
	"sort"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
)

// Direction selects which side of the dependency edges to traverse.
type Direction string

const (
	DirectionUp   Direction = "up"   // dependents: who depends on this entity
	DirectionDown Direction = "down" // dependencies: what this entity depends on
	DirectionBoth Direction = "both"
)

// TraversalNode is one node of the explore tree: the entity/edge-kind that
// led here, and its own children up to the requested depth.
type TraversalNode struct {
	EntityID string              `json:"entity_id"`
	Via      graph.EdgeKind      `json:"via,omitempty"`
	Children []*TraversalNode    `json:"children,omitempty"`
}

// Explore walks doc's dependency edges outward from id to depth levels in
// direction. The visited set is shared by the whole traversal, so each
// entity appears at most once, which also stops recursion through call
// cycles.
func Explore(doc *graph.Document, id string, direction Direction, depth int) (*TraversalNode, error) {
	if _, ok := doc.Entities[id]; !ok {
		return nil, rpgerr.New(rpgerr.KindNotFound, "explore", "no entity with id "+id)
	}
	visited := map[string]bool{id: true}
	return buildTraversal(doc, id, "", direction, depth, visited), nil
}

func buildTraversal(doc *graph.Document, id string, via graph.EdgeKind, direction Direction, depth int, visited map[string]bool) *TraversalNode {
	node := &TraversalNode{EntityID: id, Via: via}
	if depth <= 0 {
		return node
	}

	type next struct {
		id   string
		kind graph.EdgeKind
	}
	var candidates []next
	for _, e := range doc.EdgesFor(id) {
		if e.Kind == graph.EdgeContains {
			continue
		}
		if (direction == DirectionDown || direction == DirectionBoth) && e.Source == id {
			candidates = append(candidates, next{e.Target, e.Kind})
		}
		if (direction == DirectionUp || direction == DirectionBoth) && e.Target == id {
			candidates = append(candidates, next{e.Source, e.Kind})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].id != candidates[j].id {
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].kind < candidates[j].kind
	})

	for _, c := range candidates {
		if visited[c.id] {
			continue
		}
		visited[c.id] = true
		node.Children = append(node.Children, buildTraversal(doc, c.id, c.kind, direction, depth-1, visited))
	}
	return node
}
