package nav

import (
	"sort"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
)

// ImpactEntry is one entity transitively affected by a change to the
// queried entity, together with the shortest hop distance at which it was
// reached.
type ImpactEntry struct {
	EntityID string
	Distance int
}

// ImpactRadius returns every entity that depends (transitively, up to
// maxDepth hops) on id via invokes/imports/inherits/composes/renders/
// reads_state/writes_state/dispatches edges — the blast radius a change
// to id would propagate through. Ordered by distance then ID.
func ImpactRadius(doc *graph.Document, id string, maxDepth int) ([]ImpactEntry, error) {
	if _, ok := doc.Entities[id]; !ok {
		return nil, rpgerr.New(rpgerr.KindNotFound, "impact_radius", "no entity with id "+id)
	}

	distance := map[string]int{id: 0}
	frontier := []string{id}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, cur := range frontier {
			for _, e := range doc.EdgesFor(cur) {
				if e.Kind == graph.EdgeContains || e.Target != cur {
					continue
				}
				if _, seen := distance[e.Source]; seen {
					continue
				}
				distance[e.Source] = depth + 1
				next = append(next, e.Source)
			}
		}
		frontier = next
	}

	var out []ImpactEntry
	for entityID, d := range distance {
		if entityID == id {
			continue
		}
		out = append(out, ImpactEntry{EntityID: entityID, Distance: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out, nil
}
