package nav

import (
	"encoding/json"
	"sort"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/scopeglob"
)

// PlanStep is one entity a code-generation task should visit, in the order
// a generator should visit them: dependencies before dependents.
type PlanStep struct {
	EntityID string `json:"entity_id"`
	Reason   string `json:"reason"`
}

// Plan is the generation plan persisted under .rpg/generation_plan.json so
// a long-running code-generation workflow can resume after interruption
// (spec §4.6 storage, "generation plan").
type Plan struct {
	Scope string     `json:"scope"`
	Steps []PlanStep `json:"steps"`
}

// Encode serializes the plan deterministically.
func (p *Plan) Encode() ([]byte, error) { return json.MarshalIndent(p, "", "  ") }

// ReconstructPlan decodes a previously persisted plan, for a workflow
// resuming against its generation_plan.json rather than recomputing scope
// resolution and ordering from scratch.
func ReconstructPlan(data []byte) (*Plan, error) {
	p := &Plan{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, rpgerr.Wrap(rpgerr.KindInvalid, "reconstruct_plan", "decode generation plan", err)
	}
	return p, nil
}

// PlanChange resolves scopeExpr against doc and orders the resulting
// entities by a deterministic topological sort over their dependency edges
// restricted to the scope, so that an entity's in-scope dependencies
// always precede it (dependencies are generated/understood first). Ties
// and residual cycles fall back to ID order.
func PlanChange(doc *graph.Document, scopeExpr string) (*Plan, error) {
	scope, err := scopeglob.Parse(scopeExpr)
	if err != nil {
		return nil, rpgerr.Wrap(rpgerr.KindInvalid, "plan_change", "parse scope", err)
	}

	members := map[string]bool{}
	for id, e := range doc.Entities {
		if e.Kind == graph.KindModule {
			continue
		}
		if scope.MatchesID(id) || scope.MatchesFile(e.File) {
			members[id] = true
		}
	}

	// indegree[x] counts in-scope dependencies of x that must come first.
	indegree := map[string]int{}
	dependents := map[string][]string{}
	for id := range members {
		indegree[id] = 0
	}
	for id := range members {
		for _, edge := range doc.EdgesFor(id) {
			if edge.Kind == graph.EdgeContains || edge.Source != id {
				continue
			}
			dep := edge.Target
			if !members[dep] || dep == id {
				continue
			}
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var steps []PlanStep
	visited := map[string]bool{}
	for len(steps) < len(members) {
		if len(ready) == 0 {
			// Residual cycle: pick the lowest-ID unvisited member to break it.
			var remaining []string
			for id := range members {
				if !visited[id] {
					remaining = append(remaining, id)
				}
			}
			if len(remaining) == 0 {
				break
			}
			sort.Strings(remaining)
			ready = []string{remaining[0]}
		}

		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		steps = append(steps, PlanStep{EntityID: next, Reason: "in-scope dependency order"})

		for _, d := range dependents[next] {
			if visited[d] {
				continue
			}
			indegree[d]--
			if indegree[d] <= 0 {
				ready = append(ready, d)
			}
		}
	}

	return &Plan{Scope: scopeExpr, Steps: steps}, nil
}
