package lifting

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/rpg/internal/graph"
)

// RoutingEntry is one pending-routing queue record: an entity awaiting an
// explicit LLM routing decision or the Jaccard fallback at finalization.
type RoutingEntry struct {
	EntityID     string   `json:"entity_id"`
	OriginalPath string   `json:"original_path,omitempty"`
	Features     []string `json:"features"`
	Reason       string   `json:"reason"`
	// GraphRevision tags the graph state this entry was enqueued against.
	// Reconcile does not consult it.
	GraphRevision string `json:"graph_revision,omitempty"`
}

// Queue is the persisted pending-routing list, kept in insertion order.
type Queue struct {
	Entries []RoutingEntry `json:"entries"`
}

// DecodeQueue parses a persisted queue; an empty/missing input yields an
// empty Queue rather than an error.
func DecodeQueue(data []byte) (*Queue, error) {
	if len(data) == 0 {
		return &Queue{}, nil
	}
	q := &Queue{}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Encode serializes the queue deterministically.
func (q *Queue) Encode() ([]byte, error) {
	return json.MarshalIndent(q, "", "  ")
}

// Enqueue appends entry, tagging it with doc's current revision. An error
// here means the revision hash could not be computed; the entry is not
// enqueued, since a queue entry with a silently empty revision would defeat
// the staleness check submissions are meant to match against.
func (q *Queue) Enqueue(doc *graph.Document, entityID, originalPath string, features []string, reason string) error {
	revision, err := doc.Revision()
	if err != nil {
		return fmt.Errorf("lifting: compute graph revision: %w", err)
	}
	q.Entries = append(q.Entries, RoutingEntry{
		EntityID:      entityID,
		OriginalPath:  originalPath,
		Features:      features,
		Reason:        reason,
		GraphRevision: revision,
	})
	return nil
}

// Reconcile drops entries whose entity no longer exists in doc or whose
// features were cleared since enqueuing (spec §4.5's incremental-update
// reconciliation rule). Called by rpgbuild.Update after an incremental
// update.
func (q *Queue) Reconcile(doc *graph.Document) {
	var kept []RoutingEntry
	for _, e := range q.Entries {
		ent, ok := doc.Entities[e.EntityID]
		if !ok || len(ent.SemanticFeatures) == 0 {
			continue
		}
		kept = append(kept, e)
	}
	q.Entries = kept
}

// Clear empties the queue.
func (q *Queue) Clear() { q.Entries = nil }

// DrainWithFallback assigns every remaining entry to the V_H path whose
// aggregated features maximize Jaccard similarity against the entry's
// features, subject to the constraint that a child path is chosen over its
// parent only if its similarity strictly exceeds the parent's. Entries that
// match no hierarchy node are left in place (caller may retry later).
func (q *Queue) DrainWithFallback(doc *graph.Document) {
	if len(doc.Hierarchy) == 0 {
		return
	}

	var remaining []RoutingEntry
	for _, e := range q.Entries {
		path, ok := bestHierarchyPath(doc, e.Features)
		if !ok {
			remaining = append(remaining, e)
			continue
		}
		if ent, exists := doc.Entities[e.EntityID]; exists {
			ent.HierarchyPath = path
			doc.InsertIntoHierarchy(path, e.EntityID)
		}
	}
	q.Entries = remaining
}

// bestHierarchyPath walks the hierarchy depth-first, at each level moving
// into whichever child strictly beats its parent's similarity, and returns
// the deepest path reached. The drain can legitimately bottom out after one
// or two levels when no child beats its parent; such a path is rejected
// here (rather than handed to the caller) since I9 requires every routed
// entity's hierarchy_path to have exactly three segments, and a
// shorter one would corrupt the graph the moment it's assigned.
func bestHierarchyPath(doc *graph.Document, features []string) (string, bool) {
	names := make([]string, 0, len(doc.Hierarchy))
	for n := range doc.Hierarchy {
		names = append(names, n)
	}
	sort.Strings(names)

	var bestName string
	bestSim := -1.0
	for _, n := range names {
		sim := similarity(doc.Hierarchy[n].SemanticFeatures, features)
		if sim > bestSim {
			bestSim = sim
			bestName = n
		}
	}
	if bestName == "" {
		return "", false
	}

	path := bestName
	node := doc.Hierarchy[bestName]
	parentSim := bestSim
	for {
		childName, childSim, ok := bestChild(node, features, parentSim)
		if !ok {
			break
		}
		path += "/" + childName
		node = node.Children[childName]
		parentSim = childSim
	}
	if strings.Count(path, "/") != 2 {
		return "", false
	}
	return path, true
}

func bestChild(node *graph.HierarchyNode, features []string, parentSim float64) (string, float64, bool) {
	var bestName string
	bestSim := parentSim
	found := false
	for _, name := range node.ChildNames() {
		sim := similarity(node.Children[name].SemanticFeatures, features)
		if sim > bestSim {
			bestSim = sim
			bestName = name
			found = true
		}
	}
	return bestName, bestSim, found
}

func similarity(a, b []string) float64 {
	return 1.0 - Jaccard(a, b)
}
