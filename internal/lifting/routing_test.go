package lifting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
)

// threeLevelDoc builds a V_H with exactly one full Area/category/subcategory
// path, so the drain's child-descent exercises all three levels.
func threeLevelDoc() *graph.Document {
	d := graph.New("0.1.0")
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py"})
	d.Metadata.SemanticHierarchy = true
	d.Hierarchy = map[string]*graph.HierarchyNode{
		"auth": {
			Name:             "auth",
			SemanticFeatures: []string{"a"},
			Children: map[string]*graph.HierarchyNode{
				"session": {
					Name:             "session",
					SemanticFeatures: []string{"a", "b"},
					Children: map[string]*graph.HierarchyNode{
						"login": {
							Name:             "login",
							SemanticFeatures: []string{"a", "b", "c"},
						},
					},
				},
			},
		},
	}
	return d
}

func TestDrainWithFallbackAssignsFullDepthPath(t *testing.T) {
	d := threeLevelDoc()
	q := &lifting.Queue{Entries: []lifting.RoutingEntry{
		{EntityID: "src/auth.py:login", Features: []string{"a", "b", "c"}},
	}}

	q.DrainWithFallback(d)

	assert.Empty(t, q.Entries)
	ent := d.Entities["src/auth.py:login"]
	require.NotNil(t, ent)
	assert.Equal(t, "auth/session/login", ent.HierarchyPath)
}

func TestDrainWithFallbackLeavesShortPathPending(t *testing.T) {
	d := threeLevelDoc()
	// Features identical to the root's only - no child ever strictly beats
	// its parent, so the walk bottoms out at depth 1.
	q := &lifting.Queue{Entries: []lifting.RoutingEntry{
		{EntityID: "src/auth.py:login", Features: []string{"a"}},
	}}

	q.DrainWithFallback(d)

	require.Len(t, q.Entries, 1)
	assert.Equal(t, "src/auth.py:login", q.Entries[0].EntityID)
	ent := d.Entities["src/auth.py:login"]
	require.NotNil(t, ent)
	assert.Empty(t, ent.HierarchyPath)
}
