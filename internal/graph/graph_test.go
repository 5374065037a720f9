package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rpg/internal/graph"
)

func newTestDoc() *graph.Document {
	d := graph.New("0.1.0")
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py", LineStart: 1, LineEnd: 2})
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:logout", Kind: graph.KindFunction, Name: "logout", File: "src/auth.py", LineStart: 4, LineEnd: 5})
	d.InsertEntity(&graph.Entity{ID: "src/main.py:run", Kind: graph.KindFunction, Name: "run", File: "src/main.py", LineStart: 3, LineEnd: 3})
	return d
}

func TestInsertRemoveEntityRoundTrip(t *testing.T) {
	d := newTestDoc()
	before := len(d.Entities)

	e := d.Entities["src/auth.py:login"]
	cp := *e
	d.RemoveEntity("src/auth.py:login")
	assert.Len(t, d.Entities, before-1)
	assert.NotContains(t, d.FileIndex["src/auth.py"], "src/auth.py:login")

	d.InsertEntity(&cp)
	assert.Len(t, d.Entities, before)
	assert.Contains(t, d.FileIndex["src/auth.py"], "src/auth.py:login")
}

func TestCreateModuleEntitiesIsIdempotent(t *testing.T) {
	d := newTestDoc()
	d.CreateModuleEntities()
	first := len(d.Entities)
	d.CreateModuleEntities()
	assert.Equal(t, first, len(d.Entities))

	mod, ok := d.Entities[graph.ModuleID("src/auth.py", "auth")]
	require.True(t, ok)
	assert.Equal(t, 1, mod.LineStart)
	assert.Equal(t, 5, mod.LineEnd)
}

func TestBuildFilePathHierarchyDeterministic(t *testing.T) {
	d := newTestDoc()
	d.CreateModuleEntities()
	d.BuildFilePathHierarchy()
	first := serializeHierarchy(d)

	d.BuildFilePathHierarchy()
	second := serializeHierarchy(d)

	assert.Equal(t, first, second)
	assert.False(t, d.Metadata.SemanticHierarchy)
}

func serializeHierarchy(d *graph.Document) map[string][]string {
	out := map[string][]string{}
	for area, node := range d.Hierarchy {
		out[area] = node.Entities
	}
	return out
}

func TestMaterializeContainmentEdgesIdempotent(t *testing.T) {
	d := newTestDoc()
	d.CreateModuleEntities()
	d.BuildFilePathHierarchy()
	d.AssignHierarchyIDs()

	d.MaterializeContainmentEdges()
	first := containsEdgeSet(d)

	d.MaterializeContainmentEdges()
	second := containsEdgeSet(d)

	assert.ElementsMatch(t, first, second)
}

func containsEdgeSet(d *graph.Document) []string {
	var out []string
	for _, e := range d.Edges {
		if e.Kind == graph.EdgeContains {
			out = append(out, e.Source+"->"+e.Target)
		}
	}
	return out
}

func TestRefreshMetadataCoverageIdentity(t *testing.T) {
	d := newTestDoc()
	d.Entities["src/auth.py:login"].SemanticFeatures = []string{"authenticate user"}
	d.RefreshMetadata()
	assert.Equal(t, 1, d.Metadata.LiftedEntities)
	assert.Empty(t, d.Validate())
}

func TestValidateHierarchyPath(t *testing.T) {
	assert.NoError(t, graph.ValidateHierarchyPath("Auth/login/session"))
	assert.Error(t, graph.ValidateHierarchyPath("A/B"))
	assert.Error(t, graph.ValidateHierarchyPath("A/ B/C"))
	assert.Error(t, graph.ValidateHierarchyPath("/A/B/C"))
}

func TestEdgesForFallsBackWithoutIndex(t *testing.T) {
	d := newTestDoc()
	d.Edges = append(d.Edges, &graph.Edge{Kind: graph.EdgeInvokes, Source: "src/main.py:run", Target: "src/auth.py:login"})
	edges := d.EdgesFor("src/auth.py:login")
	require.Len(t, edges, 1)
	assert.Equal(t, graph.EdgeInvokes, edges[0].Kind)
}
