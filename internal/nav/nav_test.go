package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/nav"
)

func newTestDoc() *graph.Document {
	d := graph.New("0.1.0")
	d.InsertEntity(&graph.Entity{
		ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py",
		LineStart: 1, LineEnd: 5, SemanticFeatures: []string{"authenticate user"},
	})
	d.InsertEntity(&graph.Entity{
		ID: "src/auth.py:logout", Kind: graph.KindFunction, Name: "logout", File: "src/auth.py",
		LineStart: 6, LineEnd: 8, SemanticFeatures: []string{"clear session"},
	})
	d.InsertEntity(&graph.Entity{
		ID: "src/main.py:run", Kind: graph.KindFunction, Name: "run", File: "src/main.py",
		LineStart: 1, LineEnd: 3, SemanticFeatures: []string{"start application"},
	})
	d.CreateModuleEntities()
	d.BuildFilePathHierarchy()

	d.Edges = append(d.Edges, &graph.Edge{Kind: graph.EdgeInvokes, Source: "src/main.py:run", Target: "src/auth.py:login"})
	d.RefreshMetadata()
	return d
}

func TestSearchRanksByFeatureOverlap(t *testing.T) {
	d := newTestDoc()
	results, err := nav.Search(d, "authenticate user", nav.SearchOptions{Scope: "*"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "src/auth.py:login", results[0].EntityID)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	d := newTestDoc()
	_, err := nav.Search(d, "   ", nav.SearchOptions{Scope: "*"})
	assert.Error(t, err)
}

func TestFetchEntityAndHierarchy(t *testing.T) {
	d := newTestDoc()
	res, err := nav.Fetch(d, "src/auth.py:login")
	require.NoError(t, err)
	require.NotNil(t, res.Entity)
	assert.Equal(t, "login", res.Entity.Name)

	_, err = nav.Fetch(d, "does-not-exist")
	assert.Error(t, err)
}

func TestExploreFollowsInvokesDownstream(t *testing.T) {
	d := newTestDoc()
	tree, err := nav.Explore(d, "src/main.py:run", nav.DirectionDown, 2)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "src/auth.py:login", tree.Children[0].EntityID)
}

func TestImpactRadiusFindsUpstreamDependent(t *testing.T) {
	d := newTestDoc()
	entries, err := nav.ImpactRadius(d, "src/auth.py:login", 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/main.py:run", entries[0].EntityID)
}

func TestPlanChangeOrdersDependenciesFirst(t *testing.T) {
	d := newTestDoc()
	plan, err := nav.PlanChange(d, "*")
	require.NoError(t, err)

	var loginIdx, runIdx = -1, -1
	for i, step := range plan.Steps {
		switch step.EntityID {
		case "src/auth.py:login":
			loginIdx = i
		case "src/main.py:run":
			runIdx = i
		}
	}
	require.NotEqual(t, -1, loginIdx)
	require.NotEqual(t, -1, runIdx)
	assert.Less(t, loginIdx, runIdx)
}

func TestExportDotContainsEveryEntity(t *testing.T) {
	d := newTestDoc()
	dot := nav.ExportDot(d)
	assert.Contains(t, dot, "digraph")
	for _, e := range d.Entities {
		assert.Contains(t, dot, e.Name+" ("+string(e.Kind)+")")
	}
}
