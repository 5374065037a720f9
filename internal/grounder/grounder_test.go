package grounder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/grounder"
	"github.com/viant/rpg/internal/parser"
)

func newDoc() *graph.Document {
	d := graph.New("0.1.0")
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py"})
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:auth", Kind: graph.KindModule, Name: "auth", File: "src/auth.py"})
	d.InsertEntity(&graph.Entity{ID: "src/main.py:run", Kind: graph.KindFunction, Name: "run", File: "src/main.py"})
	d.InsertEntity(&graph.Entity{ID: "src/main.py:main", Kind: graph.KindModule, Name: "main", File: "src/main.py"})
	return d
}

func TestGroundEmitsInvokeEdgeSameFile(t *testing.T) {
	d := newDoc()
	deps := []parser.RawDeps{
		{
			File: "src/main.py",
			Calls: []parser.CallSite{
				{Caller: "<module>", Callee: "run", Line: 1},
			},
		},
	}
	grounder.Ground(d, deps, grounder.Options{})

	var found bool
	for _, e := range d.Edges {
		if e.Kind == graph.EdgeInvokes && e.Target == "src/main.py:run" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGroundResolvesImportAcrossFiles(t *testing.T) {
	d := newDoc()
	deps := []parser.RawDeps{
		{
			File:    "src/main.py",
			Imports: []parser.Import{{Module: "auth", Symbols: []string{"login"}}},
			Calls: []parser.CallSite{
				{Caller: "run", Callee: "login", Line: 2},
			},
		},
	}
	grounder.Ground(d, deps, grounder.Options{})

	var sawImport, sawInvoke bool
	for _, e := range d.Edges {
		if e.Kind == graph.EdgeImports && e.Target == "src/auth.py:auth" {
			sawImport = true
		}
		if e.Kind == graph.EdgeInvokes && e.Target == "src/auth.py:login" {
			sawInvoke = true
		}
	}
	require.True(t, sawImport)
	assert.True(t, sawInvoke)

	run := d.Entities["src/main.py:run"]
	assert.Contains(t, run.Deps.Invokes, "src/auth.py:login")

	login := d.Entities["src/auth.py:login"]
	assert.Contains(t, login.Deps.InvokedBy, "src/main.py:run")
}

func TestGroundEmitsRenderAndDispatchEdges(t *testing.T) {
	d := newDoc()
	d.InsertEntity(&graph.Entity{ID: "src/main.py:UserCard", Kind: graph.KindComponent, Name: "UserCard", File: "src/main.py"})
	d.InsertEntity(&graph.Entity{ID: "src/auth.py:logout", Kind: graph.KindFunction, Name: "logout", File: "src/auth.py"})

	deps := []parser.RawDeps{
		{
			File:    "src/main.py",
			Imports: []parser.Import{{Module: "auth", Symbols: []string{"logout"}}},
			Renders: []parser.RenderRef{
				{Caller: "run", Component: "UserCard"},
			},
			Dispatches: []parser.DispatchRef{
				{Caller: "run", Action: "logout"},
			},
		},
	}
	grounder.Ground(d, deps, grounder.Options{})

	var sawRenders, sawDispatches bool
	for _, e := range d.Edges {
		if e.Kind == graph.EdgeRenders && e.Source == "src/main.py:run" && e.Target == "src/main.py:UserCard" {
			sawRenders = true
		}
		if e.Kind == graph.EdgeDispatches && e.Source == "src/main.py:run" && e.Target == "src/auth.py:logout" {
			sawDispatches = true
		}
	}
	assert.True(t, sawRenders)
	assert.True(t, sawDispatches)

	run := d.Entities["src/main.py:run"]
	assert.Contains(t, run.Deps.Renders, "src/main.py:UserCard")
	assert.Contains(t, run.Deps.Dispatches, "src/auth.py:logout")

	card := d.Entities["src/main.py:UserCard"]
	assert.Contains(t, card.Deps.RenderedBy, "src/main.py:run")

	logout := d.Entities["src/auth.py:logout"]
	assert.Contains(t, logout.Deps.DispatchedBy, "src/main.py:run")
}

func TestGroundHierarchyComputesLCA(t *testing.T) {
	d := newDoc()
	d.BuildFilePathHierarchy()
	d.AssignHierarchyIDs()

	grounder.GroundHierarchy(d)

	for _, node := range d.Hierarchy {
		require.NotEmpty(t, node.GroundedPaths)
	}
}
