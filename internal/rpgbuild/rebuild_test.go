package rpgbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgbuild"
)

func TestRebuildPreservingRestoresFeaturesAndHierarchy(t *testing.T) {
	old := graph.New("0.1.0")
	old.InsertEntity(&graph.Entity{
		ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py",
		SemanticFeatures: []string{"authenticate user"}, FeatureSource: graph.SourceLLM, HierarchyPath: "Auth/session/login",
	})
	old.Metadata.LiftedEntities = 1
	old.Metadata.SemanticHierarchy = true

	fresh := graph.New("0.1.0")
	fresh.InsertEntity(&graph.Entity{ID: "src/auth.py:login", Kind: graph.KindFunction, Name: "login", File: "src/auth.py"})
	fresh.CreateModuleEntities()
	fresh.BuildFilePathHierarchy()

	rpgbuild.RebuildPreserving(fresh, old)

	e := fresh.Entities["src/auth.py:login"]
	require.NotNil(t, e)
	assert.Equal(t, []string{"authenticate user"}, e.SemanticFeatures)
	assert.Equal(t, graph.SourceLLM, e.FeatureSource)
	assert.Equal(t, "Auth/session/login", e.HierarchyPath)
	assert.True(t, fresh.Metadata.SemanticHierarchy)
}

func TestRebuildPreservingNoOpWhenOldHasNothingLifted(t *testing.T) {
	fresh := graph.New("0.1.0")
	fresh.InsertEntity(&graph.Entity{ID: "src/main.py:run", Kind: graph.KindFunction, Name: "run", File: "src/main.py"})

	old := graph.New("0.1.0")
	old.InsertEntity(&graph.Entity{ID: "src/main.py:run", Kind: graph.KindFunction, Name: "run", File: "src/main.py"})

	rpgbuild.RebuildPreserving(fresh, old)
	assert.Empty(t, fresh.Entities["src/main.py:run"].SemanticFeatures)
}
