package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
)

func sourceFor(files map[string]string) ReadFile {
	return func(path string) ([]byte, error) {
		return []byte(files[path]), nil
	}
}

func TestApplyModificationAddsAndRemovesEntities(t *testing.T) {
	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "a.go:Old", Kind: graph.KindFunction, Name: "Old", File: "a.go"})

	newSrc := "package a\n\nfunc New() {}\n"
	ids, deps, err := applyModification(doc, "a.go", sourceFor(map[string]string{"a.go": newSrc}))
	require.NoError(t, err)
	assert.Contains(t, ids, "a.go:New")
	assert.Empty(t, deps.Calls)

	_, stillOld := doc.Entities["a.go:Old"]
	assert.False(t, stillOld)

	_, hasNew := doc.Entities["a.go:New"]
	assert.True(t, hasNew)
}

func TestApplyAdditionInsertsEntities(t *testing.T) {
	doc := graph.New("0.1.0")
	src := "package b\n\nfunc Helper() {}\n"
	deps, err := applyAddition(doc, "b.go", sourceFor(map[string]string{"b.go": src}))
	require.NoError(t, err)
	assert.Empty(t, deps.Calls)
	_, ok := doc.Entities["b.go:Helper"]
	assert.True(t, ok)
}

func TestApplyDeletionRemovesFileEntities(t *testing.T) {
	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "a.go:Old", Kind: graph.KindFunction, Name: "Old", File: "a.go"})
	applyDeletion(doc, "a.go")
	_, ok := doc.Entities["a.go:Old"]
	assert.False(t, ok)
	assert.Empty(t, doc.FileIndex["a.go"])
}

func TestApplyRenameUpdatesIDsAndEdges(t *testing.T) {
	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "old.go:F", Kind: graph.KindFunction, Name: "F", File: "old.go"})
	doc.Edges = append(doc.Edges, &graph.Edge{Kind: graph.EdgeInvokes, Source: "old.go:F", Target: "old.go:F"})

	applyRename(doc, "old.go", "new.go")

	_, oldGone := doc.Entities["old.go:F"]
	assert.False(t, oldGone)

	renamed, ok := doc.Entities["new.go:F"]
	require.True(t, ok)
	assert.Equal(t, "new.go", renamed.File)
	assert.Equal(t, []string{"new.go:F"}, doc.FileIndex["new.go"])

	assert.Equal(t, "new.go:F", doc.Edges[0].Source)
	assert.Equal(t, "new.go:F", doc.Edges[0].Target)
}
