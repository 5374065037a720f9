package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/storage"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := storage.New(dir)

	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "a.py:f", Kind: graph.KindFunction, Name: "f", File: "a.py"})

	path, err := store.Save(ctx, doc)
	require.NoError(t, err)
	assert.FileExists(t, path)

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), ".rpg/")

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, loaded.Entities, "a.py:f")
}

func TestLoadMissingGraphReturnsFalse(t *testing.T) {
	store := storage.New(t.TempDir())
	doc, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestBackupNoopWithoutExistingGraph(t *testing.T) {
	store := storage.New(t.TempDir())
	err := store.Backup(context.Background())
	require.NoError(t, err)
}

func TestWriteAuxAndReadAux(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir)

	err := store.WriteAux("pending_routing.json", []byte(`[]`))
	require.NoError(t, err)

	data, ok, err := store.ReadAux(context.Background(), "pending_routing.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(data))
}
