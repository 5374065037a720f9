package repowalk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/repowalk"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkSkipsHiddenAndIgnoredFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.go", "package main")
	writeFile(t, root, "src/vendor/dep.go", "package vendor")
	writeFile(t, root, ".hidden/secret.go", "package hidden")
	writeFile(t, root, "build/out.bin", "binary")
	writeFile(t, root, ".gitignore", "build/\n")
	writeFile(t, root, ".rpgignore", "src/vendor/\n")

	files, err := repowalk.Walk(root)
	require.NoError(t, err)

	assert.Contains(t, files, "src/main.go")
	assert.NotContains(t, files, "src/vendor/dep.go")
	assert.NotContains(t, files, ".hidden/secret.go")
	assert.NotContains(t, files, "build/out.bin")
}

func TestWalkReturnsSortedOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", "package b")
	writeFile(t, root, "a.go", "package a")

	files, err := repowalk.Walk(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, []string{"a.go", "b.go"}, files)
}

func TestMatchFuncAppliesSameSemanticsAsWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.go", "package main")
	writeFile(t, root, ".gitignore", "build/\n")
	writeFile(t, root, ".rpgignore", "src/vendor/\n")

	ignore, err := repowalk.MatchFunc(root)
	require.NoError(t, err)

	assert.False(t, ignore("src/main.go"))
	assert.True(t, ignore("build/out.bin"))
	assert.True(t, ignore("src/vendor/dep.go"))
}
