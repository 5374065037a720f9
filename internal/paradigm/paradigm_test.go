package paradigm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/paradigm"
)

func TestLoadBuiltinsIncludesReact(t *testing.T) {
	reg, err := paradigm.LoadBuiltins()
	require.NoError(t, err)
	assert.Contains(t, reg.Names(), "react")
	assert.Contains(t, reg.Names(), "redux")
}

func TestCompiledRelabelsHookAndComponent(t *testing.T) {
	reg, err := paradigm.LoadBuiltins()
	require.NoError(t, err)

	c, err := paradigm.Compile(reg, []string{"src/useAuth.tsx"})
	require.NoError(t, err)

	kind, ok := c.RelabelKind("useAuth")
	require.True(t, ok)
	assert.Equal(t, graph.KindHook, kind)

	kind, ok = c.RelabelKind("Widget")
	require.True(t, ok)
	assert.Equal(t, graph.KindComponent, kind)

	_, ok = c.RelabelKind("compute_total")
	assert.False(t, ok)
}

func TestCompiledAutoliftHintForHook(t *testing.T) {
	reg, err := paradigm.LoadBuiltins()
	require.NoError(t, err)
	c, err := paradigm.Compile(reg, []string{"src/useAuth.tsx"})
	require.NoError(t, err)

	features, confidence, ok := c.AutoliftHint("useAuth")
	require.True(t, ok)
	assert.Equal(t, "review", confidence)
	assert.NotEmpty(t, features)
}
