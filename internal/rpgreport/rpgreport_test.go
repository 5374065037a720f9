package rpgreport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/rpgreport"
)

func TestBuildQualityBaselineTalliesWarningsByReason(t *testing.T) {
	d := graph.New("0.1.0")
	d.InsertEntity(&graph.Entity{
		ID: "src/a.py:handle", Kind: graph.KindFunction, Name: "handle", File: "src/a.py",
		SemanticFeatures: []string{"handle thing", "ok"},
	})

	baseline := rpgreport.BuildQualityBaseline(d)
	assert.Equal(t, 1, baseline.TotalEntities)
	assert.Equal(t, 1, baseline.ByReason["vague lead verb: handle"])
	assert.Equal(t, 1, baseline.ByReason["single-word phrase"])
	assert.Equal(t, 2, baseline.TotalWarnings)
}

func TestWriteQualityBaselineWritesYAMLFile(t *testing.T) {
	root := t.TempDir()
	baseline := rpgreport.QualityBaseline{TotalEntities: 3, ByReason: map[string]int{"single-word phrase": 1}}
	require.NoError(t, rpgreport.WriteQualityBaseline(root, baseline))

	data, err := os.ReadFile(filepath.Join(root, ".rpg", "quality_baseline.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_entities: 3")
}

func TestBuildAblationReportSortsZones(t *testing.T) {
	d := graph.New("0.1.0")
	report, err := rpgreport.BuildAblationReport(d, map[lifting.Zone]int{
		lifting.ZoneDrifted: 2,
		lifting.ZoneSilent:  5,
	})
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "drifted", report.Entries[0].Zone)
	assert.Equal(t, "silent", report.Entries[1].Zone)
}
