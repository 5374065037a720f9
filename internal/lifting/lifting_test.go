package lifting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/parser"
)

func TestNormalizeDedupesAndLowercases(t *testing.T) {
	out := lifting.Normalize([]string{" Validate Input", "validate input", "Return Result"})
	assert.Equal(t, []string{"validate input", "return result"}, out)
}

func TestJaccardDistance(t *testing.T) {
	assert.Equal(t, 0.0, lifting.Jaccard([]string{"a", "b"}, []string{"a", "b"}))
	assert.Equal(t, 1.0, lifting.Jaccard([]string{"a", "b"}, []string{"c", "d"}))
	assert.InDelta(t, 0.5, lifting.Jaccard([]string{"a", "b"}, []string{"a"}), 0.01)
}

func TestClassifyDriftZones(t *testing.T) {
	zone, _ := lifting.ClassifyDrift(nil, []string{"a"}, 0.3, 0.7)
	assert.Equal(t, lifting.ZoneNewlyLifted, zone)

	zone, _ = lifting.ClassifyDrift([]string{"a"}, []string{"a"}, 0.3, 0.7)
	assert.Equal(t, lifting.ZoneSilent, zone)

	zone, d := lifting.ClassifyDrift([]string{"validate input", "return result"}, []string{"send email", "format template"}, 0.3, 0.7)
	assert.Equal(t, lifting.ZoneDrifted, zone)
	assert.Equal(t, 1.0, d)
}

func TestAutoLiftGetter(t *testing.T) {
	re := parser.RawEntity{Name: "getName", Kind: graph.KindMethod, ParentClass: "User"}
	features, verdict := lifting.AutoLift(re, nil)
	require.Equal(t, lifting.VerdictAccept, verdict)
	assert.Contains(t, features[0], "return")
}

func TestAutoLiftRejectsOrdinaryFunction(t *testing.T) {
	re := parser.RawEntity{
		Name:       "computeTotals",
		Kind:       graph.KindFunction,
		SourceText: "func computeTotals(items []Item) int {\n\ttotal := 0\n\tfor _, i := range items {\n\t\ttotal += i.Price\n\t}\n\treturn total\n}",
	}
	_, verdict := lifting.AutoLift(re, nil)
	assert.Equal(t, lifting.VerdictReject, verdict)
}

func TestResolveScopeAll(t *testing.T) {
	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "a.py:f", Kind: graph.KindFunction, Name: "f", File: "a.py"})
	doc.InsertEntity(&graph.Entity{ID: "a.py:a", Kind: graph.KindModule, Name: "a", File: "a.py"})

	ids, err := lifting.ResolveScope(doc, "*", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py:f"}, ids)
}

func TestCritiqueFlagsVagueVerbAndSingleWord(t *testing.T) {
	warnings := lifting.Critique("a.py:f", []string{"handle request", "x", "validate_input"})
	var reasons []string
	for _, w := range warnings {
		reasons = append(reasons, w.Reason)
	}
	assert.Contains(t, reasons, "vague lead verb: handle")
	assert.Contains(t, reasons, "single-word phrase")
}

func TestBuildBatchesSplitsOnEntityLimit(t *testing.T) {
	doc := graph.New("0.1.0")
	doc.InsertEntity(&graph.Entity{ID: "a.py:f1", Kind: graph.KindFunction, Name: "f1", File: "a.py"})
	doc.InsertEntity(&graph.Entity{ID: "a.py:f2", Kind: graph.KindFunction, Name: "f2", File: "a.py"})
	doc.InsertEntity(&graph.Entity{ID: "a.py:f3", Kind: graph.KindFunction, Name: "f3", File: "a.py"})

	batches, err := lifting.BuildBatches(doc, []string{"a.py:f1", "a.py:f2", "a.py:f3"}, func(id string) (string, error) {
		return "def f(): pass", nil
	}, 2, 100000)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Entities, 2)
	assert.Len(t, batches[1].Entities, 1)
}
