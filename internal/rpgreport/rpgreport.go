// Package rpgreport writes the human-readable auxiliary reports a review
// workflow reads alongside the strict JSON graph/pending-routing files:
// a quality baseline (feature-phrase defects, by reason) and an ablation
// report (how a lifting pass's drift zones broke down). Both are YAML —
// a human skims these, nothing parses them back into the graph — matching
// viant-linager's own split between machine-consumed JSON and
// human-consumed YAML summaries.
package rpgreport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
)

// QualityBaseline summarizes feature-quality warnings across the graph,
// grouped by defect reason so a reviewer can see which rule is firing
// most before deciding whether to tighten or relax it.
type QualityBaseline struct {
	GeneratedFrom string         `yaml:"generated_from"`
	TotalEntities int            `yaml:"total_entities"`
	TotalWarnings int            `yaml:"total_warnings"`
	ByReason      map[string]int `yaml:"by_reason"`
}

// BuildQualityBaseline critiques every lifted entity's semantic_features
// and tallies the warnings by reason.
func BuildQualityBaseline(doc *graph.Document) QualityBaseline {
	baseline := QualityBaseline{GeneratedFrom: doc.BaseCommit, ByReason: map[string]int{}}
	for id, e := range doc.Entities {
		if e.Kind == graph.KindModule || len(e.SemanticFeatures) == 0 {
			continue
		}
		baseline.TotalEntities++
		for _, w := range lifting.Critique(id, e.SemanticFeatures) {
			baseline.ByReason[w.Reason]++
			baseline.TotalWarnings++
		}
	}
	return baseline
}

// WriteQualityBaseline marshals baseline to .rpg/quality_baseline.yaml.
func WriteQualityBaseline(repoRoot string, baseline QualityBaseline) error {
	return writeYAML(filepath.Join(repoRoot, ".rpg", "quality_baseline.yaml"), baseline)
}

// AblationEntry is one drift-zone tally for a single lifting/update pass.
type AblationEntry struct {
	Zone  string `yaml:"zone"`
	Count int    `yaml:"count"`
}

// AblationReport summarizes how a pass's drift classifications broke
// down across zones, letting a reviewer judge whether the configured
// drift_ignore/drift_auto thresholds are too loose or too strict.
type AblationReport struct {
	GraphRevision string          `yaml:"graph_revision"`
	Entries       []AblationEntry `yaml:"entries"`
}

// BuildAblationReport tallies zoneCounts into a deterministically
// ordered report. An error here means the graph's revision hash could not
// be computed; the caller should treat this as a failed report, not write
// one tagged with a silently empty revision.
func BuildAblationReport(doc *graph.Document, zoneCounts map[lifting.Zone]int) (AblationReport, error) {
	rev, err := doc.Revision()
	if err != nil {
		return AblationReport{}, fmt.Errorf("rpgreport: compute graph revision: %w", err)
	}
	report := AblationReport{GraphRevision: rev}
	for zone, count := range zoneCounts {
		report.Entries = append(report.Entries, AblationEntry{Zone: string(zone), Count: count})
	}
	sort.Slice(report.Entries, func(i, j int) bool { return report.Entries[i].Zone < report.Entries[j].Zone })
	return report, nil
}

// WriteAblationReport marshals report to .rpg/ablation_report.yaml.
func WriteAblationReport(repoRoot string, report AblationReport) error {
	return writeYAML(filepath.Join(repoRoot, ".rpg", "ablation_report.yaml"), report)
}

func writeYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
