package lifting

import (
	"fmt"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/llmclient"
)

// BuildFileFeatureRequest assembles the file-synthesis request: every file
// in the file index paired with its current dedup-aggregated Module
// features, as context for the LLM to replace with 3-6 holistic phrases.
func BuildFileFeatureRequest(doc *graph.Document, repoSummary string) llmclient.FileSynthesisRequest {
	req := llmclient.FileSynthesisRequest{
		RepoSummary:  repoSummary,
		FileFeatures: map[string][]string{},
	}
	for file, ids := range doc.FileIndex {
		req.Files = append(req.Files, file)
		for _, id := range ids {
			if e, ok := doc.Entities[id]; ok && e.Kind == graph.KindModule {
				req.FileFeatures[file] = e.SemanticFeatures
			}
		}
	}
	return req
}

// ApplyFileSynthesis overwrites each Module entity's semantic_features with
// its synthesized holistic phrases, sourced as synthesized.
func ApplyFileSynthesis(doc *graph.Document, resp llmclient.FileSynthesisResponse) {
	for file, features := range resp.Features {
		for _, id := range doc.FileIndex[file] {
			if e, ok := doc.Entities[id]; ok && e.Kind == graph.KindModule {
				e.SemanticFeatures = Normalize(features)
				e.FeatureSource = graph.SourceSynthesized
			}
		}
	}
}

// ValidateHierarchyAssignments checks every proposed path against the
// three-segment rule before any are applied, returning the first
// violation found.
func ValidateHierarchyAssignments(assignments map[string]string) error {
	for file, path := range assignments {
		if err := graph.ValidateHierarchyPath(path); err != nil {
			return fmt.Errorf("lifting: hierarchy assignment for %s: %w", file, err)
		}
	}
	return nil
}

// ApplyHierarchyAssignments validates then applies a full set of file ->
// hierarchy-path assignments, rebuilding V_H in one step.
func ApplyHierarchyAssignments(doc *graph.Document, fileAssignments map[string]string) error {
	if err := ValidateHierarchyAssignments(fileAssignments); err != nil {
		return err
	}

	entityAssignments := map[string]string{}
	for file, path := range fileAssignments {
		for _, id := range doc.FileIndex[file] {
			entityAssignments[id] = path
		}
	}
	doc.ApplyHierarchyAssignments(entityAssignments)
	return nil
}
