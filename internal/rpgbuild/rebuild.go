package rpgbuild

import "github.com/viant/rpg/internal/graph"

// preserved captures what must survive a full structural rebuild for one
// entity ID: its semantic features, their provenance, and its hierarchy
// path (spec §4.5 "Feature preservation across full rebuilds").
type preserved struct {
	features      []string
	source        graph.FeatureSource
	hierarchyPath string
}

// RebuildPreserving takes fresh, a document just produced by Build, and
// restores onto it, for every entity ID that survives between old and
// fresh, its previous semantic_features/feature_source and
// hierarchy_path. If old had a semantic hierarchy and at least one
// hierarchy path was restored, the new V_H is rebuilt from those restored
// paths and semantic_hierarchy is set back to true. old may be nil (fresh
// project, nothing to preserve).
func RebuildPreserving(fresh, old *graph.Document) {
	if old == nil || old.Metadata.LiftedEntities == 0 {
		return
	}

	backup := map[string]preserved{}
	for id, e := range old.Entities {
		if len(e.SemanticFeatures) == 0 && e.HierarchyPath == "" {
			continue
		}
		backup[id] = preserved{
			features:      append([]string(nil), e.SemanticFeatures...),
			source:        e.FeatureSource,
			hierarchyPath: e.HierarchyPath,
		}
	}

	restoredAnyPath := false
	for id, p := range backup {
		e, ok := fresh.Entities[id]
		if !ok {
			continue
		}
		e.SemanticFeatures = p.features
		e.FeatureSource = p.source
		if p.hierarchyPath != "" {
			e.HierarchyPath = p.hierarchyPath
			restoredAnyPath = true
		}
	}

	fresh.AggregateModuleFeatures()

	if old.Metadata.SemanticHierarchy && restoredAnyPath {
		fresh.RebuildFromEntityHierarchyPaths()
		fresh.AssignHierarchyIDs()
		fresh.AggregateHierarchyFeatures()
		fresh.MaterializeContainmentEdges()
		fresh.Metadata.SemanticHierarchy = true
	}

	fresh.RefreshMetadata()
}
