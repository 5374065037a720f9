package lifting

import (
	"github.com/viant/rpg/internal/graph"
)

// Finalize runs the end-of-scope pipeline from spec §4.4: aggregate Module
// features from their siblings, reassign hierarchy IDs, re-aggregate
// hierarchy features, rematerialize containment edges, and drain the
// pending-routing queue through the Jaccard fallback.
func Finalize(doc *graph.Document, queue *Queue) {
	doc.AggregateModuleFeatures()
	doc.AssignHierarchyIDs()
	doc.AggregateHierarchyFeatures()
	doc.MaterializeContainmentEdges()
	doc.RefreshMetadata()

	if queue != nil {
		queue.DrainWithFallback(doc)
		doc.AggregateHierarchyFeatures()
		doc.MaterializeContainmentEdges()
		doc.RefreshMetadata()
	}
}

// ApplyLifted writes an entity's lifted features and enqueues routing per
// the drift-zone classification, applying the new features in every zone
// (the queue only gates whether the change is additionally surfaced for
// review). A non-nil error means the routing enqueue failed (the revision
// hash could not be computed); the feature write itself still succeeded.
func ApplyLifted(doc *graph.Document, queue *Queue, entityID string, newFeatures []string, source graph.FeatureSource, driftIgnore, driftAuto float64) (Zone, error) {
	e, ok := doc.Entities[entityID]
	if !ok {
		return ZoneSilent, nil
	}

	oldFeatures := e.SemanticFeatures
	zone, _ := ClassifyDrift(oldFeatures, newFeatures, driftIgnore, driftAuto)

	e.SemanticFeatures = newFeatures
	e.FeatureSource = source

	if zone == ZoneSilent {
		return zone, nil
	}
	if zone == ZoneNewlyLifted && len(doc.Hierarchy) == 0 {
		return zone, nil
	}

	reason := string(zone)
	if queue != nil {
		if err := queue.Enqueue(doc, entityID, e.HierarchyPath, newFeatures, reason); err != nil {
			return zone, err
		}
	}
	return zone, nil
}
