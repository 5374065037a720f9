package graph

// ApplyHierarchyAssignments clears V_H, writes each entity's hierarchy_path
// from assignments (entity ID -> three-segment path), and rebuilds V_H from
// those paths. Used by the lifting orchestrator's hierarchy-construction
// protocol once every assignment has passed ValidateHierarchyPath.
func (d *Document) ApplyHierarchyAssignments(assignments map[string]string) {
	d.Hierarchy = map[string]*HierarchyNode{}
	for id, path := range assignments {
		if e, ok := d.Entities[id]; ok {
			e.HierarchyPath = path
		}
		d.InsertIntoHierarchy(path, id)
	}
	d.Metadata.SemanticHierarchy = true
}

// RebuildFromEntityHierarchyPaths rebuilds V_H purely from the hierarchy_path
// already stored on each entity, used by the evolution engine when
// restoring a previously semantic hierarchy across a full rebuild.
func (d *Document) RebuildFromEntityHierarchyPaths() {
	d.Hierarchy = map[string]*HierarchyNode{}
	for id, e := range d.Entities {
		if e.HierarchyPath == "" {
			continue
		}
		d.InsertIntoHierarchy(e.HierarchyPath, id)
	}
}
