package graph

import "strings"

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// InsertEntity adds e to V_L and appends its ID to the file index. It is
// idempotent on identical IDs: inserting the same ID twice overwrites the
// previous entity (I1).
func (d *Document) InsertEntity(e *Entity) {
	if e == nil {
		return
	}
	if _, exists := d.Entities[e.ID]; !exists {
		d.FileIndex[e.File] = appendUnique(d.FileIndex[e.File], e.ID)
	}
	d.Entities[e.ID] = e
}

// RemoveEntity removes id from V_L, from its file-index entry (dropping the
// file key if it becomes empty), drops every edge that references id, and
// scrubs id from the hierarchy, pruning emptied nodes upward (I1, I5).
func (d *Document) RemoveEntity(id string) {
	e, ok := d.Entities[id]
	if !ok {
		return
	}
	delete(d.Entities, id)

	ids := d.FileIndex[e.File]
	ids = removeString(ids, id)
	if len(ids) == 0 {
		delete(d.FileIndex, e.File)
	} else {
		d.FileIndex[e.File] = ids
	}

	kept := d.Edges[:0]
	for _, edge := range d.Edges {
		if edge.Source == id || edge.Target == id {
			continue
		}
		kept = append(kept, edge)
	}
	d.Edges = kept

	d.RemoveEntityFromHierarchy(id)
}

// InsertIntoHierarchy creates missing intermediate h: nodes along path
// (slash-delimited) and appends id to the leaf's entity list if absent.
func (d *Document) InsertIntoHierarchy(path string, id string) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return
	}
	area := segments[0]
	node, ok := d.Hierarchy[area]
	if !ok {
		node = &HierarchyNode{Name: area}
		d.Hierarchy[area] = node
	}
	for _, seg := range segments[1:] {
		if node.Children == nil {
			node.Children = map[string]*HierarchyNode{}
		}
		child, ok := node.Children[seg]
		if !ok {
			child = &HierarchyNode{Name: seg}
			node.Children[seg] = child
		}
		node = child
	}
	node.Entities = appendUnique(node.Entities, id)
}

// RemoveEntityFromHierarchy scrubs id from every hierarchy node's entity
// list and prunes nodes that become empty (I5), cascading upward.
func (d *Document) RemoveEntityFromHierarchy(id string) {
	for area, node := range d.Hierarchy {
		pruneEntityAndEmpty(node, id)
		if node.IsEmpty() {
			delete(d.Hierarchy, area)
		}
	}
}

func pruneEntityAndEmpty(node *HierarchyNode, id string) {
	node.Entities = removeString(node.Entities, id)
	for name, child := range node.Children {
		pruneEntityAndEmpty(child, id)
		if child.IsEmpty() {
			delete(node.Children, name)
		}
	}
}

// CreateModuleEntities ensures a Module entity for every file present in the
// file index (I7): ID F:S, line_start 1, line_end the max end-line seen
// among the file's other entities. Idempotent.
func (d *Document) CreateModuleEntities() {
	for file, ids := range d.FileIndex {
		stem := Stem(file)
		modID := ModuleID(file, stem)
		maxEnd := 1
		hasModule := false
		for _, id := range ids {
			if id == modID {
				hasModule = true
				continue
			}
			if e, ok := d.Entities[id]; ok && e.LineEnd > maxEnd {
				maxEnd = e.LineEnd
			}
		}
		if existing, ok := d.Entities[modID]; ok {
			existing.LineEnd = maxEnd
			continue
		}
		if !hasModule {
			d.InsertEntity(&Entity{
				ID:        modID,
				Kind:      KindModule,
				Name:      stem,
				File:      file,
				LineStart: 1,
				LineEnd:   maxEnd,
			})
		}
	}
}

// BuildFilePathHierarchy clears V_H and rebuilds a deterministic structural
// hierarchy from file paths: 1 component -> stem, 2 -> dir/stem, >=3 ->
// top/second/stem. Sets semantic_hierarchy to false and rewrites every
// entity's hierarchy_path.
func (d *Document) BuildFilePathHierarchy() {
	d.Hierarchy = map[string]*HierarchyNode{}
	d.Metadata.SemanticHierarchy = false

	for file := range d.FileIndex {
		path := structuralPath(file)
		for _, id := range d.FileIndex[file] {
			if e, ok := d.Entities[id]; ok {
				e.HierarchyPath = path
			}
		}
		for _, id := range d.FileIndex[file] {
			d.InsertIntoHierarchy(path, id)
		}
	}
}

func structuralPath(file string) string {
	parts := splitPath(NormalizeFile(file))
	stem := Stem(file)
	switch {
	case len(parts) <= 1:
		return stem
	case len(parts) == 2:
		return parts[0] + "/" + stem
	default:
		return parts[0] + "/" + parts[1] + "/" + stem
	}
}

// AssignHierarchyIDs depth-first assigns id = "h:" + slash-joined path from
// the root, and rebuilds the hierarchy-node index.
func (d *Document) AssignHierarchyIDs() {
	d.hierarchyNodeIndex = map[string][]string{}
	for area, node := range d.Hierarchy {
		assignIDs(node, []string{area}, d.hierarchyNodeIndex)
	}
}

func assignIDs(node *HierarchyNode, path []string, index map[string][]string) {
	node.ID = "h:" + strings.Join(path, "/")
	index[node.ID] = append([]string{}, path...)
	for _, name := range node.ChildNames() {
		assignIDs(node.Children[name], append(append([]string{}, path...), name), index)
	}
}

// AggregateHierarchyFeatures performs a bottom-up union of entity features
// and children's aggregated features, sorted and deduplicated.
func (d *Document) AggregateHierarchyFeatures() {
	for _, node := range d.Hierarchy {
		aggregateNodeFeatures(node, d.Entities)
	}
}

func aggregateNodeFeatures(node *HierarchyNode, entities map[string]*Entity) []string {
	set := map[string]struct{}{}
	for _, id := range node.Entities {
		if e, ok := entities[id]; ok {
			for _, f := range e.SemanticFeatures {
				set[f] = struct{}{}
			}
		}
	}
	for _, name := range node.ChildNames() {
		for _, f := range aggregateNodeFeatures(node.Children[name], entities) {
			set[f] = struct{}{}
		}
	}
	features := make([]string, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sortStrings(features)
	node.SemanticFeatures = features
	return features
}

// AggregateModuleFeatures rewrites each file's Module entity features to the
// sorted deduplicated union of its non-Module siblings' features.
func (d *Document) AggregateModuleFeatures() {
	for file, ids := range d.FileIndex {
		stem := Stem(file)
		modID := ModuleID(file, stem)
		mod, ok := d.Entities[modID]
		if !ok {
			continue
		}
		set := map[string]struct{}{}
		for _, id := range ids {
			if id == modID {
				continue
			}
			if e, ok := d.Entities[id]; ok {
				for _, f := range e.SemanticFeatures {
					set[f] = struct{}{}
				}
			}
		}
		features := make([]string, 0, len(set))
		for f := range set {
			features = append(features, f)
		}
		sortStrings(features)
		mod.SemanticFeatures = features
	}
}

// MaterializeContainmentEdges removes all existing contains edges and
// re-emits one per V_H parent/child link and V_H->entity link, appended to
// the edge list. Idempotent (I6).
func (d *Document) MaterializeContainmentEdges() {
	kept := d.Edges[:0]
	for _, e := range d.Edges {
		if e.Kind != EdgeContains {
			kept = append(kept, e)
		}
	}
	d.Edges = kept

	for _, area := range sortedKeys(d.Hierarchy) {
		node := d.Hierarchy[area]
		d.materializeNode(node)
	}
}

func (d *Document) materializeNode(node *HierarchyNode) {
	for _, id := range node.Entities {
		d.Edges = append(d.Edges, &Edge{Kind: EdgeContains, Source: node.ID, Target: id})
	}
	for _, name := range node.ChildNames() {
		child := node.Children[name]
		d.Edges = append(d.Edges, &Edge{Kind: EdgeContains, Source: node.ID, Target: child.ID})
		d.materializeNode(child)
	}
}

// RefreshMetadata recomputes counts, edge-kind tallies, coverage, and the
// update timestamp, then rebuilds the edge index. It is a pure function of
// the rest of the document's fields plus the current time.
func (d *Document) RefreshMetadata() {
	d.Metadata.TotalFiles = len(d.FileIndex)
	d.Metadata.TotalEntities = len(d.Entities)

	areas := 0
	for _, node := range d.Hierarchy {
		areas += countAreas(node)
	}
	d.Metadata.FunctionalAreas = areas

	dep, contain := 0, 0
	for _, e := range d.Edges {
		if e.Kind == EdgeContains {
			contain++
		} else {
			dep++
		}
	}
	d.Metadata.TotalEdges = len(d.Edges)
	d.Metadata.DependencyEdges = dep
	d.Metadata.ContainmentEdges = contain

	lifted := 0
	for _, e := range d.Entities {
		if e.Kind != KindModule && len(e.SemanticFeatures) > 0 {
			lifted++
		}
	}
	d.Metadata.LiftedEntities = lifted

	d.UpdatedAt = nowFunc()
	d.RebuildEdgeIndex()
}

func countAreas(node *HierarchyNode) int {
	n := 1
	for _, c := range node.Children {
		n += countAreas(c)
	}
	return n
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

func sortedKeys(m map[string]*HierarchyNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}
