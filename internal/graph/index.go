package graph

// RebuildEdgeIndex recomputes the endpoint -> edge-index map from scratch.
// Called after load and whenever edges are mutated in bulk.
func (d *Document) RebuildEdgeIndex() {
	idx := make(map[string][]int, len(d.Edges))
	for i, e := range d.Edges {
		idx[e.Source] = append(idx[e.Source], i)
		if e.Target != e.Source {
			idx[e.Target] = append(idx[e.Target], i)
		}
	}
	d.edgeIndex = idx
}

// RebuildHierarchyIndex recomputes the hierarchy ID -> path-from-root index.
// Called after load; AssignHierarchyIDs keeps it current during a rebuild.
func (d *Document) RebuildHierarchyIndex() {
	idx := map[string][]string{}
	for area, node := range d.Hierarchy {
		rebuildIndexFrom(node, []string{area}, idx)
	}
	d.hierarchyNodeIndex = idx
}

func rebuildIndexFrom(node *HierarchyNode, path []string, idx map[string][]string) {
	if node.ID != "" {
		idx[node.ID] = append([]string{}, path...)
	}
	for _, name := range node.ChildNames() {
		rebuildIndexFrom(node.Children[name], append(append([]string{}, path...), name), idx)
	}
}

// EdgesFor returns every edge where id participates as source or target,
// using the edge index when available and falling back to a linear scan.
func (d *Document) EdgesFor(id string) []*Edge {
	if d.edgeIndex != nil {
		idxs, ok := d.edgeIndex[id]
		if !ok {
			return nil
		}
		edges := make([]*Edge, 0, len(idxs))
		for _, i := range idxs {
			if i < len(d.Edges) {
				edges = append(edges, d.Edges[i])
			}
		}
		return edges
	}
	var edges []*Edge
	for _, e := range d.Edges {
		if e.Source == id || e.Target == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// FindHierarchyNodeByID looks up a V_H node by its "h:..." ID, using the
// hierarchy-node index when available and falling back to a recursive walk.
func (d *Document) FindHierarchyNodeByID(id string) *HierarchyNode {
	if d.hierarchyNodeIndex != nil {
		if path, ok := d.hierarchyNodeIndex[id]; ok {
			return d.walkPath(path)
		}
		return nil
	}
	for _, node := range d.Hierarchy {
		if found := findByID(node, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) walkPath(path []string) *HierarchyNode {
	if len(path) == 0 {
		return nil
	}
	node, ok := d.Hierarchy[path[0]]
	if !ok {
		return nil
	}
	for _, seg := range path[1:] {
		if node.Children == nil {
			return nil
		}
		node, ok = node.Children[seg]
		if !ok {
			return nil
		}
	}
	return node
}

func findByID(node *HierarchyNode, id string) *HierarchyNode {
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Load rebuilds the two derived indexes after a document has been
// deserialized from storage.
func (d *Document) Load() {
	d.RebuildEdgeIndex()
	d.RebuildHierarchyIndex()
}
