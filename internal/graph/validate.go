package graph

import (
	"fmt"
	"strings"
)

// Issue is a single invariant violation surfaced by Validate. It never
// aborts the audit; all issues found are returned together.
type Issue struct {
	Invariant string
	Message   string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Invariant, i.Message)
}

// Validate audits the document against invariants I1-I5 and I7-I9 and
// returns every violation found; I6 (containment edges derived from the
// hierarchy) is not checked. An empty slice means the graph is internally consistent.
func (d *Document) Validate() []Issue {
	var issues []Issue
	issues = append(issues, d.checkFileIndexClosure()...)
	issues = append(issues, d.checkEdgeEndpoints()...)
	issues = append(issues, d.checkIDWellFormedness()...)
	issues = append(issues, d.checkHierarchyMembership()...)
	issues = append(issues, d.checkHierarchyEmptiness()...)
	issues = append(issues, d.checkModuleUniqueness()...)
	issues = append(issues, d.checkCoverageIdentity()...)
	issues = append(issues, d.checkSemanticHierarchyPaths()...)
	return issues
}

// checkFileIndexClosure verifies I1: file_index and V_L agree in both
// directions.
func (d *Document) checkFileIndexClosure() []Issue {
	var issues []Issue
	for id, e := range d.Entities {
		found := false
		for _, fid := range d.FileIndex[e.File] {
			if fid == id {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, Issue{"I1", fmt.Sprintf("entity %s missing from file_index[%s]", id, e.File)})
		}
	}
	for file, ids := range d.FileIndex {
		for _, id := range ids {
			e, ok := d.Entities[id]
			if !ok {
				issues = append(issues, Issue{"I1", fmt.Sprintf("file_index[%s] references missing entity %s", file, id)})
				continue
			}
			if e.File != file {
				issues = append(issues, Issue{"I1", fmt.Sprintf("entity %s file %q does not match file_index key %q", id, e.File, file)})
			}
		}
	}
	return issues
}

// checkEdgeEndpoints verifies I2: every edge endpoint resolves in V_L, or
// in V_H for contains edges.
func (d *Document) checkEdgeEndpoints() []Issue {
	var issues []Issue
	for _, e := range d.Edges {
		srcOK := d.resolvesEndpoint(e.Source, e.Kind == EdgeContains)
		dstOK := d.resolvesEndpoint(e.Target, e.Kind == EdgeContains)
		if !srcOK {
			issues = append(issues, Issue{"I2", fmt.Sprintf("edge %s source %q does not resolve", e.Kind, e.Source)})
		}
		if !dstOK {
			issues = append(issues, Issue{"I2", fmt.Sprintf("edge %s target %q does not resolve", e.Kind, e.Target)})
		}
	}
	return issues
}

func (d *Document) resolvesEndpoint(id string, allowHierarchy bool) bool {
	if _, ok := d.Entities[id]; ok {
		return true
	}
	if allowHierarchy && strings.HasPrefix(id, "h:") {
		return d.FindHierarchyNodeByID(id) != nil
	}
	return false
}

// checkIDWellFormedness verifies I3.
func (d *Document) checkIDWellFormedness() []Issue {
	var issues []Issue
	for id, e := range d.Entities {
		if e.Kind == KindModule {
			continue
		}
		if !WellFormed(id) {
			issues = append(issues, Issue{"I3", fmt.Sprintf("entity id %q is not well-formed", id)})
		}
	}
	return issues
}

// checkHierarchyMembership verifies I4: every entity ID in a hierarchy node
// exists in V_L.
func (d *Document) checkHierarchyMembership() []Issue {
	var issues []Issue
	for _, node := range d.Hierarchy {
		d.checkNodeMembership(node, &issues)
	}
	return issues
}

func (d *Document) checkNodeMembership(node *HierarchyNode, issues *[]Issue) {
	for _, id := range node.Entities {
		if _, ok := d.Entities[id]; !ok {
			*issues = append(*issues, Issue{"I4", fmt.Sprintf("hierarchy node %s references missing entity %s", node.ID, id)})
		}
	}
	for _, child := range node.Children {
		d.checkNodeMembership(child, issues)
	}
}

// checkHierarchyEmptiness verifies I5: no retained node is empty.
func (d *Document) checkHierarchyEmptiness() []Issue {
	var issues []Issue
	for area, node := range d.Hierarchy {
		if node.IsEmpty() {
			issues = append(issues, Issue{"I5", fmt.Sprintf("hierarchy area %q is empty but retained", area)})
		}
		d.checkChildEmptiness(node, &issues)
	}
	return issues
}

func (d *Document) checkChildEmptiness(node *HierarchyNode, issues *[]Issue) {
	for name, child := range node.Children {
		if child.IsEmpty() {
			*issues = append(*issues, Issue{"I5", fmt.Sprintf("hierarchy node %s/%s is empty but retained", node.ID, name)})
		}
		d.checkChildEmptiness(child, issues)
	}
}

// checkModuleUniqueness verifies I7: at most one Module entity per file, and
// its range covers [1, max(entity.line_end)].
func (d *Document) checkModuleUniqueness() []Issue {
	var issues []Issue
	for file, ids := range d.FileIndex {
		modules := 0
		maxEnd := 1
		for _, id := range ids {
			e, ok := d.Entities[id]
			if !ok {
				continue
			}
			if e.Kind == KindModule {
				modules++
				continue
			}
			if e.LineEnd > maxEnd {
				maxEnd = e.LineEnd
			}
		}
		if modules > 1 {
			issues = append(issues, Issue{"I7", fmt.Sprintf("file %q has %d module entities", file, modules)})
		}
		modID := ModuleID(file, Stem(file))
		if mod, ok := d.Entities[modID]; ok {
			if mod.LineStart != 1 || mod.LineEnd != maxEnd {
				issues = append(issues, Issue{"I7", fmt.Sprintf("module %s range [%d,%d] does not cover [1,%d]", modID, mod.LineStart, mod.LineEnd, maxEnd)})
			}
		}
	}
	return issues
}

// checkCoverageIdentity verifies I8.
func (d *Document) checkCoverageIdentity() []Issue {
	lifted := 0
	for _, e := range d.Entities {
		if e.Kind != KindModule && len(e.SemanticFeatures) > 0 {
			lifted++
		}
	}
	if lifted != d.Metadata.LiftedEntities {
		return []Issue{{"I8", fmt.Sprintf("metadata.lifted_entities=%d but computed=%d", d.Metadata.LiftedEntities, lifted)}}
	}
	return nil
}

// checkSemanticHierarchyPaths verifies I9: when semantic_hierarchy is true,
// every entity's hierarchy_path has exactly three non-empty trimmed segments.
func (d *Document) checkSemanticHierarchyPaths() []Issue {
	if !d.Metadata.SemanticHierarchy {
		return nil
	}
	var issues []Issue
	for id, e := range d.Entities {
		segs := strings.Split(e.HierarchyPath, "/")
		if len(segs) != 3 {
			issues = append(issues, Issue{"I9", fmt.Sprintf("entity %s hierarchy_path %q has %d segments, want 3", id, e.HierarchyPath, len(segs))})
			continue
		}
		for _, seg := range segs {
			if strings.TrimSpace(seg) == "" || strings.TrimSpace(seg) != seg {
				issues = append(issues, Issue{"I9", fmt.Sprintf("entity %s hierarchy_path %q has an empty or untrimmed segment", id, e.HierarchyPath)})
				break
			}
		}
	}
	return issues
}

// ValidateHierarchyPath checks a candidate three-level path for the
// structural validity the lifting orchestrator's hierarchy-assignment step
// enforces: exactly three non-empty segments, no leading/trailing slash,
// each segment equal to its own trimmed form.
func ValidateHierarchyPath(path string) error {
	if strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return fmt.Errorf("hierarchy path %q has a leading or trailing slash", path)
	}
	segs := strings.Split(path, "/")
	if len(segs) != 3 {
		return fmt.Errorf("hierarchy path %q must have exactly three segments, got %d", path, len(segs))
	}
	for _, seg := range segs {
		if seg == "" {
			return fmt.Errorf("hierarchy path %q has an empty segment", path)
		}
		if strings.TrimSpace(seg) != seg {
			return fmt.Errorf("hierarchy path %q segment %q has leading or trailing whitespace", path, seg)
		}
	}
	return nil
}
