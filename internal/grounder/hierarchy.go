package grounder

import (
	"path"
	"sort"
	"strings"

	"github.com/viant/rpg/internal/graph"
)

// GroundHierarchy computes each V_H node's grounded_paths: the LCA
// directory of the files of every entity in its subtree, deduplicated and
// sorted. It has no effect on any invariant and is purely informational.
func GroundHierarchy(doc *graph.Document) {
	for _, name := range sortedTopNames(doc.Hierarchy) {
		groundNode(doc, doc.Hierarchy[name])
	}
}

func sortedTopNames(m map[string]*graph.HierarchyNode) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// groundNode returns the set of files in node's subtree and, as a side
// effect, writes node.GroundedPaths to their LCA.
func groundNode(doc *graph.Document, node *graph.HierarchyNode) map[string]bool {
	files := map[string]bool{}

	for _, id := range node.Entities {
		if e, ok := doc.Entities[id]; ok {
			files[e.File] = true
		}
	}
	for _, childName := range node.ChildNames() {
		child := node.Children[childName]
		for f := range groundNode(doc, child) {
			files[f] = true
		}
	}

	node.GroundedPaths = []string{lca(files)}
	return files
}

// lca returns the longest common directory prefix of files, "" if files is
// empty, or "." when the only common ancestor is the repository root.
func lca(files map[string]bool) string {
	if len(files) == 0 {
		return ""
	}
	var dirs [][]string
	for f := range files {
		dirs = append(dirs, strings.Split(path.Dir(graph.NormalizeFile(f)), "/"))
	}
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) < len(dirs[j]) })

	common := dirs[0]
	for _, d := range dirs[1:] {
		common = commonPrefix(common, d)
		if len(common) == 0 {
			break
		}
	}
	if len(common) == 0 {
		return "."
	}
	return strings.Join(common, "/")
}

func commonPrefix(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
