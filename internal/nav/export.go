// Package nav implements the read-only navigation facilities that sit on
// top of the graph: ranked search, entity/hierarchy fetch, dependency
// traversal, Graphviz/Mermaid export, impact-radius analysis, and the
// context-pack/plan facilities the code-generation workflow consumes.
// Every function here only reads *graph.Document; none mutates it.
package nav

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/rpg/internal/graph"
)

var nonIdentChar = regexp.MustCompile(`[^A-Za-z0-9_]`)

// dotID maps an entity/hierarchy ID to a Graphviz/Mermaid-safe identifier.
func dotID(id string) string {
	return nonIdentChar.ReplaceAllString(id, "_")
}

// ExportDot renders the full graph (entities plus dependency and
// containment edges) as a Graphviz "digraph" source.
func ExportDot(doc *graph.Document) string {
	var sb strings.Builder
	sb.WriteString("digraph rpg {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, id := range sortedEntityIDs(doc) {
		e := doc.Entities[id]
		fmt.Fprintf(&sb, "  %s [label=%q shape=box];\n", dotID(id), fmt.Sprintf("%s (%s)", e.Name, e.Kind))
	}
	for _, name := range sortedHierarchyNames(doc) {
		writeDotHierarchy(&sb, doc.Hierarchy[name], "")
	}
	for _, edge := range doc.Edges {
		fmt.Fprintf(&sb, "  %s -> %s [label=%q];\n", dotID(edge.Source), dotID(edge.Target), edge.Kind)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func writeDotHierarchy(sb *strings.Builder, node *graph.HierarchyNode, _ string) {
	fmt.Fprintf(sb, "  %s [label=%q shape=folder style=filled fillcolor=lightgrey];\n", dotID(node.ID), node.Name)
	for _, name := range node.ChildNames() {
		writeDotHierarchy(sb, node.Children[name], "")
	}
}

// ExportMermaid renders the graph as a Mermaid "graph LR" block, entities
// grouped into subgraphs per top-level hierarchy area when a hierarchy
// exists.
func ExportMermaid(doc *graph.Document) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\ngraph LR\n")

	placed := map[string]bool{}
	for _, name := range sortedHierarchyNames(doc) {
		node := doc.Hierarchy[name]
		fmt.Fprintf(&sb, "  subgraph %s[\"%s\"]\n", dotID(node.ID), node.Name)
		writeMermaidNode(&sb, doc, node, placed)
		sb.WriteString("  end\n")
	}
	for _, id := range sortedEntityIDs(doc) {
		if placed[id] {
			continue
		}
		e := doc.Entities[id]
		fmt.Fprintf(&sb, "  %s[\"%s (%s)\"]\n", dotID(id), e.Name, e.Kind)
	}
	for _, edge := range doc.Edges {
		if edge.Kind == graph.EdgeContains {
			continue
		}
		fmt.Fprintf(&sb, "  %s -->|%s| %s\n", dotID(edge.Source), edge.Kind, dotID(edge.Target))
	}

	sb.WriteString("```\n")
	return sb.String()
}

func writeMermaidNode(sb *strings.Builder, doc *graph.Document, node *graph.HierarchyNode, placed map[string]bool) {
	for _, id := range node.Entities {
		if e, ok := doc.Entities[id]; ok {
			fmt.Fprintf(sb, "    %s[\"%s (%s)\"]\n", dotID(id), e.Name, e.Kind)
			placed[id] = true
		}
	}
	for _, name := range node.ChildNames() {
		writeMermaidNode(sb, doc, node.Children[name], placed)
	}
}

func sortedEntityIDs(doc *graph.Document) []string {
	ids := make([]string, 0, len(doc.Entities))
	for id := range doc.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedHierarchyNames(doc *graph.Document) []string {
	names := make([]string, 0, len(doc.Hierarchy))
	for n := range doc.Hierarchy {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
