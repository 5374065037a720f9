// Package graph holds the in-memory Repository Planning Graph: the dual node
// set (low-level entities and the high-level semantic hierarchy), the
// unified edge set, and the derived indexes tying them together.
package graph

import "time"

// EntityKind classifies a V_L node. The base kinds come straight from the
// extracted syntax tree; the paradigm engine may relabel a raw function or
// class into one of the framework-specific variants.
type EntityKind string

const (
	KindFunction EntityKind = "function"
	KindClass    EntityKind = "class"
	KindMethod   EntityKind = "method"
	KindModule   EntityKind = "module"

	KindPage       EntityKind = "page"
	KindLayout     EntityKind = "layout"
	KindComponent  EntityKind = "component"
	KindHook       EntityKind = "hook"
	KindStore      EntityKind = "store"
	KindController EntityKind = "controller"
	KindModel      EntityKind = "model"
	KindService    EntityKind = "service"
	KindMiddleware EntityKind = "middleware"
	KindRoute      EntityKind = "route"
	KindTest       EntityKind = "test"
)

// EdgeKind classifies an edge. Dependency kinds join two V_L entities;
// EdgeContains joins either two V_H nodes or a V_H node to a V_L entity and
// is always derived, never hand-authored.
type EdgeKind string

const (
	EdgeImports     EdgeKind = "imports"
	EdgeInvokes     EdgeKind = "invokes"
	EdgeInherits    EdgeKind = "inherits"
	EdgeComposes    EdgeKind = "composes"
	EdgeRenders     EdgeKind = "renders"
	EdgeReadsState  EdgeKind = "reads_state"
	EdgeWritesState EdgeKind = "writes_state"
	EdgeDispatches  EdgeKind = "dispatches"
	EdgeDataFlow    EdgeKind = "data_flow"
	EdgeContains    EdgeKind = "contains"
)

// FeatureSource tags the provenance of an entity's semantic_features.
type FeatureSource string

const (
	SourceAuto           FeatureSource = "auto"
	SourceAutoReview     FeatureSource = "auto-review"
	SourceLLM            FeatureSource = "llm"
	SourceSynthesized    FeatureSource = "synthesized"
	SourcePlanned        FeatureSource = "planned"
	SourceOntologySeeded FeatureSource = "ontology_seeded"
)

// EntityDeps holds the resolved dependency record for an entity: forward
// lists populated by the grounder on the edge's source, and their
// reverse-lookup counterparts populated on the edge's target.
type EntityDeps struct {
	Imports      []string `json:"imports,omitempty"`
	Invokes      []string `json:"invokes,omitempty"`
	Inherits     []string `json:"inherits,omitempty"`
	Renders      []string `json:"renders,omitempty"`
	Dispatches   []string `json:"dispatches,omitempty"`
	ImportedBy   []string `json:"imported_by,omitempty"`
	InvokedBy    []string `json:"invoked_by,omitempty"`
	InheritedBy  []string `json:"inherited_by,omitempty"`
	RenderedBy   []string `json:"rendered_by,omitempty"`
	DispatchedBy []string `json:"dispatched_by,omitempty"`
}

// Entity is a V_L node: a parsed function, class, method, or synthetic
// module. IDs are the canonical join key described in spec §3 and MUST be
// constructed identically on every re-extraction (see ID helpers in ids.go).
type Entity struct {
	ID              string        `json:"id"`
	Kind            EntityKind    `json:"kind"`
	Name            string        `json:"name"`
	File            string        `json:"file"`
	LineStart       int           `json:"line_start"`
	LineEnd         int           `json:"line_end"`
	ParentClass     string        `json:"parent_class,omitempty"`
	SemanticFeatures []string     `json:"semantic_features,omitempty"`
	FeatureSource   FeatureSource `json:"feature_source,omitempty"`
	HierarchyPath   string        `json:"hierarchy_path,omitempty"`
	Deps            EntityDeps    `json:"deps"`
	Signature       string        `json:"signature,omitempty"`
}

// HierarchyNode is a V_H node: a semantic grouping under a slash-delimited
// Area[/category[/subcategory]] path.
type HierarchyNode struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	GroundedPaths    []string                  `json:"grounded_paths,omitempty"`
	Children         map[string]*HierarchyNode `json:"children,omitempty"`
	Entities         []string                  `json:"entities,omitempty"`
	SemanticFeatures []string                  `json:"semantic_features,omitempty"`
	Description      string                    `json:"description,omitempty"`
}

// ChildNames returns the node's child keys in deterministic sorted order.
func (h *HierarchyNode) ChildNames() []string {
	names := make([]string, 0, len(h.Children))
	for name := range h.Children {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// IsEmpty reports whether the node and every descendant hold no entities.
func (h *HierarchyNode) IsEmpty() bool {
	if len(h.Entities) > 0 {
		return false
	}
	for _, child := range h.Children {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}

// Edge is a flat record referencing two entity (or, for contains, hierarchy)
// IDs. The edge list preserves insertion order.
type Edge struct {
	Kind   EdgeKind `json:"kind"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

// Metadata is the graph's aggregate statistics block.
type Metadata struct {
	Languages        []string `json:"languages,omitempty"`
	Paradigms        []string `json:"paradigms,omitempty"`
	TotalFiles       int      `json:"total_files"`
	TotalEntities    int      `json:"total_entities"`
	FunctionalAreas  int      `json:"functional_areas"`
	TotalEdges       int      `json:"total_edges"`
	DependencyEdges  int      `json:"dependency_edges"`
	ContainmentEdges int      `json:"containment_edges"`
	LiftedEntities   int      `json:"lifted_entities"`
	SemanticHierarchy bool    `json:"semantic_hierarchy"`
	RepoSummary      string   `json:"repo_summary,omitempty"`
}

// Document is the persisted Repository Planning Graph container: version,
// timestamps, metadata, V_H, V_L, the unified edge list, and the file index.
// The edge index and hierarchy-node index are derived and never serialized.
type Document struct {
	Version    string                    `json:"version"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
	BaseCommit string                    `json:"base_commit,omitempty"`
	Metadata   Metadata                  `json:"metadata"`
	Hierarchy  map[string]*HierarchyNode `json:"hierarchy"`
	Entities   map[string]*Entity        `json:"entities"`
	Edges      []*Edge                   `json:"edges"`
	FileIndex  map[string][]string       `json:"file_index"`

	edgeIndex          map[string][]int    `json:"-"`
	hierarchyNodeIndex map[string][]string `json:"-"`
}

// New returns an empty, ready-to-use Document.
func New(version string) *Document {
	now := nowFunc()
	return &Document{
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
		Hierarchy: map[string]*HierarchyNode{},
		Entities:  map[string]*Entity{},
		Edges:     []*Edge{},
		FileIndex: map[string][]string{},
	}
}

// nowFunc is indirected so callers in tests can freeze time deterministically.
var nowFunc = time.Now
