package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/llmclient"
	"github.com/viant/rpg/internal/nav"
	"github.com/viant/rpg/internal/rpgbuild"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/rpgreport"
)

func (s *Server) registerTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "build_rpg", Description: "Run a full structural build of the Repository Planning Graph"}, s.toolBuild)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "update_rpg", Description: "Incrementally evolve the graph against a git diff since its stored base commit"}, s.toolUpdate)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "reload_rpg", Description: "Reload the graph from disk, discarding any in-memory staleness"}, s.toolReload)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "rpg_info", Description: "Return the graph's summary metadata"}, s.toolInfo)

	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "search_node", Description: "Rank entities by lexical overlap against a free-text query"}, s.toolSearch)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "fetch_node", Description: "Fetch the full detail of one entity or hierarchy node by ID"}, s.toolFetch)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "explore_rpg", Description: "Walk dependency edges outward from an entity"}, s.toolExplore)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "impact_radius", Description: "Compute the reverse-dependency blast radius of a change to one entity"}, s.toolImpactRadius)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "context_pack", Description: "Assemble a context pack (entities, hierarchy ancestry, files) for a set of IDs"}, s.toolContextPack)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "plan_change", Description: "Produce a deterministic, dependency-ordered generation plan for a scope"}, s.toolPlanChange)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "reconstruct_plan", Description: "Decode a previously returned generation plan"}, s.toolReconstructPlan)

	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "lifting_status", Description: "Report how many entities remain unlifted and how many routing entries are pending"}, s.toolLiftingStatus)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "get_entities_for_lifting", Description: "Fetch the next LLM batch of entities needing semantic features"}, s.toolGetEntitiesForLifting)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "submit_lift_results", Description: "Apply LLM-produced feature phrases for a batch of entities"}, s.toolSubmitLiftResults)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "get_routing_candidates", Description: "Fetch the pending-routing queue entries awaiting a hierarchy placement decision"}, s.toolGetRoutingCandidates)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "submit_routing_decisions", Description: "Assign pending-routing entities to explicit hierarchy paths"}, s.toolSubmitRoutingDecisions)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "finalize_lifting", Description: "Run the end-of-scope aggregation pipeline and drain remaining routing entries via Jaccard fallback"}, s.toolFinalizeLifting)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "get_files_for_synthesis", Description: "Fetch the file-level feature synthesis request for files with no semantic hierarchy yet"}, s.toolGetFilesForSynthesis)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "submit_file_syntheses", Description: "Apply synthesized holistic feature phrases per file"}, s.toolSubmitFileSyntheses)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "build_semantic_hierarchy", Description: "Fetch the hierarchy-assignment request clustering files into functional areas"}, s.toolBuildSemanticHierarchy)
	mcpsdk.AddTool(server, &mcpsdk.Tool{Name: "submit_hierarchy", Description: "Apply a full set of file-to-hierarchy-path assignments, materializing V_H"}, s.toolSubmitHierarchy)
}

// --- lifecycle -------------------------------------------------------

type emptyInput struct{}

type buildOutput struct {
	Path              string   `json:"path"`
	Entities          int      `json:"entities"`
	Edges             int      `json:"edges"`
	Files             int      `json:"files"`
	Languages         []string `json:"languages"`
	SemanticHierarchy bool     `json:"semantic_hierarchy"`
	GraphRevision     string   `json:"graph_revision"`
	NextAction        string   `json:"## NEXT_ACTION"`
}

func (s *Server) toolBuild(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, buildOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := rpgbuild.Build(ctx, s.repoRoot, rpgbuild.Options{Paradigms: s.paradigm})
	if err != nil {
		return nil, buildOutput{}, err
	}
	if s.doc != nil {
		rpgbuild.RebuildPreserving(fresh, s.doc)
	}
	path, err := s.store.Save(ctx, fresh)
	if err != nil {
		return nil, buildOutput{}, err
	}
	s.doc = fresh
	s.queue = &lifting.Queue{}

	rev, err := s.currentRevision()
	if err != nil {
		return nil, buildOutput{}, err
	}
	out := buildOutput{
		Path: path, Entities: fresh.Metadata.TotalEntities, Edges: fresh.Metadata.TotalEdges,
		Files: fresh.Metadata.TotalFiles, Languages: fresh.Metadata.Languages,
		SemanticHierarchy: fresh.Metadata.SemanticHierarchy, GraphRevision: rev,
		NextAction: "call get_entities_for_lifting to begin populating semantic features, or rpg_info to inspect the build",
	}
	return nil, out, nil
}

type updateInput struct {
	Since string `json:"since,omitempty"`
}

type updateOutput struct {
	Added         []string `json:"added"`
	Modified      []string `json:"modified"`
	Deleted       []string `json:"deleted"`
	RenamedCount  int      `json:"renamed_count"`
	NewlyLifted   []string `json:"newly_lifted"`
	GraphRevision string   `json:"graph_revision"`
	NextAction    string   `json:"## NEXT_ACTION"`
}

func (s *Server) toolUpdate(ctx context.Context, req *mcpsdk.CallToolRequest, in updateInput) (*mcpsdk.CallToolResult, updateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, updateOutput{}, err
	}

	res, err := rpgbuild.Update(s.doc, s.repoRoot, in.Since, nil, s.queue)
	if err != nil {
		return nil, updateOutput{}, err
	}
	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, updateOutput{}, err
	}

	next := "graph is current"
	if len(res.NewlyLiftedIDs) > 0 {
		next = "call get_routing_candidates to place newly-lifted entities into the hierarchy"
	}
	rev, err := s.currentRevision()
	if err != nil {
		return nil, updateOutput{}, err
	}
	out := updateOutput{
		Added: res.Added, Modified: res.Modified, Deleted: res.Deleted,
		RenamedCount: len(res.Renamed), NewlyLifted: res.NewlyLiftedIDs,
		GraphRevision: rev, NextAction: next,
	}
	return nil, out, nil
}

func (s *Server) toolReload(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, buildOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok, err := s.store.Load(ctx)
	if err != nil {
		return nil, buildOutput{}, err
	}
	if !ok {
		return nil, buildOutput{}, rpgerr.New(rpgerr.KindNotFound, "reload_rpg", "no graph found under .rpg/ — call build_rpg first")
	}
	s.doc = doc
	rev, err := s.currentRevision()
	if err != nil {
		return nil, buildOutput{}, err
	}
	out := buildOutput{
		Entities: doc.Metadata.TotalEntities, Edges: doc.Metadata.TotalEdges, Files: doc.Metadata.TotalFiles,
		Languages: doc.Metadata.Languages, SemanticHierarchy: doc.Metadata.SemanticHierarchy,
		GraphRevision: rev, NextAction: "graph reloaded",
	}
	return nil, out, nil
}

func (s *Server) toolInfo(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, graph.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, graph.Metadata{}, err
	}
	return nil, s.doc.Metadata, nil
}

// ensureLoaded lazily loads the graph on first tool call in a session,
// matching the CLI's requireGraph without forcing every caller to call
// reload_rpg before anything else works.
func (s *Server) ensureLoaded(ctx context.Context) error {
	if s.doc != nil {
		return nil
	}
	doc, ok, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return rpgerr.New(rpgerr.KindNotFound, "mcp", "no graph found under .rpg/ — call build_rpg first")
	}
	s.doc = doc
	return nil
}

// --- navigation --------------------------------------------------------

type searchInput struct {
	Query       string `json:"query"`
	Mode        string `json:"mode,omitempty"`
	Scope       string `json:"scope,omitempty"`
	FilePattern string `json:"file_pattern,omitempty"`
	Lines       string `json:"lines,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type searchOutput struct {
	Results []nav.SearchResult `json:"results"`
}

func (s *Server) toolSearch(ctx context.Context, req *mcpsdk.CallToolRequest, in searchInput) (*mcpsdk.CallToolResult, searchOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, searchOutput{}, err
	}

	opts := nav.SearchOptions{Mode: nav.Mode(in.Mode), Scope: in.Scope, FilePattern: in.FilePattern, RepoRoot: s.repoRoot}
	if in.Lines != "" {
		start, end, err := nav.ParseLineRange(in.Lines)
		if err != nil {
			return nil, searchOutput{}, err
		}
		opts.LineStart, opts.LineEnd = start, end
	}
	if opts.Scope == "" {
		opts.Scope = "*"
	}

	results, err := nav.Search(s.doc, in.Query, opts)
	if err != nil {
		return nil, searchOutput{}, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return nil, searchOutput{Results: results}, nil
}

type fetchInput struct {
	ID string `json:"id"`
}

func (s *Server) toolFetch(ctx context.Context, req *mcpsdk.CallToolRequest, in fetchInput) (*mcpsdk.CallToolResult, nav.FetchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nav.FetchResult{}, err
	}
	res, err := nav.Fetch(s.doc, in.ID)
	if err != nil {
		return nil, nav.FetchResult{}, err
	}
	return nil, *res, nil
}

type exploreInput struct {
	ID        string `json:"id"`
	Direction string `json:"direction,omitempty"`
	Depth     int    `json:"depth,omitempty"`
}

func (s *Server) toolExplore(ctx context.Context, req *mcpsdk.CallToolRequest, in exploreInput) (*mcpsdk.CallToolResult, nav.TraversalNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nav.TraversalNode{}, err
	}
	dir := nav.Direction(in.Direction)
	if dir == "" {
		dir = nav.DirectionDown
	}
	depth := in.Depth
	if depth <= 0 {
		depth = 2
	}
	tree, err := nav.Explore(s.doc, in.ID, dir, depth)
	if err != nil {
		return nil, nav.TraversalNode{}, err
	}
	return nil, *tree, nil
}

type impactInput struct {
	ID       string `json:"id"`
	MaxDepth int    `json:"max_depth,omitempty"`
}

type impactOutput struct {
	Entries []nav.ImpactEntry `json:"entries"`
}

func (s *Server) toolImpactRadius(ctx context.Context, req *mcpsdk.CallToolRequest, in impactInput) (*mcpsdk.CallToolResult, impactOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, impactOutput{}, err
	}
	depth := in.MaxDepth
	if depth <= 0 {
		depth = 3
	}
	entries, err := nav.ImpactRadius(s.doc, in.ID, depth)
	if err != nil {
		return nil, impactOutput{}, err
	}
	return nil, impactOutput{Entries: entries}, nil
}

type contextPackInput struct {
	IDs []string `json:"ids"`
}

func (s *Server) toolContextPack(ctx context.Context, req *mcpsdk.CallToolRequest, in contextPackInput) (*mcpsdk.CallToolResult, nav.ContextPack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nav.ContextPack{}, err
	}
	return nil, *nav.BuildContextPack(s.doc, in.IDs), nil
}

type planChangeInput struct {
	Scope string `json:"scope"`
}

func (s *Server) toolPlanChange(ctx context.Context, req *mcpsdk.CallToolRequest, in planChangeInput) (*mcpsdk.CallToolResult, nav.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nav.Plan{}, err
	}
	plan, err := nav.PlanChange(s.doc, in.Scope)
	if err != nil {
		return nil, nav.Plan{}, err
	}
	return nil, *plan, nil
}

type reconstructPlanInput struct {
	Encoded []byte `json:"encoded"`
}

func (s *Server) toolReconstructPlan(ctx context.Context, req *mcpsdk.CallToolRequest, in reconstructPlanInput) (*mcpsdk.CallToolResult, nav.Plan, error) {
	plan, err := nav.ReconstructPlan(in.Encoded)
	if err != nil {
		return nil, nav.Plan{}, err
	}
	return nil, *plan, nil
}

// --- lifting -------------------------------------------------------------

type liftingStatusOutput struct {
	Unlifted      int    `json:"unlifted"`
	PendingRoutes int    `json:"pending_routes"`
	NextAction    string `json:"## NEXT_ACTION"`
}

func (s *Server) toolLiftingStatus(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, liftingStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, liftingStatusOutput{}, err
	}

	unlifted, err := lifting.ResolveScope(s.doc, "*", true)
	if err != nil {
		return nil, liftingStatusOutput{}, err
	}
	next := "graph is fully lifted"
	if len(unlifted) > 0 {
		next = "call get_entities_for_lifting to continue"
	} else if len(s.queue.Entries) > 0 {
		next = "call get_routing_candidates to place pending entities"
	}
	return nil, liftingStatusOutput{Unlifted: len(unlifted), PendingRoutes: len(s.queue.Entries), NextAction: next}, nil
}

type getEntitiesForLiftingInput struct {
	Scope      string `json:"scope,omitempty"`
	MaxEntities int   `json:"max_entities,omitempty"`
	MaxTokens   int   `json:"max_tokens,omitempty"`
}

func (s *Server) toolGetEntitiesForLifting(ctx context.Context, req *mcpsdk.CallToolRequest, in getEntitiesForLiftingInput) (*mcpsdk.CallToolResult, []lifting.RoutingEntry, error) {
	// Reuses RoutingEntry's shape (id + features + reason) purely as a
	// convenient wire type; entries returned here carry no routing
	// semantics until ApplyLifted runs.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nil, err
	}

	scope := in.Scope
	if scope == "" {
		scope = "*"
	}
	ids, err := lifting.ResolveScope(s.doc, scope, true)
	if err != nil {
		return nil, nil, err
	}

	maxEntities := in.MaxEntities
	if maxEntities <= 0 {
		maxEntities = s.config.Lifting.MaxEntitiesPerBatch
	}
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.Lifting.MaxTokensPerBatch
	}

	batches, err := lifting.BuildBatches(s.doc, ids, s.sourceText, maxEntities, maxTokens)
	if err != nil {
		return nil, nil, err
	}
	if len(batches) == 0 {
		return nil, nil, nil
	}
	first := batches[0]
	var out []lifting.RoutingEntry
	for _, h := range first.Entities {
		out = append(out, lifting.RoutingEntry{EntityID: h.Key, Reason: h.Kind})
	}
	return nil, out, nil
}

func (s *Server) sourceText(id string) (string, error) {
	e, ok := s.doc.Entities[id]
	if !ok {
		return "", fmt.Errorf("mcp: no entity %s", id)
	}
	return e.Signature, nil
}

type liftResult struct {
	EntityID string   `json:"entity_id"`
	Features []string `json:"features"`
	Source   string   `json:"source,omitempty"`
}

type submitLiftResultsInput struct {
	GraphRevision string       `json:"graph_revision"`
	Results       []liftResult `json:"results"`
}

type submitLiftResultsOutput struct {
	Applied       int             `json:"applied"`
	Warnings      []lifting.Warning `json:"warnings,omitempty"`
	GraphRevision string          `json:"graph_revision"`
}

func (s *Server) toolSubmitLiftResults(ctx context.Context, req *mcpsdk.CallToolRequest, in submitLiftResultsInput) (*mcpsdk.CallToolResult, submitLiftResultsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	rev, err := s.currentRevision()
	if err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	if in.GraphRevision != "" && in.GraphRevision != rev {
		return nil, submitLiftResultsOutput{}, staleErr(in.GraphRevision, rev)
	}

	var warnings []lifting.Warning
	zoneCounts := map[lifting.Zone]int{}
	applied := 0
	for _, r := range in.Results {
		features := lifting.Normalize(r.Features)
		warnings = append(warnings, lifting.Critique(r.EntityID, features)...)
		source := graph.SourceLLM
		zone, err := lifting.ApplyLifted(s.doc, s.queue, r.EntityID, features, source, s.config.Drift.DriftIgnore, s.config.Drift.DriftAuto)
		if err != nil {
			return nil, submitLiftResultsOutput{}, err
		}
		zoneCounts[zone]++
		applied++
	}
	s.doc.RefreshMetadata()
	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	report, err := rpgreport.BuildAblationReport(s.doc, zoneCounts)
	if err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	if err := rpgreport.WriteAblationReport(s.repoRoot, report); err != nil {
		s.logger.Warn("ablation report write failed, continuing", zap.Error(err))
	}
	rev, err = s.currentRevision()
	if err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	return nil, submitLiftResultsOutput{Applied: applied, Warnings: warnings, GraphRevision: rev}, nil
}

func (s *Server) toolGetRoutingCandidates(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, []lifting.RoutingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nil, err
	}
	return nil, s.queue.Entries, nil
}

type routingDecision struct {
	EntityID      string `json:"entity_id"`
	HierarchyPath string `json:"hierarchy_path"`
}

type submitRoutingDecisionsInput struct {
	GraphRevision string            `json:"graph_revision"`
	Decisions     []routingDecision `json:"decisions"`
}

type submitRoutingDecisionsOutput struct {
	Applied       int    `json:"applied"`
	GraphRevision string `json:"graph_revision"`
}

func (s *Server) toolSubmitRoutingDecisions(ctx context.Context, req *mcpsdk.CallToolRequest, in submitRoutingDecisionsInput) (*mcpsdk.CallToolResult, submitRoutingDecisionsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, submitRoutingDecisionsOutput{}, err
	}
	rev, err := s.currentRevision()
	if err != nil {
		return nil, submitRoutingDecisionsOutput{}, err
	}
	if in.GraphRevision != "" && in.GraphRevision != rev {
		return nil, submitRoutingDecisionsOutput{}, staleErr(in.GraphRevision, rev)
	}

	assignments := map[string]string{}
	for _, d := range in.Decisions {
		if err := graph.ValidateHierarchyPath(d.HierarchyPath); err != nil {
			return nil, submitRoutingDecisionsOutput{}, err
		}
		assignments[d.EntityID] = d.HierarchyPath
	}
	s.doc.ApplyHierarchyAssignments(assignments)

	var kept []lifting.RoutingEntry
	for _, e := range s.queue.Entries {
		if _, decided := assignments[e.EntityID]; !decided {
			kept = append(kept, e)
		}
	}
	s.queue.Entries = kept

	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, submitRoutingDecisionsOutput{}, err
	}
	rev, err = s.currentRevision()
	if err != nil {
		return nil, submitRoutingDecisionsOutput{}, err
	}
	return nil, submitRoutingDecisionsOutput{Applied: len(assignments), GraphRevision: rev}, nil
}

func (s *Server) toolFinalizeLifting(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, graph.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, graph.Metadata{}, err
	}
	lifting.Finalize(s.doc, s.queue)
	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, graph.Metadata{}, err
	}
	return nil, s.doc.Metadata, nil
}

type filesForSynthesisOutput struct {
	RepoSummary  string              `json:"repo_summary"`
	Files        []string            `json:"files"`
	FileFeatures map[string][]string `json:"file_features"`
}

func (s *Server) toolGetFilesForSynthesis(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, filesForSynthesisOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, filesForSynthesisOutput{}, err
	}
	fr := lifting.BuildFileFeatureRequest(s.doc, s.doc.Metadata.RepoSummary)
	return nil, filesForSynthesisOutput{RepoSummary: fr.RepoSummary, Files: fr.Files, FileFeatures: fr.FileFeatures}, nil
}

type submitFileSynthesesInput struct {
	GraphRevision string              `json:"graph_revision"`
	Features      map[string][]string `json:"features"`
}

func (s *Server) toolSubmitFileSyntheses(ctx context.Context, req *mcpsdk.CallToolRequest, in submitFileSynthesesInput) (*mcpsdk.CallToolResult, submitLiftResultsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	rev, err := s.currentRevision()
	if err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	if in.GraphRevision != "" && in.GraphRevision != rev {
		return nil, submitLiftResultsOutput{}, staleErr(in.GraphRevision, rev)
	}
	lifting.ApplyFileSynthesis(s.doc, llmclient.FileSynthesisResponse{Features: in.Features})
	s.doc.RefreshMetadata()
	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	rev, err = s.currentRevision()
	if err != nil {
		return nil, submitLiftResultsOutput{}, err
	}
	return nil, submitLiftResultsOutput{Applied: len(in.Features), GraphRevision: rev}, nil
}

type hierarchyRequestOutput struct {
	RepoSummary  string              `json:"repo_summary"`
	FileFeatures map[string][]string `json:"file_features"`
}

func (s *Server) toolBuildSemanticHierarchy(ctx context.Context, req *mcpsdk.CallToolRequest, in emptyInput) (*mcpsdk.CallToolResult, hierarchyRequestOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, hierarchyRequestOutput{}, err
	}
	fr := lifting.BuildFileFeatureRequest(s.doc, s.doc.Metadata.RepoSummary)
	return nil, hierarchyRequestOutput{RepoSummary: fr.RepoSummary, FileFeatures: fr.FileFeatures}, nil
}

type submitHierarchyInput struct {
	GraphRevision string            `json:"graph_revision"`
	Assignments   map[string]string `json:"assignments"`
}

func (s *Server) toolSubmitHierarchy(ctx context.Context, req *mcpsdk.CallToolRequest, in submitHierarchyInput) (*mcpsdk.CallToolResult, graph.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, graph.Metadata{}, err
	}
	rev, err := s.currentRevision()
	if err != nil {
		return nil, graph.Metadata{}, err
	}
	if in.GraphRevision != "" && in.GraphRevision != rev {
		return nil, graph.Metadata{}, staleErr(in.GraphRevision, rev)
	}
	if err := lifting.ApplyHierarchyAssignments(s.doc, in.Assignments); err != nil {
		return nil, graph.Metadata{}, err
	}
	s.doc.Metadata.SemanticHierarchy = true
	s.doc.RefreshMetadata()
	if _, err := s.store.Save(ctx, s.doc); err != nil {
		return nil, graph.Metadata{}, err
	}
	return nil, s.doc.Metadata, nil
}
