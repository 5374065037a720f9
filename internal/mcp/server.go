// Package mcp exposes the Repository Planning Graph over the Model
// Context Protocol: the same build/update/navigate/lift operations the
// CLI drives, reached by an agent as typed tool calls instead of shell
// commands. The submit_lift_results, submit_routing_decisions,
// submit_file_syntheses and submit_hierarchy tools are staleness-checked:
// when the caller passes the graph revision it last observed and that
// differs from the current one, the submission is rejected with an error
// instead of being applied. An empty revision skips the check, and the
// other tools take no revision.
package mcp

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/paradigm"
	"github.com/viant/rpg/internal/rpgconfig"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/storage"
)

// Server holds the single graph session an MCP client drives: the loaded
// document, the pending-routing queue, and the store it persists through.
// One Server serves one repository root for the lifetime of the process,
// matching the CLI's one-graph-per-.rpg/ model.
type Server struct {
	mu sync.Mutex

	repoRoot string
	store    *storage.Store
	config   *rpgconfig.Config
	paradigm *paradigm.Registry
	logger   *zap.Logger

	doc   *graph.Document
	queue *lifting.Queue
}

// New constructs a Server rooted at repoRoot. The graph itself is loaded
// lazily by the first tool call that needs it (ensureLoaded), mirroring the CLI's
// requireGraph pattern rather than failing at process start.
func New(repoRoot string, logger *zap.Logger) *Server {
	cfg, err := rpgconfig.Load(repoRoot)
	if err != nil {
		cfg = rpgconfig.Default()
	}
	reg, err := paradigm.LoadBuiltins()
	if err == nil {
		_ = paradigm.LoadProjectOverrides(reg, repoRoot)
	}
	return &Server{
		repoRoot: repoRoot,
		store:    storage.New(repoRoot),
		config:   cfg,
		paradigm: reg,
		logger:   logger,
		queue:    &lifting.Queue{},
	}
}

// Serve registers every tool and runs the server over stdio until ctx is
// canceled, the way a CLI-adjacent MCP server is expected to be launched
// (one process per editor/agent session, lifetime tied to the parent).
func (s *Server) Serve(ctx context.Context) error {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "rpg", Version: "0.1.0"}, nil)
	s.registerTools(server)
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

// currentRevision returns the in-memory graph's revision tag. A non-nil
// error here means the revision hash could not be computed at all, which
// must surface as a failed tool call rather than be treated as a (falsely
// matching) empty revision — see staleErr's callers.
func (s *Server) currentRevision() (string, error) {
	if s.doc == nil {
		return "", nil
	}
	rev, err := s.doc.Revision()
	if err != nil {
		return "", rpgerr.Wrap(rpgerr.KindInternal, "mcp", "compute graph revision", err)
	}
	return rev, nil
}

// staleErr reports a revision mismatch in the uniform shape every
// staleness-checked tool uses.
func staleErr(want, got string) error {
	return &revisionError{want: want, got: got}
}

type revisionError struct{ want, got string }

func (e *revisionError) Error() string {
	return "graph_revision is stale: client has " + e.want + ", server is at " + e.got + " — reload before retrying"
}
