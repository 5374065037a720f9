// Package llmclient defines the request/response contract between the
// lifting orchestrator and an LLM provider. The core never picks a model or
// issues the call itself (spec Non-goals); it only shapes the request and
// parses the response, exactly as the MCP server in the example pack
// treats its own LLM-backed tools as collaborators reached through a
// narrow interface rather than an in-process call.
package llmclient

import "context"

// Client is implemented by whatever transport actually talks to a model
// (HTTP API, local runtime, test double). The core depends only on this
// interface.
type Client interface {
	// Complete sends prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// EntityHeader identifies one entity within a lifting batch request, in the
// "file:[class::]name (kind)" form the response parser expects back as a
// line prefix.
type EntityHeader struct {
	Key        string // "file:[class::]name"
	Kind       string
	SourceText string // up to 40 lines, truncation-marked if cut
	Truncated  bool
}

// BatchRequest is one lifting batch: a repository summary for grounding
// context, the system prompt, and the entity headers to produce features
// for.
type BatchRequest struct {
	RepoSummary string
	Languages   []string
	Paradigms   []string
	AreaNames   []string
	SystemPrompt string
	Entities    []EntityHeader
}

// BatchResponse is the parsed reply: for each requested entity key, the
// normalized (trimmed, lowercased, deduplicated) list of verb-object
// feature phrases it was assigned.
type BatchResponse struct {
	Features map[string][]string
}

// FileSynthesisRequest asks for 3-6 holistic phrases per file, used when no
// semantic hierarchy exists yet.
type FileSynthesisRequest struct {
	RepoSummary string
	Files       []string
	// FileFeatures maps each file to its current dedup-aggregated Module
	// features, given as context for synthesis.
	FileFeatures map[string][]string
}

// FileSynthesisResponse maps each file to its synthesized holistic
// feature phrases.
type FileSynthesisResponse struct {
	Features map[string][]string
}

// HierarchyAssignmentRequest asks the model to cluster files into
// functional areas and assign each a three-level hierarchy path.
type HierarchyAssignmentRequest struct {
	RepoSummary  string
	FileFeatures map[string][]string
}

// HierarchyAssignmentResponse maps each file to its proposed
// "Area/category/subcategory" path, validated by the caller via
// graph.ValidateHierarchyPath before being applied.
type HierarchyAssignmentResponse struct {
	Assignments map[string]string
}

// DriftJudgeRequest is the optional adjudication request for borderline
// drift: old features, new features, the computed Jaccard distance, and
// the configured threshold.
type DriftJudgeRequest struct {
	OldFeatures []string
	NewFeatures []string
	Distance    float64
	Threshold   float64
}

// DriftVerdict is the parsed judge response. Any response other than the
// literal tokens "drifted"/"stable" is Unknown, and callers fall back to
// distance > threshold.
type DriftVerdict int

const (
	VerdictUnknown DriftVerdict = iota
	VerdictDrifted
	VerdictStable
)

// ParseDriftVerdict interprets a raw single-token judge response.
func ParseDriftVerdict(raw string) DriftVerdict {
	switch raw {
	case "drifted":
		return VerdictDrifted
	case "stable":
		return VerdictStable
	default:
		return VerdictUnknown
	}
}
