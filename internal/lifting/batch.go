package lifting

import (
	"fmt"
	"strings"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/llmclient"
)

// maxSourceLines caps how much of an entity's source text is sent per the
// LLM request contract; longer bodies are truncated with a marker.
const maxSourceLines = 40

// approxCharsPerToken is the crude token estimate used for batch sizing:
// ~4 characters per token, matching the rough heuristic used wherever a
// tokenizer isn't available at batch-construction time.
const approxCharsPerToken = 4

// BuildBatches packs entityIDs into token-aware, deterministic batches: a
// new batch starts whenever adding the next entity would exceed
// maxEntities or maxTokens. sourceText resolves an entity ID to its
// original file source, used to extract up to maxSourceLines lines of
// context per entity.
func BuildBatches(doc *graph.Document, entityIDs []string, sourceText func(id string) (string, error), maxEntities, maxTokens int) ([]llmclient.BatchRequest, error) {
	var batches []llmclient.BatchRequest
	var current llmclient.BatchRequest
	currentTokens := 0

	flush := func() {
		if len(current.Entities) > 0 {
			batches = append(batches, current)
		}
		current = llmclient.BatchRequest{}
		currentTokens = 0
	}

	for _, id := range entityIDs {
		e, ok := doc.Entities[id]
		if !ok || e.Kind == graph.KindModule {
			continue
		}
		header, err := buildHeader(id, e, sourceText)
		if err != nil {
			return nil, err
		}
		tokens := estimateTokens(header.SourceText) + estimateTokens(header.Key)

		if len(current.Entities) > 0 && (len(current.Entities) >= maxEntities || currentTokens+tokens > maxTokens) {
			flush()
		}
		current.Entities = append(current.Entities, header)
		currentTokens += tokens
	}
	flush()

	return batches, nil
}

func buildHeader(id string, e *graph.Entity, sourceText func(id string) (string, error)) (llmclient.EntityHeader, error) {
	src, err := sourceText(id)
	if err != nil {
		return llmclient.EntityHeader{}, fmt.Errorf("lifting: source for %s: %w", id, err)
	}

	lines := strings.Split(src, "\n")
	truncated := false
	if len(lines) > maxSourceLines {
		lines = lines[:maxSourceLines]
		truncated = true
	}
	body := strings.Join(lines, "\n")
	if truncated {
		body += "\n... (truncated)"
	}

	return llmclient.EntityHeader{
		Key:        entityKey(id, e),
		Kind:       string(e.Kind),
		SourceText: body,
		Truncated:  truncated,
	}, nil
}

// entityKey builds the "file:[class::]name" header key the LLM request
// contract expects.
func entityKey(id string, e *graph.Entity) string {
	if e.ParentClass != "" {
		return e.File + ":" + e.ParentClass + "::" + e.Name
	}
	return id
}

func estimateTokens(s string) int {
	return (len(s) + approxCharsPerToken - 1) / approxCharsPerToken
}
