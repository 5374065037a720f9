// Package embedclient defines the request/response contract for an
// embedding provider and the ANN index used by hybrid lexical+semantic
// search. Per the spec's Non-goals, the core never computes embeddings or
// runs nearest-neighbor search itself; it only shapes requests over graph
// entities and consumes results keyed by entity ID.
package embedclient

import "context"

// Client embeds a batch of texts, keyed by caller-supplied IDs so results
// can be matched back to entities without positional coupling.
type Client interface {
	Embed(ctx context.Context, texts map[string]string) (map[string][]float32, error)
}

// Index is a nearest-neighbor index over entity embeddings. The core's
// search facility queries it read-only; population/maintenance is a
// caller concern.
type Index interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

// Match is one ANN hit: the entity ID and its similarity score.
type Match struct {
	EntityID string
	Score    float32
}
