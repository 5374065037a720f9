// Package paradigm loads TOML-driven rules that specialize extraction and
// lifting for a framework (React hooks, Redux slices, and so on) on top of
// the language-generic parser/lifting rules.
package paradigm

import "github.com/viant/rpg/internal/graph"

// EntityRule relabels an extracted entity's kind when its name matches
// Pattern (a regular expression anchored against the bare entity name).
type EntityRule struct {
	Pattern string        `toml:"pattern"`
	Kind    graph.EntityKind `toml:"kind"`
}

// AutoliftRule supplies a deterministic feature set for entities whose name
// matches Pattern, at the given auto-lift confidence tier.
type AutoliftRule struct {
	Pattern    string   `toml:"pattern"`
	Features   []string `toml:"features"`
	Confidence string   `toml:"confidence"` // "accept" | "review"
}

// Definition is one paradigm's full rule set, as loaded from a TOML file.
type Definition struct {
	Name          string         `toml:"name"`
	FileGlobs     []string       `toml:"file_globs"`
	EntityRules   []EntityRule   `toml:"entity_rules"`
	AutoliftRules []AutoliftRule `toml:"autolift_rules"`
}
