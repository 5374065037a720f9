package lifting

import "strings"

// Warning flags one defect found by the quality critic.
type Warning struct {
	EntityID string
	Phrase   string
	Reason   string
}

var vagueLeadVerbs = map[string]bool{
	"handle": true, "process": true, "manage": true,
	"do": true, "make": true, "run": true, "work": true,
}

// Critique scans an entity's submitted feature phrases for common defects:
// single-token phrases, vague lead verbs, phrases over 7 tokens, and
// identifier-like phrases containing "_" or "::". It never blocks
// submission; callers surface the returned warnings alongside the applied
// features.
func Critique(entityID string, phrases []string) []Warning {
	var warnings []Warning
	for _, phrase := range phrases {
		tokens := strings.Fields(phrase)
		if len(tokens) == 1 {
			warnings = append(warnings, Warning{entityID, phrase, "single-word phrase"})
		}
		if len(tokens) > 7 {
			warnings = append(warnings, Warning{entityID, phrase, "phrase exceeds 7 tokens"})
		}
		if len(tokens) > 0 && vagueLeadVerbs[tokens[0]] {
			warnings = append(warnings, Warning{entityID, phrase, "vague lead verb: " + tokens[0]})
		}
		if strings.Contains(phrase, "_") || strings.Contains(phrase, "::") {
			warnings = append(warnings, Warning{entityID, phrase, "identifier-like phrase"})
		}
	}
	return warnings
}
