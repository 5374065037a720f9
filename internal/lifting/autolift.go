package lifting

import (
	"regexp"
	"strings"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/paradigm"
	"github.com/viant/rpg/internal/parser"
)

// Verdict is the confidence tier an auto-lift rule assigns its output.
type Verdict int

const (
	// VerdictReject defers the entity to the LLM tier.
	VerdictReject Verdict = iota
	// VerdictAccept applies the features silently.
	VerdictAccept
	// VerdictReview applies the features but surfaces them in the next
	// batch for human confirmation.
	VerdictReview
)

var (
	getterRe      = regexp.MustCompile(`^(get|is|has)[A-Z_]`)
	setterRe      = regexp.MustCompile(`^set[A-Z_]`)
	constructorRe = regexp.MustCompile(`^(__init__|new|New|create|Create)$`)
)

// AutoLift runs the deterministic rule engine against one raw entity, in
// the order: paradigm hints, constructor/getter/setter detection,
// pure-forwarding wrapper detection. The first matching rule wins.
func AutoLift(re parser.RawEntity, paradigms *paradigm.Compiled) ([]string, Verdict) {
	if paradigms != nil {
		if features, confidence, ok := paradigms.AutoliftHint(re.Name); ok {
			return Normalize(features), verdictFromConfidence(confidence)
		}
	}

	if re.Kind == graph.KindMethod || re.Kind == graph.KindFunction {
		if constructorRe.MatchString(re.Name) {
			return Normalize([]string{"construct " + lowerKindNoun(re)}), VerdictAccept
		}
		if getterRe.MatchString(re.Name) {
			return Normalize([]string{"return " + fieldNoun(re.Name)}), VerdictAccept
		}
		if setterRe.MatchString(re.Name) {
			return Normalize([]string{"assign " + fieldNoun(re.Name)}), VerdictAccept
		}
		if isPureForwarding(re) {
			return Normalize([]string{"delegate to " + forwardedCallee(re)}), VerdictReview
		}
	}

	return nil, VerdictReject
}

func verdictFromConfidence(confidence string) Verdict {
	if confidence == "accept" {
		return VerdictAccept
	}
	return VerdictReview
}

func lowerKindNoun(re parser.RawEntity) string {
	if re.ParentClass != "" {
		return strings.ToLower(re.ParentClass)
	}
	return "instance"
}

// fieldNoun strips a get/set/is/has prefix and splits camelCase/snake_case
// into a lowercase space-joined noun phrase.
func fieldNoun(name string) string {
	trimmed := name
	for _, prefix := range []string{"get_", "set_", "is_", "has_", "get", "set", "is", "has"} {
		if strings.HasPrefix(trimmed, prefix) {
			rest := trimmed[len(prefix):]
			if rest == "" {
				continue
			}
			trimmed = rest
			break
		}
	}
	return strings.ToLower(splitWords(trimmed))
}

func splitWords(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		if r == '_' {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isPureForwarding reports whether re's body is a single call expression
// forwarding to another function/method, judged heuristically from its
// source text: at most 6 lines, at least one "(" with balanced
// parentheses, at most one ";" and at most one "return".
func isPureForwarding(re parser.RawEntity) bool {
	lines := strings.Split(strings.TrimSpace(re.SourceText), "\n")
	if len(lines) > 6 {
		return false
	}
	body := strings.Join(lines, " ")
	return strings.Count(body, "(") == strings.Count(body, ")") && strings.Contains(body, "(") &&
		strings.Count(body, ";") <= 1 && strings.Count(body, "return") <= 1
}

func forwardedCallee(re parser.RawEntity) string {
	return strings.ToLower(re.Name)
}
