package paradigm

import (
	"regexp"

	"github.com/gobwas/glob"

	"github.com/viant/rpg/internal/graph"
)

// compiledEntityRule caches a Definition's EntityRule regexes.
type compiledEntityRule struct {
	re   *regexp.Regexp
	kind graph.EntityKind
}

type compiledAutolift struct {
	re         *regexp.Regexp
	features   []string
	confidence string
}

// Compiled is a Registry with every pattern pre-compiled, for per-entity
// application during extraction and lifting.
type Compiled struct {
	fileGlobs []glob.Glob
	entity    []compiledEntityRule
	autolift  []compiledAutolift
}

// Compile pre-compiles every rule pattern across reg's definitions whose
// file_globs match at least one file under consideration; pass nil files
// to compile every definition unconditionally.
func Compile(reg *Registry, files []string) (*Compiled, error) {
	c := &Compiled{}
	for _, def := range reg.Definitions() {
		if len(files) > 0 && !anyGlobMatches(def.FileGlobs, files) {
			continue
		}
		for _, er := range def.EntityRules {
			re, err := regexp.Compile(er.Pattern)
			if err != nil {
				return nil, err
			}
			c.entity = append(c.entity, compiledEntityRule{re: re, kind: er.Kind})
		}
		for _, ar := range def.AutoliftRules {
			re, err := regexp.Compile(ar.Pattern)
			if err != nil {
				return nil, err
			}
			c.autolift = append(c.autolift, compiledAutolift{re: re, features: ar.Features, confidence: ar.Confidence})
		}
	}
	return c, nil
}

func anyGlobMatches(patterns, files []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			continue
		}
		for _, f := range files {
			if g.Match(f) {
				return true
			}
		}
	}
	return false
}

// RelabelKind returns the paradigm-specialized kind for name, or ("", false)
// if no entity rule matches. The first matching rule (in definition-name
// order) wins.
func (c *Compiled) RelabelKind(name string) (graph.EntityKind, bool) {
	for _, r := range c.entity {
		if r.re.MatchString(name) {
			return r.kind, true
		}
	}
	return "", false
}

// AutoliftHint returns the deterministic feature set and confidence tier
// for an entity name, or (nil, "", false) if no autolift rule matches.
func (c *Compiled) AutoliftHint(name string) ([]string, string, bool) {
	for _, r := range c.autolift {
		if r.re.MatchString(name) {
			return r.features, r.confidence, true
		}
	}
	return nil, "", false
}
