// Package rpgbuild orchestrates a full structural build and a git-diff
// incremental update, wiring together the repowalk/parser/grounder/graph
// packages the way the CLI's "build"/"update" commands and the MCP
// "build_rpg"/"update_rpg" tools both need, without either surface
// duplicating the sequencing.
package rpgbuild

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/rpg/internal/evolution"
	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/grounder"
	"github.com/viant/rpg/internal/lifting"
	"github.com/viant/rpg/internal/paradigm"
	"github.com/viant/rpg/internal/parser"
	"github.com/viant/rpg/internal/repowalk"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/vcsdiff"
)

const graphVersion = "0.1.0"

// Options tunes a full structural build.
type Options struct {
	// Language forces a single language instead of auto-detection.
	Language parser.Language
	// Paradigms lists paradigm names to compile against; nil compiles
	// every builtin/project paradigm whose file_globs match a walked file.
	Paradigms *paradigm.Registry
}

// Build walks repoRoot, parses every detected source file, and returns a
// fresh structural Document: V_L, the file index, a derived structural
// V_H (semantic_hierarchy=false), and resolved dependency edges. It does
// not touch storage or any prior graph; callers decide whether to refuse
// on an existing graph (the CLI's --force gate) and whether to run the
// feature-preservation merge (RebuildPreserving).
func Build(ctx context.Context, repoRoot string, opts Options) (*graph.Document, error) {
	files, err := repowalk.Walk(repoRoot)
	if err != nil {
		return nil, rpgerr.Wrap(rpgerr.KindInternal, "build", "walk repository", err)
	}
	if opts.Language != "" {
		files = filterLanguage(files, opts.Language)
	}

	var compiled *paradigm.Compiled
	if opts.Paradigms != nil {
		compiled, err = paradigm.Compile(opts.Paradigms, files)
		if err != nil {
			return nil, rpgerr.Wrap(rpgerr.KindInvalid, "build", "compile paradigm rules", err)
		}
	}

	read := parser.OSReadFile(repoRoot)
	results, err := parser.ParseAll(ctx, files, read)
	if err != nil {
		return nil, rpgerr.Wrap(rpgerr.KindInternal, "build", "parse repository", err)
	}

	doc := graph.New(graphVersion)

	var allDeps []parser.RawDeps
	var langs []string
	seenLang := map[parser.Language]bool{}

	for _, r := range results {
		if r.Err != nil {
			// Per spec §4.1 a file that fails to parse produces empty
			// entity/dep lists and is logged by the caller, never fails
			// the build.
			continue
		}
		if r.Language != "" && !seenLang[r.Language] {
			seenLang[r.Language] = true
			langs = append(langs, string(r.Language))
		}
		for i := range r.Entities {
			re := &r.Entities[i]
			if compiled != nil {
				if kind, ok := compiled.RelabelKind(re.Name); ok {
					re.Kind = kind
				}
			}
			e := &graph.Entity{
				ID:          idFor(r.File, re),
				Kind:        re.Kind,
				Name:        re.Name,
				File:        r.File,
				LineStart:   re.LineStart,
				LineEnd:     re.LineEnd,
				ParentClass: re.ParentClass,
				Signature:   re.Signature,
			}
			// Tier-1 auto-lift runs inline during extraction: it is
			// deterministic and needs no LLM round trip, so entities it
			// accepts or flags for review arrive already featured rather
			// than waiting for the next lifting batch.
			if re.Kind != graph.KindModule {
				if features, verdict := lifting.AutoLift(*re, compiled); verdict != lifting.VerdictReject {
					e.SemanticFeatures = features
					if verdict == lifting.VerdictAccept {
						e.FeatureSource = graph.SourceAuto
					} else {
						e.FeatureSource = graph.SourceAutoReview
					}
				}
			}
			doc.InsertEntity(e)
		}
		allDeps = append(allDeps, r.Deps)
	}

	doc.CreateModuleEntities()
	doc.BuildFilePathHierarchy()

	grounder.Ground(doc, allDeps, grounder.Options{})
	grounder.GroundHierarchy(doc)

	sort.Strings(langs)
	doc.Metadata.Languages = langs
	if compiled != nil {
		doc.Metadata.Paradigms = opts.Paradigms.Names()
	}
	doc.RefreshMetadata()

	if head, err := vcsdiff.HeadSHA(repoRoot); err == nil {
		doc.BaseCommit = head
	}

	return doc, nil
}

// filterLanguage keeps only files whose extension resolves to lang,
// honoring an explicit --lang override per spec §4.1 ("an explicit
// language flag overrides detection").
func filterLanguage(files []string, lang parser.Language) []string {
	kept := files[:0]
	for _, f := range files {
		if detected, ok := parser.DetectFile(f); ok && detected == lang {
			kept = append(kept, f)
		}
	}
	return kept
}

func idFor(file string, re *parser.RawEntity) string {
	switch re.Kind {
	case graph.KindModule:
		return graph.ModuleID(file, graph.Stem(file))
	case graph.KindMethod:
		return graph.MethodID(file, re.ParentClass, re.Name)
	default:
		return graph.FunctionID(file, re.Name)
	}
}

// Update runs the evolution engine against repoRoot's stored base commit
// (or an explicit override), mutating doc in place. When doc already has a
// semantic hierarchy, every newly-lifted-needing-routing entity the
// evolution engine surfaces is enqueued on queue with reason "newly
// lifted" and queue is reconciled against the post-update graph, per spec
// §4.5; queue may be nil to skip routing entirely (e.g. a purely
// structural project).
func Update(doc *graph.Document, repoRoot, baseSHA string, ignore func(string) bool, queue *lifting.Queue) (*evolution.Result, error) {
	if baseSHA == "" {
		baseSHA = doc.BaseCommit
	}
	if baseSHA == "" {
		return nil, rpgerr.New(rpgerr.KindInvalid, "update", "no base commit recorded; run build or pass --since")
	}
	res, err := evolution.Apply(doc, repoRoot, baseSHA, ignore, parser.OSReadFile(repoRoot))
	if err != nil {
		return nil, rpgerr.Wrap(rpgerr.KindInternal, "update", fmt.Sprintf("apply diff since %s", baseSHA), err)
	}

	if queue != nil {
		if doc.Metadata.SemanticHierarchy {
			for _, id := range res.NewlyLiftedIDs {
				if err := queue.Enqueue(doc, id, "", nil, "newly lifted"); err != nil {
					return nil, rpgerr.Wrap(rpgerr.KindInternal, "update", "enqueue newly-lifted entity for routing", err)
				}
			}
		}
		queue.Reconcile(doc)
	}

	return res, nil
}
