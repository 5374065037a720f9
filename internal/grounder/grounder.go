// Package grounder turns raw parser output into resolved graph edges: it
// walks each file's RawDeps, resolves callee/imported/base-class names
// against the entities already inserted into V_L, and materializes typed
// edges plus each entity's forward/reverse dependency lists. It also
// computes the LCA-grounded directory paths for hierarchy nodes.
package grounder

import (
	"path"
	"sort"
	"strings"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/parser"
)

// Options tunes resolution policy.
type Options struct {
	// BroadcastImports allows resolution step 2 to consider any entity in
	// an imported module, not only symbols explicitly named by the import.
	BroadcastImports bool
}

// Ground resolves every file's RawDeps against doc's current V_L and
// appends the resulting edges and per-entity dependency lists. Call after
// all files for the build/update have been inserted via InsertEntity, so
// cross-file resolution has full visibility.
func Ground(doc *graph.Document, deps []parser.RawDeps, opts Options) {
	idx := buildIndex(doc)

	for _, d := range deps {
		groundFile(doc, idx, d, opts)
	}
}

// index holds lookup structures built once per Ground call: name -> IDs in
// same file, name -> IDs per declaring file (for import resolution), and a
// global bare-name -> IDs map for the final fallback tier.
type index struct {
	byFile map[string]map[string][]string // file -> name -> ids
	global map[string][]string            // name -> ids (any file)
	modules map[string]string             // normalized module path/stem -> module entity ID
}

func buildIndex(doc *graph.Document) *index {
	idx := &index{
		byFile:  map[string]map[string][]string{},
		global:  map[string][]string{},
		modules: map[string]string{},
	}
	for id, e := range doc.Entities {
		if idx.byFile[e.File] == nil {
			idx.byFile[e.File] = map[string][]string{}
		}
		idx.byFile[e.File][e.Name] = append(idx.byFile[e.File][e.Name], id)
		idx.global[e.Name] = append(idx.global[e.Name], id)

		if e.Kind == graph.KindModule {
			idx.modules[e.File] = id
			idx.modules[graph.Stem(e.File)] = id
			idx.modules[stripExt(e.File)] = id
		}
	}
	return idx
}

func stripExt(file string) string {
	if i := strings.LastIndex(file, "."); i > 0 {
		return file[:i]
	}
	return file
}

func groundFile(doc *graph.Document, idx *index, d parser.RawDeps, opts Options) {
	importedSymbols := map[string]bool{}
	importedFiles := map[string]bool{}

	for _, imp := range d.Imports {
		modFile := resolveModule(idx, imp.Module, d.File)
		if modFile != "" {
			if e, ok := doc.Entities[modFile]; ok {
				importedFiles[e.File] = true
			}
			emitEdge(doc, graph.EdgeImports, moduleSourceID(doc, d.File), modFile)
		}
		for _, sym := range imp.Symbols {
			importedSymbols[sym] = true
		}
	}

	for _, call := range d.Calls {
		callerID := resolveScope(idx, d.File, call.Caller)
		if callerID == "" {
			continue
		}
		targetID := resolveName(idx, d.File, call.Callee, importedSymbols, importedFiles, opts)
		if targetID == "" {
			continue
		}
		emitEdge(doc, graph.EdgeInvokes, callerID, targetID)
	}

	for _, inh := range d.Inherits {
		classID := resolveScope(idx, d.File, inh.Class)
		if classID == "" {
			continue
		}
		baseID := resolveName(idx, d.File, inh.Base, importedSymbols, importedFiles, opts)
		if baseID == "" {
			continue
		}
		emitEdge(doc, graph.EdgeInherits, classID, baseID)
	}

	for _, comp := range d.Composes {
		target := resolveModule(idx, comp.Module, d.File)
		if target == "" {
			continue
		}
		emitEdge(doc, graph.EdgeComposes, moduleSourceID(doc, d.File), target)
	}

	for _, r := range d.Renders {
		callerID := resolveScope(idx, d.File, r.Caller)
		if callerID == "" {
			continue
		}
		targetID := resolveName(idx, d.File, r.Component, importedSymbols, importedFiles, opts)
		if targetID == "" {
			continue
		}
		emitEdge(doc, graph.EdgeRenders, callerID, targetID)
	}

	for _, disp := range d.Dispatches {
		callerID := resolveScope(idx, d.File, disp.Caller)
		if callerID == "" {
			continue
		}
		targetID := resolveName(idx, d.File, disp.Action, importedSymbols, importedFiles, opts)
		if targetID == "" {
			continue
		}
		emitEdge(doc, graph.EdgeDispatches, callerID, targetID)
	}
}

// moduleSourceID returns the Module entity ID for file, used as the source
// of import/compose edges (per-entity invokes/inherits use the specific
// caller scope instead).
func moduleSourceID(doc *graph.Document, file string) string {
	if id, ok := doc.FileIndex[file]; ok {
		for _, entID := range id {
			if e, ok := doc.Entities[entID]; ok && e.Kind == graph.KindModule {
				return entID
			}
		}
	}
	return graph.ModuleID(file, graph.Stem(file))
}

// resolveScope maps a parser scope name ("<module>", "Name", "Class.Name")
// to the entity ID declared in file, preferring an exact (class, name)
// match over a bare name.
func resolveScope(idx *index, file, scope string) string {
	if scope == "<module>" || scope == "" {
		return moduleSourceIDFromIndex(idx, file)
	}
	names, ok := idx.byFile[file]
	if !ok {
		return ""
	}
	if dot := strings.LastIndexAny(scope, ".:"); dot >= 0 {
		short := scope[dot+1:]
		if ids, ok := names[short]; ok && len(ids) > 0 {
			return pickByParent(ids, scope)
		}
	}
	if ids, ok := names[scope]; ok && len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func moduleSourceIDFromIndex(idx *index, file string) string {
	if id, ok := idx.modules[file]; ok {
		return id
	}
	return graph.ModuleID(file, graph.Stem(file))
}

// pickByParent prefers the candidate ID whose parent-class segment matches
// the qualified scope string (e.g. "Foo.bar" prefers an ID with parent
// class "Foo"), falling back to the first candidate.
func pickByParent(ids []string, qualified string) string {
	sort.Strings(ids)
	dot := strings.LastIndexAny(qualified, ".:")
	if dot < 0 {
		return ids[0]
	}
	wantClass := strings.TrimRight(qualified[:dot], ".:")
	for _, id := range ids {
		if _, class, _, ok := graph.SplitEntityID(id); ok && class == wantClass {
			return id
		}
	}
	return ids[0]
}

// resolveName implements the three-tier name resolution policy from the
// grounder rules: same-file, then imported-module, then unique global.
func resolveName(idx *index, file, name string, importedSymbols, importedFiles map[string]bool, opts Options) string {
	if ids, ok := idx.byFile[file][name]; ok && len(ids) > 0 {
		sort.Strings(ids)
		return ids[0]
	}

	if len(importedFiles) > 0 {
		var candidates []string
		for f := range importedFiles {
			if ids, ok := idx.byFile[f][name]; ok {
				if opts.BroadcastImports || importedSymbols[name] {
					candidates = append(candidates, ids...)
				}
			}
		}
		if len(candidates) > 0 {
			sort.Strings(candidates)
			return candidates[0]
		}
	}

	if ids, ok := idx.global[name]; ok && len(ids) == 1 {
		return ids[0]
	}
	return ""
}

// resolveModule matches an import/re-export module string against the
// Module index (file paths, extension-less paths and stems), returning the
// Module entity ID or "". It tries the raw string, its path.Clean form and,
// for "./" and "../" imports, the path joined onto the importing file's
// directory, each bare and with each known source extension, then the last
// "."- or "/"-separated segment alone.
func resolveModule(idx *index, module, fromFile string) string {
	module = strings.Trim(module, `"'`)
	if module == "" {
		return ""
	}

	candidates := []string{module, path.Clean(module)}
	if strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../") {
		resolved := path.Join(path.Dir(fromFile), module)
		candidates = append(candidates, resolved)
	}
	for _, ext := range []string{"", ".py", ".ts", ".tsx", ".js", ".jsx", ".go", ".rs", ".java"} {
		for _, c := range candidates {
			if id, ok := idx.modules[c+ext]; ok {
				return id
			}
		}
	}

	lastSeg := module
	if i := strings.LastIndexAny(module, "./"); i >= 0 {
		lastSeg = module[i+1:]
	}
	if id, ok := idx.modules[lastSeg]; ok {
		return id
	}
	return ""
}

func emitEdge(doc *graph.Document, kind graph.EdgeKind, source, target string) {
	for _, e := range doc.Edges {
		if e.Kind == kind && e.Source == source && e.Target == target {
			return
		}
	}
	doc.Edges = append(doc.Edges, &graph.Edge{Kind: kind, Source: source, Target: target})

	src, srcOK := doc.Entities[source]
	tgt, tgtOK := doc.Entities[target]
	if !srcOK || !tgtOK {
		return
	}
	switch kind {
	case graph.EdgeImports:
		src.Deps.Imports = appendUniqueSorted(src.Deps.Imports, target)
		tgt.Deps.ImportedBy = appendUniqueSorted(tgt.Deps.ImportedBy, source)
	case graph.EdgeInvokes:
		src.Deps.Invokes = appendUniqueSorted(src.Deps.Invokes, target)
		tgt.Deps.InvokedBy = appendUniqueSorted(tgt.Deps.InvokedBy, source)
	case graph.EdgeInherits:
		src.Deps.Inherits = appendUniqueSorted(src.Deps.Inherits, target)
		tgt.Deps.InheritedBy = appendUniqueSorted(tgt.Deps.InheritedBy, source)
	case graph.EdgeRenders:
		src.Deps.Renders = appendUniqueSorted(src.Deps.Renders, target)
		tgt.Deps.RenderedBy = appendUniqueSorted(tgt.Deps.RenderedBy, source)
	case graph.EdgeDispatches:
		src.Deps.Dispatches = appendUniqueSorted(src.Deps.Dispatches, target)
		tgt.Deps.DispatchedBy = appendUniqueSorted(tgt.Deps.DispatchedBy, source)
	}
}

func appendUniqueSorted(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	list = append(list, v)
	sort.Strings(list)
	return list
}
