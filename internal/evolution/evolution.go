// Package evolution applies a minimal graph delta from a git diff against
// a stored base commit: classify file-level changes, re-extract only the
// affected files, and update the graph in the order that guarantees no ID
// collision (deletions, then renames, then modifications, then additions).
package evolution

import (
	"fmt"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/grounder"
	"github.com/viant/rpg/internal/parser"
	"github.com/viant/rpg/internal/vcsdiff"
)

// ReadFile resolves a repository-relative path to its source bytes. The
// caller supplies this so the engine stays filesystem-backend agnostic.
type ReadFile func(path string) ([]byte, error)

// Result summarizes one Apply call for the CLI/MCP "update" surface.
type Result struct {
	Added          []string
	Modified       []string
	Deleted        []string
	Renamed        []vcsdiff.Change
	NewlyLiftedIDs []string
	TouchedFiles   []string
}

// Apply classifies changes between repoRoot's stored base commit and HEAD,
// filters them through ignore, and mutates doc in place following the
// deletion -> rename -> modification -> addition order.
func Apply(doc *graph.Document, repoRoot, baseSHA string, ignore func(path string) bool, read ReadFile) (*Result, error) {
	changes, err := vcsdiff.Diff(repoRoot, baseSHA)
	if err != nil {
		return nil, fmt.Errorf("evolution: diff: %w", err)
	}

	var deletions, renames, modifications, additions []vcsdiff.Change
	for _, c := range changes {
		if ignore != nil && ignore(c.Path) {
			continue
		}
		switch c.Kind {
		case vcsdiff.Deleted:
			deletions = append(deletions, c)
		case vcsdiff.Renamed:
			renames = append(renames, c)
		case vcsdiff.Modified:
			modifications = append(modifications, c)
		case vcsdiff.Added:
			additions = append(additions, c)
		}
	}

	result := &Result{}

	for _, c := range deletions {
		applyDeletion(doc, c.Path)
		result.Deleted = append(result.Deleted, c.Path)
		result.TouchedFiles = append(result.TouchedFiles, c.Path)
	}

	for _, c := range renames {
		applyRename(doc, c.From, c.Path)
		result.Renamed = append(result.Renamed, c)
		result.TouchedFiles = append(result.TouchedFiles, c.From, c.Path)
	}

	var allDeps []parser.RawDeps
	for _, c := range modifications {
		newIDs, deps, err := applyModification(doc, c.Path, read)
		if err != nil {
			return nil, err
		}
		allDeps = append(allDeps, deps)
		result.Modified = append(result.Modified, c.Path)
		result.NewlyLiftedIDs = append(result.NewlyLiftedIDs, newIDs...)
		result.TouchedFiles = append(result.TouchedFiles, c.Path)
	}

	for _, c := range additions {
		deps, err := applyAddition(doc, c.Path, read)
		if err != nil {
			return nil, err
		}
		allDeps = append(allDeps, deps)
		result.Added = append(result.Added, c.Path)
		result.TouchedFiles = append(result.TouchedFiles, c.Path)
	}

	doc.CreateModuleEntities()
	grounder.Ground(doc, allDeps, grounder.Options{})
	doc.RefreshMetadata()

	head, err := vcsdiff.HeadSHA(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("evolution: resolve head: %w", err)
	}
	doc.BaseCommit = head

	return result, nil
}

func applyDeletion(doc *graph.Document, path string) {
	for _, id := range append([]string(nil), doc.FileIndex[path]...) {
		doc.RemoveEntity(id)
	}
}

func applyRename(doc *graph.Document, from, to string) {
	oldIDs := append([]string(nil), doc.FileIndex[from]...)
	newIDs := make([]string, 0, len(oldIDs))

	for _, oldID := range oldIDs {
		e, ok := doc.Entities[oldID]
		if !ok {
			continue
		}
		var newID string
		switch e.Kind {
		case graph.KindModule:
			newID = graph.ModuleID(to, graph.Stem(to))
		case graph.KindMethod:
			newID = graph.MethodID(to, e.ParentClass, e.Name)
		default:
			newID = graph.FunctionID(to, e.Name)
		}

		hadHierarchyPath := e.HierarchyPath
		doc.RemoveEntityFromHierarchy(oldID)

		delete(doc.Entities, oldID)
		e.ID = newID
		e.File = to
		doc.Entities[newID] = e
		newIDs = append(newIDs, newID)

		for _, edge := range doc.Edges {
			if edge.Source == oldID {
				edge.Source = newID
			}
			if edge.Target == oldID {
				edge.Target = newID
			}
		}

		if hadHierarchyPath != "" {
			doc.InsertIntoHierarchy(hadHierarchyPath, newID)
		}
	}

	delete(doc.FileIndex, from)
	if len(newIDs) > 0 {
		doc.FileIndex[to] = append(doc.FileIndex[to], newIDs...)
	}
}

func applyModification(doc *graph.Document, path string, read ReadFile) ([]string, parser.RawDeps, error) {
	src, err := read(path)
	if err != nil {
		return nil, parser.RawDeps{}, fmt.Errorf("evolution: read %s: %w", path, err)
	}
	lang, ok := parser.DetectFile(path)
	if !ok {
		return nil, parser.RawDeps{}, nil
	}
	fresh := parser.ParseFile(lang, path, src)

	oldIDs := map[string]bool{}
	for _, id := range doc.FileIndex[path] {
		oldIDs[id] = true
	}

	newIDs := map[string]*parser.RawEntity{}
	for i := range fresh.Entities {
		re := &fresh.Entities[i]
		id := idFor(path, re)
		newIDs[id] = re
	}

	var freshlyAdded []string
	for id := range oldIDs {
		if _, stillPresent := newIDs[id]; !stillPresent {
			doc.RemoveEntity(id)
		}
	}
	for id, re := range newIDs {
		if oldIDs[id] {
			e := doc.Entities[id]
			e.LineStart = re.LineStart
			e.LineEnd = re.LineEnd
			e.Kind = re.Kind
			e.ParentClass = re.ParentClass
			e.Signature = re.Signature
		} else {
			doc.InsertEntity(&graph.Entity{
				ID:          id,
				Kind:        re.Kind,
				Name:        re.Name,
				File:        path,
				LineStart:   re.LineStart,
				LineEnd:     re.LineEnd,
				ParentClass: re.ParentClass,
				Signature:   re.Signature,
			})
			freshlyAdded = append(freshlyAdded, id)
		}
	}

	return freshlyAdded, fresh.Deps, nil
}

func applyAddition(doc *graph.Document, path string, read ReadFile) (parser.RawDeps, error) {
	src, err := read(path)
	if err != nil {
		return parser.RawDeps{}, fmt.Errorf("evolution: read %s: %w", path, err)
	}
	lang, ok := parser.DetectFile(path)
	if !ok {
		return parser.RawDeps{}, nil
	}
	result := parser.ParseFile(lang, path, src)
	for i := range result.Entities {
		re := &result.Entities[i]
		doc.InsertEntity(&graph.Entity{
			ID:          idFor(path, re),
			Kind:        re.Kind,
			Name:        re.Name,
			File:        path,
			LineStart:   re.LineStart,
			LineEnd:     re.LineEnd,
			ParentClass: re.ParentClass,
			Signature:   re.Signature,
		})
	}
	return result.Deps, nil
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
