// Package parser turns source files into raw entities and raw dependency
// records per spec §4.1: language detection, per-language concrete-syntax
// extraction, and call/import/inheritance attribution. It never touches the
// graph directly — the grounder consumes its output.
package parser

import "github.com/viant/rpg/internal/graph"

// Language identifies a supported grammar. Detection and an explicit
// override both resolve to one of these values; dispatch is a match over
// this enum rather than a registry of interface implementations, keeping
// all per-language knowledge in one place (spec §9, "Dynamic dispatch").
type Language string

const (
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
)

// extensions maps file extensions to the language that owns them.
var extensions = map[string]Language{
	".py":   LangPython,
	".rs":   LangRust,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".go":   LangGo,
	".java": LangJava,
	".c":    LangC,
	".h":    LangC,
	".cc":   LangCPP,
	".cpp":  LangCPP,
	".cxx":  LangCPP,
	".hpp":  LangCPP,
	".hh":   LangCPP,
}

// RawEntity is a parsed source construct before ID assignment or grounding.
// Line numbers are 1-indexed and inclusive.
type RawEntity struct {
	Name        string
	Kind        graph.EntityKind
	File        string
	LineStart   int
	LineEnd     int
	ParentClass string
	SourceText  string
	Signature   string
}

// Import is a flattened import record: the module/source path and the
// specific symbols imported from it, when the language distinguishes them.
type Import struct {
	Module  string
	Symbols []string
}

// CallSite attributes a call to its innermost enclosing scope. Caller is
// "<module>" for calls made outside any function/method.
type CallSite struct {
	Caller string
	Callee string
	Line   int
}

// InheritRef records a base-class/interface/trait reference for a Class
// entity.
type InheritRef struct {
	Class string
	Base  string
}

// ComposeRef records a re-export aggregation (export {X} from './Y', export
// * from './Y') that the grounder turns into a compose edge.
type ComposeRef struct {
	Module string
	Symbol string // empty for a wildcard re-export
}

// RenderRef records a JSX child-component reference found in a .jsx/.tsx
// entity's source text (e.g. <UserCard .../> inside a component's body),
// which the grounder turns into a renders edge.
type RenderRef struct {
	Caller    string
	Component string
}

// DispatchRef records a redux-paradigm `dispatch(actionCreator())` call
// found in an entity's source text, which the grounder turns into a
// dispatches edge distinct from the plain invokes edge the nested call to
// actionCreator already produces.
type DispatchRef struct {
	Caller string
	Action string
}

// RawDeps bundles everything the grounder needs to resolve one file's
// dependencies into typed edges.
type RawDeps struct {
	File       string
	Imports    []Import
	Calls      []CallSite
	Inherits   []InheritRef
	Composes   []ComposeRef
	Renders    []RenderRef
	Dispatches []DispatchRef
}

// FileResult is the per-file output of a parse: the ordered raw entities
// declared in the file plus its raw dependency record. A file that fails to
// parse yields a zero-value FileResult (empty entities/deps) rather than an
// error that would fail the whole build.
type FileResult struct {
	File     string
	Language Language
	Entities []RawEntity
	Deps     RawDeps
	Err      error
}
