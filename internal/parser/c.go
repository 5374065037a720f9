package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// extractC implements the C/C++ rules from spec §4.1: function_definition
// is a Function, looking through nested function_declarator/
// pointer_declarator wrappers to find the declared name; struct_specifier
// and (C++ only) class_specifier are Classes; in C++, a class/struct body is
// additionally recursed so that member function_definitions become Methods
// whose parent_class is the enclosing type, and base_class_clause entries
// become InheritRef. Plain C has no inheritance at the raw layer.
func extractC(root *sitter.Node, src []byte, file string, isCPP bool) ([]RawEntity, RawDeps) {
	w := &cWalker{src: src, file: file, deps: RawDeps{File: file}, isCPP: isCPP}
	w.walk(root, "", "<module>")
	return w.entities, w.deps
}

type cWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
	isCPP    bool
}

func (w *cWalker) walk(n *sitter.Node, parentClass, callerScope string) {
	switch n.Type() {
	case "function_definition":
		w.handleFunction(n, parentClass, callerScope)
		return
	case "struct_specifier":
		w.handleType(n, graph.KindClass)
		if w.isCPP {
			return
		}
	case "class_specifier":
		if w.isCPP {
			w.handleType(n, graph.KindClass)
			return
		}
	case "call_expression":
		w.handleCall(n)
	case "preproc_include":
		w.handleInclude(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), parentClass, callerScope)
	}
}

func (w *cWalker) handleFunction(n *sitter.Node, parentClass, callerScope string) {
	declarator := n.ChildByFieldName("declarator")
	name := declaredName(declarator, w.src)
	if name == "" {
		return
	}

	kind := graph.KindFunction
	if parentClass != "" {
		kind = graph.KindMethod
	}

	w.entities = append(w.entities, RawEntity{
		Name:        name,
		Kind:        kind,
		File:        w.file,
		LineStart:   startLine(n),
		LineEnd:     endLine(n),
		ParentClass: parentClass,
		SourceText:  nodeText(n, w.src),
		Signature:   name,
	})

	scope := qualifiedName(parentClass, name)
	w.scopes = append(w.scopes, scopeRange{name: scope, start: n.StartPoint().Row, end: n.EndPoint().Row})

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), parentClass, scope)
		}
	}
}

// declaredName walks through pointer_declarator/function_declarator
// wrappers to find the innermost identifier naming the declaration.
func declaredName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier":
			return nodeText(n, src)
		case "pointer_declarator", "function_declarator", "parenthesized_declarator":
			if decl := n.ChildByFieldName("declarator"); decl != nil {
				n = decl
				continue
			}
		}
		return ""
	}
	return ""
}

func (w *cWalker) handleType(n *sitter.Node, kind graph.EntityKind) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)
	w.entities = append(w.entities, RawEntity{
		Name:       name,
		Kind:       kind,
		File:       w.file,
		LineStart:  startLine(n),
		LineEnd:    endLine(n),
		SourceText: nodeText(n, w.src),
	})

	if w.isCPP {
		if base := childByType(n, "base_class_clause"); base != nil {
			for i := 0; i < int(base.NamedChildCount()); i++ {
				baseName := lastSegment(nodeText(base.NamedChild(i), w.src))
				w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: baseName})
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				w.walk(body.NamedChild(i), name, "<module>")
			}
		}
	}
}

func (w *cWalker) handleCall(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	callee := lastSegment(nodeText(fn, w.src))
	w.deps.Calls = append(w.deps.Calls, CallSite{
		Caller: innermostScope(w.scopes, n.StartPoint().Row),
		Callee: callee,
		Line:   startLine(n),
	})
}

func (w *cWalker) handleInclude(n *sitter.Node) {
	text := nodeText(n, w.src)
	text = strings.TrimPrefix(text, "#include")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"<>`)
	w.deps.Imports = append(w.deps.Imports, Import{Module: text})
}
