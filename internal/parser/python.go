package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// extractPython implements the Python rules from spec §4.1: function_definition
// at module scope is a Function; inside class_definition it is a Method whose
// parent_class is the class name; nested functions inherit the enclosing
// class as their parent_class.
func extractPython(root *sitter.Node, src []byte, file string) ([]RawEntity, RawDeps) {
	w := &pyWalker{src: src, file: file, deps: RawDeps{File: file}}
	w.walk(root, "", "<module>")
	return w.entities, w.deps
}

type pyWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
}

func (w *pyWalker) walk(n *sitter.Node, parentClass, callerScope string) {
	switch n.Type() {
	case "function_definition":
		w.handleFunction(n, parentClass, callerScope)
		return
	case "class_definition":
		w.handleClass(n)
		return
	case "call":
		w.handleCall(n, callerScope)
	case "import_statement":
		w.handleImport(n)
	case "import_from_statement":
		w.handleImportFrom(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), parentClass, callerScope)
	}
}

func (w *pyWalker) handleFunction(n *sitter.Node, parentClass, callerScope string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)

	kind := graph.KindFunction
	if parentClass != "" {
		kind = graph.KindMethod
	}

	params := n.ChildByFieldName("parameters")
	sig := "def " + name
	if params != nil {
		sig += nodeText(params, w.src)
	}

	w.entities = append(w.entities, RawEntity{
		Name:        name,
		Kind:        kind,
		File:        w.file,
		LineStart:   startLine(n),
		LineEnd:     endLine(n),
		ParentClass: parentClass,
		SourceText:  nodeText(n, w.src),
		Signature:   sig,
	})

	w.scopes = append(w.scopes, scopeRange{name: qualifiedName(parentClass, name), start: n.StartPoint().Row, end: n.EndPoint().Row})

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			// nested functions still count as methods of the enclosing class
			w.walk(body.NamedChild(i), parentClass, qualifiedName(parentClass, name))
		}
	}
}

func (w *pyWalker) handleClass(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)
	w.entities = append(w.entities, RawEntity{
		Name:       name,
		Kind:       graph.KindClass,
		File:       w.file,
		LineStart:  startLine(n),
		LineEnd:    endLine(n),
		SourceText: nodeText(n, w.src),
	})

	if args := n.ChildByFieldName("superclasses"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			base := nodeText(args.NamedChild(i), w.src)
			w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: base})
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), name, "<module>")
		}
	}
}

func (w *pyWalker) handleCall(n *sitter.Node, callerScope string) {
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
	_ = callerScope
}

func (w *pyWalker) handleImport(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "dotted_name" || child.Type() == "aliased_import" {
			w.deps.Imports = append(w.deps.Imports, Import{Module: nodeText(child, w.src)})
		}
	}
}

func (w *pyWalker) handleImportFrom(n *sitter.Node) {
	moduleNode := n.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}
	module := nodeText(moduleNode, w.src)
	var symbols []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "dotted_name" && child != moduleNode {
			symbols = append(symbols, nodeText(child, w.src))
		}
		if child.Type() == "wildcard_import" {
			symbols = nil
		}
	}
	w.deps.Imports = append(w.deps.Imports, Import{Module: module, Symbols: symbols})
}

func qualifiedName(parentClass, name string) string {
	if parentClass == "" {
		return name
	}
	return parentClass + "." + name
}
