package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// extractJava implements the Java rules from spec §4.1: class_declaration,
// interface_declaration and enum_declaration are Classes; extends/implements
// clauses become InheritRef; method_declaration and constructor_declaration
// inside a class body are Methods whose parent_class is the enclosing type;
// nested types propagate their own name as parent_class for their members.
// No (outer, nested) relation between types is recorded.
func extractJava(root *sitter.Node, src []byte, file string) ([]RawEntity, RawDeps) {
	w := &javaWalker{src: src, file: file, deps: RawDeps{File: file}}
	w.walk(root, "", "<module>")
	return w.entities, w.deps
}

type javaWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
}

func (w *javaWalker) walk(n *sitter.Node, parentClass, callerScope string) {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration":
		w.handleType(n)
		return
	case "method_declaration", "constructor_declaration":
		w.handleMethod(n, parentClass, callerScope)
		return
	case "method_invocation":
		w.handleCall(n)
	case "import_declaration":
		w.handleImport(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), parentClass, callerScope)
	}
}

func (w *javaWalker) handleType(n *sitter.Node) {
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

	if super := n.ChildByFieldName("superclass"); super != nil && super.NamedChildCount() > 0 {
		base := lastSegment(nodeText(super.NamedChild(0), w.src))
		w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: base})
	}
	if impl := n.ChildByFieldName("interfaces"); impl != nil {
		for i := 0; i < int(impl.NamedChildCount()); i++ {
			list := impl.NamedChild(i)
			if list.Type() != "type_list" {
				w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: lastSegment(nodeText(list, w.src))})
				continue
			}
			for j := 0; j < int(list.NamedChildCount()); j++ {
				base := lastSegment(nodeText(list.NamedChild(j), w.src))
				w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: base})
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), name, "<module>")
		}
	}
}

func (w *javaWalker) handleMethod(n *sitter.Node, parentClass, callerScope string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)

	w.entities = append(w.entities, RawEntity{
		Name:        name,
		Kind:        graph.KindMethod,
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

func (w *javaWalker) handleCall(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	w.deps.Calls = append(w.deps.Calls, CallSite{
		Caller: innermostScope(w.scopes, n.StartPoint().Row),
		Callee: nodeText(nameNode, w.src),
		Line:   startLine(n),
	})
}

func (w *javaWalker) handleImport(n *sitter.Node) {
	text := nodeText(n, w.src)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "import "), ";")
	text = strings.TrimSpace(strings.TrimPrefix(text, "static "))
	w.deps.Imports = append(w.deps.Imports, Import{Module: text})
}
