package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// extractRust implements the Rust rules from spec §4.1: function_item is a
// Function unless nested in impl_item, where it becomes a Method whose
// parent_class is the implemented type (generics stripped); struct_item,
// enum_item and trait_item are Classes; trait methods, with or without a
// default body (function_signature_item), are emitted with the trait as
// parent_class. No inheritance is extracted at the raw
// layer (trait impls are composition, not inheritance).
func extractRust(root *sitter.Node, src []byte, file string) ([]RawEntity, RawDeps) {
	w := &rustWalker{src: src, file: file, deps: RawDeps{File: file}}
	w.walk(root, "", "<module>")
	return w.entities, w.deps
}

type rustWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
}

func (w *rustWalker) walk(n *sitter.Node, implType, callerScope string) {
	switch n.Type() {
	case "function_item", "function_signature_item":
		w.handleFunction(n, implType, callerScope)
		return
	case "impl_item":
		w.handleImpl(n)
		return
	case "trait_item":
		w.handleTrait(n)
		return
	case "struct_item", "enum_item":
		w.handleTypeDecl(n)
	case "call_expression":
		w.handleCall(n)
	case "use_declaration":
		w.handleUse(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), implType, callerScope)
	}
}

func (w *rustWalker) handleFunction(n *sitter.Node, implType, callerScope string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)

	kind := graph.KindFunction
	if implType != "" {
		kind = graph.KindMethod
	}

	params := n.ChildByFieldName("parameters")
	sig := "fn " + name
	if params != nil {
		sig += nodeText(params, w.src)
	}

	w.entities = append(w.entities, RawEntity{
		Name:        name,
		Kind:        kind,
		File:        w.file,
		LineStart:   startLine(n),
		LineEnd:     endLine(n),
		ParentClass: implType,
		SourceText:  nodeText(n, w.src),
		Signature:   sig,
	})

	scope := qualifiedName(implType, name)
	w.scopes = append(w.scopes, scopeRange{name: scope, start: n.StartPoint().Row, end: n.EndPoint().Row})

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), implType, scope)
		}
	}
}

func (w *rustWalker) handleImpl(n *sitter.Node) {
	typeNode := n.ChildByFieldName("type")
	implType := ""
	if typeNode != nil {
		implType = stripGenerics(nodeText(typeNode, w.src))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), implType, "<module>")
		}
	}
}

func (w *rustWalker) handleTrait(n *sitter.Node) {
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
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			// trait methods (default or signature-only) get the trait as parent_class
			w.walk(body.NamedChild(i), name, "<module>")
		}
	}
}

func (w *rustWalker) handleTypeDecl(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	w.entities = append(w.entities, RawEntity{
		Name:       nodeText(nameNode, w.src),
		Kind:       graph.KindClass,
		File:       w.file,
		LineStart:  startLine(n),
		LineEnd:    endLine(n),
		SourceText: nodeText(n, w.src),
	})
}

func (w *rustWalker) handleCall(n *sitter.Node) {
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

func (w *rustWalker) handleUse(n *sitter.Node) {
	text := strings.TrimSuffix(strings.TrimPrefix(nodeText(n, w.src), "use "), ";")
	w.deps.Imports = append(w.deps.Imports, Import{Module: strings.TrimSpace(text)})
}

func stripGenerics(typeName string) string {
	if idx := strings.IndexByte(typeName, '<'); idx >= 0 {
		return typeName[:idx]
	}
	return typeName
}
