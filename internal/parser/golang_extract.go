package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// extractGo implements the Go rules from spec §4.1: function_declaration is
// a Function; method_declaration is a Method whose parent_class is the
// receiver's named type with any leading pointer "*" stripped; type_spec
// inside a type_declaration is a Class (covers struct and interface type
// definitions alike, per the spec's language-agnostic Class kind).
func extractGo(root *sitter.Node, src []byte, file string) ([]RawEntity, RawDeps) {
	w := &goWalker{src: src, file: file, deps: RawDeps{File: file}}
	w.walk(root, "<module>")
	return w.entities, w.deps
}

type goWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
}

func (w *goWalker) walk(n *sitter.Node, callerScope string) {
	switch n.Type() {
	case "function_declaration":
		w.handleFunction(n)
		return
	case "method_declaration":
		w.handleMethod(n)
		return
	case "type_declaration":
		w.handleTypeDecl(n)
	case "call_expression":
		w.handleCall(n, callerScope)
	case "import_declaration":
		w.handleImport(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), callerScope)
	}
}

func (w *goWalker) handleFunction(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)

	w.entities = append(w.entities, RawEntity{
		Name:       name,
		Kind:       graph.KindFunction,
		File:       w.file,
		LineStart:  startLine(n),
		LineEnd:    endLine(n),
		SourceText: nodeText(n, w.src),
		Signature:  "func " + name,
	})

	w.scopes = append(w.scopes, scopeRange{name: name, start: n.StartPoint().Row, end: n.EndPoint().Row})

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), name)
		}
	}
}

func (w *goWalker) handleMethod(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, w.src)

	receiver := ""
	if recv := n.ChildByFieldName("receiver"); recv != nil {
		receiver = receiverTypeName(recv, w.src)
	}

	w.entities = append(w.entities, RawEntity{
		Name:        name,
		Kind:        graph.KindMethod,
		File:        w.file,
		LineStart:   startLine(n),
		LineEnd:     endLine(n),
		ParentClass: receiver,
		SourceText:  nodeText(n, w.src),
		Signature:   "func (" + receiver + ") " + name,
	})

	scope := qualifiedName(receiver, name)
	w.scopes = append(w.scopes, scopeRange{name: scope, start: n.StartPoint().Row, end: n.EndPoint().Row})

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), scope)
		}
	}
}

// receiverTypeName pulls the receiver's named type out of a
// parameter_list, stripping a leading "*" for pointer receivers.
func receiverTypeName(params *sitter.Node, src []byte) string {
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		typeNode := p.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		text := nodeText(typeNode, src)
		return strings.TrimPrefix(text, "*")
	}
	return ""
}

func (w *goWalker) handleTypeDecl(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		w.entities = append(w.entities, RawEntity{
			Name:       nodeText(nameNode, w.src),
			Kind:       graph.KindClass,
			File:       w.file,
			LineStart:  startLine(spec),
			LineEnd:    endLine(spec),
			SourceText: nodeText(spec, w.src),
		})
	}
}

func (w *goWalker) handleCall(n *sitter.Node, callerScope string) {
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

func (w *goWalker) handleImport(n *sitter.Node) {
	var walk func(x *sitter.Node)
	walk = func(x *sitter.Node) {
		if x.Type() == "import_spec" {
			if pathNode := x.ChildByFieldName("path"); pathNode != nil {
				path := strings.Trim(nodeText(pathNode, w.src), `"`)
				w.deps.Imports = append(w.deps.Imports, Import{Module: path})
			}
			return
		}
		for i := 0; i < int(x.NamedChildCount()); i++ {
			walk(x.NamedChild(i))
		}
	}
	walk(n)
}
