package parser

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rpg/internal/graph"
)

// jsxTagPattern matches a JSX-style opening/self-closing tag with a
// PascalCase component name. The leading group excludes generic-invocation
// contexts ("useState<Foo>", "Array<Foo>") by requiring the "<" not be
// immediately preceded by an identifier character.
var jsxTagPattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9_$])<([A-Z][A-Za-z0-9]*)[\s/>]`)

// dispatchCallPattern matches a redux-paradigm `dispatch(actionCreator(...))`
// call, capturing the action-creator name.
var dispatchCallPattern = regexp.MustCompile(`\bdispatch\(\s*([A-Za-z_$][A-Za-z0-9_$]*)`)

// extractJSTS implements the shared JavaScript/TypeScript rules from spec
// §4.1: function_declaration and arrow functions bound to a
// variable_declarator are Functions; method_definition inside a
// class_declaration/class (including TS interfaces) is a Method whose
// parent_class is the class name; class_declaration is a Class, extends and
// implements clauses become InheritRef; export_statement recurses
// transparently, and a re-export ("export { x } from './y'" or
// "export * from './y'") is recorded as a Compose (treated as a module-level
// re-export/composition link rather than an inheritance edge).
func extractJSTS(root *sitter.Node, src []byte, file string) ([]RawEntity, RawDeps) {
	w := &jstsWalker{src: src, file: file, deps: RawDeps{File: file}}
	w.walk(root, "", "<module>")
	return w.entities, w.deps
}

type jstsWalker struct {
	src      []byte
	file     string
	entities []RawEntity
	deps     RawDeps
	scopes   []scopeRange
}

func (w *jstsWalker) walk(n *sitter.Node, parentClass, callerScope string) {
	switch n.Type() {
	case "function_declaration", "function_signature":
		w.handleFunction(n, "", parentClass, callerScope)
		return
	case "method_definition", "method_signature", "abstract_method_signature":
		w.handleMethod(n, parentClass, callerScope)
		return
	case "class_declaration", "class", "interface_declaration":
		w.handleClass(n)
		return
	case "variable_declarator":
		w.handleVariableDeclarator(n, parentClass, callerScope)
	case "call_expression":
		w.handleCall(n)
	case "import_statement":
		w.handleImport(n)
	case "export_statement":
		w.handleExport(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), parentClass, callerScope)
	}
}

func (w *jstsWalker) handleFunction(n *sitter.Node, name, parentClass, callerScope string) {
	if name == "" {
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			name = nodeText(nameNode, w.src)
		}
	}
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
		Signature:   "function " + name,
	})

	scope := qualifiedName(parentClass, name)
	w.scopes = append(w.scopes, scopeRange{name: scope, start: n.StartPoint().Row, end: n.EndPoint().Row})
	w.scanReferences(scope, w.entities[len(w.entities)-1].SourceText)

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), parentClass, scope)
		}
	}
}

func (w *jstsWalker) handleMethod(n *sitter.Node, parentClass, callerScope string) {
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
	w.scanReferences(scope, w.entities[len(w.entities)-1].SourceText)

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), parentClass, scope)
		}
	}
}

func (w *jstsWalker) handleClass(n *sitter.Node) {
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

	if heritage := childByType(n, "class_heritage"); heritage != nil {
		for i := 0; i < int(heritage.NamedChildCount()); i++ {
			clause := heritage.NamedChild(i)
			switch clause.Type() {
			case "extends_clause":
				for j := 0; j < int(clause.NamedChildCount()); j++ {
					base := lastSegment(nodeText(clause.NamedChild(j), w.src))
					w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: base})
				}
			case "implements_clause":
				for j := 0; j < int(clause.NamedChildCount()); j++ {
					base := lastSegment(nodeText(clause.NamedChild(j), w.src))
					w.deps.Inherits = append(w.deps.Inherits, InheritRef{Class: name, Base: base})
				}
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			w.walk(body.NamedChild(i), name, "<module>")
		}
	}
}

// handleVariableDeclarator covers `const f = () => {...}` / `const f =
// function() {...}` forms, treating the bound name as the function name.
func (w *jstsWalker) handleVariableDeclarator(n *sitter.Node, parentClass, callerScope string) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return
	}
	switch valueNode.Type() {
	case "arrow_function", "function", "function_expression":
		w.handleFunction(valueNode, nodeText(nameNode, w.src), parentClass, callerScope)
	}
}

// scanReferences regex-scans an entity's own source text for paradigm
// reference shapes a tree-sitter grammar doesn't give us directly: a JSX
// child-component tag (restricted to .jsx/.tsx files, where a PascalCase
// "<Name" isn't a generic-type invocation) and a redux dispatch(...) call.
// A nested function's body is scanned again by its own entity, so a deeply
// nested render/dispatch is attributed to every enclosing scope as well as
// its own - an over-approximation the grounder tolerates the same way a
// duplicate edge resolution is deduped in emitEdge.
func (w *jstsWalker) scanReferences(scope, text string) {
	if strings.HasSuffix(w.file, ".jsx") || strings.HasSuffix(w.file, ".tsx") {
		for _, m := range jsxTagPattern.FindAllStringSubmatch(text, -1) {
			w.deps.Renders = append(w.deps.Renders, RenderRef{Caller: scope, Component: m[1]})
		}
	}
	for _, m := range dispatchCallPattern.FindAllStringSubmatch(text, -1) {
		w.deps.Dispatches = append(w.deps.Dispatches, DispatchRef{Caller: scope, Action: m[1]})
	}
}

func (w *jstsWalker) handleCall(n *sitter.Node) {
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

func (w *jstsWalker) handleImport(n *sitter.Node) {
	sourceNode := n.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	module := strings.Trim(nodeText(sourceNode, w.src), `"'`)

	var symbols []string
	if clause := namedChildByType(n, "import_clause"); clause != nil {
		symbols = collectImportedNames(clause, w.src)
	}
	w.deps.Imports = append(w.deps.Imports, Import{Module: module, Symbols: symbols})
}

// handleExport recurses through export_statement transparently (so an
// exported function/class is still recognized) and records re-exports
// ("export ... from './x'") as Compose links rather than walking into a
// non-existent body.
func (w *jstsWalker) handleExport(n *sitter.Node) {
	sourceNode := n.ChildByFieldName("source")
	if sourceNode != nil {
		module := strings.Trim(nodeText(sourceNode, w.src), `"'`)
		w.deps.Composes = append(w.deps.Composes, ComposeRef{Module: module})
	}
}

func collectImportedNames(clause *sitter.Node, src []byte) []string {
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "identifier":
			names = append(names, nodeText(n, src))
		case "import_specifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				names = append(names, nodeText(nameNode, src))
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(clause)
	return names
}
