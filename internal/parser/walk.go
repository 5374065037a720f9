package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nodeText returns the verbatim source text spanned by n.
func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return string(src[n.StartByte():n.EndByte()])
}

// startLine/endLine convert tree-sitter's 0-indexed point rows to the
// spec's 1-indexed inclusive line numbers.
func startLine(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }
func endLine(n *sitter.Node) int   { return int(n.EndPoint().Row) + 1 }

// scopeRange is a pre-collected function/method scope used to attribute a
// call site to its innermost enclosing scope by smallest containing span.
type scopeRange struct {
	name  string
	start uint32
	end   uint32
}

// innermostScope returns the name of the scope with the smallest span that
// contains row, or "<module>" if none does.
func innermostScope(scopes []scopeRange, row uint32) string {
	best := "<module>"
	bestSpan := ^uint32(0)
	for _, s := range scopes {
		if row < s.start || row > s.end {
			continue
		}
		span := s.end - s.start
		if span < bestSpan {
			bestSpan = span
			best = s.name
		}
	}
	return best
}

// lastSegment returns the final identifier segment of a dotted/scoped call
// target: a.b.c -> c, Foo::bar -> bar.
func lastSegment(name string) string {
	sep := -1
	for i := len(name) - 1; i >= 0; i-- {
		c := name[i]
		if c == '.' || c == ':' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return name
	}
	return name[sep+1:]
}

// childByType returns the first direct child of n whose type matches want.
func childByType(n *sitter.Node, want string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() == want {
			return ch
		}
	}
	return nil
}

// namedChildByType returns the first named child of n whose type matches
// want.
func namedChildByType(n *sitter.Node, want string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() == want {
			return ch
		}
	}
	return nil
}
