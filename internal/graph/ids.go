package graph

import (
	"sort"
	"strings"
)

func sortStrings(s []string) { sort.Strings(s) }

// FunctionID builds the canonical ID for a plain function F:N.
func FunctionID(file, name string) string {
	return NormalizeFile(file) + ":" + name
}

// MethodID builds the canonical ID for a method of class/type C: F:C::N.
func MethodID(file, class, name string) string {
	return NormalizeFile(file) + ":" + class + "::" + name
}

// ModuleID builds the canonical ID for a file-level synthetic Module entity:
// F:S where S is the file stem (basename without extension).
func ModuleID(file, stem string) string {
	return NormalizeFile(file) + ":" + stem
}

// NormalizeFile forward-slash-normalizes a repository-relative path.
func NormalizeFile(file string) string {
	return strings.ReplaceAll(file, "\\", "/")
}

// Stem returns the file-name stem (no directory, no extension) used to build
// Module entity IDs and the file-path hierarchy's leaf label.
func Stem(file string) string {
	f := NormalizeFile(file)
	if idx := strings.LastIndex(f, "/"); idx >= 0 {
		f = f[idx+1:]
	}
	if idx := strings.LastIndex(f, "."); idx > 0 {
		f = f[:idx]
	}
	return f
}

// SplitEntityID decomposes a non-module entity ID into file, optional class,
// and name, per the I3 well-formedness invariant (file:[class::]name).
func SplitEntityID(id string) (file, class, name string, ok bool) {
	idx := strings.Index(id, ":")
	if idx < 0 {
		return "", "", "", false
	}
	file = id[:idx]
	rest := id[idx+1:]
	if rest == "" {
		return "", "", "", false
	}
	if ci := strings.Index(rest, "::"); ci >= 0 {
		return file, rest[:ci], rest[ci+2:], true
	}
	return file, "", rest, true
}

// WellFormed reports whether id satisfies invariant I3 for non-module
// entities: it must contain a colon and match file:[class::]name.
func WellFormed(id string) bool {
	_, _, name, ok := SplitEntityID(id)
	return ok && name != ""
}
