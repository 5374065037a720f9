package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	tsTypescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammar returns the tree-sitter grammar for lang.
func grammar(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangTypeScript:
		return tsTypescript.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangC:
		return c.GetLanguage(), nil
	case LangCPP:
		return cpp.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("parser: unknown language %q", lang)
	}
}

// ParseFile parses src (the contents of file, for language lang) and
// returns its raw entities and raw dependency record. A parse failure
// yields a zero-value result plus the error; callers log and continue
// rather than failing the whole build (spec §4.1 "Failures").
func ParseFile(lang Language, file string, src []byte) FileResult {
	result := FileResult{File: file, Language: lang}

	lg, err := grammar(lang)
	if err != nil {
		result.Err = err
		return result
	}

	p := sitter.NewParser()
	p.SetLanguage(lg)
	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil {
		result.Err = fmt.Errorf("parser: failed to parse %s: %w", file, err)
		return result
	}
	root := tree.RootNode()

	switch lang {
	case LangPython:
		result.Entities, result.Deps = extractPython(root, src, file)
	case LangRust:
		result.Entities, result.Deps = extractRust(root, src, file)
	case LangTypeScript, LangJavaScript:
		result.Entities, result.Deps = extractJSTS(root, src, file)
	case LangGo:
		result.Entities, result.Deps = extractGo(root, src, file)
	case LangJava:
		result.Entities, result.Deps = extractJava(root, src, file)
	case LangC, LangCPP:
		result.Entities, result.Deps = extractC(root, src, file, lang == LangCPP)
	}
	return result
}
