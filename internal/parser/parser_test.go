package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/parser"
)

func TestDetectFile(t *testing.T) {
	cases := []struct {
		path string
		want parser.Language
	}{
		{"src/auth.py", parser.LangPython},
		{"src/lib.rs", parser.LangRust},
		{"src/app.tsx", parser.LangTypeScript},
		{"src/index.js", parser.LangJavaScript},
		{"cmd/rpg/main.go", parser.LangGo},
		{"src/Main.java", parser.LangJava},
		{"src/main.c", parser.LangC},
		{"src/main.cpp", parser.LangCPP},
	}
	for _, c := range cases {
		lang, ok := parser.DetectFile(c.path)
		require.True(t, ok, c.path)
		assert.Equal(t, c.want, lang, c.path)
	}

	_, ok := parser.DetectFile("README.md")
	assert.False(t, ok)
}

func TestDetectAllOrdersByCountThenName(t *testing.T) {
	files := []string{"a.py", "b.py", "c.go", "README.md"}
	results := parser.DetectAll(files)
	require.Len(t, results, 2)
	assert.Equal(t, parser.LangPython, results[0].Language)
	assert.Equal(t, 2, results[0].FileCount)
	assert.Equal(t, parser.LangGo, results[1].Language)
	assert.Equal(t, 1, results[1].FileCount)
}

const pySrc = `import os
from collections import OrderedDict

class Greeter:
    def __init__(self, name):
        self.name = name

    def greet(self):
        return hello(self.name)

def hello(name):
    return "hi " + name
`

func TestParseFilePython(t *testing.T) {
	result := parser.ParseFile(parser.LangPython, "src/greet.py", []byte(pySrc))
	require.NoError(t, result.Err)
	require.NotEmpty(t, result.Entities)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	greeter, ok := byName["Greeter"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, greeter.Kind)

	greet, ok := byName["greet"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, greet.Kind)
	assert.Equal(t, "Greeter", greet.ParentClass)

	hello, ok := byName["hello"]
	require.True(t, ok)
	assert.Equal(t, graph.KindFunction, hello.Kind)
	assert.Empty(t, hello.ParentClass)

	require.Len(t, result.Deps.Imports, 2)
	assert.Equal(t, "os", result.Deps.Imports[0].Module)

	var sawHelloCall bool
	for _, c := range result.Deps.Calls {
		if c.Callee == "hello" {
			sawHelloCall = true
			assert.Equal(t, "Greeter.greet", c.Caller)
		}
	}
	assert.True(t, sawHelloCall)
}

const goSrc = `package widget

import "fmt"

type Widget struct {
	Name string
}

func (w *Widget) Describe() string {
	return format(w.Name)
}

func format(name string) string {
	return fmt.Sprintf("widget: %s", name)
}
`

func TestParseFileGo(t *testing.T) {
	result := parser.ParseFile(parser.LangGo, "widget.go", []byte(goSrc))
	require.NoError(t, result.Err)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, widget.Kind)

	describe, ok := byName["Describe"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, describe.Kind)
	assert.Equal(t, "Widget", describe.ParentClass)

	format, ok := byName["format"]
	require.True(t, ok)
	assert.Equal(t, graph.KindFunction, format.Kind)

	require.Len(t, result.Deps.Imports, 1)
	assert.Equal(t, "fmt", result.Deps.Imports[0].Module)
}

const rustSrc = `use std::fmt;

struct Point {
    x: i32,
    y: i32,
}

trait Shape {
    fn area(&self) -> i32;
}

impl Point {
    fn new(x: i32, y: i32) -> Point {
        Point { x, y }
    }

    fn magnitude(&self) -> i32 {
        scale(self.x)
    }
}

fn scale(v: i32) -> i32 {
    v * 2
}
`

func TestParseFileRust(t *testing.T) {
	result := parser.ParseFile(parser.LangRust, "point.rs", []byte(rustSrc))
	require.NoError(t, result.Err)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	point, ok := byName["Point"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, point.Kind)

	magnitude, ok := byName["magnitude"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, magnitude.Kind)
	assert.Equal(t, "Point", magnitude.ParentClass)

	shape, ok := byName["area"]
	require.True(t, ok)
	assert.Equal(t, "Shape", shape.ParentClass)
}

const tsSrc = `import { Base } from './base';

export class Widget extends Base {
    render() {
        return paint(this);
    }
}

export const helper = (x) => paint(x);

function paint(x) {
    return x;
}

export * from './reexport';
`

func TestParseFileTypeScript(t *testing.T) {
	result := parser.ParseFile(parser.LangTypeScript, "widget.ts", []byte(tsSrc))
	require.NoError(t, result.Err)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, widget.Kind)

	render, ok := byName["render"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, render.Kind)
	assert.Equal(t, "Widget", render.ParentClass)

	helper, ok := byName["helper"]
	require.True(t, ok)
	assert.Equal(t, graph.KindFunction, helper.Kind)

	require.NotEmpty(t, result.Deps.Inherits)
	assert.Equal(t, "Base", result.Deps.Inherits[0].Base)

	require.NotEmpty(t, result.Deps.Composes)
	assert.Equal(t, "./reexport", result.Deps.Composes[0].Module)
}

const reduxSrc = `export function Logout() {
    dispatch(logoutAction());
}
`

func TestParseFileJavaScriptExtractsDispatchCalls(t *testing.T) {
	result := parser.ParseFile(parser.LangJavaScript, "logout.js", []byte(reduxSrc))
	require.NoError(t, result.Err)

	require.NotEmpty(t, result.Deps.Dispatches)
	assert.Equal(t, "Logout", result.Deps.Dispatches[0].Caller)
	assert.Equal(t, "logoutAction", result.Deps.Dispatches[0].Action)
}

const javaSrc = `package widgets;

import java.util.List;

public class Widget extends Base implements Describable {
    public String describe() {
        return format(this.name);
    }
}
`

func TestParseFileJava(t *testing.T) {
	result := parser.ParseFile(parser.LangJava, "Widget.java", []byte(javaSrc))
	require.NoError(t, result.Err)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, widget.Kind)

	describe, ok := byName["describe"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, describe.Kind)
	assert.Equal(t, "Widget", describe.ParentClass)

	var bases []string
	for _, ih := range result.Deps.Inherits {
		bases = append(bases, ih.Base)
	}
	assert.Contains(t, bases, "Base")
	assert.Contains(t, bases, "Describable")
}

const cppSrc = `#include <string>

class Shape {
public:
    int area() {
        return compute(2);
    }
};

int compute(int x) {
    return x * x;
}
`

func TestParseFileCPP(t *testing.T) {
	result := parser.ParseFile(parser.LangCPP, "shape.cpp", []byte(cppSrc))
	require.NoError(t, result.Err)

	byName := map[string]parser.RawEntity{}
	for _, e := range result.Entities {
		byName[e.Name] = e
	}

	shape, ok := byName["Shape"]
	require.True(t, ok)
	assert.Equal(t, graph.KindClass, shape.Kind)

	area, ok := byName["area"]
	require.True(t, ok)
	assert.Equal(t, graph.KindMethod, area.Kind)
	assert.Equal(t, "Shape", area.ParentClass)

	compute, ok := byName["compute"]
	require.True(t, ok)
	assert.Equal(t, graph.KindFunction, compute.Kind)

	require.Len(t, result.Deps.Imports, 1)
	assert.Equal(t, "string", result.Deps.Imports[0].Module)
}

func TestParseFileUnsupportedLanguageFails(t *testing.T) {
	result := parser.ParseFile(parser.Language("cobol"), "legacy.cbl", []byte("IDENTIFICATION DIVISION."))
	require.Error(t, result.Err)
	assert.Empty(t, result.Entities)
}
