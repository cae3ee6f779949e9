package extractor

import (
	"strings"

	"impgraph/internal/names"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) Extensions() []string {
	return []string{".py"}
}

// ExtractImports collects the identifiers referenced by every import statement
// in the tree, including imports nested in functions and conditionals.
//
//	import a.b            -> a.b
//	from x import a, b    -> x, x.a, x.b
//	from . import a       -> <anchor>.a
//	from .mod import a    -> mod, mod.a
func (p *PythonExtractor) ExtractImports(root *sitter.Node, sourceCode []byte, filepath string) names.Set {
	imports := make(names.Set)

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			for _, nameNode := range fieldChildren(n, "name") {
				imports.Add(importedName(nameNode, sourceCode))
			}
			return
		case "future_import_statement":
			for _, nameNode := range fieldChildren(n, "name") {
				imports.Add("__future__", "__future__."+importedName(nameNode, sourceCode))
			}
			return
		case "import_from_statement":
			p.addFromImport(n, sourceCode, filepath, imports)
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)

	return imports
}

func (p *PythonExtractor) addFromImport(n *sitter.Node, sourceCode []byte, filepath string, imports names.Set) {
	module, level := "", 0
	if moduleNode := n.ChildByFieldName("module_name"); moduleNode != nil {
		if moduleNode.Type() == "relative_import" {
			for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
				child := moduleNode.NamedChild(i)
				switch child.Type() {
				case "import_prefix":
					level = strings.Count(child.Content(sourceCode), ".")
				case "dotted_name":
					module = dottedName(child, sourceCode)
				}
			}
		} else {
			module = dottedName(moduleNode, sourceCode)
		}
	}

	var imported []string
	for _, nameNode := range fieldChildren(n, "name") {
		imported = append(imported, importedName(nameNode, sourceCode))
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == "wildcard_import" {
			imported = append(imported, "*")
		}
	}

	for _, name := range imported {
		if module != "" {
			imports.Add(module, module+"."+name)
			continue
		}
		if anchor := RelativeAnchor(filepath, level); anchor != "" {
			imports.Add(anchor + "." + name)
		} else {
			imports.Add(name)
		}
	}
}

// ExtractDefinitions collects class names and the function names the policy
// accepts as standalone.
func (p *PythonExtractor) ExtractDefinitions(root *sitter.Node, sourceCode []byte, policy DefinitionPolicy) names.Set {
	defs := make(names.Set)

	var visit func(n *sitter.Node, enclosing []ScopeKind)
	visit = func(n *sitter.Node, enclosing []ScopeKind) {
		inner := enclosing
		switch n.Type() {
		case "class_definition":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				defs.Add(nameNode.Content(sourceCode))
			}
			inner = append(enclosing[:len(enclosing):len(enclosing)], ScopeClass)
		case "function_definition":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil && policy(enclosing) {
				defs.Add(nameNode.Content(sourceCode))
			}
			inner = append(enclosing[:len(enclosing):len(enclosing)], ScopeFunction)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i), inner)
		}
	}
	visit(root, nil)

	return defs
}

// fieldChildren returns every direct child stored under the given field name.
func fieldChildren(n *sitter.Node, field string) []*sitter.Node {
	var out []*sitter.Node
	cursor := sitter.NewTreeCursor(n)
	defer cursor.Close()
	if !cursor.GoToFirstChild() {
		return out
	}
	for {
		if cursor.CurrentFieldName() == field {
			out = append(out, cursor.CurrentNode())
		}
		if !cursor.GoToNextSibling() {
			break
		}
	}
	return out
}

// importedName returns the original (unaliased) name of an import clause.
func importedName(n *sitter.Node, sourceCode []byte) string {
	if n.Type() == "aliased_import" {
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			return dottedName(nameNode, sourceCode)
		}
	}
	return dottedName(n, sourceCode)
}

func dottedName(n *sitter.Node, sourceCode []byte) string {
	if n.Type() != "dotted_name" {
		return strings.TrimSpace(n.Content(sourceCode))
	}
	parts := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		parts = append(parts, n.NamedChild(i).Content(sourceCode))
	}
	return strings.Join(parts, ".")
}
