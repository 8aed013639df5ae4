// Package imports collects the textual module reference of every
// import / from-import construct in a parsed Python file, preserving
// relative-import depth. Resolution to concrete files is deferred to
// pkg/graph.
package imports

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/devtriage/pyscope/pkg/models"
)

// Extract walks root and returns one ImportRef per imported module.
func Extract(root *sitter.Node, source []byte) []models.ImportRef {
	var refs []models.ImportRef
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()
	walk(cursor, source, &refs)
	return refs
}

func walk(cursor *sitter.TreeCursor, source []byte, refs *[]models.ImportRef) {
	node := cursor.CurrentNode()

	switch node.Type() {
	case "import_statement":
		*refs = append(*refs, extractPlainImport(node, source)...)
	case "import_from_statement":
		if ref, ok := extractFromImport(node, source); ok {
			*refs = append(*refs, ref)
		}
	}

	if cursor.GoToFirstChild() {
		for {
			walk(cursor, source, refs)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}

// extractPlainImport handles `import a, b.c [as x]`, emitting one ref
// per imported module name (alias is ignored, the module text is kept).
func extractPlainImport(node *sitter.Node, source []byte) []models.ImportRef {
	var refs []models.ImportRef
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			switch child.Type() {
			case "dotted_name":
				refs = append(refs, models.ImportRef(child.Content(source)))
			case "aliased_import":
				if name := dottedNameChild(child, source); name != "" {
					refs = append(refs, models.ImportRef(name))
				}
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return refs
}

// extractFromImport handles `from m.sub import x`, `from .sibling import
// x`, `from ..pkg.mod import x`, and `from . import x`.
func extractFromImport(node *sitter.Node, source []byte) (models.ImportRef, bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	dots := 0
	module := ""

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			done := false
			switch child.Type() {
			case "import":
				// reached the `import` keyword; module clause is done
				done = true
			case ".":
				dots++
			case "relative_import":
				d, m := parseRelativeImport(child, source)
				dots += d
				module = m
			case "dotted_name":
				if module == "" {
					module = child.Content(source)
				}
			}
			if done {
				break
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}

	if dots == 0 {
		if module == "" {
			return "", false
		}
		return models.ImportRef(module), true
	}

	text := strings.Repeat(".", dots) + module
	return models.ImportRef(text), true
}

// parseRelativeImport handles the case where the grammar groups the
// leading dots and trailing dotted name under one `relative_import`
// node rather than exposing bare "." tokens as siblings.
func parseRelativeImport(node *sitter.Node, source []byte) (dots int, module string) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			switch child.Type() {
			case ".":
				dots++
			case "import_prefix":
				dots += strings.Count(child.Content(source), ".")
			case "dotted_name":
				module = child.Content(source)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return dots, module
}

func dottedNameChild(node *sitter.Node, source []byte) string {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if child.Type() == "dotted_name" {
				return child.Content(source)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return ""
}
