// Package cyclomatic computes McCabe cyclomatic complexity and enumerates
// function-like definitions from a parsed Python AST.
package cyclomatic

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Definition is one function, async function, or method definition node
// discovered in the AST, paired with the name/line extraction needed by
// the rest of the pipeline.
type Definition struct {
	Node *sitter.Node
	Name string
	Line int
}

// FindDefinitions walks root and returns every function-like definition,
// in the order they are encountered. Definitions nested inside another
// function are returned alongside it as separate entries; their own
// complexity is computed independently (never summed into the parent).
func FindDefinitions(root *sitter.Node, source []byte) []Definition {
	var defs []Definition
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()
	walkDefinitions(cursor, source, &defs)
	return defs
}

func walkDefinitions(cursor *sitter.TreeCursor, source []byte, defs *[]Definition) {
	node := cursor.CurrentNode()
	switch node.Type() {
	case "function_definition", "async_function_definition":
		// A decorated definition is recorded through its decorated_definition
		// wrapper; skip it here so it is not listed twice.
		if parent := node.Parent(); parent == nil || parent.Type() != "decorated_definition" {
			*defs = append(*defs, newDefinition(node, source))
		}
	case "decorated_definition":
		if inner := innerDefinition(node); inner != nil {
			*defs = append(*defs, newDefinition(inner, source))
		}
	}

	if cursor.GoToFirstChild() {
		for {
			walkDefinitions(cursor, source, defs)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}

// innerDefinition finds the function_definition/async_function_definition
// wrapped by a decorated_definition node.
func innerDefinition(decorated *sitter.Node) *sitter.Node {
	cursor := sitter.NewTreeCursor(decorated)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			switch child.Type() {
			case "function_definition", "async_function_definition":
				return child
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return nil
}

func newDefinition(node *sitter.Node, source []byte) Definition {
	return Definition{
		Node: node,
		Name: functionName(node, source),
		Line: int(node.StartPoint().Row) + 1,
	}
}

func functionName(node *sitter.Node, source []byte) string {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if child.Type() == "identifier" {
				return child.Content(source)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return "unknown"
}

// Calculate computes McCabe cyclomatic complexity for one function-like
// node: start at 1, add 1 for each branch/loop/handler/boolean operator/
// conditional expression/comprehension if-filter. Nested definitions are
// skipped — their own Calculate call accounts for them separately.
func Calculate(node *sitter.Node) int {
	complexity := 1
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()
	countNodes(cursor, node, &complexity)
	return complexity
}

func countNodes(cursor *sitter.TreeCursor, root *sitter.Node, complexity *int) {
	node := cursor.CurrentNode()
	if node != root {
		switch node.Type() {
		case "function_definition", "async_function_definition":
			// Nested function: its complexity is reported separately.
			return
		}
	}

	switch node.Type() {
	case "if_statement", "elif_clause", "for_statement", "while_statement",
		"except_clause", "with_item", "boolean_operator",
		"conditional_expression":
		*complexity++
	case "list_comprehension", "dictionary_comprehension",
		"set_comprehension", "generator_expression":
		*complexity += countIfClauses(node)
	}

	if cursor.GoToFirstChild() {
		for {
			countNodes(cursor, root, complexity)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}

func countIfClauses(node *sitter.Node) int {
	count := 0
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			if cursor.CurrentNode().Type() == "if_clause" {
				count++
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return count
}
