// Package cognitive computes Sonar-style cognitive complexity over a
// single function's AST, with nesting-level accumulation.
package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Calculate walks node (a function-like definition) and returns its
// cognitive complexity per the accumulation rules: if/while/for add
// 1+nesting and nest their children; try/with and each except handler do
// the same; each elif clause adds a flat 1; each conditional expression
// and each comprehension for-clause add 1+nesting, and each
// boolean-operator occurrence adds 1, all without nesting their own
// children further than their enclosing construct already does.
func Calculate(node *sitter.Node) int {
	complexity := 0
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()
	visit(cursor, 0, &complexity)
	return complexity
}

func visit(cursor *sitter.TreeCursor, nesting int, complexity *int) {
	node := cursor.CurrentNode()
	nodeType := node.Type()

	childNesting := nesting
	switch nodeType {
	case "if_statement", "while_statement", "for_statement":
		*complexity += 1 + nesting
		childNesting = nesting + 1
	case "try_statement":
		*complexity += 1 + nesting
		childNesting = nesting + 1
	case "with_statement":
		*complexity += 1 + nesting
		childNesting = nesting + 1
	case "except_clause":
		*complexity += 1 + nesting
		childNesting = nesting + 1
	case "elif_clause":
		*complexity++
	case "conditional_expression":
		*complexity += 1 + nesting
	case "boolean_operator":
		*complexity++
	case "for_in_clause":
		*complexity += 1 + nesting
	}

	if cursor.GoToFirstChild() {
		for {
			visit(cursor, childNesting, complexity)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}
