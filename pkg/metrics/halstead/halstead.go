// Package halstead computes Halstead software-science metrics over a
// whole parsed file by classifying every AST node as an operator or an
// operand.
package halstead

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/devtriage/pyscope/pkg/models"
)

// operatorTokenKinds maps the literal operator token text (as it appears
// as a child node's own type) to the canonical operator-kind name used
// by the reference implementation's AST-based classifier.
var operatorTokenKinds = map[string]string{
	"+": "Add", "-": "Sub", "*": "Mult", "/": "Div", "%": "Mod",
	"**": "Pow", "//": "FloorDiv",
	"|": "BitOr", "^": "BitXor", "&": "BitAnd",
	"<<": "LShift", ">>": "RShift",
	"and": "And", "or": "Or", "not": "Not",
	"==": "Eq", "!=": "NotEq", "<": "Lt", "<=": "LtE", ">": "Gt", ">=": "GtE",
	"is": "Is", "is not": "IsNot", "in": "In", "not in": "NotIn",
}

var unaryTokenKinds = map[string]string{
	"-": "USub", "+": "UAdd", "~": "Invert",
}

// Calculate walks the whole-file AST and derives the Halstead suite.
func Calculate(root *sitter.Node, source []byte) models.HalsteadReport {
	operators := make(map[string]bool)
	operands := make(map[string]bool)
	n1, n2 := 0, 0
	skip := make(map[uint32]bool)

	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()
	walk(cursor, source, operators, operands, &n1, &n2, skip)

	h1, h2 := len(operators), len(operands)
	vocabulary := h1 + h2
	length := n1 + n2

	report := models.HalsteadReport{H1: h1, H2: h2, N1: n1, N2: n2, Vocabulary: vocabulary, Length: length}
	if vocabulary <= 0 || length <= 0 {
		return report
	}

	volume := float64(length) * math.Log2(float64(vocabulary))
	difficulty := 0.0
	if h2 > 0 {
		difficulty = (float64(h1) / 2.0) * (float64(n2) / float64(h2))
	}
	effort := difficulty * volume

	report.Volume = round2(volume)
	report.Difficulty = round2(difficulty)
	report.Effort = round2(effort)
	report.Time = round2(effort / 18.0)
	report.Bugs = round4(volume / 3000.0)
	return report
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func walk(cursor *sitter.TreeCursor, source []byte, operators, operands map[string]bool, n1, n2 *int, skip map[uint32]bool) {
	node := cursor.CurrentNode()
	nodeType := node.Type()

	switch nodeType {
	case "function_definition", "async_function_definition", "class_definition":
		addOperator(operators, n1, definitionKind(nodeType))
		markNameDeclaration(node, skip)
	case "if_statement", "while_statement", "for_statement":
		addOperator(operators, n1, statementKind(nodeType))
	case "return_statement":
		addOperator(operators, n1, "Return")
	case "yield":
		addOperator(operators, n1, "Yield")
	case "binary_operator":
		if kind, ok := operatorToken(node, source, operatorTokenKinds); ok {
			addOperator(operators, n1, kind)
		}
	case "boolean_operator":
		if kind, ok := operatorToken(node, source, operatorTokenKinds); ok {
			addOperator(operators, n1, kind)
		}
	case "not_operator":
		addOperator(operators, n1, "Not")
	case "unary_operator":
		if kind, ok := operatorToken(node, source, unaryTokenKinds); ok {
			addOperator(operators, n1, kind)
		}
	case "comparison_operator":
		for _, kind := range comparisonTokens(node, source) {
			addOperator(operators, n1, kind)
		}
	case "parameters":
		markParameterDeclarations(node, skip)
	case "keyword_argument":
		markKeywordArgumentName(node, skip)
	case "attribute":
		if name, ok := attributeName(node, source, skip); ok {
			addOperand(operands, n2, name)
		}
	case "identifier":
		if !skip[node.StartByte()] {
			addOperand(operands, n2, node.Content(source))
		}
	case "integer", "float", "string", "true", "false", "none":
		addOperand(operands, n2, node.Content(source))
	}

	if cursor.GoToFirstChild() {
		for {
			walk(cursor, source, operators, operands, n1, n2, skip)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}

func addOperator(set map[string]bool, n1 *int, kind string) {
	set[kind] = true
	*n1++
}

func addOperand(set map[string]bool, n2 *int, token string) {
	set[token] = true
	*n2++
}

func definitionKind(nodeType string) string {
	switch nodeType {
	case "function_definition":
		return "FunctionDef"
	case "async_function_definition":
		return "AsyncFunctionDef"
	case "class_definition":
		return "ClassDef"
	}
	return nodeType
}

func statementKind(nodeType string) string {
	switch nodeType {
	case "if_statement":
		return "If"
	case "while_statement":
		return "While"
	case "for_statement":
		return "For"
	}
	return nodeType
}

// operatorToken finds the single operator token among node's direct
// children and maps it through table.
func operatorToken(node *sitter.Node, source []byte, table map[string]string) (string, bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if kind, ok := table[child.Content(source)]; ok {
				return kind, true
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return "", false
}

// comparisonTokens returns one operator-kind name per comparison token in
// a (possibly chained) comparison_operator node.
func comparisonTokens(node *sitter.Node, source []byte) []string {
	var kinds []string
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if kind, ok := operatorTokenKinds[child.Content(source)]; ok {
				kinds = append(kinds, kind)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return kinds
}

// attributeName returns the attribute-name operand token for an
// `object.attribute` expression, marking the attribute identifier so the
// generic identifier case does not also count it as a Name operand.
func attributeName(node *sitter.Node, source []byte, skip map[uint32]bool) (string, bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	var last *sitter.Node
	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if child.Type() == "identifier" {
				last = child
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	if last == nil {
		return "", false
	}
	skip[last.StartByte()] = true
	return last.Content(source), true
}

// markNameDeclaration marks a function/class definition's own name
// identifier as a declaration, not a Name operand (mirroring that a
// Python def/class name is a plain string attribute, never an ast.Name).
func markNameDeclaration(node *sitter.Node, skip map[uint32]bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if child.Type() == "identifier" {
				skip[child.StartByte()] = true
				return
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
}

// markParameterDeclarations marks every parameter-name identifier within
// a parameters node as a declaration, not a Name operand.
func markParameterDeclarations(node *sitter.Node, skip map[uint32]bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			switch child.Type() {
			case "identifier":
				skip[child.StartByte()] = true
			case "typed_parameter", "default_parameter", "typed_default_parameter",
				"list_splat_pattern", "dictionary_splat_pattern":
				markFirstIdentifier(child, skip)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
}

func markFirstIdentifier(node *sitter.Node, skip map[uint32]bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			if child.Type() == "identifier" {
				skip[child.StartByte()] = true
				return
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
}

// markKeywordArgumentName marks a call's `name=value` keyword name as a
// declaration, not a Name operand (mirroring Python ast.keyword.arg being
// a plain string, not an ast.Name node).
func markKeywordArgumentName(node *sitter.Node, skip map[uint32]bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		child := cursor.CurrentNode()
		if child.Type() == "identifier" {
			skip[child.StartByte()] = true
		}
	}
}
