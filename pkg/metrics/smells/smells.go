// Package smells flags syntactic anti-patterns in a parsed Python file:
// overlong parameter lists and integer "magic numbers" in comparisons.
package smells

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/devtriage/pyscope/pkg/models"
)

const defaultMaxPositionalParameters = 5

// Options configures the smell detector's thresholds.
type Options struct {
	MaxParameters     int
	ReportMagicNumber bool
}

// DefaultOptions returns the detector's default thresholds.
func DefaultOptions() Options {
	return Options{MaxParameters: defaultMaxPositionalParameters, ReportMagicNumber: true}
}

// Detect walks root and returns every smell found in the file.
func Detect(root *sitter.Node, source []byte, opts Options) []models.Smell {
	if opts.MaxParameters <= 0 {
		opts.MaxParameters = defaultMaxPositionalParameters
	}

	var found []models.Smell
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()
	walk(cursor, source, opts, &found)
	return found
}

func walk(cursor *sitter.TreeCursor, source []byte, opts Options, found *[]models.Smell) {
	node := cursor.CurrentNode()

	switch node.Type() {
	case "function_definition", "async_function_definition":
		if smell, ok := checkLongParameterList(node, source, opts.MaxParameters); ok {
			*found = append(*found, smell)
		}
	case "comparison_operator":
		if opts.ReportMagicNumber {
			*found = append(*found, checkMagicNumbers(node, source)...)
		}
	}

	if cursor.GoToFirstChild() {
		for {
			walk(cursor, source, opts, found)
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
}

func checkLongParameterList(def *sitter.Node, source []byte, maxParameters int) (models.Smell, bool) {
	name := "unknown"
	var params *sitter.Node

	cursor := sitter.NewTreeCursor(def)
	defer cursor.Close()
	if cursor.GoToFirstChild() {
		for {
			child := cursor.CurrentNode()
			switch child.Type() {
			case "identifier":
				if name == "unknown" {
					name = child.Content(source)
				}
			case "parameters":
				params = child
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}

	if params == nil {
		return models.Smell{}, false
	}

	count := countPositionalParameters(params)
	if count <= maxParameters {
		return models.Smell{}, false
	}

	return models.Smell{
		Kind:       models.SmellLongParameterList,
		Message:    fmt.Sprintf("Function \"%s\" has %d parameters (more than %d)", name, count, maxParameters),
		LineNumber: int(def.StartPoint().Row) + 1,
	}, true
}

func countPositionalParameters(params *sitter.Node) int {
	count := 0
	cursor := sitter.NewTreeCursor(params)
	defer cursor.Close()

	if cursor.GoToFirstChild() {
		for {
			node := cursor.CurrentNode()
			switch node.Type() {
			case "identifier", "default_parameter", "typed_default_parameter":
				count++
			case "typed_parameter":
				switch node.NamedChild(0).Type() {
				case "identifier":
					count++
				case "list_splat_pattern":
					return count
				}
			case "list_splat_pattern", "keyword_separator":
				// Parameters after *args or a bare * are keyword-only.
				return count
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return count
}

// checkMagicNumbers inspects only the right-hand comparators of a
// comparison expression; an integer literal comparator is flagged. The
// left-hand operand is never inspected (matches the reference tool).
func checkMagicNumbers(comparison *sitter.Node, source []byte) []models.Smell {
	var found []models.Smell

	cursor := sitter.NewTreeCursor(comparison)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return found
	}

	first := true
	for {
		child := cursor.CurrentNode()
		if !first && child.Type() == "integer" {
			found = append(found, models.Smell{
				Kind:       models.SmellMagicNumber,
				Message:    fmt.Sprintf("Magic number %s found in comparison", child.Content(source)),
				LineNumber: int(child.StartPoint().Row) + 1,
			})
		}
		first = false
		if !cursor.GoToNextSibling() {
			break
		}
	}
	return found
}
