// Package pyast wraps tree-sitter's Python grammar as the engine's
// opaque AST collaborator: it turns a file path into source bytes
// (ReadSource) and source bytes into a parsed tree (Parse).
package pyast

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var language = python.GetLanguage()

// ReadSource decodes a file path into its raw bytes. I/O and decoding
// failures are returned to the caller rather than panicking, so that a
// single unreadable file never aborts a project-wide walk.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}

// Tree wraps a parsed tree-sitter tree together with the source bytes
// that produced it, since every node lookup needs both.
type Tree struct {
	Root   *sitter.Node
	Source []byte

	tree *sitter.Tree
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Parse produces one AST from Python source text. A syntax error is
// reported as a recoverable error, not a panic; the caller decides how
// to degrade (spec: emit a SyntaxError smell and otherwise-empty report).
func Parse(source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(language)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, fmt.Errorf("parse python source: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("parse python source: syntax error")
	}

	return &Tree{Root: root, Source: source, tree: tree}, nil
}

// NewCursor is a thin convenience wrapper so callers outside this
// package never need to import go-tree-sitter directly.
func NewCursor(node *sitter.Node) *sitter.TreeCursor {
	return sitter.NewTreeCursor(node)
}
