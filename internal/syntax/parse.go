package syntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// parseClean runs a strict parse of the source with the Python grammar
// and reports whether the resulting tree is free of error nodes. A
// clean parse is authoritative: heuristic scanning is skipped entirely.
func parseClean(src []byte) (bool, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return false, fmt.Errorf("syntax: load python grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return false, fmt.Errorf("syntax: parser produced no tree")
	}
	defer tree.Close()

	return !tree.RootNode().HasError(), nil
}
