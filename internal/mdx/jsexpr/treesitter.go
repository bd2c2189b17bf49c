package jsexpr

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// TreeSitterParser backs the JsExprParser capability with tree-sitter's
// incremental, error-tolerant JavaScript grammar instead of hand-rolled
// brace counting. Callers opt into it through Options.JSExprParser (a nil
// parser selects BalancedParser); it is the more precise choice because MDX source
// embeds arbitrary JS/JSX, and tree-sitter's grammar already handles
// template literals, regex literals, and ASI correctly where BalancedParser
// only approximates them.
//
// The core never asks tree-sitter to evaluate anything; only node byte
// ranges are read.
type TreeSitterParser struct {
	parser *sitter.Parser
}

// NewTreeSitterParser constructs a parser bound to the JavaScript grammar.
func NewTreeSitterParser() *TreeSitterParser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &TreeSitterParser{parser: p}
}

// ParseStatement parses src and returns the end byte of the top-level
// statement node whose start byte is offset.
func (t *TreeSitterParser) ParseStatement(src []byte, offset int) (int, error) {
	tree, err := t.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return 0, fmt.Errorf("jsexpr: tree-sitter parse failed: %w", err)
	}
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if int(child.StartByte()) == offset {
			if child.HasError() {
				return 0, ErrUnbalanced
			}
			return int(child.EndByte()), nil
		}
	}
	return 0, ErrUnbalanced
}

// ParseExpression parses the `{...}` span at offset as a standalone
// program (tree-sitter is robust to the surrounding Markdown context it
// doesn't understand) and returns the end byte of the outermost object/
// parenthesized expression matching the opening brace.
func (t *TreeSitterParser) ParseExpression(src []byte, offset int) (int, error) {
	if offset >= len(src) || src[offset] != '{' {
		return 0, ErrUnbalanced
	}
	tree, err := t.parser.ParseCtx(context.Background(), nil, src[offset:])
	if err != nil {
		return 0, fmt.Errorf("jsexpr: tree-sitter parse failed: %w", err)
	}
	root := tree.RootNode()
	if root.ChildCount() == 0 {
		return 0, ErrUnbalanced
	}
	first := root.Child(0)
	if first.HasError() {
		return 0, ErrUnbalanced
	}
	return offset + int(first.EndByte()), nil
}

// Close releases the underlying tree-sitter parser resources.
func (t *TreeSitterParser) Close() {
	t.parser.Close()
}
