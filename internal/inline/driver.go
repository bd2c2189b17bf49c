package inline

import (
	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// ApplyTree runs the inline pass over every inline-bearing block in root
// (paragraphs, headings, table cells, footnote definition content, and MDX
// JSX element children), replacing each node's raw Value with resolved
// Children.
func ApplyTree(root *tree.Node, opts Options, diags *diag.Bag) {
	ctx := &Context{Definitions: root.Definitions, FootnoteDefs: root.FootnoteDefs, Opts: opts, Diags: diags}

	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		switch n.Kind {
		case tree.KindParagraph, tree.KindHeading, tree.KindTableCell:
			if n.Value != "" || len(n.Children) == 0 {
				n.Children = Parse(n.Value, ctx)
				n.Value = ""
			}
			return
		case tree.KindMdxJsxElement:
			var resolved []*tree.Node
			for _, c := range n.Children {
				if c.Kind == tree.KindText && c.Value != "" {
					resolved = append(resolved, Parse(c.Value, ctx)...)
					continue
				}
				resolved = append(resolved, c)
			}
			n.Children = resolved
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	for _, def := range root.FootnoteDefs {
		for _, c := range def.Content {
			walk(c)
		}
	}
}
