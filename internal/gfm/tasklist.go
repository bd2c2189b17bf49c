package gfm

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// TransformTaskLists walks the tree and marks ListItem.Checked when the
// item's first block is a paragraph beginning with "[ ]", "[x]", or "[X]"
// followed by a space, stripping the marker from the paragraph's raw text.
func TransformTaskLists(root *tree.Node) {
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.Kind == tree.KindListItem && len(n.Children) > 0 {
			first := n.Children[0]
			if first.Kind == tree.KindParagraph {
				if checked, rest, ok := stripTaskMarker(first.Value); ok {
					n.Checked = &checked
					first.Value = rest
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

func stripTaskMarker(value string) (checked bool, rest string, ok bool) {
	for _, marker := range []string{"[ ] ", "[x] ", "[X] "} {
		if strings.HasPrefix(value, marker) {
			return marker[1] != ' ', value[len(marker):], true
		}
	}
	return false, value, false
}
