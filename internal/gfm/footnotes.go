package gfm

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// AssignFootnoteNumbers walks root in document order, then the footnote
// definitions' content (in map order), recording each distinct footnote
// reference label by first use in root.Data["footnoteOrder"]. The
// renderer does not read this list; it numbers references itself in the
// order it renders them.
func AssignFootnoteNumbers(root *tree.Node) {
	order := make([]string, 0, len(root.FootnoteDefs))
	seen := make(map[string]bool, len(root.FootnoteDefs))

	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.Kind == tree.KindFootnoteReference {
			norm := normalizeLabel(n.Label)
			if !seen[norm] {
				seen[norm] = true
				order = append(order, norm)
			}
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

	root.Data = ensureData(root.Data)
	root.Data["footnoteOrder"] = order
}

func ensureData(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// normalizeLabel lowercases and collapses whitespace in a footnote label so
// lookups are case-insensitive, matching link-reference normalization
// (internal/block's and internal/inline's own normalizeLabel).
func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
