package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// tryOpenFootnoteDefinition recognizes a GFM block-level footnote
// definition `[^label]: content`, opening a container whose continuation
// lines (indented at least to the definition's content column, just past
// `]: `, like a list item's content column) become further block content.
func (s *scanner) tryOpenFootnoteDefinition(text string, pos int) (bool, int) {
	if !s.opts.GFM {
		return false, pos
	}
	rest := text[pos:]
	if !strings.HasPrefix(rest, "[^") {
		return false, pos
	}
	label, after, ok := parseBracketLabel(rest)
	if !ok || !strings.HasPrefix(label, "^") {
		return false, pos
	}
	label = label[1:]
	if !strings.HasPrefix(after, ":") {
		return false, pos
	}
	after = after[1:]
	spaces := leadingSpaces(after)
	contentCol := pos + len(rest) - len(after) + spaces
	if spaces == 0 {
		contentCol = pos + len(rest) - len(after)
	}

	def := tree.New(tree.KindFootnoteDefinition)
	def.Label = label
	norm := normalizeLabel(label)
	if _, exists := s.root.FootnoteDefs[norm]; exists {
		s.diags.Warn(diag.CodeDuplicateLabel, nil, "duplicate footnote definition %q", label)
	} else {
		s.root.FootnoteDefs[norm] = &tree.FootnoteDef{Label: label}
	}
	s.currentContainer().Append(def)
	s.stack = append(s.stack, container{kind: cListItem, node: def, contentCol: contentCol + 1})
	return true, contentCol
}
