package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanFootnoteReference recognizes `[^label]` at p.pos and, if label is
// defined, emits a FootnoteReference node; otherwise it leaves the text
// unconsumed (returns false) so the caller falls back to a literal `[`;
// unresolved references remain as text with a warning.
func (p *parser) scanFootnoteReference() bool {
	label, rest, ok := parseBracketLabel(p.src[p.pos:])
	if !ok || !strings.HasPrefix(label, "^") {
		return false
	}
	label = label[1:]
	norm := normalizeLabel(label)
	if _, exists := p.ctx.FootnoteDefs[norm]; !exists {
		if p.ctx.Diags != nil {
			p.ctx.Diags.Warn(diag.CodeUnresolvedFootnote, nil, "unresolved footnote reference %q", label)
		}
		return false
	}
	node := tree.New(tree.KindFootnoteReference)
	node.Label = label
	p.out = append(p.out, node)
	p.pos = len(p.src) - len(rest)
	return true
}
