package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanCodeSpan matches an opening backtick run to the next run of
// identical length; content whitespace is trimmed per CommonMark's rule
// (a single leading/trailing space is stripped when both sides have
// content). If no matching closing run exists, the backticks are emitted
// as literal text.
func (p *parser) scanCodeSpan() {
	start := p.pos
	n := 0
	for p.pos < len(p.src) && p.src[p.pos] == '`' {
		n++
		p.pos++
	}
	contentStart := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '`' {
			closeStart := p.pos
			m := 0
			for p.pos < len(p.src) && p.src[p.pos] == '`' {
				m++
				p.pos++
			}
			if m == n {
				content := p.src[contentStart:closeStart]
				content = strings.ReplaceAll(content, "\n", " ")
				if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.TrimSpace(content) != "" {
					content = content[1 : len(content)-1]
				}
				node := tree.New(tree.KindInlineCode)
				node.Value = content
				p.out = append(p.out, node)
				return
			}
			continue
		}
		p.pos++
	}
	// No matching close: treat the opening run as literal text.
	p.pos = start
	p.appendText(p.src[start:contentStart])
	p.pos = contentStart
}
