package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// openBracket pushes a `[` or `![` opener marker. GFM footnote references
// `[^label]` are recognized here too since they share the same bracket
// syntax; they're resolved eagerly rather than deferred like links, since
// they never nest with emphasis resolution.
func (p *parser) openBracket(isImage bool) {
	if p.ctx.Opts.GFM && !isImage && strings.HasPrefix(p.src[p.pos:], "[^") {
		if p.scanFootnoteReference() {
			return
		}
	}
	marker := tree.New(tree.KindText)
	if isImage {
		marker.Value = "!["
		p.pos += 2
	} else {
		marker.Value = "["
		p.pos++
	}
	p.out = append(p.out, marker)
	p.brackets = append(p.brackets, &bracketMark{index: len(p.out) - 1, isImage: isImage, active: true, textStart: len(p.out)})
}

// closeBracket implements link/image resolution: on `]`,
// look back for a matching opener and try inline form, then full
// reference, collapsed, then shortcut, using the bracketed text itself as
// the label for the reference forms.
func (p *parser) closeBracket() {
	if len(p.brackets) == 0 {
		p.appendText("]")
		p.pos++
		return
	}
	mark := p.brackets[len(p.brackets)-1]
	p.brackets = p.brackets[:len(p.brackets)-1]
	if !mark.active {
		p.appendText("]")
		p.pos++
		return
	}

	labelNodes := append([]*tree.Node(nil), p.out[mark.textStart:]...)
	labelText := tree.Text(&tree.Node{Children: labelNodes})
	closePos := p.pos
	p.pos++ // consume ']'

	url, title, refKind, newPos, matched := p.tryLinkTail(p.pos, labelText)
	if !matched {
		p.pos = closePos + 1
		p.appendText("]")
		return
	}
	p.pos = newPos

	var node *tree.Node
	if mark.isImage {
		node = tree.New(tree.KindImage)
		node.Alt = labelText
	} else {
		node = tree.New(tree.KindLink)
		node.Children = labelNodes
	}
	node.URL = url
	node.Title = title
	node.ReferenceKind = refKind

	p.out = append(p.out[:mark.index], node)

	if !mark.isImage {
		// Links can't nest: deactivate earlier link openers (image openers
		// stay active since an image may still enclose a link).
		for _, b := range p.brackets {
			if !b.isImage {
				b.active = false
			}
		}
	}
}

// tryLinkTail attempts, in order, inline `(url "title")`, full reference
// `[label]`, collapsed `[]`, and shortcut forms starting at src[pos:] (just
// after the closing `]`).
func (p *parser) tryLinkTail(pos int, label string) (url, title string, kind tree.ReferenceKind, newPos int, ok bool) {
	if pos < len(p.src) && p.src[pos] == '(' {
		if u, t, end, matched := parseInlineLinkTail(p.src, pos); matched {
			return u, t, tree.RefInline, end, true
		}
	}
	if pos < len(p.src) && p.src[pos] == '[' {
		if lbl, after, matched := parseBracketLabel(p.src[pos:]); matched {
			effective := lbl
			refKind := tree.RefFull
			if lbl == "" {
				effective = label
				refKind = tree.RefCollapsed
			}
			if def, exists := p.ctx.Definitions[normalizeLabel(effective)]; exists {
				return def.URL, def.Title, refKind, pos + (len(p.src[pos:]) - len(after)), true
			}
			return "", "", 0, pos, false
		}
	}
	if def, exists := p.ctx.Definitions[normalizeLabel(label)]; exists {
		return def.URL, def.Title, tree.RefShortcut, pos, true
	}
	if p.ctx.Diags != nil {
		p.ctx.Diags.Warn(diag.CodeUnresolvedRef, nil, "unresolved link reference %q", label)
	}
	return "", "", 0, pos, false
}

func normalizeLabel(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

func parseBracketLabel(s string) (label, rest string, ok bool) {
	if len(s) == 0 || s[0] != '[' {
		return "", s, false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

// parseInlineLinkTail parses `(url "title")` starting at pos (where
// src[pos]=='('), returning the end offset just past the closing ')'.
func parseInlineLinkTail(src string, pos int) (url, title string, end int, ok bool) {
	i := pos + 1
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
		i++
	}
	if i < len(src) && src[i] == ')' {
		return "", "", i + 1, true
	}
	u, rest, matched := parseLinkDestination(src[i:])
	if !matched {
		return "", "", 0, false
	}
	i = len(src) - len(rest)
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
		i++
	}
	if i < len(src) && (src[i] == '"' || src[i] == '\'') {
		t, rest2, matched2 := parseLinkTitle(src[i:])
		if matched2 {
			title = t
			i = len(src) - len(rest2)
			for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
				i++
			}
		}
	}
	if i >= len(src) || src[i] != ')' {
		return "", "", 0, false
	}
	return u, title, i + 1, true
}

func parseLinkDestination(s string) (url, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	if s[0] == '<' {
		idx := strings.IndexByte(s[1:], '>')
		if idx < 0 {
			return "", s, false
		}
		return s[1 : 1+idx], s[idx+2:], true
	}
	depth := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' {
			break
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

func parseLinkTitle(s string) (title, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	quote := s[0]
	var closing byte
	switch quote {
	case '"':
		closing = '"'
	case '\'':
		closing = '\''
	default:
		return "", s, false
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == closing {
			return s[1:i], s[i+1:], true
		}
	}
	return "", s, false
}
