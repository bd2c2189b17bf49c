package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanInlineMath recognizes a single-line `$...$` or `$$...$$` span as an
// opaque Math node. The single-dollar form requires the content to have no
// leading/trailing whitespace, the same heuristic prose-math extensions
// use to avoid misreading adjacent currency amounts like "$5 and $10" as a
// math span; the double-dollar form trims surrounding whitespace instead
// since `$$` rarely appears in ordinary prose.
func (p *parser) scanInlineMath() bool {
	i := p.pos
	display := i+1 < len(p.src) && p.src[i+1] == '$'
	delim := "$"
	skip := 1
	if display {
		delim = "$$"
		skip = 2
	}
	contentStart := i + skip
	rel := strings.Index(p.src[contentStart:], delim)
	if rel < 0 {
		return false
	}
	contentEnd := contentStart + rel
	content := p.src[contentStart:contentEnd]
	if content == "" || strings.ContainsRune(content, '\n') {
		return false
	}
	if !display && (isSpaceByte(content[0]) || isSpaceByte(content[len(content)-1])) {
		return false
	}
	if display {
		content = strings.TrimSpace(content)
	}
	node := tree.New(tree.KindMath)
	node.Raw = content
	p.out = append(p.out, node)
	p.pos = contentEnd + len(delim)
	return true
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

// scanTextDirective recognizes an inline `::name{attrs}` text directive. A
// third leading colon is left alone, since `:::name` is the block
// container-directive opener the block scanner already handles at line
// start.
func (p *parser) scanTextDirective() bool {
	if p.pos+1 >= len(p.src) || p.src[p.pos+1] != ':' {
		return false
	}
	rest := p.src[p.pos+2:]
	if strings.HasPrefix(rest, ":") {
		return false
	}
	i := 0
	for i < len(rest) && isDirectiveNameChar(rest[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	name := rest[:i]
	consumed := i
	var attrs []tree.MdxAttr
	if i < len(rest) && rest[i] == '{' {
		end := strings.IndexByte(rest[i:], '}')
		if end < 0 {
			return false
		}
		attrs = parseDirectiveAttrs(rest[i+1 : i+end])
		consumed += end + 1
	}
	node := tree.New(tree.KindDirective)
	node.Name = name
	node.Attrs = attrs
	p.out = append(p.out, node)
	p.pos += 2 + consumed
	return true
}

func isDirectiveNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseDirectiveAttrs parses the `{...}` body of a directive attribute
// set: `.class` and `#id` shorthands plus `key=value`/`key="quoted value"`
// pairs, reusing tree.MdxAttr since directive attributes are structurally
// the same name/value pairs MDX JSX attributes already carry.
func parseDirectiveAttrs(s string) []tree.MdxAttr {
	var attrs []tree.MdxAttr
	i := 0
	for i < len(s) {
		for i < len(s) && isSpaceByte(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		switch s[i] {
		case '.':
			j := i + 1
			for j < len(s) && isDirectiveNameChar(s[j]) {
				j++
			}
			attrs = append(attrs, tree.MdxAttr{Name: "class", Value: s[i+1 : j]})
			i = j
		case '#':
			j := i + 1
			for j < len(s) && isDirectiveNameChar(s[j]) {
				j++
			}
			attrs = append(attrs, tree.MdxAttr{Name: "id", Value: s[i+1 : j]})
			i = j
		default:
			j := i
			for j < len(s) && s[j] != '=' && !isSpaceByte(s[j]) {
				j++
			}
			key := s[i:j]
			if key == "" {
				i = j + 1
				continue
			}
			if j < len(s) && s[j] == '=' {
				j++
				if j < len(s) && s[j] == '"' {
					k := j + 1
					for k < len(s) && s[k] != '"' {
						k++
					}
					attrs = append(attrs, tree.MdxAttr{Name: key, Value: s[j+1 : k]})
					i = k + 1
				} else {
					k := j
					for k < len(s) && !isSpaceByte(s[k]) {
						k++
					}
					attrs = append(attrs, tree.MdxAttr{Name: key, Value: s[j:k]})
					i = k
				}
			} else {
				attrs = append(attrs, tree.MdxAttr{Name: key, Value: "true"})
				i = j
			}
		}
	}
	return attrs
}
