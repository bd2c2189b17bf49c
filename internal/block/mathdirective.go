package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// tryOpenMathFence recognizes `$$` as either a single-line display math span
// (`$$ ... $$` all on one line) or the opener of a multi-line math block,
// closed by a line that trims to exactly `$$`.
func (s *scanner) tryOpenMathFence(ln rawLine, indent int, trimmed string) bool {
	if !strings.HasPrefix(trimmed, "$$") {
		return false
	}
	rest := trimmed[2:]
	if len(rest) >= 2 && strings.HasSuffix(rest, "$$") {
		inner := strings.TrimSpace(rest[:len(rest)-2])
		s.closeLeaf()
		m := tree.New(tree.KindMath)
		m.Raw = inner
		s.currentContainer().Append(m)
		return true
	}
	if strings.TrimSpace(rest) != "" {
		return false
	}
	s.closeLeaf()
	s.leaf = lMathBlock
	s.leafNode = tree.New(tree.KindMath)
	s.currentContainer().Append(s.leafNode)
	s.leafLines = nil
	return true
}

func (s *scanner) tryCloseMathFence(content string) bool {
	if strings.TrimSpace(content) != "$$" {
		return false
	}
	s.closeLeaf()
	return true
}

// tryOpenDirective recognizes block-level directive forms: `:::name{attrs}`
// opens a container directive whose content lines are captured raw until a
// line that trims to exactly `:::`; `::name{attrs}` alone on a line is a
// leaf directive with no content. Text directives are internal/inline's
// responsibility, since they appear mid-paragraph.
func (s *scanner) tryOpenDirective(ln rawLine, indent int, trimmed string) bool {
	if strings.HasPrefix(trimmed, ":::") {
		name, attrs, ok := parseDirectiveHead(trimmed, 3)
		if !ok {
			return false
		}
		s.closeLeaf()
		s.leaf = lDirectiveBlock
		s.leafNode = tree.New(tree.KindDirective)
		s.leafNode.Name = name
		s.leafNode.Attrs = attrs
		s.currentContainer().Append(s.leafNode)
		s.leafLines = nil
		return true
	}
	if strings.HasPrefix(trimmed, "::") {
		name, attrs, ok := parseDirectiveHead(trimmed, 2)
		if !ok {
			return false
		}
		s.closeLeaf()
		d := tree.New(tree.KindDirective)
		d.Name = name
		d.Attrs = attrs
		s.currentContainer().Append(d)
		return true
	}
	return false
}

func (s *scanner) tryCloseDirectiveFence(content string) bool {
	if strings.TrimSpace(content) != ":::" {
		return false
	}
	s.closeLeaf()
	return true
}

// parseDirectiveHead parses `<colons>name{attrs}` with nothing else on the
// line, returning ok=false for anything that doesn't cleanly match (e.g.
// trailing junk after the closing brace), so callers can fall through to
// treating the line as a paragraph instead.
func parseDirectiveHead(trimmed string, colons int) (name string, attrs []tree.MdxAttr, ok bool) {
	prefix := strings.Repeat(":", colons)
	if !strings.HasPrefix(trimmed, prefix) {
		return "", nil, false
	}
	rest := trimmed[len(prefix):]
	if strings.HasPrefix(rest, ":") {
		return "", nil, false
	}
	i := 0
	for i < len(rest) && isDirectiveNameChar(rest[i]) {
		i++
	}
	if i == 0 {
		return "", nil, false
	}
	name = rest[:i]
	remainder := strings.TrimSpace(rest[i:])
	if strings.HasPrefix(remainder, "{") {
		end := strings.IndexByte(remainder, '}')
		if end < 0 {
			return "", nil, false
		}
		attrs = parseDirectiveAttrs(remainder[1:end])
		remainder = strings.TrimSpace(remainder[end+1:])
	}
	if remainder != "" {
		return "", nil, false
	}
	return name, attrs, true
}

func isDirectiveNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseDirectiveAttrs parses the `{...}` body of a directive attribute set:
// `.class` and `#id` shorthands plus `key=value`/`key="quoted value"` pairs,
// reusing tree.MdxAttr since directive attributes are structurally the same
// name/value pairs MDX JSX attributes already carry.
func parseDirectiveAttrs(s string) []tree.MdxAttr {
	var attrs []tree.MdxAttr
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
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
			for j < len(s) && s[j] != '=' && s[j] != ' ' && s[j] != '\t' {
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
					for k < len(s) && s[k] != ' ' && s[k] != '\t' {
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
