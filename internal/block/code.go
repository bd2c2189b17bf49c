package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// tryOpenFence recognizes a fenced code block opener: 0-3 spaces of indent,
// a run of >=3 backticks or tildes, and an optional info string.
func (s *scanner) tryOpenFence(ln rawLine, indent int, trimmed string) bool {
	if indent > 3 || len(trimmed) < 3 {
		return false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return false
	}
	info := strings.TrimSpace(trimmed[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return false
	}
	s.closeLeaf()
	s.leaf = lFencedCode
	s.leafNode = tree.New(tree.KindCodeBlock)
	s.leafNode.Info = info
	s.leafNode.Lang, s.leafNode.Meta = splitInfoString(info)
	s.currentContainer().Append(s.leafNode)
	s.leafLines = nil
	s.fenceChar = ch
	s.fenceLen = n
	s.fenceIndent = indent
	return true
}

func (s *scanner) tryCloseFence(content string) bool {
	indent := leadingSpaces(content)
	if indent > 3 {
		return false
	}
	trimmed := strings.TrimRight(content[indent:], " \t")
	if len(trimmed) == 0 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == s.fenceChar {
		n++
	}
	if n < s.fenceLen || n != len(trimmed) {
		return false
	}
	s.closeLeaf()
	return true
}

func splitInfoString(info string) (lang, meta string) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.TrimSpace(strings.TrimPrefix(info, fields[0]))
}
