package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// tryOpenBlockQuote opens a new BlockQuote container if text[pos:] begins
// with 0-3 spaces then '>'.
func (s *scanner) tryOpenBlockQuote(text string, pos int) (bool, int) {
	rest := text[pos:]
	trimmed := strings.TrimLeft(rest, " ")
	indent := len(rest) - len(trimmed)
	if indent > 3 || !strings.HasPrefix(trimmed, ">") {
		return false, pos
	}
	if !s.nestingOK() {
		s.diags.Warn(diag.CodeNestingTooDeep, nil, "nesting depth exceeded, flattening block quote")
		return false, pos
	}
	newPos := pos + indent + 1
	if newPos < len(text) && text[newPos] == ' ' {
		newPos++
	}
	bq := tree.New(tree.KindBlockQuote)
	s.currentContainer().Append(bq)
	s.stack = append(s.stack, container{kind: cBlockQuote, node: bq})
	return true, newPos
}

// tryOpenList opens a new List/ListItem if text[pos:] begins with a bullet
// or ordered-list marker followed by whitespace (or end of line).
func (s *scanner) tryOpenList(text string, pos int) (bool, int) {
	rest := text[pos:]
	indent := leadingSpaces(rest)
	if indent > 3 {
		return false, pos
	}
	after := rest[indent:]
	ordered, marker, num, markerLen := parseListMarker(after)
	if markerLen == 0 {
		return false, pos
	}
	spacesAfter := leadingSpaces(after[markerLen:])
	if after[markerLen:] != "" && spacesAfter == 0 {
		return false, pos
	}
	contentCol := pos + indent + markerLen + spacesAfter + 1
	if spacesAfter == 0 {
		// Marker at end of line (empty list item): content starts right
		// after the marker.
		contentCol = pos + indent + markerLen + 1
	} else if spacesAfter > 4 {
		// CommonMark caps the consumed whitespace at 1 when the item is
		// otherwise "indented code" (>4 spaces after marker): treat as 1.
		contentCol = pos + indent + markerLen + 1 + 1
	}

	if !s.nestingOK() {
		s.diags.Warn(diag.CodeNestingTooDeep, nil, "nesting depth exceeded, flattening list")
		return false, pos
	}

	top := &s.stack[len(s.stack)-1]
	needNewList := top.kind != cList || top.ordered != ordered || top.marker != marker
	if top.kind == cListItem {
		parentList := s.stack[len(s.stack)-2]
		needNewList = parentList.ordered != ordered || parentList.marker != marker
		if !needNewList {
			// Same list, new item: pop the old item, reuse the list.
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	if needNewList {
		list := tree.New(tree.KindList)
		list.Ordered = ordered
		if ordered {
			st := num
			list.Start = &st
		}
		list.Tight = true
		s.currentContainer().Append(list)
		s.stack = append(s.stack, container{kind: cList, node: list, ordered: ordered, marker: marker})
	}

	item := tree.New(tree.KindListItem)
	listNode := s.stack[len(s.stack)-1].node
	listNode.Append(item)
	s.stack = append(s.stack, container{kind: cListItem, node: item, contentCol: contentCol})
	return true, contentCol - 1
}

// parseListMarker recognizes "-", "+", "*" bullets and "N." / "N)" ordered
// markers (1-9 digits).
func parseListMarker(s string) (ordered bool, marker byte, num int, length int) {
	if len(s) == 0 {
		return false, 0, 0, 0
	}
	switch s[0] {
	case '-', '+', '*':
		return false, s[0], 0, 1
	}
	i := 0
	for i < len(s) && i < 9 && s[i] >= '0' && s[i] <= '9' {
		num = num*10 + int(s[i]-'0')
		i++
	}
	if i == 0 || i >= len(s) {
		return false, 0, 0, 0
	}
	if s[i] == '.' || s[i] == ')' {
		return true, s[i], num, i + 1
	}
	return false, 0, 0, 0
}
