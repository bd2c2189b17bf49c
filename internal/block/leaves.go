package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanLeaf classifies the remaining (post-container) content of a
// non-blank line into one of the CommonMark leaf blocks, continuing an
// already-open leaf where applicable.
func (s *scanner) scanLeaf(ln rawLine, text string, pos int) {
	content := text[pos:]
	indent := leadingSpaces(content)

	// Continuing an open fenced code block or HTML block takes priority
	// over reinterpreting the line as something else.
	if s.leaf == lFencedCode {
		if s.tryCloseFence(content) {
			return
		}
		s.appendLeafLine(ln, unindent(content, s.fenceIndent))
		return
	}
	if s.leaf == lHTMLBlock {
		s.appendLeafLine(ln, content)
		if s.htmlBlockShouldClose(content) {
			s.closeLeaf()
		}
		return
	}
	if s.leaf == lMathBlock {
		if s.tryCloseMathFence(content) {
			return
		}
		s.appendLeafLine(ln, content)
		return
	}
	if s.leaf == lDirectiveBlock {
		if s.tryCloseDirectiveFence(content) {
			return
		}
		s.appendLeafLine(ln, content)
		return
	}

	// Indented code continues only while the open leaf already is one, or
	// starts fresh at indent>=4 outside a paragraph.
	if indent >= 4 && s.leaf != lParagraph {
		s.startOrContinueIndentedCode(ln, content)
		return
	}
	if s.leaf == lIndentedCode && indent >= 4 {
		s.appendLeafLine(ln, unindent(content, 4))
		return
	}
	if s.leaf == lIndentedCode {
		s.closeLeaf()
	}

	trimmed := strings.TrimRight(content[indent:], " \t")

	if s.tryOpenFence(ln, indent, trimmed) {
		return
	}
	if indent < 4 && isThematicBreak(trimmed) {
		s.closeLeaf()
		tb := tree.New(tree.KindThematicBreak)
		s.currentContainer().Append(tb)
		return
	}
	if indent < 4 {
		if depth, ok := parseATXHeading(trimmed); ok {
			s.closeLeaf()
			s.emitATXHeading(depth, trimmed)
			return
		}
	}
	if s.opts.MDX && s.leaf != lParagraph {
		if s.tryOpenMdxBlock(ln, content) {
			return
		}
	}
	if kind, ok := s.tryOpenHTMLBlock(trimmed, s.leaf == lParagraph); ok {
		s.closeLeaf()
		s.startHTMLBlock(ln, content, kind)
		return
	}
	if s.leaf == lParagraph && indent < 4 {
		if depth, ok := setextUnderline(trimmed); ok {
			s.promoteSetext(depth)
			return
		}
	}
	if s.opts.Math && indent < 4 {
		if s.tryOpenMathFence(ln, indent, trimmed) {
			return
		}
	}
	if s.opts.Directives && indent < 4 {
		if s.tryOpenDirective(ln, indent, trimmed) {
			return
		}
	}
	if indent < 4 && s.tryLinkRefDefinition(ln, content) {
		return
	}

	s.appendParagraphLine(ln, content)
}

func (s *scanner) appendParagraphLine(ln rawLine, content string) {
	if s.leaf != lParagraph {
		s.closeLeaf()
		s.leaf = lParagraph
		s.leafNode = tree.New(tree.KindParagraph)
		s.currentContainer().Append(s.leafNode)
		s.leafLines = nil
	}
	s.leafLines = append(s.leafLines, strings.TrimLeft(content, " "))
}

func (s *scanner) appendLeafLine(ln rawLine, line string) {
	s.leafLines = append(s.leafLines, line)
}

func (s *scanner) closeLeaf() {
	switch s.leaf {
	case lParagraph:
		s.leafNode.Value = strings.Join(s.leafLines, "\n")
	case lIndentedCode:
		s.leafNode.Value = strings.TrimRight(strings.Join(s.leafLines, "\n"), "\n") + "\n"
	case lFencedCode:
		val := strings.Join(s.leafLines, "\n")
		if val != "" {
			val += "\n"
		}
		s.leafNode.Value = val
	case lHTMLBlock:
		s.leafNode.Value = strings.Join(s.leafLines, "\n")
	case lMathBlock:
		val := strings.Join(s.leafLines, "\n")
		if val != "" {
			val += "\n"
		}
		s.leafNode.Raw = val
	case lDirectiveBlock:
		s.leafNode.Raw = strings.Join(s.leafLines, "\n")
	}
	s.leaf = lNone
	s.leafNode = nil
	s.leafLines = nil
}

func (s *scanner) startOrContinueIndentedCode(ln rawLine, content string) {
	if s.leaf != lIndentedCode {
		s.closeLeaf()
		s.leaf = lIndentedCode
		s.leafNode = tree.New(tree.KindCodeBlock)
		s.currentContainer().Append(s.leafNode)
		s.leafLines = nil
	}
	s.appendLeafLine(ln, unindent(content, 4))
}

func unindent(s string, n int) string {
	i := 0
	for i < n && i < len(s) && s[i] == ' ' {
		i++
	}
	return s[i:]
}

func isThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	var ch byte
	count := 0
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c != '-' && c != '_' && c != '*' {
			return false
		}
		if ch == 0 {
			ch = c
		} else if c != ch {
			return false
		}
		count++
	}
	return count >= 3
}

func parseATXHeading(trimmed string) (int, bool) {
	depth := 0
	for depth < len(trimmed) && trimmed[depth] == '#' {
		depth++
	}
	if depth == 0 || depth > 6 {
		return 0, false
	}
	if depth == len(trimmed) {
		return depth, true
	}
	if trimmed[depth] != ' ' && trimmed[depth] != '\t' {
		return 0, false
	}
	return depth, true
}

func (s *scanner) emitATXHeading(depth int, trimmed string) {
	rest := strings.TrimSpace(trimmed[depth:])
	rest = strings.TrimRight(rest, "#")
	rest = strings.TrimRight(rest, " \t")
	h := tree.New(tree.KindHeading)
	h.Depth = depth
	h.Value = rest
	s.currentContainer().Append(h)
}

func setextUnderline(trimmed string) (int, bool) {
	if trimmed == "" {
		return 0, false
	}
	switch trimmed[0] {
	case '=':
		for i := 0; i < len(trimmed); i++ {
			if trimmed[i] != '=' {
				return 0, false
			}
		}
		return 1, true
	case '-':
		for i := 0; i < len(trimmed); i++ {
			if trimmed[i] != '-' {
				return 0, false
			}
		}
		return 2, true
	}
	return 0, false
}

// promoteSetext rewrites the currently open paragraph into a Heading.
// Hard breaks inside the paragraph do not prevent promotion: the joined
// lines become the heading text. Reference definitions never reach the
// paragraph, since they are stripped eagerly.
func (s *scanner) promoteSetext(depth int) {
	h := s.leafNode
	h.Kind = tree.KindHeading
	h.Depth = depth
	h.Setext = true
	h.Value = strings.Join(s.leafLines, "\n")
	s.leaf = lNone
	s.leafNode = nil
	s.leafLines = nil
}
