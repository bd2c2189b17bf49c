package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// html block "type 1" tags per CommonMark: raw content up to a matching
// closing tag, ignoring all other markdown syntax in between.
var htmlType1Tags = []string{"script", "pre", "style", "textarea"}

// html block "type 6" tags: a broad list of block-level HTML elements that
// open an HTML block closed by the next blank line.
var htmlType6Tags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true, "details": true,
	"dialog": true, "dir": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "frame": true, "frameset": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true, "header": true,
	"hr": true, "html": true, "iframe": true, "legend": true, "li": true,
	"link": true, "main": true, "menu": true, "menuitem": true, "nav": true,
	"noframes": true, "ol": true, "optgroup": true, "option": true, "p": true,
	"param": true, "section": true, "summary": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "title": true,
	"tr": true, "track": true, "ul": true,
}

// tryOpenHTMLBlock classifies trimmed as an HTML block opener per
// CommonMark's seven-type grammar. inParagraph indicates whether a
// paragraph is currently open, since type 7 may not interrupt one.
func (s *scanner) tryOpenHTMLBlock(trimmed string, inParagraph bool) (int, bool) {
	if !strings.HasPrefix(trimmed, "<") {
		return 0, false
	}
	lower := strings.ToLower(trimmed)
	for _, tag := range htmlType1Tags {
		if strings.HasPrefix(lower, "<"+tag) {
			next := lower[len(tag)+1:]
			if next == "" || next[0] == ' ' || next[0] == '\t' || next[0] == '>' || (len(next) > 0 && next[0] == '/') {
				return 1, true
			}
		}
	}
	if strings.HasPrefix(trimmed, "<!--") {
		return 2, true
	}
	if strings.HasPrefix(trimmed, "<?") {
		return 3, true
	}
	if strings.HasPrefix(trimmed, "<!") && len(trimmed) > 2 && isASCIIUpper(trimmed[2]) {
		return 4, true
	}
	if strings.HasPrefix(trimmed, "<![CDATA[") {
		return 5, true
	}
	if name, closing := leadingTagName(trimmed); name != "" {
		if htmlType6Tags[strings.ToLower(name)] {
			return 6, true
		}
		if !inParagraph && !closing {
			return 7, true
		}
		if !inParagraph && closing {
			return 7, true
		}
	}
	return 0, false
}

func isASCIIUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func leadingTagName(s string) (name string, closing bool) {
	i := 1
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	start := i
	for i < len(s) && (isASCIIAlnum(s[i]) || s[i] == '-') {
		i++
	}
	if i == start {
		return "", false
	}
	return s[start:i], closing
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (s *scanner) startHTMLBlock(ln rawLine, content string, kind int) {
	s.leaf = lHTMLBlock
	s.leafNode = tree.New(tree.KindHtmlBlock)
	s.leafNode.RawKind = kind
	s.currentContainer().Append(s.leafNode)
	s.leafLines = []string{content}
	s.htmlEndCond = kind
	if s.htmlBlockShouldClose(content) {
		s.closeLeaf()
	}
}

// htmlBlockShouldClose reports whether the current line satisfies the
// closing condition for the open HTML block's type.
func (s *scanner) htmlBlockShouldClose(content string) bool {
	lower := strings.ToLower(content)
	switch s.htmlEndCond {
	case 1:
		for _, tag := range htmlType1Tags {
			if strings.Contains(lower, "</"+tag+">") {
				return true
			}
		}
		return false
	case 2:
		return strings.Contains(content, "-->")
	case 3:
		return strings.Contains(content, "?>")
	case 4:
		return strings.Contains(content, ">")
	case 5:
		return strings.Contains(content, "]]>")
	default: // 6, 7
		return strings.TrimSpace(content) == ""
	}
}
