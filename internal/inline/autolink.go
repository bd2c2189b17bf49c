package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanAutolinkOrHTML recognizes `<scheme:...>` and email autolinks per
// CommonMark's ABNF, and raw inline HTML tags/comments/CDATA/declarations/
// processing instructions, which are kept as literal Text (the tree has no
// dedicated raw-inline-HTML node kind, so the renderer HTML-escapes them
// like any other text, whatever the sanitize and allowDangerousHTML
// options say). Returns false if `<`
// doesn't begin any recognized construct, letting the caller fall back to
// literal-text handling.
func (p *parser) scanAutolinkOrHTML() bool {
	rest := p.src[p.pos:]
	if end, url, kind := matchStrictAutolink(rest); end > 0 {
		node := tree.New(tree.KindAutolink)
		node.URL = url
		node.AutolinkKind = kind
		text := tree.New(tree.KindText)
		text.Value = url
		node.Children = []*tree.Node{text}
		p.out = append(p.out, node)
		p.pos += end
		return true
	}
	if end := matchRawHTML(rest); end > 0 {
		p.appendText(rest[:end])
		p.pos += end
		return true
	}
	return false
}

func matchStrictAutolink(s string) (end int, url string, kind tree.AutolinkKind) {
	if len(s) < 3 || s[0] != '<' {
		return 0, "", 0
	}
	close := strings.IndexByte(s, '>')
	if close < 0 {
		return 0, "", 0
	}
	inner := s[1:close]
	if strings.ContainsAny(inner, " \t\n<") {
		return 0, "", 0
	}
	if idx := strings.IndexByte(inner, ':'); idx >= 2 && isValidScheme(inner[:idx]) {
		return close + 1, inner, tree.AutolinkURI
	}
	if isEmailLike(inner) {
		return close + 1, inner, tree.AutolinkEmail
	}
	return 0, "", 0
}

func isValidScheme(s string) bool {
	if len(s) < 2 || len(s) > 32 {
		return false
	}
	if !isASCIIAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isASCIIAlnum(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isASCIIAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isASCIIAlnum(b byte) bool { return isASCIIAlpha(b) || (b >= '0' && b <= '9') }

func isEmailLike(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t<>") {
		return false
	}
	return isValidAutolinkDomain(domain)
}

func isValidAutolinkDomain(domain string) bool {
	if domain == "" {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 1 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
		for i := 0; i < len(l); i++ {
			c := l[i]
			if !isASCIIAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

// matchRawHTML recognizes an open/close tag, comment, processing
// instruction, declaration, or CDATA section starting at s[0]=='<' and
// returns its end offset, or 0 if s doesn't begin one.
func matchRawHTML(s string) int {
	if strings.HasPrefix(s, "<!--") {
		if idx := strings.Index(s[4:], "-->"); idx >= 0 {
			return 4 + idx + 3
		}
		return 0
	}
	if strings.HasPrefix(s, "<?") {
		if idx := strings.Index(s[2:], "?>"); idx >= 0 {
			return 2 + idx + 2
		}
		return 0
	}
	if strings.HasPrefix(s, "<![CDATA[") {
		if idx := strings.Index(s[9:], "]]>"); idx >= 0 {
			return 9 + idx + 3
		}
		return 0
	}
	i := 1
	closing := false
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	if i < len(s) && s[i] == '!' && !closing {
		j := strings.IndexByte(s, '>')
		if j > 0 {
			return j + 1
		}
		return 0
	}
	start := i
	for i < len(s) && (isASCIIAlnum(s[i]) || s[i] == '-') {
		i++
	}
	if i == start {
		return 0
	}
	for i < len(s) && s[i] != '>' {
		i++
	}
	if i >= len(s) {
		return 0
	}
	return i + 1
}
