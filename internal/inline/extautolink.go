package inline

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// applyExtendedAutolinks implements GFM's bare-URL/www/email autolinking
// as a final pass over resolved Text nodes, splitting each
// into Text/Autolink runs. It does not descend into non-Text nodes other
// than recursing into container children, since GFM only autolinks plain
// text outside of existing link/code spans.
func applyExtendedAutolinks(nodes []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range nodes {
		if n.Kind == tree.KindText {
			out = append(out, splitExtendedAutolinks(n.Value)...)
			continue
		}
		if n.Kind != tree.KindLink && n.Kind != tree.KindImage && n.Kind != tree.KindInlineCode && n.Kind != tree.KindAutolink {
			n.Children = applyExtendedAutolinks(n.Children)
		}
		out = append(out, n)
	}
	return out
}

func splitExtendedAutolinks(s string) []*tree.Node {
	var out []*tree.Node
	rest := s
	for rest != "" {
		idx, length, kind := findExtendedAutolink(rest)
		if idx < 0 {
			out = append(out, textNode(rest))
			break
		}
		if idx > 0 {
			out = append(out, textNode(rest[:idx]))
		}
		raw := rest[idx : idx+length]
		raw, _ = stripTrailingPunct(raw)
		url := raw
		if kind == tree.AutolinkEmail {
			url = "mailto:" + raw
		} else if strings.HasPrefix(raw, "www.") {
			url = "http://" + raw
		}
		node := tree.New(tree.KindAutolink)
		node.URL = url
		node.AutolinkKind = kind
		node.Children = []*tree.Node{textNode(raw)}
		out = append(out, node)
		rest = rest[idx+len(raw):] // re-include stripped trailing punctuation as text
	}
	return out
}

func textNode(s string) *tree.Node {
	n := tree.New(tree.KindText)
	n.Value = s
	return n
}

// findExtendedAutolink finds the first bare http(s)://, www., or email-like
// run in s and returns its start index, length, and kind, or idx=-1.
func findExtendedAutolink(s string) (idx, length int, kind tree.AutolinkKind) {
	best := -1
	var bestLen int
	var bestKind tree.AutolinkKind
	consider := func(i, l int, k tree.AutolinkKind) {
		if l > 0 && (best < 0 || i < best) {
			best, bestLen, bestKind = i, l, k
		}
	}
	for _, scheme := range []string{"http://", "https://"} {
		if i := strings.Index(s, scheme); i >= 0 {
			consider(i, extentOf(s[i:]), tree.AutolinkURI)
		}
	}
	if i := strings.Index(s, "www."); i >= 0 {
		if i == 0 || !isASCIIAlnum(s[i-1]) {
			consider(i, extentOf(s[i:]), tree.AutolinkURI)
		}
	}
	if i := findEmailStart(s); i >= 0 {
		consider(i, extentOfEmail(s[i:]), tree.AutolinkEmail)
	}
	if best < 0 {
		return -1, 0, 0
	}
	return best, bestLen, bestKind
}

func extentOf(s string) int {
	i := 0
	for i < len(s) && !strings.ContainsRune(" \t\n<>", rune(s[i])) {
		i++
	}
	return i
}

func findEmailStart(s string) int {
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return -1
	}
	i := at
	for i > 0 && isEmailLocalChar(s[i-1]) {
		i--
	}
	if i == at {
		return -1
	}
	return i
}

func isEmailLocalChar(c byte) bool {
	return isASCIIAlnum(c) || strings.IndexByte(".+-_", c) >= 0
}

func extentOfEmail(s string) int {
	at := strings.IndexByte(s, '@')
	i := at + 1
	for i < len(s) && (isASCIIAlnum(s[i]) || s[i] == '-' || s[i] == '.') {
		i++
	}
	return i
}

// stripTrailingPunct implements GFM's trailing-punctuation-trimming rule:
// trailing `.,:;!?*_~` and unbalanced closing parentheses are excluded from the
// link and re-emitted as following text.
func stripTrailingPunct(s string) (trimmed, trailing string) {
	end := len(s)
	for end > 0 && strings.IndexByte(".,:;!?*_~", s[end-1]) >= 0 {
		end--
	}
	for end > 0 && s[end-1] == ')' {
		if strings.Count(s[:end], "(") >= strings.Count(s[:end], ")") {
			break
		}
		end--
	}
	return s[:end], s[end:]
}
