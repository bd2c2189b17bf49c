package render

import (
	"regexp"
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// allowedURLSchemes is the default scheme allowlist for links and images.
// Schemeless (relative) URLs are always permitted.
var allowedURLSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
	"irc":    true,
	"ircs":   true,
}

func isSafeURL(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return true
	}
	i := strings.IndexByte(url, ':')
	if i < 0 {
		return true // relative/fragment URL, no scheme to police
	}
	// A colon that comes after a '/' (e.g. "a/b:c") is not a scheme
	// separator.
	if slash := strings.IndexByte(url, '/'); slash >= 0 && slash < i {
		return true
	}
	scheme := strings.ToLower(url[:i])
	return allowedURLSchemes[scheme]
}

func isExternalURL(url, baseHost string) bool {
	if baseHost == "" {
		return false
	}
	if !strings.Contains(url, "://") {
		return false
	}
	return !strings.Contains(url, baseHost)
}

// allowedRawTags is the default tag allowlist applied to raw HTML blocks
// and MDX JSX element names whenever passThrough reports false, following
// goldmark-html's sanitization extension.
var allowedRawTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "blockquote": true, "br": true,
	"code": true, "del": true, "details": true, "div": true, "em": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "i": true, "img": true, "ins": true, "kbd": true, "li": true,
	"mark": true, "ol": true, "p": true, "pre": true, "s": true, "small": true,
	"span": true, "strong": true, "sub": true, "summary": true, "sup": true,
	"table": true, "tbody": true, "td": true, "th": true, "thead": true,
	"tr": true, "u": true, "ul": true,
}

var deniedRawTags = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "form": true, "input": true, "button": true,
	"textarea": true, "svg": true, "math": true, "link": true, "meta": true,
	"base": true, "noscript": true,
}

// allowedAttrs is the default per-tag-agnostic attribute allowlist for raw
// HTML; any attribute starting with "on" (event handlers) is always denied.
var allowedAttrs = map[string]bool{
	"href": true, "src": true, "alt": true, "title": true, "class": true,
	"id": true, "width": true, "height": true, "align": true, "colspan": true,
	"rowspan": true, "start": true, "checked": true, "disabled": true,
	"target": true, "rel": true, "lang": true, "dir": true,
}

var rawTagRe = regexp.MustCompile(`(?i)^</?\s*([a-zA-Z][a-zA-Z0-9-]*)`)

// renderRawHTML writes an HTML block's raw content subject to sanitization:
// dropped unless its leading tag is allowlisted, passed through untouched
// only when passThrough reports true.
func (r *renderer) renderRawHTML(raw string, blockLevel bool) {
	if r.passThrough() {
		r.write(raw)
		return
	}
	if r.sanitizeRawHTML(raw) {
		r.write(raw)
		return
	}
	if r.diags != nil {
		r.diags.Warn(diag.CodeSanitizedTag, nil, "dropped disallowed raw HTML")
	}
	if blockLevel {
		r.write("<!-- raw HTML removed -->\n")
	}
}

func (r *renderer) sanitizeRawHTML(raw string) bool {
	m := rawTagRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return false // comments, CDATA, declarations: conservatively dropped
	}
	tag := strings.ToLower(m[1])
	if deniedRawTags[tag] {
		return false
	}
	return allowedRawTags[tag]
}

// passThrough reports the combined sanitization policy: sanitize=false
// AND allowDangerousHTML=true is the only pass-through combination;
// every other combination sanitizes.
func (r *renderer) passThrough() bool {
	return !r.opts.Sanitize && r.opts.AllowDangerousHTML
}

// renderMdxElementAsHTML renders an MDX JSX element using the same tag and
// attribute allowlist as raw HTML, since a pure-HTML render has no React
// runtime to execute components against: the HTML renderer degrades MDX
// constructs it cannot faithfully reproduce to plain tags.
func (r *renderer) renderMdxElementAsHTML(n *tree.Node) {
	tag := n.Name
	allowed := r.passThrough() || (allowedRawTags[strings.ToLower(tag)] && !deniedRawTags[strings.ToLower(tag)])
	if !allowed {
		if r.diags != nil {
			r.diags.Warn(diag.CodeSanitizedTag, nil, "dropped disallowed MDX element <%s>", tag)
		}
		r.renderBlocks(n.Children)
		return
	}
	r.write("<" + tag)
	for _, a := range n.Attrs {
		if a.Spread || a.Expr != "" {
			continue // cannot evaluate JS attribute expressions in pure-HTML mode
		}
		key := strings.ToLower(a.Name)
		if !r.passThrough() && (!allowedAttrs[key] || strings.HasPrefix(key, "on")) {
			continue
		}
		r.write(" " + a.Name + "=\"" + r.esc(a.Value) + "\"")
	}
	if n.SelfClosing {
		r.write(" />")
		return
	}
	r.write(">")
	r.renderBlocks(n.Children)
	r.write("</" + tag + ">")
}
