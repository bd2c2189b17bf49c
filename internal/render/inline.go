package render

import (
	"fmt"
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

func (r *renderer) renderInlines(nodes []*tree.Node) {
	for _, n := range nodes {
		r.renderInline(n)
	}
}

func (r *renderer) renderInline(n *tree.Node) {
	switch n.Kind {
	case tree.KindText:
		r.write(r.esc(n.Value))
	case tree.KindSoftBreak:
		r.write("\n")
	case tree.KindHardBreak:
		r.write("<br />\n")
	case tree.KindInlineCode:
		r.write("<code>" + r.esc(n.Value) + "</code>")
	case tree.KindEmphasis:
		r.write("<em>")
		r.renderInlines(n.Children)
		r.write("</em>")
	case tree.KindStrong:
		r.write("<strong>")
		r.renderInlines(n.Children)
		r.write("</strong>")
	case tree.KindDelete:
		r.write("<del>")
		r.renderInlines(n.Children)
		r.write("</del>")
	case tree.KindLink, tree.KindAutolink:
		r.renderLink(n)
	case tree.KindImage:
		r.renderImage(n)
	case tree.KindFootnoteReference:
		r.renderFootnoteRef(n)
	case tree.KindMdxTextExpression:
		// Literal MDX expressions have no rendering in pure-HTML mode.
	case tree.KindMath:
		r.write("<code class=\"math-inline\">" + r.esc(n.Raw) + "</code>")
	case tree.KindDirective:
		r.renderDirective(n)
	}
}

func (r *renderer) renderLink(n *tree.Node) {
	url := n.URL
	if !r.passThrough() && !isSafeURL(url) {
		r.diagWarnURL(url)
		url = "#"
	}
	relAttr := ""
	if isExternalURL(url, r.opts.BaseHost) {
		relAttr = " rel=\"nofollow noopener noreferrer\" target=\"_blank\""
	}
	titleAttr := ""
	if n.Title != "" {
		titleAttr = " title=\"" + r.esc(n.Title) + "\""
	}
	r.write(fmt.Sprintf("<a href=\"%s\"%s%s>", r.esc(url), titleAttr, relAttr))
	r.renderInlines(n.Children)
	r.write("</a>")
}

func (r *renderer) renderImage(n *tree.Node) {
	url := n.URL
	if !r.passThrough() && !isSafeURL(url) {
		r.diagWarnURL(url)
		url = "#"
	}
	titleAttr := ""
	if n.Title != "" {
		titleAttr = " title=\"" + r.esc(n.Title) + "\""
	}
	alt := n.Alt
	if alt == "" {
		alt = tree.Text(n)
	}
	r.write(fmt.Sprintf("<img src=\"%s\" alt=\"%s\"%s />", r.esc(url), r.esc(alt), titleAttr))
}

func (r *renderer) renderFootnoteRef(n *tree.Node) {
	num, seen := r.footnoteN[n.Label]
	if !seen {
		num = len(r.footnoteOrder) + 1
		r.footnoteN[n.Label] = num
		r.footnoteOrder = append(r.footnoteOrder, n.Label)
	}
	r.write(fmt.Sprintf(`<sup id="fnref-%s"><a href="#fn-%s">%d</a></sup>`, r.esc(n.Label), r.esc(n.Label), num))
}

func (r *renderer) renderFootnoteSection(root *tree.Node) {
	r.write("<section class=\"footnotes\">\n<ol>\n")
	for _, label := range r.footnoteOrder {
		def := root.FootnoteDefs[normalizeFootnoteLabel(label)]
		r.write(fmt.Sprintf("<li id=\"fn-%s\">", r.esc(label)))
		if def != nil {
			r.renderBlocks(def.Content)
		}
		r.write(fmt.Sprintf(` <a href="#fnref-%s">↩</a></li>`, r.esc(label)) + "\n")
	}
	r.write("</ol>\n</section>\n")
}

func normalizeFootnoteLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func (r *renderer) diagWarnURL(url string) {
	if r.diags == nil {
		return
	}
	r.diags.Warn(diag.CodeSanitizedURL, nil, "stripped unsafe URL %q", url)
}
