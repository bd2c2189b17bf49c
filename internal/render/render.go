// Package render implements the HTML renderer: a depth-first tree
// visitor emitting HTML to a writer, with sanitization on by default.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Highlighter may substitute pre-escaped HTML for a code block's content.
type Highlighter interface {
	Highlight(lang, code string) (htmlOut string, ok bool)
}

// Slugger generates heading `id` attributes, disambiguating collisions.
type Slugger interface {
	Slug(text string) string
}

// Options configures rendering policy.
type Options struct {
	GFM               bool
	Sanitize          bool // default true
	AllowDangerousHTML bool
	BaseHost          string
	Highlighter       Highlighter
	Slugger           Slugger
	TableAlignStyle   bool // true: style="text-align:..", false: class="align-.."
}

// Writer is the streaming-output contract: write(bytes) -> Result. The
// renderer never materializes the whole output unless a caller asks for
// the string convenience API (see String).
type Writer interface {
	Write(p []byte) (int, error)
}

type renderer struct {
	w          Writer
	opts       Options
	diags      *diag.Bag
	slugSeen   map[string]int
	footnoteN  map[string]int
	footnoteOrder []string
	err        error
}

// RenderHTML renders root to w using opts, appending diagnostics to
// diags. A writer error is fatal and propagates to the caller;
// partial output may already have been written.
func RenderHTML(w Writer, root *tree.Node, opts Options, diags *diag.Bag) error {
	r := &renderer{w: w, opts: opts, diags: diags, slugSeen: map[string]int{}, footnoteN: map[string]int{}}
	r.renderBlocks(root.Children)
	if len(r.footnoteOrder) > 0 {
		r.renderFootnoteSection(root)
	}
	if r.err != nil {
		return fmt.Errorf("render: writer error: %w", r.err)
	}
	return nil
}

// String renders root to an in-memory buffer and returns the HTML string,
// the convenience layer over the streaming Writer API.
func String(root *tree.Node, opts Options, diags *diag.Bag) (string, error) {
	var sb strings.Builder
	if err := RenderHTML(&sb, root, opts, diags); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var _ io.Writer = (*strings.Builder)(nil)

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = r.w.Write([]byte(s))
}

func (r *renderer) esc(s string) string {
	return html.EscapeString(s)
}

func (r *renderer) renderBlocks(nodes []*tree.Node) {
	for _, n := range nodes {
		r.renderBlock(n)
	}
}

func (r *renderer) renderBlock(n *tree.Node) {
	switch n.Kind {
	case tree.KindParagraph:
		r.write("<p>")
		r.renderInlines(n.Children)
		r.write("</p>\n")
	case tree.KindHeading:
		tag := fmt.Sprintf("h%d", n.Depth)
		id := ""
		if r.opts.Slugger != nil {
			id = r.uniqueSlug(tree.Text(n))
		}
		if id != "" {
			r.write(fmt.Sprintf("<%s id=\"%s\">", tag, r.esc(id)))
		} else {
			r.write("<" + tag + ">")
		}
		r.renderInlines(n.Children)
		r.write("</" + tag + ">\n")
	case tree.KindBlockQuote:
		r.write("<blockquote>\n")
		r.renderBlocks(n.Children)
		r.write("</blockquote>\n")
	case tree.KindList:
		tag := "ul"
		attr := ""
		if n.Ordered {
			tag = "ol"
			if n.Start != nil && *n.Start != 1 {
				attr = fmt.Sprintf(" start=\"%d\"", *n.Start)
			}
		}
		r.write("<" + tag + attr + ">\n")
		r.renderBlocks(n.Children)
		r.write("</" + tag + ">\n")
	case tree.KindListItem:
		if n.Checked != nil {
			checkedAttr := ""
			if *n.Checked {
				checkedAttr = " checked=\"\""
			}
			r.write(fmt.Sprintf("<li><input type=\"checkbox\" disabled=\"\"%s> ", checkedAttr))
			r.renderTightItemBody(n.Children)
			r.write("</li>\n")
			return
		}
		r.write("<li>")
		r.renderTightItemBody(n.Children)
		r.write("</li>\n")
	case tree.KindCodeBlock:
		r.renderCodeBlock(n)
	case tree.KindThematicBreak:
		r.write("<hr />\n")
	case tree.KindHtmlBlock:
		r.renderRawHTML(n.Value, true)
	case tree.KindTable:
		r.renderTable(n)
	case tree.KindMath:
		r.write("<pre class=\"math\">")
		r.write(r.esc(n.Raw))
		r.write("</pre>\n")
	case tree.KindDirective:
		r.renderDirective(n)
	case tree.KindMdxEsm, tree.KindMdxFlowExpression:
		// MDX source nodes have no HTML rendering in the pure-Markdown
		// renderer; they are only meaningful to internal/mdx's emitter.
	case tree.KindMdxJsxElement:
		r.renderMdxElementAsHTML(n)
	}
}

// renderTightItemBody renders a list item's block children, dropping the
// paragraph wrapper only when the item's sole child is a paragraph; the
// list's Tight flag is not consulted.
func (r *renderer) renderTightItemBody(children []*tree.Node) {
	for i, c := range children {
		if c.Kind == tree.KindParagraph && len(children) == 1 {
			r.renderInlines(c.Children)
			continue
		}
		_ = i
		r.renderBlock(c)
	}
}

func (r *renderer) renderCodeBlock(n *tree.Node) {
	classAttr := ""
	if n.Lang != "" {
		classAttr = fmt.Sprintf(" class=\"language-%s\"", r.esc(n.Lang))
	}
	if r.opts.Highlighter != nil {
		if htmlOut, ok := r.opts.Highlighter.Highlight(n.Lang, n.Value); ok {
			r.write(fmt.Sprintf("<pre><code%s>%s</code></pre>\n", classAttr, htmlOut))
			return
		}
	}
	r.write(fmt.Sprintf("<pre><code%s>%s</code></pre>\n", classAttr, r.esc(n.Value)))
}

// renderDirective renders a directive as a generic div carrying its name
// and attributes as data-* attributes; its content (for the container
// form) is not re-parsed as markdown, so it's emitted as escaped text
// rather than recursed into as child blocks.
func (r *renderer) renderDirective(n *tree.Node) {
	attrStr := " data-directive=\"" + r.esc(n.Name) + "\""
	for _, a := range n.Attrs {
		if a.Name == "" {
			continue
		}
		attrStr += fmt.Sprintf(" data-%s=\"%s\"", r.esc(a.Name), r.esc(a.Value))
	}
	if n.Raw == "" {
		r.write("<div" + attrStr + "></div>\n")
		return
	}
	r.write("<div" + attrStr + ">")
	r.write(r.esc(n.Raw))
	r.write("</div>\n")
}
