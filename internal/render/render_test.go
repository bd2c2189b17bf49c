package render

import (
	"strings"
	"testing"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

func text(s string) *tree.Node {
	n := tree.New(tree.KindText)
	n.Value = s
	return n
}

func paragraph(children ...*tree.Node) *tree.Node {
	n := tree.New(tree.KindParagraph)
	n.Children = children
	return n
}

func TestRenderParagraphAndEmphasis(t *testing.T) {
	em := tree.New(tree.KindEmphasis)
	em.Children = []*tree.Node{text("world")}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{paragraph(text("hello "), em)}

	out, err := String(root, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<p>hello <em>world</em></p>\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderHeadingWithSlugger(t *testing.T) {
	h := tree.New(tree.KindHeading)
	h.Depth = 2
	h.Children = []*tree.Node{text("Hello, World!")}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{h, cloneHeading(h)}

	out, err := String(root, Options{Slugger: GithubSlugger{}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `id="hello-world"`) {
		t.Errorf("missing base slug in %q", out)
	}
	if !strings.Contains(out, `id="hello-world-1"`) {
		t.Errorf("missing disambiguated slug in %q", out)
	}
}

func cloneHeading(h *tree.Node) *tree.Node {
	c := tree.New(tree.KindHeading)
	c.Depth = h.Depth
	c.Children = h.Children
	return c
}

func TestRenderLinkSanitizesJavascriptScheme(t *testing.T) {
	link := tree.New(tree.KindLink)
	link.URL = "javascript:alert(1)"
	link.Children = []*tree.Node{text("click")}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{paragraph(link)}

	diags := diag.NewBag()
	out, err := String(root, Options{Sanitize: true}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("unsafe scheme leaked into output: %q", out)
	}
	if diags.Len() == 0 {
		t.Error("expected a sanitizer diagnostic")
	}
}

func TestRenderRawHTMLDropsScriptTag(t *testing.T) {
	block := tree.New(tree.KindHtmlBlock)
	block.Value = "<script>alert(1)</script>\n"
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{block}

	out, err := String(root, Options{Sanitize: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag leaked: %q", out)
	}
}

func TestRenderRawHTMLAllowsKnownTagWhenSanitizing(t *testing.T) {
	block := tree.New(tree.KindHtmlBlock)
	block.Value = "<div class=\"note\">hi</div>\n"
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{block}

	out, err := String(root, Options{Sanitize: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<div class=\"note\">") {
		t.Errorf("allowlisted tag was dropped: %q", out)
	}
}

func TestRenderFootnotesSection(t *testing.T) {
	ref := tree.New(tree.KindFootnoteReference)
	ref.Label = "1"
	root := tree.New(tree.KindRoot)
	root.FootnoteDefs = map[string]*tree.FootnoteDef{
		"1": {Label: "1", Content: []*tree.Node{paragraph(text("a note"))}},
	}
	root.Children = []*tree.Node{paragraph(text("see"), ref)}

	out, err := String(root, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<sup id="fnref-1">`) {
		t.Errorf("missing footnote ref marker: %q", out)
	}
	if !strings.Contains(out, "a note") || !strings.Contains(out, `class="footnotes"`) {
		t.Errorf("missing footnote section: %q", out)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	table := tree.New(tree.KindTable)
	table.Alignments = []tree.Alignment{tree.AlignLeft, tree.AlignRight}
	row := tree.New(tree.KindTableRow)
	row.Header = true
	cellA := tree.New(tree.KindTableCell)
	cellA.Children = []*tree.Node{text("A")}
	cellB := tree.New(tree.KindTableCell)
	cellB.Children = []*tree.Node{text("B")}
	row.Children = []*tree.Node{cellA, cellB}
	table.Children = []*tree.Node{row}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{table}

	out, err := String(root, Options{GFM: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `class="align-left"`) || !strings.Contains(out, `class="align-right"`) {
		t.Errorf("missing alignment classes: %q", out)
	}
}

func TestRenderLinkAllowsTelScheme(t *testing.T) {
	link := tree.New(tree.KindLink)
	link.URL = "tel:+15551234567"
	link.Children = []*tree.Node{text("call")}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{paragraph(link)}

	out, err := String(root, Options{Sanitize: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `href="tel:+15551234567"`) {
		t.Errorf("tel: scheme should be allowed, got %q", out)
	}
}

func TestRenderLinkRejectsXmppScheme(t *testing.T) {
	link := tree.New(tree.KindLink)
	link.URL = "xmpp:user@example.com"
	link.Children = []*tree.Node{text("chat")}
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{paragraph(link)}

	diags := diag.NewBag()
	out, err := String(root, Options{Sanitize: true}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "xmpp:") {
		t.Errorf("xmpp: scheme is not in the allowlist and should be dropped: %q", out)
	}
	if diags.Len() == 0 {
		t.Error("expected a sanitizer diagnostic")
	}
}

func TestRenderMathNode(t *testing.T) {
	m := tree.New(tree.KindMath)
	m.Raw = "x^2"
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{paragraph(text("area: "), m)}

	out, err := String(root, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<code class="math-inline">x^2</code>`) {
		t.Errorf("missing rendered math span: %q", out)
	}
}

func TestRenderDirectiveNode(t *testing.T) {
	d := tree.New(tree.KindDirective)
	d.Name = "note"
	d.Attrs = []tree.MdxAttr{{Name: "class", Value: "warning"}}
	d.Raw = "careful here"
	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{d}

	out, err := String(root, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `data-directive="note"`) || !strings.Contains(out, `data-class="warning"`) {
		t.Errorf("missing directive attributes: %q", out)
	}
	if !strings.Contains(out, "careful here") {
		t.Errorf("missing directive content: %q", out)
	}
}
