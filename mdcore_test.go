package mdcore

import (
	"strings"
	"testing"

	"github.com/brandonbloom/mdcore/internal/tree"
)

func TestHeadingAndParagraph(t *testing.T) {
	res, err := Parse([]byte("# Hello\n\nWorld\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tree.Children) != 2 {
		t.Fatalf("expected 2 top-level blocks, got %d", len(res.Tree.Children))
	}
	if res.Tree.Children[0].Kind != tree.KindHeading || res.Tree.Children[0].Depth != 1 {
		t.Errorf("expected a depth-1 heading, got %+v", res.Tree.Children[0])
	}

	html, err := RenderHTML([]byte("# Hello\n\nWorld\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html.HTML != "<h1>Hello</h1>\n<p>World</p>\n" {
		t.Errorf("got %q", html.HTML)
	}
}

func TestGFMStrikethroughTogglesOnOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.GFM = true
	html, err := RenderHTML([]byte("~~gone~~"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html.HTML != "<p><del>gone</del></p>\n" {
		t.Errorf("got %q", html.HTML)
	}

	opts.GFM = false
	html, err = RenderHTML([]byte("~~gone~~"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html.HTML != "<p>~~gone~~</p>\n" {
		t.Errorf("got %q", html.HTML)
	}
}

func TestSanitizationStripsScriptAndRewritesDangerousURL(t *testing.T) {
	src := "<script>alert(1)</script>\n\n[x](javascript:alert(1))\n"
	res, err := RenderHTML([]byte(src), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.HTML, "<script>") {
		t.Errorf("script tag leaked into %q", res.HTML)
	}
	if !strings.Contains(res.HTML, `href="#"`) {
		t.Errorf("expected javascript: URL rewritten to #, got %q", res.HTML)
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected at least one sanitizer diagnostic")
	}
}

func TestGFMTableAlignment(t *testing.T) {
	opts := DefaultOptions()
	opts.GFM = true
	src := "| A | B |\n|:--|--:|\n| 1 | 2 |\n"
	res, err := Parse([]byte(src), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := res.Tree.Children[0]
	if table.Kind != tree.KindTable {
		t.Fatalf("expected a table, got %+v", table)
	}
	if table.Alignments[0] != tree.AlignLeft || table.Alignments[1] != tree.AlignRight {
		t.Errorf("unexpected alignments: %v", table.Alignments)
	}

	html, err := RenderHTML([]byte(src), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html.HTML, `<th style="text-align:left">A</th>`) {
		t.Errorf("missing left-aligned header cell: %q", html.HTML)
	}
	if !strings.Contains(html.HTML, `<td style="text-align:right">2</td>`) {
		t.Errorf("missing right-aligned body cell: %q", html.HTML)
	}
}

func TestMDXComponentCompiles(t *testing.T) {
	src := "import B from './b'\n\n<B x={1+2}>hi</B>\n"
	opts := DefaultOptions()
	opts.MDX = true
	res, err := CompileMDX([]byte(src), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.ESMSource, "import B from './b'") {
		t.Errorf("expected ESM import to lead the module, got %q", res.ESMSource)
	}
	if !strings.Contains(res.ESMSource, "_components.B") {
		t.Errorf("expected component resolution in output, got %q", res.ESMSource)
	}
}

func TestMDXDisabledProducesNoMdxNodes(t *testing.T) {
	opts := DefaultOptions()
	opts.MDX = false
	res, err := Parse([]byte("<B x={1}>hi</B>\n"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		switch n.Kind {
		case tree.KindMdxEsm, tree.KindMdxJsxElement, tree.KindMdxFlowExpression, tree.KindMdxTextExpression:
			t.Errorf("found an Mdx* node with mdx disabled: %+v", n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(res.Tree)
}

func TestIncrementalSessionMatchesFullReparse(t *testing.T) {
	src := "# T\n\npara1\n\npara2\n"
	var sessions Sessions
	id, _, err := sessions.CreateSession("", []byte(src), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := strings.Index(src, "para2")
	delta, err := sessions.EditSession(id, []SessionEdit{{Start: idx, End: idx, Text: "X"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta.FullReparse {
		t.Fatalf("expected an incremental reparse")
	}
	if delta.Removed != 1 || delta.Inserted != 1 {
		t.Errorf("expected exactly one paragraph replaced, got %+v", delta)
	}

	snap, err := sessions.Snapshot(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	full, err := Parse([]byte(strings.Replace(src, "para2", "Xpara2", 1)), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Children) != len(full.Tree.Children) {
		t.Errorf("incremental tree shape diverged: got %d top-level blocks, want %d", len(snap.Children), len(full.Tree.Children))
	}

	if err := sessions.DestroySession(id); err != nil {
		t.Errorf("unexpected error destroying session: %v", err)
	}
	if _, err := sessions.Snapshot(id); err == nil {
		t.Error("expected an error snapshotting a destroyed session")
	}
}
