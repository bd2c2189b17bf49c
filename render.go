package mdcore

import (
	"fmt"
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/render"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// RenderResult is render_html's return value: `{ html, diagnostics }`.
type RenderResult struct {
	HTML        string
	Diagnostics []diag.Diagnostic
}

// RenderHTML parses source and renders it to sanitized HTML. Use
// RenderTree to render an already-parsed tree without reparsing.
func RenderHTML(source []byte, opts Options) (RenderResult, error) {
	res, err := Parse(source, opts)
	if err != nil {
		return RenderResult{}, err
	}
	return RenderTree(res.Tree, opts, res.Diagnostics)
}

// RenderTree renders an already-parsed tree, appending to priorDiags. It
// suits a tree already in hand, such as a session snapshot, avoiding a
// redundant reparse.
func RenderTree(root *tree.Node, opts Options, priorDiags []diag.Diagnostic) (RenderResult, error) {
	diags := diag.NewBag()
	for _, d := range priorDiags {
		diags.Add(d)
	}

	var slugger render.Slugger
	switch opts.Slugger {
	case SlugGithub:
		slugger = render.GithubSlugger{}
	case SlugSimple:
		slugger = render.SimpleSlugger{}
	}

	var sb strings.Builder
	renderOpts := render.Options{
		GFM:                opts.GFM,
		Sanitize:           opts.Sanitize,
		AllowDangerousHTML: opts.AllowDangerousHTML,
		BaseHost:           opts.BaseHost,
		Highlighter:        opts.Highlighter,
		Slugger:            slugger,
		TableAlignStyle:    true,
	}
	if err := render.RenderHTML(&sb, root, renderOpts, diags); err != nil {
		return RenderResult{}, fmt.Errorf("mdcore: %w", err)
	}
	return RenderResult{HTML: sb.String(), Diagnostics: diags.Items()}, nil
}
