// Package mdcore is the public entry point of the Markdown/MDX processing
// engine: two-pass CommonMark parsing with GFM extensions, HTML rendering
// with default-on sanitization, MDX compilation to an ES module, and an
// incremental-reparse session manager. Internal packages hold the grammar,
// tree invariants, and scanners; this package wires them together and is
// the only import path external callers need.
package mdcore

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brandonbloom/mdcore/internal/block"
	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/frontmatter"
	"github.com/brandonbloom/mdcore/internal/gfm"
	"github.com/brandonbloom/mdcore/internal/inline"
	"github.com/brandonbloom/mdcore/internal/mdx/jsexpr"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Result is parse's return value: the tree plus diagnostics accumulated
// along the way, any parsed frontmatter node, and size/shape stats.
type Result struct {
	Tree        *tree.Node
	Diagnostics []diag.Diagnostic
	Frontmatter *tree.Node
	Stats       Stats
}

// Stats reports size/shape counters useful to callers instrumenting their
// own pipelines; not part of any invariant.
type Stats struct {
	InputBytes int
	NodeCount  int
	TreeDepth  int
}

// Parse runs the two-pass CommonMark/GFM/MDX parser over source and
// returns a Result. Input errors (bad encoding, oversized input) are
// fatal: no tree is returned, and the error is non-nil.
func Parse(source []byte, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if opts.JSExprParser == nil {
		opts.JSExprParser = jsexpr.BalancedParser{}
	}
	if int64(len(source)) > opts.MaxInputBytes && opts.MaxInputBytes > 0 {
		return Result{}, fmt.Errorf("mdcore: input is %d bytes, exceeds max_input_bytes %d (%s)", len(source), opts.MaxInputBytes, diag.CodeInputTooLarge)
	}
	if !utf8.Valid(source) {
		return Result{}, fmt.Errorf("mdcore: input is not valid UTF-8 (%s)", diag.CodeInvalidEncoding)
	}

	src := normalize(source)
	diags := diag.NewBag()

	root := block.Scan(src, blockOptions(opts, diags), diags)

	if opts.GFM {
		gfm.TransformTables(root, diags)
		gfm.TransformTaskLists(root)
	}

	inline.ApplyTree(root, inlineOptions(opts), diags)

	if opts.GFM {
		gfm.AssignFootnoteNumbers(root)
	}

	if root.Frontmatter != nil {
		frontmatter.Check(root.Frontmatter, diags)
	}

	if diags.HasFatal() {
		return Result{}, fmt.Errorf("mdcore: parse failed: %s", diags.Items()[0].Message)
	}

	return Result{
		Tree:        root,
		Diagnostics: diags.Items(),
		Frontmatter: root.Frontmatter,
		Stats: Stats{
			InputBytes: len(source),
			NodeCount:  tree.Count(root),
			TreeDepth:  tree.Depth(root),
		},
	}, nil
}

// normalize applies the buffer normalization every parse starts from:
// CRLF/CR to LF, NUL to U+FFFD.
func normalize(source []byte) string {
	s := string(source)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "�")
	return s
}

func blockOptions(opts Options, diags *diag.Bag) block.Options {
	nesting := opts.MaxNestingDepth
	if nesting <= 0 {
		nesting = DefaultMaxNestingDepth
	}
	return block.Options{
		GFM:             opts.GFM,
		MDX:             opts.MDX,
		Frontmatter:     opts.Frontmatter,
		Math:            opts.Math,
		Directives:      opts.Directives,
		Position:        opts.Position,
		MaxNestingDepth: nesting,
		JSExprParser:    opts.JSExprParser,
	}
}

func inlineOptions(opts Options) inline.Options {
	return inline.Options{GFM: opts.GFM, MDX: opts.MDX, Math: opts.Math, Directives: opts.Directives, JSExprParser: opts.JSExprParser}
}
