// Package session implements the incremental-reparse session manager: a
// persistent (buffer, tree) pair that applies byte-range edits, reparses
// only the affected blocks, and splices the new nodes back into the old
// tree, preserving untouched node identity.
package session

import (
	"fmt"
	"strings"

	"github.com/brandonbloom/mdcore/internal/block"
	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/gfm"
	"github.com/brandonbloom/mdcore/internal/inline"
	"github.com/brandonbloom/mdcore/internal/rope"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Options is the subset of parse options a session needs on every
// (re)parse; it mirrors mdcore.Options without importing the root package
// (which itself depends on session), avoiding an import cycle.
type Options struct {
	GFM             bool
	MDX             bool
	Frontmatter     bool
	Math            bool
	Directives      bool
	MaxNestingDepth int
	JSExprParser    jsExprParser
}

// jsExprParser is a local alias of jsexpr.Parser's method set, so this
// package doesn't need to import internal/mdx/jsexpr just for the type
// name; block.Options.JSExprParser is structurally compatible.
type jsExprParser = interface {
	ParseStatement(src []byte, offset int) (int, error)
	ParseExpression(src []byte, offset int) (int, error)
}

func (o Options) blockOptions() block.Options {
	return block.Options{
		GFM:             o.GFM,
		MDX:             o.MDX,
		Frontmatter:     o.Frontmatter,
		Math:            o.Math,
		Directives:      o.Directives,
		MaxNestingDepth: o.MaxNestingDepth,
		JSExprParser:    o.JSExprParser,
	}
}

func (o Options) inlineOptions() inline.Options {
	return inline.Options{GFM: o.GFM, MDX: o.MDX, Math: o.Math, Directives: o.Directives, JSExprParser: o.JSExprParser}
}

// Edit is a single replace-range-with-text operation in pre-edit byte
// offsets.
type Edit struct {
	Start, End int
	Text       string
}

// Delta reports what changed after EditSession.
type Delta struct {
	Removed       int  // count of top-level nodes removed
	Inserted      int  // count of top-level nodes inserted
	Reused        int  // count of top-level nodes preserved by identity
	FullReparse   bool // true if the debug-mode fallback ran
}

// Session is a persistent (buffer, tree) pair supporting incremental edits.
type Session struct {
	ID    string
	Opts  Options
	Diags *diag.Bag

	buf  *rope.Rope
	root *tree.Node
}

// New parses src and returns a Session ready for incremental edits.
func New(id string, src string, opts Options) (*Session, *diag.Bag) {
	diags := diag.NewBag()
	s := &Session{ID: id, Opts: opts, Diags: diags, buf: rope.New([]byte(src))}
	s.root = fullParse(src, opts, diags)
	return s, diags
}

// Snapshot returns the current tree. Callers must not mutate it.
func (s *Session) Snapshot() *tree.Node {
	return s.root
}

// Source returns the session's current buffer contents.
func (s *Session) Source() string {
	return string(s.buf.Bytes())
}

func fullParse(src string, opts Options, diags *diag.Bag) *tree.Node {
	root := block.Scan(src, opts.blockOptions(), diags)
	if opts.GFM {
		gfm.TransformTables(root, diags)
		gfm.TransformTaskLists(root)
	}
	inline.ApplyTree(root, opts.inlineOptions(), diags)
	if opts.GFM {
		gfm.AssignFootnoteNumbers(root)
	}
	return root
}

// Edit applies edits (in original, pre-edit offsets, left-to-right) and
// reparses only the blocks whose byte range the edits touched, splicing
// the result back into the tree.
//
// This implementation expands the dirty range to the nearest blank-line
// separated top-level chunk boundary rather than consulting per-node
// Position spans (the block scanner does not yet record those); see
// DESIGN.md for the tradeoff. A dirty range that can't be cleanly mapped
// back onto chunk boundaries (e.g. because GFM table/footnote definitions
// spanning multiple chunks were affected) falls back to a full reparse.
func (s *Session) Edit(edits []Edit) (Delta, error) {
	oldSrc := string(s.buf.Bytes())
	buf := s.buf
	dirtyStart, dirtyEnd := -1, -1
	cumulativeDelta := 0

	for _, e := range edits {
		start, end := e.Start+cumulativeDelta, e.End+cumulativeDelta
		if start < 0 || end > buf.Len() || start > end {
			return Delta{}, fmt.Errorf("session: edit [%d,%d) out of bounds (len=%d): %w", e.Start, e.End, buf.Len(), rope.ErrOutOfRange)
		}
		next, res, err := buf.Splice(start, end, []byte(e.Text))
		if err != nil {
			return Delta{}, fmt.Errorf("session: invalid patch: %w", err)
		}
		buf = next
		cumulativeDelta += res.DeltaBytes

		if dirtyStart == -1 || start < dirtyStart {
			dirtyStart = start
		}
		if end := res.NewEnd; dirtyEnd == -1 || end > dirtyEnd {
			dirtyEnd = end
		}
	}

	newSrc := string(buf.Bytes())
	delta, ok := s.tryIncremental(oldSrc, newSrc, dirtyStart, dirtyEnd)
	if !ok {
		msg := "incremental reparse could not map dirty range cleanly; falling back to full reparse"
		if d, err := unifiedDiff(s.ID, oldSrc, newSrc); err == nil && d != "" {
			msg += "\n" + d
		}
		s.Diags.Warn(diag.CodeReparseDiverged, nil, msg)
		s.root = fullParse(newSrc, s.Opts, s.Diags)
		delta = Delta{Removed: -1, Inserted: -1, FullReparse: true}
	}
	s.buf = buf
	return delta, nil
}

// tryIncremental attempts the reuse path: it splits both the old
// and new source into blank-line-delimited top-level chunks, identifies the
// chunks overlapping the dirty byte range, reparses just the replacement
// span, and splices the resulting nodes into s.root.Children in place of
// the old ones. It reports ok=false whenever the chunk layout doesn't line
// up cleanly, letting the caller fall back to a full reparse.
func (s *Session) tryIncremental(oldSrc, newSrc string, dirtyStart, dirtyEnd int) (Delta, bool) {
	oldChunks := splitChunks(oldSrc)
	if len(oldChunks) != len(s.root.Children) {
		return Delta{}, false // frontmatter or other non-chunk children present
	}

	firstIdx, lastIdx := -1, -1
	for i, c := range oldChunks {
		if c.end <= dirtyStart {
			continue
		}
		if c.start >= dirtyEnd {
			break
		}
		if firstIdx == -1 {
			firstIdx = i
		}
		lastIdx = i
	}
	if firstIdx == -1 {
		// The dirty range fell entirely within inter-chunk whitespace;
		// still must reparse since blank-line structure may have changed.
		firstIdx = 0
		lastIdx = len(oldChunks) - 1
		if lastIdx < 0 {
			return Delta{}, false
		}
	}

	expandedStart := oldChunks[firstIdx].start
	expandedEnd := oldChunks[lastIdx].end

	deltaBytes := len(newSrc) - len(oldSrc)
	newExpandedEnd := expandedEnd + deltaBytes
	if newExpandedEnd < expandedStart || newExpandedEnd > len(newSrc) {
		return Delta{}, false
	}
	fragment := newSrc[expandedStart:newExpandedEnd]

	fragDiags := diag.NewBag()
	fragRoot := fullParse(fragment, s.Opts, fragDiags)
	// A fragment reparse can't resolve link/footnote references defined
	// outside the dirty span; if it introduced any unresolved reference
	// diagnostics, the safer move is a full reparse rather than a tree with
	// spurious warnings.
	for _, d := range fragDiags.Items() {
		if d.Code == diag.CodeUnresolvedRef || d.Code == diag.CodeUnresolvedFootnote {
			return Delta{}, false
		}
	}
	s.Diags.Merge(fragDiags)

	removed := lastIdx - firstIdx + 1
	inserted := len(fragRoot.Children)
	newChildren := make([]*tree.Node, 0, len(s.root.Children)-removed+inserted)
	newChildren = append(newChildren, s.root.Children[:firstIdx]...)
	newChildren = append(newChildren, fragRoot.Children...)
	newChildren = append(newChildren, s.root.Children[lastIdx+1:]...)

	reused := len(s.root.Children) - removed
	s.root.Children = newChildren
	if s.root.Definitions == nil {
		s.root.Definitions = map[string]*tree.Definition{}
	}
	for k, v := range fragRoot.Definitions {
		s.root.Definitions[k] = v
	}
	if s.root.FootnoteDefs == nil {
		s.root.FootnoteDefs = map[string]*tree.FootnoteDef{}
	}
	for k, v := range fragRoot.FootnoteDefs {
		s.root.FootnoteDefs[k] = v
	}

	return Delta{Removed: removed, Inserted: inserted, Reused: reused}, true
}

type chunk struct {
	start, end int // byte range in its source, end exclusive
}

// splitChunks partitions src into maximal runs separated by one-or-more
// blank lines, approximating top-level block boundaries. This is a
// deliberate simplification over true per-node Position tracking; see
// DESIGN.md.
func splitChunks(src string) []chunk {
	var chunks []chunk
	n := len(src)
	i := 0
	for i < n {
		for i < n && isBlankRun(src, i) {
			i = nextLineStart(src, i)
		}
		if i >= n {
			break
		}
		start := i
		for i < n && !isBlankRun(src, i) {
			i = nextLineStart(src, i)
		}
		chunks = append(chunks, chunk{start: start, end: i})
	}
	return chunks
}

func isBlankRun(src string, i int) bool {
	end := nextLineStart(src, i)
	return strings.TrimSpace(src[i:end]) == ""
}

func nextLineStart(src string, i int) int {
	idx := strings.IndexByte(src[i:], '\n')
	if idx < 0 {
		return len(src)
	}
	return i + idx + 1
}
