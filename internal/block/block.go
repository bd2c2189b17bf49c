// Package block implements the single linear pass over logical lines: it
// classifies each line into block openers and continuations, producing a
// tree whose leaf blocks (paragraphs, headings, table cells) still carry
// raw, un-parsed text for the inline parser's second pass.
//
// The scanner is an explicit loop over a stack of open containers, not
// recursive descent: CommonMark's interruption and lazy-continuation rules
// don't compose well with recursion that mirrors the grammar.
package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/mdx/jsexpr"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Options configures which block-level constructs the scanner recognizes.
type Options struct {
	GFM             bool
	MDX             bool
	Frontmatter     bool
	Math            bool
	Directives      bool
	Position        bool
	MaxNestingDepth int
	JSExprParser    jsexpr.Parser
}

// containerKind distinguishes the open-container stack entries. Document is
// always stack[0].
type containerKind int

const (
	cDocument containerKind = iota
	cBlockQuote
	cList
	cListItem
)

type container struct {
	kind    containerKind
	node    *tree.Node
	ordered bool
	marker  byte
	start   int
	// contentCol is the column (1-based, post tab-expansion) at which a
	// list item's content begins; continuation lines must be indented at
	// least this far.
	contentCol int
}

// openLeaf tracks the in-progress leaf block (paragraph, fenced/indented
// code, html block) that raw lines are being appended to.
type leafKind int

const (
	lNone leafKind = iota
	lParagraph
	lIndentedCode
	lFencedCode
	lHTMLBlock
	lLinkRefCandidate
	lMathBlock
	lDirectiveBlock
)

type scanner struct {
	lines []rawLine
	opts  Options
	diags *diag.Bag

	stack []container

	leaf        leafKind
	leafNode    *tree.Node
	leafLines   []string
	fenceChar   byte
	fenceLen    int
	fenceIndent int
	htmlEndCond int // html block type, governs close condition

	root *tree.Node
}

type rawLine struct {
	text   string // without trailing \n
	offset int    // byte offset of line start in the normalized source
}

// Scan runs the block pass over normalized source (LF line endings, NUL
// already replaced) and returns a tree whose inline-bearing nodes still
// hold their raw text in Node.Value, ready for internal/inline's second
// pass.
func Scan(src string, opts Options, diags *diag.Bag) *tree.Node {
	s := &scanner{opts: opts, diags: diags}
	s.root = tree.New(tree.KindRoot)
	s.root.Definitions = map[string]*tree.Definition{}
	s.root.FootnoteDefs = map[string]*tree.FootnoteDef{}
	s.stack = []container{{kind: cDocument, node: s.root}}

	s.splitLines(src)

	if opts.Frontmatter {
		s.scanFrontmatter()
	}

	for _, ln := range s.lines {
		s.processLine(ln)
	}
	s.closeLeaf()
	s.closeContainersAbove(0)
	extractFootnoteDefinitions(s.root)
	return s.root
}

// extractFootnoteDefinitions removes FootnoteDefinition nodes from the
// visible tree and records their content on Root.FootnoteDefs, mirroring
// how link-reference definitions are indexed rather than rendered.
func extractFootnoteDefinitions(root *tree.Node) {
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		kept := n.Children[:0]
		for _, child := range n.Children {
			if child.Kind == tree.KindFootnoteDefinition {
				norm := normalizeLabel(child.Label)
				if def, ok := root.FootnoteDefs[norm]; ok {
					def.Content = child.Children
				}
				continue
			}
			walk(child)
			kept = append(kept, child)
		}
		n.Children = kept
	}
	walk(root)
}

func (s *scanner) splitLines(src string) {
	offset := 0
	for {
		idx := strings.IndexByte(src, '\n')
		if idx < 0 {
			if len(src) > 0 {
				s.lines = append(s.lines, rawLine{text: src, offset: offset})
			}
			return
		}
		s.lines = append(s.lines, rawLine{text: src[:idx], offset: offset})
		offset += idx + 1
		src = src[idx+1:]
	}
}

// processLine runs containment matching, container opening, and leaf-block
// classification for a single logical line.
func (s *scanner) processLine(ln rawLine) {
	text := expandTabs(ln.text)
	pos := 0 // byte index into text already consumed by continuation/opening

	matched := s.matchContinuations(text)
	s.closeContainersAbove(matched)
	pos = s.continuationPrefixLen(text, matched)

	// Blank line: closes an open paragraph, but continues fenced
	// code/html/math/directive blocks.
	rest := text[pos:]
	if strings.TrimSpace(rest) == "" {
		if s.leaf == lHTMLBlock && (s.htmlEndCond == 6 || s.htmlEndCond == 7) {
			s.closeLeaf()
			return
		}
		if s.leaf == lFencedCode || s.leaf == lHTMLBlock || s.leaf == lMathBlock || s.leaf == lDirectiveBlock {
			s.appendLeafLine(ln, "")
			return
		}
		s.closeLeaf()
		return
	}

	// Try opening new containers (blockquote, list) repeatedly.
	for {
		if ok, newPos := s.tryOpenBlockQuote(text, pos); ok {
			s.closeLeaf()
			pos = newPos
			continue
		}
		if ok, newPos := s.tryOpenList(text, pos); ok {
			s.closeLeaf()
			pos = newPos
			continue
		}
		if ok, newPos := s.tryOpenFootnoteDefinition(text, pos); ok {
			s.closeLeaf()
			pos = newPos
			continue
		}
		break
	}

	s.scanLeaf(ln, text, pos)
}

// matchContinuations walks the container stack (skipping the document) and
// returns how many containers (including the document) still continue on
// this raw line.
func (s *scanner) matchContinuations(text string) int {
	matched := 1 // document always continues
	pos := 0
	for i := 1; i < len(s.stack); i++ {
		c := s.stack[i]
		switch c.kind {
		case cBlockQuote:
			trimmed := strings.TrimLeft(text[pos:], " ")
			indent := len(text[pos:]) - len(trimmed)
			if indent > 3 || !strings.HasPrefix(trimmed, ">") {
				return matched
			}
		case cListItem:
			indent := leadingSpaces(text[pos:])
			if strings.TrimSpace(text[pos:]) == "" {
				// Blank line inside a list item still "continues" it;
				// final emptiness is handled by the blank-line branch.
			} else if indent < c.contentCol-columnAt(text, pos) {
				return matched
			}
		}
		matched++
	}
	return matched
}

func columnAt(text string, byteOffset int) int {
	return byteOffset + 1
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// continuationPrefixLen recomputes and consumes the prefix bytes belonging
// to the first `matched` containers (document plus any still-open
// blockquote/list-item markers), returning the byte offset in text where
// the remaining content starts.
func (s *scanner) continuationPrefixLen(text string, matched int) int {
	pos := 0
	for i := 1; i < matched && i < len(s.stack); i++ {
		c := s.stack[i]
		switch c.kind {
		case cBlockQuote:
			rest := text[pos:]
			trimmed := strings.TrimLeft(rest, " ")
			indent := len(rest) - len(trimmed)
			if indent <= 3 && strings.HasPrefix(trimmed, ">") {
				pos += indent + 1
				if pos < len(text) && text[pos] == ' ' {
					pos++
				}
			}
		case cListItem:
			avail := len(text) - pos
			take := c.contentCol - 1 - pos
			if take > avail {
				take = avail
			}
			if take > 0 {
				pos += take
			}
		}
	}
	return pos
}

func (s *scanner) closeContainersAbove(n int) {
	for len(s.stack) > n {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *scanner) currentContainer() *tree.Node {
	return s.stack[len(s.stack)-1].node
}

func (s *scanner) nestingOK() bool {
	max := s.opts.MaxNestingDepth
	if max <= 0 {
		max = 100
	}
	return len(s.stack) <= max
}
