package inline

import (
	"unicode"
	"unicode/utf8"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanEmphasisRun consumes a run of '*' or '_' and classifies it as
// can-open/can-close by the characters surrounding it, per CommonMark's
// delimiter rules, then pushes it onto the delimiter stack for later
// resolution by resolveDelimiters.
func (p *parser) scanEmphasisRun(ch byte) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] == ch {
		p.pos++
	}
	length := p.pos - start

	before := precedingRune(p.src, start)
	after := followingRune(p.src, p.pos)

	beforeWS := isUnicodeWhitespaceOrNone(before)
	afterWS := isUnicodeWhitespaceOrNone(after)
	beforePunct := isUnicodePunct(before)
	afterPunct := isUnicodePunct(after)

	leftFlanking := !afterWS && (!afterPunct || beforeWS || beforePunct)
	rightFlanking := !beforeWS && (!beforePunct || afterWS || afterPunct)

	var canOpen, canClose bool
	switch ch {
	case '*', '~':
		canOpen, canClose = leftFlanking, rightFlanking
	default: // '_'
		canOpen = leftFlanking && (!rightFlanking || beforePunct)
		canClose = rightFlanking && (!leftFlanking || afterPunct)
	}

	node := tree.New(tree.KindText)
	node.Value = p.src[start:p.pos]
	p.out = append(p.out, node)
	p.delims = append(p.delims, &delimRun{node: node, char: ch, length: length, origLength: length, canOpen: canOpen, canClose: canClose})
}

func precedingRune(s string, idx int) rune {
	if idx == 0 {
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return r
}

func followingRune(s string, idx int) rune {
	if idx >= len(s) {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return r
}

func isUnicodeWhitespaceOrNone(r rune) bool {
	return unicode.IsSpace(r)
}

func isUnicodePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// resolveDelimiters implements the "innermost match first, strong over
// emphasis when both endpoints have >=2 delimiters" rule, scanning
// closers left to right and looking back for the nearest matching
// opener, exactly mirroring GFM strikethrough's `~~` runs through the same
// mechanism (delimRun.char=='~').
func (p *parser) resolveDelimiters(lo, hi int) {
	for i := lo; i < len(p.delims) && i < hi; i++ {
		closer := p.delims[i]
		if !closer.canClose || closer.length == 0 {
			continue
		}
		for j := i - 1; j >= lo; j-- {
			opener := p.delims[j]
			if opener.length == 0 || !opener.canOpen || opener.char != closer.char {
				continue
			}
			use := 1
			if closer.char == '~' {
				use = min2(opener.length, closer.length)
				if use > 2 {
					use = 2
				}
			} else if opener.length >= 2 && closer.length >= 2 {
				use = 2
			}
			p.wrapEmphasis(j, i, use, closer.char)
			opener.length -= use
			closer.length -= use
			if opener.length == 0 {
				opener.node.Value = ""
			} else {
				opener.node.Value = trimRight(opener.node.Value, use)
			}
			if closer.length == 0 {
				closer.node.Value = ""
			} else {
				closer.node.Value = trimLeft(closer.node.Value, use)
			}
			if closer.length > 0 {
				i--
			}
			break
		}
	}
	p.compactEmptyText()
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func trimRight(s string, n int) string { return s[:len(s)-n] }
func trimLeft(s string, n int) string  { return s[n:] }

// wrapEmphasis groups the output nodes strictly between the opener and
// closer delimiter nodes into a new Emphasis/Strong/Delete node, replacing
// that span in p.out.
func (p *parser) wrapEmphasis(openerDelimIdx, closerDelimIdx, use int, ch byte) {
	openerNode := p.delims[openerDelimIdx].node
	closerNode := p.delims[closerDelimIdx].node
	openerPos := indexOfNode(p.out, openerNode)
	closerPos := indexOfNode(p.out, closerNode)
	if openerPos < 0 || closerPos < 0 || openerPos >= closerPos {
		return
	}
	inner := append([]*tree.Node(nil), p.out[openerPos+1:closerPos]...)
	kind := tree.KindEmphasis
	if ch == '~' {
		kind = tree.KindDelete
	} else if use == 2 {
		kind = tree.KindStrong
	}
	wrapped := tree.New(kind)
	wrapped.Children = inner
	newOut := append([]*tree.Node{}, p.out[:openerPos+1]...)
	newOut = append(newOut, wrapped)
	newOut = append(newOut, p.out[closerPos:]...)
	p.out = newOut
}

func indexOfNode(nodes []*tree.Node, target *tree.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

// compactEmptyText removes Text nodes left empty by fully consumed
// delimiter runs, and merges adjacent Text nodes.
func (p *parser) compactEmptyText() {
	out := p.out[:0]
	for _, n := range p.out {
		if n.Kind == tree.KindText && n.Value == "" {
			continue
		}
		if k := len(out); k > 0 && out[k-1].Kind == tree.KindText && n.Kind == tree.KindText {
			out[k-1].Value += n.Value
			continue
		}
		out = append(out, n)
	}
	p.out = out
}
