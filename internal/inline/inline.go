// Package inline implements the second parsing pass: re-entering
// each inline-bearing block's raw text and resolving emphasis runs, code
// spans, links, images, autolinks, hard breaks, GFM strikethrough, and MDX
// expression spans, using the link-reference and footnote-definition
// tables the block scanner gathered.
package inline

import (
	"strings"
	"unicode/utf8"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/mdx/jsexpr"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Options configures which inline constructs the parser recognizes.
type Options struct {
	GFM          bool
	MDX          bool
	Math         bool
	Directives   bool
	JSExprParser jsexpr.Parser
}

// Context carries the per-document tables the inline pass consults.
type Context struct {
	Definitions  map[string]*tree.Definition
	FootnoteDefs map[string]*tree.FootnoteDef
	Opts         Options
	Diags        *diag.Bag
}

// delimRun is a pending emphasis/strikethrough delimiter on the working
// stack, following CommonMark's "delimiter stack" algorithm.
type delimRun struct {
	node            *tree.Node // the Text node holding the literal run (shrunk as matches are found)
	char            byte
	length          int
	origLength      int
	canOpen, canClose bool
}

// bracketMark is a pending `[` or `![` opener on the stack.
type bracketMark struct {
	index  int // index into out where the opener would be; markers aren't materialized as nodes
	isImage bool
	active bool
	textStart int // index into out of first node after the opener
}

type parser struct {
	ctx     *Context
	src     string
	pos     int
	out     []*tree.Node
	delims  []*delimRun
	brackets []*bracketMark
}

// Parse resolves the raw text of a single inline-bearing block into a
// sequence of inline nodes.
func Parse(raw string, ctx *Context) []*tree.Node {
	p := &parser{ctx: ctx, src: raw}
	p.run()
	p.resolveDelimiters(0, len(p.delims))
	if ctx.Opts.GFM {
		p.out = applyExtendedAutolinks(p.out)
	}
	return p.out
}

func (p *parser) run() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '`':
			p.scanCodeSpan()
		case c == '\\':
			p.scanBackslashEscape()
		case c == '\n':
			p.scanLineBreak()
		case c == '!' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '[':
			p.openBracket(true)
		case c == '[':
			p.openBracket(false)
		case c == ']':
			p.closeBracket()
		case c == '*' || c == '_':
			p.scanEmphasisRun(c)
		case p.ctx.Opts.GFM && c == '~':
			p.scanStrikethroughRun()
		case c == '<':
			if !p.scanAutolinkOrHTML() {
				p.appendText(string(c))
				p.pos++
			}
		case p.ctx.Opts.MDX && c == '{':
			if !p.scanMdxExpression() {
				p.appendText(string(c))
				p.pos++
			}
		case p.ctx.Opts.Math && c == '$':
			if !p.scanInlineMath() {
				p.appendText(string(c))
				p.pos++
			}
		case p.ctx.Opts.Directives && c == ':':
			if !p.scanTextDirective() {
				p.appendText(string(c))
				p.pos++
			}
		default:
			p.scanTextRun()
		}
	}
}

// appendText appends literal text to the last node if it's a mergeable
// Text node, or starts a new one.
func (p *parser) appendText(s string) {
	if s == "" {
		return
	}
	if n := len(p.out); n > 0 && p.out[n-1].Kind == tree.KindText {
		p.out[n-1].Value += s
		return
	}
	node := tree.New(tree.KindText)
	node.Value = s
	p.out = append(p.out, node)
}

// scanTextRun consumes a maximal run of characters with no special inline
// meaning.
func (p *parser) scanTextRun() {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if strings.IndexByte("`\\\n[]*_~<{!$:", c) >= 0 {
			break
		}
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if size == 0 {
			size = 1
		}
		p.pos += size
	}
	if p.pos == start {
		// Lone special character with no handler (e.g. bare GFM-off '~').
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if size == 0 {
			size = 1
		}
		p.appendText(p.src[start : start+size])
		p.pos += size
		return
	}
	p.appendText(p.src[start:p.pos])
}

func (p *parser) scanBackslashEscape() {
	if p.pos+1 < len(p.src) && isASCIIPunct(p.src[p.pos+1]) {
		p.appendText(p.src[p.pos+1 : p.pos+2])
		p.pos += 2
		return
	}
	if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\n' {
		p.out = append(p.out, tree.New(tree.KindHardBreak))
		p.pos += 2
		return
	}
	p.appendText("\\")
	p.pos++
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

// scanLineBreak turns a newline into a SoftBreak, or a HardBreak if
// preceded by >=2 trailing spaces (the preceding Text node's trailing
// spaces are trimmed either way).
func (p *parser) scanLineBreak() {
	hard := false
	if n := len(p.out); n > 0 && p.out[n-1].Kind == tree.KindText {
		trimmed := strings.TrimRight(p.out[n-1].Value, " ")
		trailing := len(p.out[n-1].Value) - len(trimmed)
		if trailing >= 2 {
			hard = true
		}
		p.out[n-1].Value = trimmed
	}
	if hard {
		p.out = append(p.out, tree.New(tree.KindHardBreak))
	} else {
		p.out = append(p.out, tree.New(tree.KindSoftBreak))
	}
	p.pos++
	// Leading spaces of the next line don't start the next text run.
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
