// Package mdx converts a parsed tree into an ES module skeleton:
// MdxEsm nodes become top-level statements, the remainder
// of the tree becomes the body of a default-exported content function
// built through a provider-injected component table. The emitter is
// deterministic; it never evaluates the JS it emits.
package mdx

import (
	"fmt"
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Options configures the emitted module's shape.
type Options struct {
	ProviderImportSource string // e.g. "@mdx-js/react"
}

// Compile renders root (as produced by block.Scan + inline.ApplyTree) into
// an ES module source string. Fatal MDX errors recorded in diags do not
// prevent emission: a best-effort module is still returned for editor
// tooling.
func Compile(root *tree.Node, opts Options, diags *diag.Bag) string {
	var sb strings.Builder

	if opts.ProviderImportSource != "" {
		fmt.Fprintf(&sb, "import { useMDXComponents as _provideComponents } from %q;\n", opts.ProviderImportSource)
	}

	var esm []string
	var body []*tree.Node
	for _, c := range root.Children {
		if c.Kind == tree.KindMdxEsm {
			esm = append(esm, strings.TrimRight(c.Raw, "\n"))
			continue
		}
		body = append(body, c)
	}
	for _, stmt := range esm {
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if root.Frontmatter != nil {
		fmt.Fprintf(&sb, "export const frontmatter = %s;\n\n", frontmatterPlaceholder(root.Frontmatter))
	}

	sb.WriteString("function _createMdxContent(props) {\n")
	if opts.ProviderImportSource != "" {
		sb.WriteString("  const _components = Object.assign({}, _provideComponents(), props.components);\n")
	} else {
		sb.WriteString("  const _components = props.components || {};\n")
	}
	sb.WriteString("  return ")
	e := &emitter{diags: diags}
	e.writeFragment(&sb, body)
	sb.WriteString(";\n}\n\n")

	sb.WriteString("export default function MDXContent(props = {}) {\n")
	sb.WriteString("  return _createMdxContent(props);\n")
	sb.WriteString("}\n")

	return sb.String()
}

// frontmatterPlaceholder emits the raw frontmatter text as a JS string
// literal: the core never parses the YAML/TOML content, so the emitted
// module defers structured access to the host toolchain.
func frontmatterPlaceholder(fm *tree.Node) string {
	return fmt.Sprintf("%q", fm.Value)
}

type emitter struct {
	diags *diag.Bag
}

func (e *emitter) writeFragment(sb *strings.Builder, nodes []*tree.Node) {
	if len(nodes) == 1 {
		e.writeNode(sb, nodes[0])
		return
	}
	sb.WriteString("React.createElement(React.Fragment, null")
	for _, n := range nodes {
		sb.WriteString(", ")
		e.writeNode(sb, n)
	}
	sb.WriteString(")")
}

func (e *emitter) writeNode(sb *strings.Builder, n *tree.Node) {
	switch n.Kind {
	case tree.KindMdxJsxElement:
		e.writeJSXElement(sb, n)
	case tree.KindParagraph:
		e.writeHostElement(sb, "p", n.Children)
	case tree.KindHeading:
		e.writeHostElement(sb, fmt.Sprintf("h%d", n.Depth), n.Children)
	case tree.KindBlockQuote:
		e.writeHostElement(sb, "blockquote", n.Children)
	case tree.KindList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		e.writeHostElement(sb, tag, n.Children)
	case tree.KindListItem:
		e.writeHostElement(sb, "li", n.Children)
	case tree.KindCodeBlock:
		fmt.Fprintf(sb, "React.createElement(%q, null, React.createElement(%q, null, %q))", "pre", "code", n.Value)
	case tree.KindThematicBreak:
		sb.WriteString(`React.createElement("hr", null)`)
	case tree.KindText:
		fmt.Fprintf(sb, "%q", n.Value)
	case tree.KindEmphasis:
		e.writeHostElement(sb, "em", n.Children)
	case tree.KindStrong:
		e.writeHostElement(sb, "strong", n.Children)
	case tree.KindDelete:
		e.writeHostElement(sb, "del", n.Children)
	case tree.KindInlineCode:
		fmt.Fprintf(sb, "React.createElement(%q, null, %q)", "code", n.Value)
	case tree.KindLink:
		fmt.Fprintf(sb, "React.createElement(%q, {href: %q}", "a", n.URL)
		e.writeChildrenArgs(sb, n.Children)
		sb.WriteString(")")
	case tree.KindImage:
		fmt.Fprintf(sb, "React.createElement(%q, {src: %q, alt: %q})", "img", n.URL, n.Alt)
	case tree.KindMdxTextExpression, tree.KindMdxFlowExpression:
		sb.WriteString("(")
		sb.WriteString(n.Raw)
		sb.WriteString(")")
	case tree.KindHardBreak:
		sb.WriteString(`React.createElement("br", null)`)
	case tree.KindSoftBreak:
		sb.WriteString(`"\n"`)
	default:
		if e.diags != nil {
			e.diags.Warn("MDX1004", nil, "MDX emitter has no host-element mapping for node kind %s; emitted as null", n.Kind)
		}
		sb.WriteString("null")
	}
}

func (e *emitter) writeHostElement(sb *strings.Builder, tag string, children []*tree.Node) {
	fmt.Fprintf(sb, "React.createElement(%q, null", tag)
	e.writeChildrenArgs(sb, children)
	sb.WriteString(")")
}

func (e *emitter) writeChildrenArgs(sb *strings.Builder, children []*tree.Node) {
	for _, c := range children {
		sb.WriteString(", ")
		e.writeNode(sb, c)
	}
}

func (e *emitter) writeJSXElement(sb *strings.Builder, n *tree.Node) {
	fmt.Fprintf(sb, "React.createElement(_components.%s || %q, {", n.Name, n.Name)
	for i, a := range n.Attrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a.Spread {
			fmt.Fprintf(sb, "...(%s)", a.Expr)
			continue
		}
		if a.Expr != "" {
			fmt.Fprintf(sb, "%s: (%s)", a.Name, a.Expr)
			continue
		}
		fmt.Fprintf(sb, "%s: %q", a.Name, a.Value)
	}
	sb.WriteString("}")
	e.writeChildrenArgs(sb, n.Children)
	sb.WriteString(")")
}
