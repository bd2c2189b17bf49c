// Package tree defines the typed syntax tree: a tagged-variant node
// hierarchy with source positions, link/footnote definition tables, and
// optional frontmatter, assembled by the block scanner and inline parser and
// consumed by the renderer, the MDX emitter, and the session manager.
package tree

// Kind tags every node variant.
type Kind int

const (
	KindRoot Kind = iota
	KindParagraph
	KindHeading
	KindBlockQuote
	KindList
	KindListItem
	KindCodeBlock
	KindHtmlBlock
	KindThematicBreak
	KindTable
	KindTableRow
	KindTableCell
	KindFrontmatter
	KindFootnoteDefinition
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindLink
	KindImage
	KindInlineCode
	KindAutolink
	KindFootnoteReference
	KindHardBreak
	KindSoftBreak
	KindMath
	KindDirective
	KindMdxEsm
	KindMdxJsxElement
	KindMdxFlowExpression
	KindMdxTextExpression
)

var kindNames = map[Kind]string{
	KindRoot:               "root",
	KindParagraph:          "paragraph",
	KindHeading:            "heading",
	KindBlockQuote:         "blockquote",
	KindList:               "list",
	KindListItem:           "listItem",
	KindCodeBlock:          "code",
	KindHtmlBlock:          "html",
	KindThematicBreak:      "thematicBreak",
	KindTable:              "table",
	KindTableRow:           "tableRow",
	KindTableCell:          "tableCell",
	KindFrontmatter:        "frontmatter",
	KindFootnoteDefinition: "footnoteDefinition",
	KindText:               "text",
	KindEmphasis:           "emphasis",
	KindStrong:             "strong",
	KindDelete:             "delete",
	KindLink:               "link",
	KindImage:              "image",
	KindInlineCode:         "inlineCode",
	KindAutolink:           "link", // autolinks render like links; kind-specific attrs distinguish them
	KindFootnoteReference:  "footnoteReference",
	KindHardBreak:          "break",
	KindSoftBreak:          "text",
	KindMath:               "math",
	KindDirective:          "directive",
	KindMdxEsm:             "mdxjsEsm",
	KindMdxJsxElement:      "mdxJsxFlowElement",
	KindMdxFlowExpression:  "mdxFlowExpression",
	KindMdxTextExpression:  "mdxTextExpression",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// jsonTypeNames is the serialization form's `type` discriminant. It's
// kept distinct from kindNames above: that map collapses
// render-alike kinds (Autolink into "link", SoftBreak into "text") for the
// HTML renderer's convenience, which would make a serialize/deserialize
// round trip lossy if reused here.
var jsonTypeNames = map[Kind]string{
	KindRoot:               "root",
	KindParagraph:          "paragraph",
	KindHeading:            "heading",
	KindBlockQuote:         "blockquote",
	KindList:               "list",
	KindListItem:           "listItem",
	KindCodeBlock:          "code",
	KindHtmlBlock:          "html",
	KindThematicBreak:      "thematicBreak",
	KindTable:              "table",
	KindTableRow:           "tableRow",
	KindTableCell:          "tableCell",
	KindFrontmatter:        "frontmatter",
	KindFootnoteDefinition: "footnoteDefinition",
	KindText:               "text",
	KindEmphasis:           "emphasis",
	KindStrong:             "strong",
	KindDelete:             "delete",
	KindLink:               "link",
	KindImage:              "image",
	KindInlineCode:         "inlineCode",
	KindAutolink:           "autolink",
	KindFootnoteReference:  "footnoteReference",
	KindHardBreak:          "break",
	KindSoftBreak:          "softBreak",
	KindMath:               "math",
	KindDirective:          "directive",
	KindMdxEsm:             "mdxjsEsm",
	KindMdxJsxElement:      "mdxJsxFlowElement",
	KindMdxFlowExpression:  "mdxFlowExpression",
	KindMdxTextExpression:  "mdxTextExpression",
}

var jsonTypeToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(jsonTypeNames))
	for k, v := range jsonTypeNames {
		m[v] = k
	}
	return m
}()

// JSONType returns k's serialization-form type discriminant.
func (k Kind) JSONType() string {
	if s, ok := jsonTypeNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromString reverses JSONType for deserialization.
func KindFromString(s string) Kind {
	if k, ok := jsonTypeToKind[s]; ok {
		return k
	}
	return KindText
}

// Point is a single location in the source. Column counts Unicode scalar
// values, not bytes.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Position is the half-open-by-convention (but inclusive-end, per spec)
// source range of a node.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Alignment is a GFM table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// AlignmentFromString reverses Alignment.String for deserialization.
func AlignmentFromString(s string) Alignment {
	switch s {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	default:
		return AlignNone
	}
}

// ReferenceKind distinguishes the four link/image reference forms.
type ReferenceKind int

const (
	RefInline ReferenceKind = iota
	RefFull
	RefCollapsed
	RefShortcut
)

// AutolinkKind distinguishes URI vs email autolinks.
type AutolinkKind int

const (
	AutolinkURI AutolinkKind = iota
	AutolinkEmail
)

// FrontmatterFormat is the raw frontmatter block's declared syntax.
type FrontmatterFormat int

const (
	FrontmatterYAML FrontmatterFormat = iota
	FrontmatterTOML
	FrontmatterJSON
)

func (f FrontmatterFormat) String() string {
	switch f {
	case FrontmatterTOML:
		return "toml"
	case FrontmatterJSON:
		return "json"
	default:
		return "yaml"
	}
}

// Definition is a link-reference definition keyed by normalized label.
type Definition struct {
	Label string
	URL   string
	Title string
}

// FootnoteDef is a footnote definition's content, keyed by normalized label.
type FootnoteDef struct {
	Label   string
	Content []*Node
}

// MdxAttr is one JSX attribute: either name=value, name={expr}, or a spread.
type MdxAttr struct {
	Name   string
	Value  string
	Expr   string
	Spread bool
}

// Node is the single tagged-variant type for every tree element. Only the
// fields relevant to Kind are populated, trading a larger struct for one
// concrete type instead of an interface-and-N-structs hierarchy.
type Node struct {
	Kind     Kind
	Position *Position // not populated by the block scanner or inline parser: nil in parsed trees whatever the position option says
	Data     map[string]any
	Children []*Node

	// Root
	Definitions   map[string]*Definition
	FootnoteDefs  map[string]*FootnoteDef
	Frontmatter   *Node

	// Heading
	Depth  int
	Setext bool

	// List / ListItem
	Ordered     bool
	Start       *int
	Tight       bool
	LooseMarker bool
	Checked     *bool

	// CodeBlock
	Info  string
	Lang  string
	Meta  string
	Value string

	// HtmlBlock
	RawKind int

	// Table
	Alignments []Alignment

	// TableRow
	Header bool

	// Frontmatter node
	FMFormat FrontmatterFormat

	// FootnoteDefinition / FootnoteReference
	Label string

	// Link / Image
	URL             string
	Title           string
	Alt             string
	ReferenceKind   ReferenceKind

	// Autolink
	AutolinkKind AutolinkKind

	// MdxJsxElement
	Name         string
	Attrs        []MdxAttr
	SelfClosing  bool

	// MdxEsm / MdxFlowExpression / MdxTextExpression
	Raw string
}

// New allocates a Node of the given kind. Nodes are built during a single
// parse pass and are immutable afterward; callers should stop mutating a
// Node once it has been linked under Root.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Append adds a child and returns the parent for chaining, matching the
// builder style used throughout the block scanner.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Text returns the flattened textual content of an inline subtree, used for
// Image.Alt and for diagnostics that need plain text from a node.
func Text(n *Node) string {
	var sb []byte
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindText, KindInlineCode:
			sb = append(sb, n.Value...)
		case KindSoftBreak:
			sb = append(sb, ' ')
		case KindHardBreak:
			sb = append(sb, '\n')
		default:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return string(sb)
}
