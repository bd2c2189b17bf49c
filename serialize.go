package mdcore

import (
	json "github.com/goccy/go-json"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// treeJSON is the stable, language-neutral JSON form of the tree: a
// `type` discriminant, kind-specific attributes folded into the same
// object, `children`, and `position`. Property names are camelCase.
type treeJSON struct {
	Type       string          `json:"type"`
	Children   []*treeJSON     `json:"children,omitempty"`
	Position   *positionJSON   `json:"position,omitempty"`
	Value      string          `json:"value,omitempty"`
	Depth      int             `json:"depth,omitempty"`
	Ordered    bool            `json:"ordered,omitempty"`
	Start      *int            `json:"start,omitempty"`
	Checked    *bool           `json:"checked,omitempty"`
	Lang       string          `json:"lang,omitempty"`
	URL        string          `json:"url,omitempty"`
	Title      string          `json:"title,omitempty"`
	Alt        string          `json:"alt,omitempty"`
	Label      string          `json:"label,omitempty"`
	Name       string          `json:"name,omitempty"`
	Alignments []string        `json:"alignments,omitempty"`
	Raw        string          `json:"raw,omitempty"`
}

type positionJSON struct {
	Start pointJSON `json:"start"`
	End   pointJSON `json:"end"`
}

type pointJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// SerializeTree converts n into the stable JSON form described above.
func SerializeTree(n *tree.Node) ([]byte, error) {
	return json.Marshal(toTreeJSON(n))
}

func toTreeJSON(n *tree.Node) *treeJSON {
	if n == nil {
		return nil
	}
	out := &treeJSON{
		Type:    n.Kind.JSONType(),
		Value:   n.Value,
		Depth:   n.Depth,
		Ordered: n.Ordered,
		Start:   n.Start,
		Checked: n.Checked,
		Lang:    n.Lang,
		URL:     n.URL,
		Title:   n.Title,
		Alt:     n.Alt,
		Label:   n.Label,
		Name:    n.Name,
		Raw:     n.Raw,
	}
	if n.Position != nil {
		out.Position = &positionJSON{
			Start: pointJSON{Line: n.Position.Start.Line, Column: n.Position.Start.Column, Offset: n.Position.Start.Offset},
			End:   pointJSON{Line: n.Position.End.Line, Column: n.Position.End.Column, Offset: n.Position.End.Offset},
		}
	}
	for _, a := range n.Alignments {
		out.Alignments = append(out.Alignments, a.String())
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toTreeJSON(c))
	}
	return out
}

// DeserializeTree parses the JSON form produced by SerializeTree back into
// a *tree.Node. Only the fields listed in treeJSON survive the round trip;
// the rest (for example a table row's Header flag, list tightness, code
// Info/Meta, link ReferenceKind, AutolinkKind, MDX Attrs and SelfClosing,
// Data, and the root's Definitions, FootnoteDefs and Frontmatter) come
// back as zero values.
func DeserializeTree(data []byte) (*tree.Node, error) {
	var tj treeJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return nil, err
	}
	return fromTreeJSON(&tj), nil
}

func fromTreeJSON(tj *treeJSON) *tree.Node {
	if tj == nil {
		return nil
	}
	n := tree.New(tree.KindFromString(tj.Type))
	n.Value = tj.Value
	n.Depth = tj.Depth
	n.Ordered = tj.Ordered
	n.Start = tj.Start
	n.Checked = tj.Checked
	n.Lang = tj.Lang
	n.URL = tj.URL
	n.Title = tj.Title
	n.Alt = tj.Alt
	n.Label = tj.Label
	n.Name = tj.Name
	n.Raw = tj.Raw
	if tj.Position != nil {
		n.Position = &tree.Position{
			Start: tree.Point{Line: tj.Position.Start.Line, Column: tj.Position.Start.Column, Offset: tj.Position.Start.Offset},
			End:   tree.Point{Line: tj.Position.End.Line, Column: tj.Position.End.Column, Offset: tj.Position.End.Offset},
		}
	}
	for _, align := range tj.Alignments {
		n.Alignments = append(n.Alignments, tree.AlignmentFromString(align))
	}
	for _, c := range tj.Children {
		n.Children = append(n.Children, fromTreeJSON(c))
	}
	return n
}
