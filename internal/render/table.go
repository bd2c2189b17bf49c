package render

import "github.com/brandonbloom/mdcore/internal/tree"

func (r *renderer) renderTable(n *tree.Node) {
	r.write("<table>\n")
	for i, row := range n.Children {
		if row.Kind != tree.KindTableRow {
			continue
		}
		r.write("<tr>\n")
		for col, cell := range row.Children {
			tag := "td"
			if row.Header {
				tag = "th"
			}
			attr := r.alignAttr(n, col)
			r.write("<" + tag + attr + ">")
			r.renderInlines(cell.Children)
			r.write("</" + tag + ">\n")
		}
		r.write("</tr>\n")
		_ = i
	}
	r.write("</table>\n")
}

func (r *renderer) alignAttr(table *tree.Node, col int) string {
	if col >= len(table.Alignments) {
		return ""
	}
	align := table.Alignments[col]
	if align == tree.AlignNone {
		return ""
	}
	if r.opts.TableAlignStyle {
		return " style=\"text-align:" + align.String() + "\""
	}
	return " class=\"align-" + align.String() + "\""
}
