// Package gfm implements the GitHub-Flavored Markdown extension layer:
// tables, strikethrough, task lists, extended autolinks, and
// footnotes. It operates as a post-block-scan tree transform (tables,
// footnotes, task lists) plus inline-parser hooks (strikethrough, extended
// autolinks) that internal/inline calls directly when Options.GFM is set.
package gfm

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// TransformTables walks the block tree looking for paragraphs whose raw
// text matches the header-row + delimiter-row table grammar and rewrites
// them into Table nodes in place.
func TransformTables(root *tree.Node, diags *diag.Bag) {
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		for i, child := range n.Children {
			if child.Kind == tree.KindParagraph {
				if table, ok := tryBuildTable(child.Value, diags); ok {
					n.Children[i] = table
					continue
				}
			}
			walk(child)
		}
	}
	walk(root)
}

func tryBuildTable(value string, diags *diag.Bag) (*tree.Node, bool) {
	lines := strings.Split(value, "\n")
	if len(lines) < 2 {
		return nil, false
	}
	header := splitTableRow(lines[0])
	aligns, ok := parseDelimiterRow(lines[1])
	if !ok || len(aligns) == 0 {
		return nil, false
	}
	if len(header) == 0 {
		return nil, false
	}

	table := tree.New(tree.KindTable)
	table.Alignments = aligns
	headerRow := buildRow(header, aligns, true)
	table.Append(headerRow)

	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			diags.Warn(diag.CodeMalformedTable, nil, "blank line inside GFM table body")
			continue
		}
		cells := splitTableRow(line)
		table.Append(buildRow(cells, aligns, false))
	}
	return table, true
}

func buildRow(cells []string, aligns []tree.Alignment, header bool) *tree.Node {
	row := tree.New(tree.KindTableRow)
	row.Header = header
	n := len(aligns)
	for i := 0; i < n; i++ {
		cell := tree.New(tree.KindTableCell)
		if i < len(cells) {
			cell.Value = strings.TrimSpace(cells[i])
		}
		row.Append(cell)
	}
	return row
}

// splitTableRow splits a `| a | b |` row into cells, honoring a leading/
// trailing pipe and escaped pipes (`\|`) inside cell content.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) && line[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if line[i] == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(line[i])
	}
	cells = append(cells, cur.String())
	return cells
}

// parseDelimiterRow recognizes `|---|:-:|--:|` style rows and returns the
// per-column alignment, or ok=false if the row isn't a valid delimiter row.
func parseDelimiterRow(line string) ([]tree.Alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]tree.Alignment, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.Trim(c, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, tree.AlignCenter)
		case left:
			aligns = append(aligns, tree.AlignLeft)
		case right:
			aligns = append(aligns, tree.AlignRight)
		default:
			aligns = append(aligns, tree.AlignNone)
		}
	}
	return aligns, true
}
