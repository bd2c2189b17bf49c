package block

import "strings"

// expandTabs expands tabs to the next multiple of 4 columns for
// indentation calculations. Expansion only matters at
// the start of a line for container/indent recognition, but is applied to
// the whole line for simplicity; tab characters inside already-recognized
// content (e.g. fenced code bodies) are preserved verbatim by re-deriving
// raw text from the original rawLine where needed.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	col := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			spaces := 4 - (col % 4)
			for j := 0; j < spaces; j++ {
				sb.WriteByte(' ')
			}
			col += spaces
		} else {
			sb.WriteByte(s[i])
			col++
		}
	}
	return sb.String()
}
