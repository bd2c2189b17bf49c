package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanFrontmatter recognizes a leading YAML (---) or TOML (+++) frontmatter
// block. The core stores the raw value without parsing it;
// internal/frontmatter performs only a well-formedness check for
// diagnostics. Matched lines are removed from s.lines so the main block
// loop never reprocesses them.
func (s *scanner) scanFrontmatter() {
	if len(s.lines) == 0 {
		return
	}
	first := strings.TrimRight(s.lines[0].text, " \t")
	var delim string
	var format tree.FrontmatterFormat
	switch first {
	case "---":
		delim, format = "---", tree.FrontmatterYAML
	case "+++":
		delim, format = "+++", tree.FrontmatterTOML
	default:
		return
	}
	end := -1
	for i := 1; i < len(s.lines); i++ {
		if strings.TrimRight(s.lines[i].text, " \t") == delim {
			end = i
			break
		}
	}
	if end < 0 {
		return
	}
	var body []string
	for i := 1; i < end; i++ {
		body = append(body, s.lines[i].text)
	}
	fm := tree.New(tree.KindFrontmatter)
	fm.FMFormat = format
	fm.Value = strings.Join(body, "\n")
	s.root.Frontmatter = fm
	s.root.Append(fm)
	s.lines = s.lines[end+1:]
}
