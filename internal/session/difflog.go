package session

import (
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// unifiedDiff renders a best-effort unified diff between oldSrc and newSrc,
// trimming the common prefix/suffix lines down to a single hunk covering
// just what changed. It's attached to the CodeReparseDiverged diagnostic so
// a caller debugging an unexpected full reparse can see what triggered it.
func unifiedDiff(name string, oldSrc, newSrc string) (string, error) {
	oldLines := splitLines(oldSrc)
	newLines := splitLines(newSrc)

	prefix := commonPrefixLen(oldLines, newLines)
	suffix := commonSuffixLen(oldLines[prefix:], newLines[prefix:])

	oldMid := oldLines[prefix : len(oldLines)-suffix]
	newMid := newLines[prefix : len(newLines)-suffix]
	if len(oldMid) == 0 && len(newMid) == 0 {
		return "", nil
	}

	var body strings.Builder
	for _, l := range oldMid {
		body.WriteByte('-')
		body.WriteString(l)
		body.WriteByte('\n')
	}
	for _, l := range newMid {
		body.WriteByte('+')
		body.WriteString(l)
		body.WriteByte('\n')
	}

	fd := &diff.FileDiff{
		OrigName: name,
		NewName:  name,
		Hunks: []*diff.Hunk{{
			OrigStartLine: int32(prefix + 1),
			OrigLines:     int32(len(oldMid)),
			NewStartLine:  int32(prefix + 1),
			NewLines:      int32(len(newMid)),
			Body:          []byte(body.String()),
		}},
	}
	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	return lines
}

func commonPrefixLen(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}
