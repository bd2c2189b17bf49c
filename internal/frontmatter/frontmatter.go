// Package frontmatter checks a document's YAML/TOML frontmatter block for
// well-formedness without ever taking ownership of its content: the raw
// text stored on the tree's Frontmatter node is never replaced, only
// validated.
package frontmatter

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// Check validates n (a KindFrontmatter node) against its declared format
// and appends a non-fatal diagnostic if the raw text doesn't parse. It
// never mutates n.Value.
func Check(n *tree.Node, diags *diag.Bag) {
	if n == nil || n.Kind != tree.KindFrontmatter {
		return
	}
	var err error
	switch n.FMFormat {
	case tree.FrontmatterTOML:
		var v map[string]any
		err = toml.Unmarshal([]byte(n.Value), &v)
	case tree.FrontmatterJSON:
		// JSON frontmatter is accepted verbatim; YAML is a JSON superset
		// so reuse the YAML decoder for the well-formedness check.
		var v any
		err = yaml.Unmarshal([]byte(n.Value), &v)
	default:
		var v any
		err = yaml.Unmarshal([]byte(n.Value), &v)
	}
	if err != nil && diags != nil {
		diags.Warn(diag.CodeFrontmatterInvalid, nil, "frontmatter (%s) failed well-formedness check: %v", n.FMFormat, err)
	}
}
