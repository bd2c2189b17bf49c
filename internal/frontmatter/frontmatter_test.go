package frontmatter

import (
	"testing"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

func TestCheckAcceptsValidYAML(t *testing.T) {
	n := tree.New(tree.KindFrontmatter)
	n.FMFormat = tree.FrontmatterYAML
	n.Value = "title: Hello\ntags: [a, b]\n"
	diags := diag.NewBag()
	Check(n, diags)
	if diags.Len() != 0 {
		t.Errorf("expected no diagnostics, got %v", diags.Items())
	}
	if n.Value != "title: Hello\ntags: [a, b]\n" {
		t.Error("Check must not mutate the raw frontmatter value")
	}
}

func TestCheckFlagsInvalidYAML(t *testing.T) {
	n := tree.New(tree.KindFrontmatter)
	n.FMFormat = tree.FrontmatterYAML
	n.Value = "title: [unterminated\n"
	diags := diag.NewBag()
	Check(n, diags)
	if diags.Len() == 0 {
		t.Error("expected a well-formedness diagnostic")
	}
	if diags.Items()[0].Code != diag.CodeFrontmatterInvalid {
		t.Errorf("unexpected diagnostic code: %s", diags.Items()[0].Code)
	}
}

func TestCheckFlagsInvalidTOML(t *testing.T) {
	n := tree.New(tree.KindFrontmatter)
	n.FMFormat = tree.FrontmatterTOML
	n.Value = "title = \n"
	diags := diag.NewBag()
	Check(n, diags)
	if diags.Len() == 0 {
		t.Error("expected a well-formedness diagnostic for malformed TOML")
	}
}
