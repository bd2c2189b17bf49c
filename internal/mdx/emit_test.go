package mdx

import (
	"strings"
	"testing"

	"github.com/brandonbloom/mdcore/internal/tree"
)

func TestCompileEmitsImportAndDefaultExport(t *testing.T) {
	esm := tree.New(tree.KindMdxEsm)
	esm.Raw = "import B from './b'"

	jsx := tree.New(tree.KindMdxJsxElement)
	jsx.Name = "B"
	jsx.Attrs = []tree.MdxAttr{{Name: "x", Expr: "1+2"}}
	hi := tree.New(tree.KindText)
	hi.Value = "hi"
	jsx.Children = []*tree.Node{hi}

	root := tree.New(tree.KindRoot)
	root.Children = []*tree.Node{esm, jsx}

	out := Compile(root, Options{}, nil)
	if !strings.HasPrefix(out, "import B from './b'") {
		t.Errorf("expected ESM import to lead the module, got %q", out)
	}
	if !strings.Contains(out, "export default function MDXContent") {
		t.Errorf("missing default export: %q", out)
	}
	if !strings.Contains(out, `_components.B`) {
		t.Errorf("expected component resolution through _components, got %q", out)
	}
	if !strings.Contains(out, "x: (1+2)") {
		t.Errorf("expected expression attribute passthrough, got %q", out)
	}
}

func TestCompileWithProviderImportSource(t *testing.T) {
	root := tree.New(tree.KindRoot)
	out := Compile(root, Options{ProviderImportSource: "@mdx-js/react"}, nil)
	if !strings.Contains(out, `import { useMDXComponents as _provideComponents } from "@mdx-js/react"`) {
		t.Errorf("missing provider import: %q", out)
	}
	if !strings.Contains(out, "_provideComponents()") {
		t.Errorf("expected provider to be merged into components: %q", out)
	}
}

func TestCompileEmitsFrontmatterExport(t *testing.T) {
	root := tree.New(tree.KindRoot)
	fm := tree.New(tree.KindFrontmatter)
	fm.Value = "title: Hi\n"
	root.Frontmatter = fm

	out := Compile(root, Options{}, nil)
	if !strings.Contains(out, "export const frontmatter =") {
		t.Errorf("missing frontmatter export: %q", out)
	}
}
