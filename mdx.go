package mdcore

import (
	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/mdx"
)

// MDXResult is compile_mdx's return value: the emitted ES module source
// plus diagnostics. No sourcemap emitter is in scope.
type MDXResult struct {
	ESMSource   string
	Diagnostics []diag.Diagnostic
}

// CompileMDX parses source with mdx forced on and emits an ES module. A
// best-effort module is still returned even when fatal MDX diagnostics
// are present; callers gate usage on Diagnostics themselves.
func CompileMDX(source []byte, opts Options) (MDXResult, error) {
	opts.MDX = true
	res, err := Parse(source, opts)
	if err != nil {
		return MDXResult{}, err
	}
	emitDiags := diag.NewBag()
	esm := mdx.Compile(res.Tree, mdx.Options{ProviderImportSource: opts.ProviderImportSource}, emitDiags)
	diagnostics := append(append([]diag.Diagnostic{}, res.Diagnostics...), emitDiags.Items()...)
	return MDXResult{ESMSource: esm, Diagnostics: diagnostics}, nil
}
