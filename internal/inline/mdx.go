package inline

import (
	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// scanMdxExpression opens a balanced-brace MDX expression span at a `{`
// that isn't already consumed by another construct, delegating to
// JSExprParser for the matching close. On imbalance it emits a diagnostic
// and lets the caller fall back to literal text for just the opening brace.
func (p *parser) scanMdxExpression() bool {
	if p.ctx.Opts.JSExprParser == nil {
		return false
	}
	end, err := p.ctx.Opts.JSExprParser.ParseExpression([]byte(p.src), p.pos)
	if err != nil {
		if p.ctx.Diags != nil {
			p.ctx.Diags.Warn(diag.CodeMdxUnbalancedExpr, nil, "unbalanced MDX expression: %v", err)
		}
		return false
	}
	node := tree.New(tree.KindMdxTextExpression)
	node.Raw = p.src[p.pos+1 : end-1]
	p.out = append(p.out, node)
	p.pos = end
	return true
}
