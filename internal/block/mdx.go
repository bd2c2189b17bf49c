package block

import (
	"strings"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// tryOpenMdxBlock implements the MDX front-end's block-scanning
// responsibilities: at a paragraph boundary, a line
// beginning with "import "/"export " becomes an MdxEsm statement, and a
// line beginning with "<" followed by an ASCII letter becomes a
// MdxJsxElement, both delegated to the JsExprParser capability for their
// end offset. The core never executes the parsed JavaScript; only raw
// source spans are stored.
func (s *scanner) tryOpenMdxBlock(ln rawLine, content string) bool {
	trimmed := strings.TrimLeft(content, " ")
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ") {
		return s.scanMdxEsm(ln, content, trimmed)
	}
	if trimmed[0] == '<' && len(trimmed) > 1 && isASCIIAlpha(trimmed[1]) {
		return s.scanMdxJsxElement(ln, content, trimmed)
	}
	return false
}

func isASCIIAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func (s *scanner) scanMdxEsm(ln rawLine, content, trimmed string) bool {
	parser := s.opts.JSExprParser
	if parser == nil {
		return false
	}
	src := []byte(trimmed)
	end, err := parser.ParseStatement(src, 0)
	if err != nil {
		s.diags.Warn(diag.CodeMdxBadImport, nil, "malformed MDX import/export statement: %v", err)
		return false
	}
	raw := strings.TrimRight(trimmed[:end], "; \t")
	node := tree.New(tree.KindMdxEsm)
	node.Raw = raw
	s.currentContainer().Append(node)
	return true
}

// scanMdxJsxElement performs a balanced angle-bracket scan for a top-level
// JSX element, delegating attribute parsing to JSExprParser.ParseExpression
// for any `{...}` attribute values. Nested elements on subsequent lines are
// not joined here (the inline pass and a richer JSX scanner would extend
// this for multi-line elements); this recognizes single-line block-level
// JSX, which covers the common MDX component-usage case.
func (s *scanner) scanMdxJsxElement(ln rawLine, content, trimmed string) bool {
	if s.opts.JSExprParser == nil {
		return false
	}
	name, attrs, selfClosing, rest, ok := parseJsxOpenTag(trimmed, s.opts.JSExprParser)
	if !ok {
		return false
	}
	el := tree.New(tree.KindMdxJsxElement)
	el.Name = name
	el.Attrs = attrs
	el.SelfClosing = selfClosing
	if !selfClosing {
		closeTag := "</" + name + ">"
		if idx := strings.LastIndex(rest, closeTag); idx >= 0 {
			inner := rest[:idx]
			if strings.TrimSpace(inner) != "" {
				text := tree.New(tree.KindText)
				text.Value = inner
				el.Append(text)
			}
		} else {
			s.diags.Warn(diag.CodeMdxUnclosedTag, nil, "unclosed MDX JSX element <%s>", name)
		}
	}
	s.currentContainer().Append(el)
	return true
}

// parseJsxOpenTag scans `<Name attr1 attr2={expr} .../>` or
// `<Name ...>...rest`, returning the element name, attributes, whether it
// is self-closing, and the remainder of the line after the opening tag.
func parseJsxOpenTag(s string, parser interface {
	ParseExpression(src []byte, offset int) (int, error)
}) (name string, attrs []tree.MdxAttr, selfClosing bool, rest string, ok bool) {
	if len(s) == 0 || s[0] != '<' {
		return "", nil, false, "", false
	}
	i := 1
	start := i
	for i < len(s) && (isASCIIAlpha(s[i]) || isASCIIAlnum(s[i]) || s[i] == '.' || s[i] == '-') {
		i++
	}
	if i == start {
		return "", nil, false, "", false
	}
	name = s[start:i]

	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			return "", nil, false, "", false
		}
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '>' {
			return name, attrs, true, s[i+2:], true
		}
		if s[i] == '>' {
			return name, attrs, false, s[i+1:], true
		}
		if s[i] == '{' {
			// spread attribute: {...expr}
			end, err := parser.ParseExpression([]byte(s), i)
			if err != nil {
				return "", nil, false, "", false
			}
			attrs = append(attrs, tree.MdxAttr{Spread: true, Expr: s[i+1 : end-1]})
			i = end
			continue
		}
		attrStart := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' && s[i] != '/' && s[i] != '>' {
			i++
		}
		attrName := s[attrStart:i]
		if attrName == "" {
			return "", nil, false, "", false
		}
		if i < len(s) && s[i] == '=' {
			i++
			if i < len(s) && s[i] == '{' {
				end, err := parser.ParseExpression([]byte(s), i)
				if err != nil {
					return "", nil, false, "", false
				}
				attrs = append(attrs, tree.MdxAttr{Name: attrName, Expr: s[i+1 : end-1]})
				i = end
				continue
			}
			if i < len(s) && (s[i] == '"' || s[i] == '\'') {
				quote := s[i]
				j := i + 1
				for j < len(s) && s[j] != quote {
					j++
				}
				attrs = append(attrs, tree.MdxAttr{Name: attrName, Value: s[i+1 : j]})
				i = j + 1
				continue
			}
			return "", nil, false, "", false
		}
		attrs = append(attrs, tree.MdxAttr{Name: attrName, Value: "true"})
	}
	return "", nil, false, "", false
}
