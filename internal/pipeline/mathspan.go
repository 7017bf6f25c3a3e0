package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathSpan is the goldmark node kind of a $…$ or $$…$$ span.
var KindMathSpan = ast.NewNodeKind("MathSpan")

// MathSpan is a dollar-delimited formula. Segment covers the delimiters too.
type MathSpan struct {
	ast.BaseInline
	Segment text.Segment
	Display bool
}

// Kind implements ast.Node.
func (n *MathSpan) Kind() ast.NodeKind {
	return KindMathSpan
}

// IsRaw implements ast.Node.
func (n *MathSpan) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *MathSpan) Dump(source []byte, level int) {
	display := "false"
	if n.Display {
		display = "true"
	}
	ast.DumpHelper(n, source, level, map[string]string{
		"Display": display,
		"Value":   string(n.Segment.Value(source)),
	}, nil)
}

// mathSpanParser claims dollar spans before emphasis parsing sees them, so
// "$a_1 * b_2$" is not read as emphasis. A span stays on one line.
type mathSpanParser struct{}

func (p *mathSpanParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathSpanParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	open := 1
	if len(line) > 1 && line[1] == '$' {
		open = 2
	}
	end := closingDollar(line, open)
	if end < 0 {
		return nil
	}
	node := &MathSpan{
		Segment: segment.WithStop(segment.Start + end + open),
		Display: open == 2,
	}
	block.Advance(end + open)
	return node
}

// closingDollar returns the offset of the closing delimiter, or -1. Inline
// spans follow the usual TeX-in-markdown rule: no space just inside either
// dollar, and no digit right after the closer, so "$5 and $10" is money.
func closingDollar(line []byte, open int) int {
	if open == 2 {
		for i := 2; i+1 < len(line); i++ {
			if line[i] == '$' && line[i+1] == '$' {
				if i == 2 {
					return -1
				}
				return i
			}
		}
		return -1
	}

	if len(line) < 3 || util.IsSpace(line[1]) {
		return -1
	}
	for i := 2; i < len(line); i++ {
		if line[i] != '$' {
			continue
		}
		if line[i-1] == '\\' || util.IsSpace(line[i-1]) {
			continue
		}
		if i+1 < len(line) && util.IsNumeric(line[i+1]) {
			return -1
		}
		return i
	}
	return -1
}

// mathSpanHTMLRenderer writes spans as escaped text inside
// <span class="math inline|display">, delimiters included.
type mathSpanHTMLRenderer struct{}

func (r *mathSpanHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathSpan, r.renderMathSpan)
}

func (r *mathSpanHTMLRenderer) renderMathSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	m := n.(*MathSpan)
	class := "math inline"
	if m.Display {
		class = "math display"
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	_, _ = w.Write(util.EscapeHTML(m.Segment.Value(source)))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

type mathSpans struct{}

// MathSpans is a goldmark extension for the $…$ and $$…$$ spans the math
// converter emits.
var MathSpans goldmark.Extender = &mathSpans{}

func (e *mathSpans) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathSpanParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathSpanHTMLRenderer{}, 500),
	))
}
