package pipeline

import (
	"encoding/base64"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-remder/internal/diagcache"
	"github.com/alnah/go-remder/internal/diagram"
)

// DiagramRenderFunc resolves one diagram block to its cached or freshly
// generated artifacts. Timeout and engine failures both come back as
// errors and select fallback rendering.
type DiagramRenderFunc func(diagram.Block) (diagcache.Entry, error)

// KindDiagramBlock identifies fenced code blocks retagged as diagrams.
var KindDiagramBlock = ast.NewNodeKind("DiagramBlock")

// DiagramBlock wraps the original fenced code block so only diagram
// dialects leave the default rendering path. The fence stays attached for
// fallback rendering of the literal block.
type DiagramBlock struct {
	ast.BaseBlock
	Dialect string
	Fence   *ast.FencedCodeBlock
}

// Kind implements ast.Node.
func (n *DiagramBlock) Kind() ast.NodeKind { return KindDiagramBlock }

// Dump implements ast.Node.
func (n *DiagramBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Dialect": n.Dialect}, nil)
}

// DiagramExtension is the single extension point registered with the host
// document engine. It retags fenced code blocks whose info-string names a
// supported dialect and renders them as inline images, falling back to the
// literal code block when rendering fails. All other nodes keep the
// default path untouched.
type DiagramExtension struct {
	Render DiagramRenderFunc
}

// Compile-time interface check.
var _ goldmark.Extender = (*DiagramExtension)(nil)

// Extend implements goldmark.Extender.
func (e *DiagramExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&diagramTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&diagramNodeRenderer{render: e.Render}, 100),
	))
}

// diagramTransformer retags diagram-dialect fences before rendering so the
// highlighting and default renderers never see them.
type diagramTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *diagramTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fence, ok := n.(*ast.FencedCodeBlock); ok {
			fences = append(fences, fence)
		}
		return ast.WalkContinue, nil
	})

	for _, fence := range fences {
		kind, ok := diagram.KindForInfo(string(fence.Language(source)))
		if !ok {
			continue
		}
		block := &DiagramBlock{Dialect: kind, Fence: fence}
		parent := fence.Parent()
		parent.ReplaceChild(parent, fence, block)
	}
}

// diagramNodeRenderer renders retagged diagram blocks.
type diagramNodeRenderer struct {
	render DiagramRenderFunc
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *diagramNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiagramBlock, r.renderDiagram)
}

// renderDiagram emits an inline image for the block, or the literal code
// block in default form when generation fails or times out. One failed
// diagram never stops the rest of the document.
func (r *diagramNodeRenderer) renderDiagram(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	d := node.(*DiagramBlock)

	entry, err := r.render(diagram.Block{
		Kind:   d.Dialect,
		Source: fenceSource(source, d.Fence),
	})
	if err != nil {
		writeCodeBlock(w, source, d.Fence)
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<br /><img src="data:image/png;base64,`)
	_, _ = w.WriteString(base64.StdEncoding.EncodeToString(entry.Image))
	_, _ = w.WriteString(`" title="`)
	_, _ = w.Write(util.EscapeHTML([]byte(entry.Description)))
	_, _ = w.WriteString(`" /><br />` + "\n")
	return ast.WalkContinue, nil
}

// fenceSource reassembles the literal block content from its segments.
func fenceSource(source []byte, fence *ast.FencedCodeBlock) string {
	var sb strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// writeCodeBlock renders a fenced code block the way the default renderer
// would: language class from the info-string, HTML-escaped content.
func writeCodeBlock(w util.BufWriter, source []byte, fence *ast.FencedCodeBlock) {
	_, _ = w.WriteString("<pre><code")
	if lang := fence.Language(source); len(lang) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")

	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
}
