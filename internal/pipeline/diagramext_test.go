package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-remder/internal/diagcache"
	"github.com/alnah/go-remder/internal/diagram"
)

// recordingRender is a DiagramRenderFunc stub that records the blocks it
// was asked to resolve.
type recordingRender struct {
	blocks []diagram.Block
	entry  diagcache.Entry
	err    error
}

func (r *recordingRender) render(block diagram.Block) (diagcache.Entry, error) {
	r.blocks = append(r.blocks, block)
	if r.err != nil {
		return diagcache.Entry{}, r.err
	}
	return r.entry, nil
}

func convertWith(t *testing.T, render DiagramRenderFunc, markdown string) string {
	t.Helper()

	conv := NewGoldmarkConverter(&DiagramExtension{Render: render})
	html, err := conv.ToHTML(context.Background(), markdown)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	return html
}

func TestDiagramExtension_EmitsInlineImage(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	rec := &recordingRender{entry: diagcache.Entry{Image: png, Description: "seq"}}

	html := convertWith(t, rec.render, "```plantuml\nA->B\n```")

	if len(rec.blocks) != 1 {
		t.Fatalf("render invoked for %d blocks, want 1", len(rec.blocks))
	}
	if rec.blocks[0].Kind != diagram.KindPlantUML {
		t.Errorf("block kind = %q, want plantuml", rec.blocks[0].Kind)
	}
	if rec.blocks[0].Source != "A->B\n" {
		t.Errorf("block source = %q, want literal fence content", rec.blocks[0].Source)
	}

	wantSrc := `<img src="data:image/png;base64,` + base64.StdEncoding.EncodeToString(png) + `"`
	if !strings.Contains(html, wantSrc) {
		t.Errorf("output missing data URI image:\n%s", html)
	}
	if !strings.Contains(html, `title="seq"`) {
		t.Errorf("output missing description title:\n%s", html)
	}
	if strings.Count(html, "<img") != 1 {
		t.Errorf("output has %d img tags, want 1", strings.Count(html, "<img"))
	}
	if !strings.Contains(html, `<br /><img`) || !strings.Contains(html, `/><br />`) {
		t.Errorf("image not surrounded by line breaks:\n%s", html)
	}
}

func TestDiagramExtension_FallbackOnRenderFailure(t *testing.T) {
	t.Parallel()

	rec := &recordingRender{err: errors.New("engine raised")}

	html := convertWith(t, rec.render, "```plantuml\nA->B\n```")

	if strings.Contains(html, "<img") {
		t.Errorf("fallback output contains an image:\n%s", html)
	}
	want := "<pre><code class=\"language-plantuml\">A-&gt;B\n</code></pre>\n"
	if !strings.Contains(html, want) {
		t.Errorf("fallback output is not the default literal block:\nwant fragment %q\ngot:\n%s", want, html)
	}
}

// A failed diagram degrades that one node only; the rest of the document
// still renders.
func TestDiagramExtension_FailureDoesNotAbortDocument(t *testing.T) {
	t.Parallel()

	rec := &recordingRender{err: errors.New("timeout")}
	doc := "# Title\n\n```plantuml\nA->B\n```\n\nTrailing paragraph."

	html := convertWith(t, rec.render, doc)

	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title") {
		t.Errorf("heading lost after diagram failure:\n%s", html)
	}
	if !strings.Contains(html, "Trailing paragraph.") {
		t.Errorf("content after the failed diagram lost:\n%s", html)
	}
}

func TestDiagramExtension_IgnoresOrdinaryCodeBlocks(t *testing.T) {
	t.Parallel()

	rec := &recordingRender{entry: diagcache.Entry{Image: []byte{1}, Description: "d"}}
	doc := "```go\nfunc main() {}\n```\n\n```\nno info string\n```"

	html := convertWith(t, rec.render, doc)

	if len(rec.blocks) != 0 {
		t.Fatalf("render invoked for %d non-diagram blocks, want 0", len(rec.blocks))
	}
	if !strings.Contains(html, "<pre") || !strings.Contains(html, "func") {
		t.Errorf("ordinary code block not rendered by the default path:\n%s", html)
	}
}

func TestDiagramExtension_MultipleDiagramsOneDocument(t *testing.T) {
	t.Parallel()

	rec := &recordingRender{entry: diagcache.Entry{Image: []byte{7}, Description: "d"}}
	doc := "```plantuml\nA->B\n```\n\n```ditaa\n+--+\n```"

	html := convertWith(t, rec.render, doc)

	if len(rec.blocks) != 2 {
		t.Fatalf("render invoked for %d blocks, want 2", len(rec.blocks))
	}
	if rec.blocks[0].Kind != diagram.KindPlantUML || rec.blocks[1].Kind != diagram.KindDitaa {
		t.Errorf("block kinds = %q, %q; want plantuml, ditaa", rec.blocks[0].Kind, rec.blocks[1].Kind)
	}
	if strings.Count(html, "<img") != 2 {
		t.Errorf("output has %d img tags, want 2", strings.Count(html, "<img"))
	}
}
