package markdown_test

import (
	"strings"
	"testing"

	"sprintbell/internal/platform/markdown"
)

func TestDocumentRenderParseKeepsMetaAndBody(t *testing.T) {
	t.Parallel()
	doc := markdown.Document{Meta: map[string]any{"date": "2026-03-02", "sessions": 3}, Body: "# Day\n"}
	rendered, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := markdown.Parse(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Meta["date"] != "2026-03-02" || parsed.Meta["sessions"] != 3 {
		t.Fatalf("unexpected meta: %#v", parsed.Meta)
	}
	if strings.TrimSpace(parsed.Body) != "# Day" {
		t.Fatalf("unexpected body: %q", parsed.Body)
	}

	if _, err := markdown.Parse("---\nbroken: true\n"); err == nil {
		t.Fatalf("unterminated frontmatter must fail")
	}
}

func TestBlockReplaceKeepsUserText(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Name: "sessions"}
	body := block.Replace("# Notes\n", "v1")
	if !strings.Contains(body, "# Notes") || !strings.Contains(body, "v1") {
		t.Fatalf("unexpected first render: %q", body)
	}
	body = strings.Replace(body, "# Notes\n", "# Notes\nfelt focused\n", 1)
	body = block.Replace(body, "v2")
	if strings.Contains(body, "v1") || !strings.Contains(body, "v2") || !strings.Contains(body, "felt focused") {
		t.Fatalf("unexpected regenerated body: %q", body)
	}
	if strings.Count(body, block.StartMarker()) != 1 {
		t.Fatalf("block duplicated: %q", body)
	}
}
