package util

import (
	"strings"
	"testing"
)

func TestMarkdownToHTMLHeadings(t *testing.T) {
	out := MarkdownToHTML("# Título\n## Sección\n### Detalle")
	for _, want := range []string{"<h1>Título</h1>", "<h2>Sección</h2>", "<h3>Detalle</h3>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestMarkdownToHTMLInline(t *testing.T) {
	out := MarkdownToHTML("**negrita** y *cursiva* y `codigo`")
	for _, want := range []string{"<strong>negrita</strong>", "<em>cursiva</em>", "<code>codigo</code>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestMarkdownToHTMLLists(t *testing.T) {
	out := MarkdownToHTML("- uno\n- dos\n1. primero\n2. segundo")
	if got := strings.Count(out, "<li>"); got != 4 {
		t.Errorf("expected 4 list items, got %d in %q", got, out)
	}
}

func TestMarkdownToHTMLParagraphs(t *testing.T) {
	out := MarkdownToHTML("parrafo uno\n\nparrafo dos\ncontinuación")
	if !strings.Contains(out, "</p><p>") {
		t.Errorf("double newline should split paragraphs: %q", out)
	}
	if !strings.Contains(out, "<br />") {
		t.Errorf("single newline should become a line break: %q", out)
	}
	if !strings.HasPrefix(out, "<p>") || !strings.HasSuffix(out, "</p>") {
		t.Errorf("output should be wrapped in a paragraph: %q", out)
	}
}
