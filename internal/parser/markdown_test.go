package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsBecomeParagraphs(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	out, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Title",
		"Intro text.",
		"Section A",
		"Section A content.",
		"Subsection A1",
		"Subsection A1 content.",
		"Section B",
		"Section B content.",
	}, "\n\n")
	if string(out) != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, out)
	}
}

func TestMarkdownParser_InlineMarkupStripped(t *testing.T) {
	input := "Some *emphasis* and **strong** with `code` and a [link](http://example.com)."
	p := &MarkdownParser{}
	out, err := p.Parse(strings.NewReader(input), "inline.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Some emphasis and strong with code and a link."
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestMarkdownParser_ListItems(t *testing.T) {
	input := "Shopping:\n\n- eggs\n- milk\n\n1. first\n2. second\n"
	p := &MarkdownParser{}
	out, err := p.Parse(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Shopping:\n\neggs\n\nmilk\n\nfirst\n\nsecond"
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestMarkdownParser_CodeBlockStaysOneParagraph(t *testing.T) {
	input := "# API Reference\n\nList of endpoints:\n\n```\nGET /api/users\n\nPOST /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	out, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paras := strings.Split(string(out), "\n\n")
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d: %q", len(paras), paras)
	}
	if !strings.Contains(paras[2], "GET /api/users") || !strings.Contains(paras[2], "POST /api/users") {
		t.Errorf("expected code block in one paragraph, got %q", paras[2])
	}
	if paras[3] != "More text after code." {
		t.Errorf("expected post-code text, got %q", paras[3])
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	out, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %q", out)
	}
}
