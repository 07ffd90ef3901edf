package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestDOCXParser_Paragraphs(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Chapter One")
	doc.AddParagraph().AddText("It was a dark night. The rain fell.")
	doc.AddParagraph()
	doc.AddParagraph().AddText("Morning came.")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXParser{}
	out, err := p.Parse(&buf, "story.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Chapter One\n\nIt was a dark night. The rain fell.\n\nMorning came."
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestDOCXParser_InvalidArchive(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(strings.NewReader("not a zip"), "bad.docx"); err == nil {
		t.Fatal("expected an error for a non-docx payload")
	}
}
