package parser

import (
	"errors"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"book.txt", "*parser.TextParser"},
		{"README", "*parser.TextParser"},
		{"notes.MD", "*parser.MarkdownParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"data.csv", "*parser.CSVParser"},
		{"paper.pdf", "*parser.PDFParser"},
		{"letter.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_PDFFallbackOption(t *testing.T) {
	p, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatal(err)
	}
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected fallback to be enabled")
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("image.png", Options{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if IsSupportedExtension("image.png") {
		t.Error("png must not be supported")
	}
	if !IsSupportedExtension("Book.TXT") {
		t.Error("extension check must ignore case")
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *CSVParser:
		return "*parser.CSVParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}
