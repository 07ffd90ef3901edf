// Package parser converts document formats into plain UTF-8 text whose
// paragraphs are separated by blank lines, ready for indexing.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by ForFile for unknown extensions.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into paragraph text.
type Parser interface {
	Parse(r io.Reader, filename string) ([]byte, error)
}

// Options tune individual parsers.
type Options struct {
	// PDFFallbackPdftotext retries with the pdftotext binary when the
	// built-in PDF reader fails.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	if IsPlainText(filename) {
		return &TextParser{}, nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// IsPlainText reports whether filename is read verbatim.
func IsPlainText(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", "":
		return true
	}
	return false
}

// paragraphWriter joins paragraphs with a blank line.
type paragraphWriter struct {
	buf strings.Builder
}

// Paragraph adds text as one paragraph. Blank text is skipped.
func (w *paragraphWriter) Paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if w.buf.Len() > 0 {
		w.buf.WriteString("\n\n")
	}
	w.buf.WriteString(text)
}

func (w *paragraphWriter) Bytes() []byte {
	return []byte(w.buf.String())
}

// collapseSpace joins whitespace-separated fields with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
