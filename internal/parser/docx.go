package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Every non-empty Word paragraph, headings
// included, becomes one paragraph.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]byte, error) {
	// go-docx needs a ReaderAt and the archive size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var w paragraphWriter
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			w.Paragraph(docxParagraphText(it))
		case *docx.Table:
			writeDocxTable(&w, it)
		}
	}
	return w.Bytes(), nil
}

// writeDocxTable emits every cell paragraph in row order.
func writeDocxTable(w *paragraphWriter, t *docx.Table) {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				w.Paragraph(docxParagraphText(para))
			}
			for _, nested := range cell.Tables {
				writeDocxTable(w, nested)
			}
		}
	}
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteByte(' ')
			}
		}
	}
	return collapseSpace(buf.String())
}
