package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Every heading and
// top-level block becomes a paragraph; list items are paragraphs of their own.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var w paragraphWriter
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		writeMarkdownBlock(&w, n, src)
	}
	return w.Bytes(), nil
}

func writeMarkdownBlock(w *paragraphWriter, n ast.Node, src []byte) {
	switch n.Kind() {
	case ast.KindList, ast.KindBlockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeMarkdownBlock(w, c, src)
		}
	case ast.KindListItem:
		w.Paragraph(extractText(n, src))
	case ast.KindThematicBreak, ast.KindHTMLBlock:
	default:
		w.Paragraph(extractText(n, src))
	}
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		// Code blocks: blank lines would split the block into paragraphs.
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := seg.Value(src)
			if len(bytes.TrimSpace(line)) > 0 {
				buf.Write(line)
			}
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
