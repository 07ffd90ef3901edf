// Package report dumps the structure of a book for humans or tools.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/bookparse/internal/book"
)

// Format selects the dump encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or json)", s)
}

// Options control Write.
type Options struct {
	Format Format
	// Pretty indents JSON output.
	Pretty bool
}

// Summary is the one-line description printed after loading a file.
func Summary(name string, info book.BookInfo) string {
	return fmt.Sprintf("Read file `%s`, size: %d symbols, %d bytes", name, info.Size.Symbols, info.Size.Bytes)
}

// Write dumps every paragraph of b with its sentences.
func Write(w io.Writer, b *book.Book, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, b, opts.Pretty)
	case FormatText, "":
		return writeText(w, b)
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

func writeText(w io.Writer, b *book.Book) error {
	bw := bufio.NewWriter(w)
	info := b.Info()
	fmt.Fprintf(bw, "Paragraphs total: %d\n", info.Paragraphs)
	fmt.Fprintf(bw, "Sentences total: %d\n", info.Sentences)
	for p := range b.Paragraphs() {
		fmt.Fprintf(bw, "\nParagraph #%d (sentences: %d, symbols: %d, bytes: %d)\n",
			p.Info.Index, p.Info.Sentences, p.Info.Size.Symbols, p.Info.Size.Bytes)
		for s := range p.Sentences() {
			fmt.Fprintf(bw, "\tSentence #%d (symbols: %d, bytes: %d): %q\n",
				s.Info.Index, s.Info.Size.Symbols, s.Info.Size.Bytes, s.Text())
		}
	}
	return bw.Flush()
}

type jsonSentence struct {
	book.SentenceInfo
	Text string `json:"text"`
}

type jsonParagraph struct {
	book.ParagraphInfo
	Text         string         `json:"text"`
	SentenceList []jsonSentence `json:"sentence_list"`
}

type jsonBook struct {
	Info       book.BookInfo   `json:"info"`
	Paragraphs []jsonParagraph `json:"paragraphs"`
}

func writeJSON(w io.Writer, b *book.Book, pretty bool) error {
	out := jsonBook{Info: b.Info(), Paragraphs: []jsonParagraph{}}
	for p := range b.Paragraphs() {
		jp := jsonParagraph{ParagraphInfo: p.Info, Text: p.Text(), SentenceList: []jsonSentence{}}
		for s := range p.Sentences() {
			jp.SentenceList = append(jp.SentenceList, jsonSentence{SentenceInfo: s.Info, Text: s.Text()})
		}
		out.Paragraphs = append(out.Paragraphs, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
