package main

import (
	"testing"

	"github.com/dgallion1/bookparse/internal/book"
)

func TestOpenAndQuery(t *testing.T) {
	h, off := open([]byte("Hello world. Bye!\n\nSecond para."))
	if h == 0 || off != -1 {
		t.Fatalf("expected a handle, got %d (offset %d)", h, off)
	}
	defer closeBook(h)

	info := bookInfo(h)
	want := book.BookInfo{Paragraphs: 2, Sentences: 3, Size: book.StringSize{Bytes: 31, Symbols: 31}}
	if info != want {
		t.Errorf("expected %+v, got %+v", want, info)
	}

	p := paragraphInfo(h, 1)
	if p.Index != 1 || p.SentenceFirst != 2 || p.Sentences != 1 {
		t.Errorf("unexpected paragraph info %+v", p)
	}
	buf := make([]byte, p.Size.Bytes)
	if n := paragraphText(h, 1, buf); n != 12 || string(buf) != "Second para." {
		t.Errorf("unexpected paragraph text %q (%d)", buf, n)
	}

	s := sentenceInfo(h, 1)
	if s.Index != 1 || s.OrdinalInParagraph != 1 || s.ParagraphIndex != 0 {
		t.Errorf("unexpected sentence info %+v", s)
	}
	buf = make([]byte, s.Size.Bytes)
	if n := sentenceText(h, 1, buf); n != 4 || string(buf) != "Bye!" {
		t.Errorf("unexpected sentence text %q (%d)", buf, n)
	}
}

func TestOpenInvalidEncoding(t *testing.T) {
	h, off := open([]byte{'o', 'k', 0xFF})
	if h != 0 {
		t.Errorf("expected handle 0, got %d", h)
	}
	if off != 2 {
		t.Errorf("expected offset 2, got %d", off)
	}
}

func TestOutOfRangeMarksIndex(t *testing.T) {
	h, _ := open([]byte("Only."))
	defer closeBook(h)

	if got := paragraphInfo(h, 1).Index; got != missing {
		t.Errorf("expected missing paragraph index, got %d", got)
	}
	if got := sentenceInfo(h, 7).Index; got != missing {
		t.Errorf("expected missing sentence index, got %d", got)
	}
	if n := sentenceText(h, 7, make([]byte, 16)); n != -1 {
		t.Errorf("expected -1, got %d", n)
	}
	if n := sentenceText(h, 0, make([]byte, 2)); n != -1 {
		t.Errorf("expected -1 for short buffer, got %d", n)
	}
}

func TestDisposedHandle(t *testing.T) {
	h, _ := open([]byte("Gone."))
	closeBook(h)
	closeBook(h)

	if info := bookInfo(h); info != (book.BookInfo{}) {
		t.Errorf("expected zero info, got %+v", info)
	}
	if got := paragraphInfo(h, 0).Index; got != missing {
		t.Errorf("expected missing index, got %d", got)
	}
	if n := paragraphText(h, 0, make([]byte, 8)); n != -1 {
		t.Errorf("expected -1, got %d", n)
	}
}

func TestEmptyInput(t *testing.T) {
	h, off := open(nil)
	if h == 0 || off != -1 {
		t.Fatalf("expected a handle for empty input, got %d (offset %d)", h, off)
	}
	defer closeBook(h)
	if info := bookInfo(h); info != (book.BookInfo{}) {
		t.Errorf("expected empty info, got %+v", info)
	}
}
