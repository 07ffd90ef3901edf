package segment

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode"

	"github.com/dgallion1/bookparse/internal/decoder"
)

type event struct {
	paragraph bool
	span      Span
}

type recorder struct {
	events []event
}

func (r *recorder) Sentence(s Span)  { r.events = append(r.events, event{span: s}) }
func (r *recorder) Paragraph(s Span) { r.events = append(r.events, event{paragraph: true, span: s}) }

func (r *recorder) texts(src string, paragraph bool) []string {
	var out []string
	for _, e := range r.events {
		if e.paragraph == paragraph {
			out = append(out, src[e.span.Start:e.span.End])
		}
	}
	return out
}

func segmentString(t *testing.T, cfg Config, src string) (*recorder, int) {
	t.Helper()
	rec := &recorder{}
	n, err := New(cfg).Run([]byte(src), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec, n
}

func TestRun_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		sentences  []string
		paragraphs []string
	}{
		{
			name:       "two paragraphs",
			src:        "Hello world. Bye!\n\nSecond para.",
			sentences:  []string{"Hello world.", "Bye!", "Second para."},
			paragraphs: []string{"Hello world. Bye!", "Second para."},
		},
		{
			name:       "abbreviation title",
			src:        "Dr. Smith arrived.",
			sentences:  []string{"Dr. Smith arrived."},
			paragraphs: []string{"Dr. Smith arrived."},
		},
		{
			name:       "decimal number",
			src:        "Pi is 3.14 today. Yes.",
			sentences:  []string{"Pi is 3.14 today.", "Yes."},
			paragraphs: []string{"Pi is 3.14 today. Yes."},
		},
		{
			name:       "crlf line endings",
			src:        "One.\r\nStill one.\r\n\r\nTwo.",
			sentences:  []string{"One.", "Still one.", "Two."},
			paragraphs: []string{"One.\r\nStill one.", "Two."},
		},
		{
			name:       "paragraph separator codepoint",
			src:        "A.\u2029B.",
			sentences:  []string{"A.", "B."},
			paragraphs: []string{"A.", "B."},
		},
		{
			name:       "single line break keeps paragraph",
			src:        "Line one\nline two",
			sentences:  []string{"Line one\nline two"},
			paragraphs: []string{"Line one\nline two"},
		},
		{
			name:       "surrounding blank runs",
			src:        "\n\n  Text here.  \n\n\n",
			sentences:  []string{"Text here."},
			paragraphs: []string{"Text here."},
		},
		{
			name:       "collapsed marks",
			src:        "What?! Really...",
			sentences:  []string{"What?!", "Really..."},
			paragraphs: []string{"What?! Really..."},
		},
		{
			name:       "closing quote stays with sentence",
			src:        `He said "Stop!" Then left.`,
			sentences:  []string{`He said "Stop!"`, "Then left."},
			paragraphs: []string{`He said "Stop!" Then left.`},
		},
		{
			name:       "vowel pronoun ends sentence",
			src:        "I went home. So did I. Then we ate.",
			sentences:  []string{"I went home.", "So did I.", "Then we ate."},
			paragraphs: []string{"I went home. So did I. Then we ate."},
		},
		{
			name:       "initials",
			src:        "J. R. R. Tolkien wrote it. Done.",
			sentences:  []string{"J. R. R. Tolkien wrote it.", "Done."},
			paragraphs: []string{"J. R. R. Tolkien wrote it. Done."},
		},
		{
			name:       "dotted abbreviation",
			src:        "Born in the U.S. in 1990. Later moved.",
			sentences:  []string{"Born in the U.S. in 1990.", "Later moved."},
			paragraphs: []string{"Born in the U.S. in 1990. Later moved."},
		},
		{
			name:       "russian abbreviations",
			src:        "См. рис. 3. Далее текст.",
			sentences:  []string{"См. рис. 3.", "Далее текст."},
			paragraphs: []string{"См. рис. 3. Далее текст."},
		},
		{
			name:       "abbreviation at paragraph end",
			src:        "Meet Dr.\n\nNext.",
			sentences:  []string{"Meet Dr.", "Next."},
			paragraphs: []string{"Meet Dr.", "Next."},
		},
		{
			name:       "cjk without spaces",
			src:        "你好。再见！",
			sentences:  []string{"你好。", "再见！"},
			paragraphs: []string{"你好。再见！"},
		},
		{
			name:       "cjk closing bracket",
			src:        "他说：「好。」然后走了。",
			sentences:  []string{"他说：「好。」", "然后走了。"},
			paragraphs: []string{"他说：「好。」然后走了。"},
		},
		{
			name:       "no terminal marks",
			src:        "just words",
			sentences:  []string{"just words"},
			paragraphs: []string{"just words"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := segmentString(t, DefaultConfig(), tt.src)
			if got := rec.texts(tt.src, false); !reflect.DeepEqual(got, tt.sentences) {
				t.Errorf("sentences: expected %q, got %q", tt.sentences, got)
			}
			if got := rec.texts(tt.src, true); !reflect.DeepEqual(got, tt.paragraphs) {
				t.Errorf("paragraphs: expected %q, got %q", tt.paragraphs, got)
			}
		})
	}
}

func TestRun_EmptyAndBlank(t *testing.T) {
	for _, src := range []string{"", "  \n\n \t"} {
		rec, n := segmentString(t, DefaultConfig(), src)
		if len(rec.events) != 0 {
			t.Errorf("%q: expected no units, got %d", src, len(rec.events))
		}
		if n != len([]rune(src)) {
			t.Errorf("%q: expected %d symbols, got %d", src, len([]rune(src)), n)
		}
	}
}

func TestRun_SpansCarryCodepointOrdinals(t *testing.T) {
	src := "Привет. Мир."
	rec, n := segmentString(t, DefaultConfig(), src)
	if n != 12 {
		t.Fatalf("expected 12 symbols, got %d", n)
	}
	want := []event{
		{span: Span{Start: 0, End: 13, First: 0, Last: 7}},
		{span: Span{Start: 14, End: 21, First: 8, Last: 12}},
		{paragraph: true, span: Span{Start: 0, End: 21, First: 0, Last: 12}},
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("expected %+v, got %+v", want, rec.events)
	}
	if got := rec.events[1].span.Symbols(); got != 4 {
		t.Errorf("expected 4 symbols in second sentence, got %d", got)
	}
	if got := rec.events[1].span.Bytes(); got != 7 {
		t.Errorf("expected 7 bytes in second sentence, got %d", got)
	}
}

func TestRun_SentencesPrecedeTheirParagraph(t *testing.T) {
	rec, _ := segmentString(t, DefaultConfig(), "A. B.\n\nC.")
	var kinds []bool
	for _, e := range rec.events {
		kinds = append(kinds, e.paragraph)
	}
	want := []bool{false, false, true, false, true}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("expected event order %v, got %v", want, kinds)
	}
}

func TestRun_ExtraAbbreviations(t *testing.T) {
	src := "See Ex. 4 here. Done."

	rec, _ := segmentString(t, DefaultConfig(), src)
	if got := len(rec.texts(src, false)); got != 3 {
		t.Errorf("default config: expected 3 sentences, got %d", got)
	}

	rec, _ = segmentString(t, Config{ExtraAbbreviations: []string{"ex."}}, src)
	want := []string{"See Ex. 4 here.", "Done."}
	if got := rec.texts(src, false); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRun_InvalidEncoding(t *testing.T) {
	rec := &recorder{}
	n, err := New(DefaultConfig()).Run([]byte("ok\xFF"), rec)
	if n != 0 {
		t.Errorf("expected 0 symbols on error, got %d", n)
	}
	var encErr *decoder.InvalidEncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *InvalidEncodingError, got %v", err)
	}
	if encErr.Offset != 2 {
		t.Errorf("expected offset 2, got %d", encErr.Offset)
	}
}

func TestRun_StructuralInvariants(t *testing.T) {
	inputs := []string{
		"First. Second!\n\n\nThird? Fourth.\r\n\r\nFifth",
		"  Mr. and Mrs. Jones (née Smith) left at 5 p.m. yesterday.  \n \n Then?! \"Yes.\" ",
		"Один. Два!\u2029Три… Четыре?",
		"\t\n",
		"x",
	}
	for _, src := range inputs {
		rec, n := segmentString(t, DefaultConfig(), src)
		if n != len([]rune(src)) {
			t.Errorf("%q: expected %d symbols, got %d", src, len([]rune(src)), n)
		}

		var pending []Span
		prevEnd := 0
		for _, e := range rec.events {
			s := e.span
			text := src[s.Start:s.End]
			if text == "" {
				t.Errorf("%q: empty unit at %d", src, s.Start)
				continue
			}
			first, last := []rune(text)[0], []rune(text)[len([]rune(text))-1]
			if unicode.IsSpace(first) || unicode.IsSpace(last) {
				t.Errorf("%q: unit %q is not trimmed", src, text)
			}
			if s.Symbols() != len([]rune(text)) {
				t.Errorf("%q: unit %q reports %d symbols", src, text, s.Symbols())
			}
			if !e.paragraph {
				pending = append(pending, s)
				continue
			}
			if s.Start < prevEnd {
				t.Errorf("%q: paragraph at %d overlaps previous ending at %d", src, s.Start, prevEnd)
			}
			prevEnd = s.End
			if len(pending) == 0 {
				t.Errorf("%q: paragraph %q has no sentences", src, text)
			}
			for _, sent := range pending {
				if sent.Start < s.Start || sent.End > s.End {
					t.Errorf("%q: sentence %q outside paragraph %q", src, src[sent.Start:sent.End], text)
				}
			}
			pending = nil
		}
		if len(pending) != 0 {
			t.Errorf("%q: %d sentences without a paragraph", src, len(pending))
		}
		if strings.TrimSpace(src) != "" && prevEnd == 0 {
			t.Errorf("%q: expected at least one paragraph", src)
		}
	}
}
