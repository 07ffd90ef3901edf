// Package segment finds paragraph and sentence boundaries in UTF-8 text.
//
// Paragraphs are separated by blank lines: a whitespace run holding two or
// more line breaks (CR LF counts once), or any run holding U+2029. Sentences
// end at a run of terminal marks (. ! ? … and CJK full stops) followed by
// whitespace or the end of the paragraph; closing quotes and brackets right
// after the marks stay with the sentence. A single period does not end a
// sentence after an abbreviation, an initial, a dotted abbreviation or a short
// vowel-less word. Units never include the whitespace around them.
//
// Decisions look at the current codepoint and a window of at most
// maxTokenRunes codepoints behind it, so segmentation is one pass.
package segment

import (
	"unicode"

	"github.com/dgallion1/bookparse/internal/decoder"
)

// Span is a half-open range of the source in bytes [Start, End) and in
// codepoint ordinals [First, Last).
type Span struct {
	Start int
	End   int
	First int
	Last  int
}

// Bytes returns the byte length of the span.
func (s Span) Bytes() int { return s.End - s.Start }

// Symbols returns the number of codepoints in the span.
func (s Span) Symbols() int { return s.Last - s.First }

// Sink receives units in document order. Every sentence of a paragraph is
// delivered before the paragraph itself.
type Sink interface {
	Sentence(Span)
	Paragraph(Span)
}

// Config controls segmentation.
type Config struct {
	// ExtraAbbreviations extend the built-in list. Matching is
	// case-insensitive; a trailing period is ignored.
	ExtraAbbreviations []string
}

// DefaultConfig returns the built-in grammar.
func DefaultConfig() Config {
	return Config{}
}

// Segmenter is safe for concurrent use; all per-run state lives in Run.
type Segmenter struct {
	abbrev map[string]struct{}
}

// New builds a segmenter for cfg.
func New(cfg Config) *Segmenter {
	if len(cfg.ExtraAbbreviations) == 0 {
		return &Segmenter{abbrev: defaultAbbreviationSet}
	}
	return &Segmenter{abbrev: newAbbreviationSet(cfg.ExtraAbbreviations)}
}

// Run decodes src and reports every sentence and paragraph to sink. It
// returns the number of codepoints in src. On malformed UTF-8 it returns a
// *decoder.InvalidEncodingError; units already delivered must be discarded.
func (s *Segmenter) Run(src []byte, sink Sink) (int, error) {
	st := &state{abbrev: s.abbrev, src: src, sink: sink}
	d := decoder.New(src)
	for d.Next() {
		st.step(d.Symbol(), d.Count()-1)
	}
	if err := d.Err(); err != nil {
		return 0, err
	}
	st.finish()
	return d.Count(), nil
}

type position struct {
	offset  int
	ordinal int
}

type runState uint8

const (
	runNone   runState = iota
	runMarks           // inside a run of terminal marks
	runClosed          // closing punctuation after the marks
)

type state struct {
	abbrev map[string]struct{}
	src    []byte
	sink   Sink

	inPara    bool
	inSent    bool
	paraStart position
	sentStart position
	last      position // just past the latest non-space codepoint

	breaks int
	prevCR bool

	run       runState
	runCJK    bool
	runAbbrev bool
}

func (st *state) step(sym decoder.Symbol, ordinal int) {
	r := sym.Rune
	if unicode.IsSpace(r) {
		st.space(r)
		return
	}
	here := position{offset: sym.Offset, ordinal: ordinal}
	next := position{offset: sym.End(), ordinal: ordinal + 1}

	st.breaks = 0
	st.prevCR = false
	if !st.inPara {
		st.inPara = true
		st.paraStart = here
	}

	if st.run != runNone {
		switch {
		case st.run == runMarks && isTerminal(r):
			st.runAbbrev = false
			st.runCJK = st.runCJK || isCJKTerminal(r)
			st.last = next
			return
		case isCloser(r):
			st.run = runClosed
			st.last = next
			return
		case st.runCJK:
			st.closeSentence()
		}
		st.run = runNone
	}

	if !st.inSent {
		st.inSent = true
		st.sentStart = here
	}
	if isTerminal(r) {
		st.run = runMarks
		st.runCJK = isCJKTerminal(r)
		st.runAbbrev = r == '.' && isAbbreviation(st.abbrev, tokenBefore(st.src, sym.Offset))
	}
	st.last = next
}

func (st *state) space(r rune) {
	if st.run != runNone {
		if !st.runAbbrev {
			st.closeSentence()
		}
		st.run = runNone
	}

	if isLineBreak(r) {
		switch {
		case r == '\n' && st.prevCR:
		case r == '\u2029':
			st.breaks += 2
		default:
			st.breaks++
		}
	}
	st.prevCR = r == '\r'

	if st.breaks >= 2 && st.inPara {
		st.closeParagraph()
	}
}

func (st *state) finish() {
	if st.inPara {
		st.closeParagraph()
	}
}

func (st *state) closeSentence() {
	if !st.inSent {
		return
	}
	st.sink.Sentence(Span{
		Start: st.sentStart.offset,
		End:   st.last.offset,
		First: st.sentStart.ordinal,
		Last:  st.last.ordinal,
	})
	st.inSent = false
}

func (st *state) closeParagraph() {
	st.closeSentence()
	st.run = runNone
	st.sink.Paragraph(Span{
		Start: st.paraStart.offset,
		End:   st.last.offset,
		First: st.paraStart.ordinal,
		Last:  st.last.ordinal,
	})
	st.inPara = false
}
