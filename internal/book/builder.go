package book

import (
	"fmt"

	"github.com/dgallion1/bookparse/internal/segment"
)

// builder turns the segmenter's span stream into the two index arrays.
// Sentences of a paragraph arrive before the paragraph, so they are tagged
// with the id the paragraph will receive.
type builder struct {
	paragraphs   []paragraphRecord
	sentences    []sentenceRecord
	pendingFirst uint32
}

func newBuilder(sizeHint int) *builder {
	// Rough guess of ~80 bytes per sentence keeps reallocation low for prose.
	n := sizeHint / 80
	return &builder{
		paragraphs: make([]paragraphRecord, 0, n/4+1),
		sentences:  make([]sentenceRecord, 0, n+1),
	}
}

func toSpan(s segment.Span) span {
	return span{
		start: uint32(s.Start),
		size: StringSize{
			Bytes:   uint32(s.Bytes()),
			Symbols: uint32(s.Symbols()),
		},
	}
}

func (b *builder) Sentence(s segment.Span) {
	id := uint32(len(b.sentences))
	b.sentences = append(b.sentences, sentenceRecord{
		span:      toSpan(s),
		paragraph: uint32(len(b.paragraphs)),
		ordinal:   id - b.pendingFirst,
	})
}

func (b *builder) Paragraph(s segment.Span) {
	count := uint32(len(b.sentences))
	b.paragraphs = append(b.paragraphs, paragraphRecord{
		span:          toSpan(s),
		sentenceFirst: b.pendingFirst,
		sentences:     count - b.pendingFirst,
	})
	b.pendingFirst = count
}

// verify checks the structural guarantees every published book makes.
func (b *builder) verify() error {
	if b.pendingFirst != uint32(len(b.sentences)) {
		return fmt.Errorf("%w: %d sentences without a paragraph", ErrInvariantViolation,
			uint32(len(b.sentences))-b.pendingFirst)
	}
	var next, prevEnd uint32
	for i, p := range b.paragraphs {
		if p.sentenceFirst != next {
			return fmt.Errorf("%w: paragraph %d starts at sentence %d, expected %d",
				ErrInvariantViolation, i, p.sentenceFirst, next)
		}
		if p.sentences == 0 {
			return fmt.Errorf("%w: paragraph %d has no sentences", ErrInvariantViolation, i)
		}
		if i > 0 && p.start < prevEnd {
			return fmt.Errorf("%w: paragraph %d overlaps its predecessor", ErrInvariantViolation, i)
		}
		sentEnd := p.start
		for j := range p.sentences {
			s := b.sentences[p.sentenceFirst+j]
			if s.paragraph != uint32(i) || s.ordinal != j {
				return fmt.Errorf("%w: sentence %d has wrong parent", ErrInvariantViolation, p.sentenceFirst+j)
			}
			if s.start < sentEnd || s.end() > p.end() {
				return fmt.Errorf("%w: sentence %d outside paragraph %d", ErrInvariantViolation, p.sentenceFirst+j, i)
			}
			sentEnd = s.end()
		}
		next += p.sentences
		prevEnd = p.end()
	}
	return nil
}
