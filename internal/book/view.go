package book

import "iter"

// Paragraph is a lightweight handle on one paragraph of a ready book.
type Paragraph struct {
	book *Book
	Info ParagraphInfo
}

// Sentence is a lightweight handle on one sentence of a ready book.
type Sentence struct {
	book *Book
	Info SentenceInfo
}

// Paragraphs yields every paragraph in document order.
func (b *Book) Paragraphs() iter.Seq[Paragraph] {
	b.mustReady()
	return func(yield func(Paragraph) bool) {
		for i := range len(b.paragraphs) {
			info, err := b.ParagraphInfo(ParagraphID(i))
			if err != nil || !yield(Paragraph{book: b, Info: info}) {
				return
			}
		}
	}
}

// Sentences yields every sentence in document order.
func (b *Book) Sentences() iter.Seq[Sentence] {
	b.mustReady()
	return b.sentenceRange(0, uint32(len(b.sentences)))
}

func (b *Book) sentenceRange(first, count uint32) iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		for id := first; id < first+count; id++ {
			info, err := b.SentenceInfo(SentenceID(id))
			if err != nil || !yield(Sentence{book: b, Info: info}) {
				return
			}
		}
	}
}

// Sentences yields the paragraph's sentences in order.
func (p Paragraph) Sentences() iter.Seq[Sentence] {
	return p.book.sentenceRange(p.Info.SentenceFirst, p.Info.Sentences)
}

// Text returns the paragraph bytes as a string.
func (p Paragraph) Text() string {
	s, _ := p.book.ParagraphString(ParagraphID(p.Info.Index))
	return s
}

// Text returns the sentence bytes as a string.
func (s Sentence) Text() string {
	t, _ := s.book.SentenceString(SentenceID(s.Info.Index))
	return t
}

// IsFirst reports whether s opens its paragraph.
func (s Sentence) IsFirst() bool {
	return s.Info.OrdinalInParagraph == 0
}

// IsLast reports whether s closes its paragraph.
func (s Sentence) IsLast() bool {
	p, err := s.book.ParagraphInfo(ParagraphID(s.Info.ParagraphIndex))
	if err != nil {
		return false
	}
	return s.Info.OrdinalInParagraph+1 == p.Sentences
}
