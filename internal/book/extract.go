package book

import "io"

// ParagraphText copies the exact bytes of paragraph id into dst and returns
// the count. If dst is shorter than the paragraph nothing is written and
// io.ErrShortBuffer is returned; size dst with ParagraphInfo first.
func (b *Book) ParagraphText(id ParagraphID, dst []byte) (int, error) {
	p, err := b.paragraph(id)
	if err != nil {
		return 0, err
	}
	return b.copySpan(p.span, dst)
}

// SentenceText is ParagraphText for sentences.
func (b *Book) SentenceText(id SentenceID, dst []byte) (int, error) {
	s, err := b.sentence(id)
	if err != nil {
		return 0, err
	}
	return b.copySpan(s.span, dst)
}

// AppendParagraphText appends paragraph id to dst.
func (b *Book) AppendParagraphText(dst []byte, id ParagraphID) ([]byte, error) {
	p, err := b.paragraph(id)
	if err != nil {
		return dst, err
	}
	return append(dst, b.bytes(p.span)...), nil
}

// AppendSentenceText appends sentence id to dst.
func (b *Book) AppendSentenceText(dst []byte, id SentenceID) ([]byte, error) {
	s, err := b.sentence(id)
	if err != nil {
		return dst, err
	}
	return append(dst, b.bytes(s.span)...), nil
}

// ParagraphString returns paragraph id as a string.
func (b *Book) ParagraphString(id ParagraphID) (string, error) {
	p, err := b.paragraph(id)
	if err != nil {
		return "", err
	}
	return string(b.bytes(p.span)), nil
}

// SentenceString returns sentence id as a string.
func (b *Book) SentenceString(id SentenceID) (string, error) {
	s, err := b.sentence(id)
	if err != nil {
		return "", err
	}
	return string(b.bytes(s.span)), nil
}

func (b *Book) bytes(s span) []byte {
	return b.src[s.start:s.end():s.end()]
}

func (b *Book) copySpan(s span, dst []byte) (int, error) {
	if len(dst) < int(s.size.Bytes) {
		return 0, io.ErrShortBuffer
	}
	return copy(dst, b.bytes(s)), nil
}
