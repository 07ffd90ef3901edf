// Package book indexes a UTF-8 buffer into paragraphs and sentences and
// serves exact byte extraction of any unit by id.
//
// A Book is immutable once built; any number of goroutines may query it.
// Dispose must not race with other calls on the same Book.
package book

import (
	"math"
	"sync/atomic"

	"github.com/dgallion1/bookparse/internal/segment"
)

// Book is a ready index over a private copy of the source bytes.
type Book struct {
	state atomic.Int32

	src        []byte
	symbols    uint32
	paragraphs []paragraphRecord
	sentences  []sentenceRecord
}

var defaultSegmenter = segment.New(segment.DefaultConfig())

// FromUTF8 builds a book with the default grammar. src is copied; the caller
// may reuse it afterwards. On failure no book is returned.
func FromUTF8(src []byte) (*Book, error) {
	return build(src, defaultSegmenter)
}

// Build is FromUTF8 with a custom segmentation config.
func Build(src []byte, cfg segment.Config) (*Book, error) {
	return build(src, segment.New(cfg))
}

func build(src []byte, seg *segment.Segmenter) (*Book, error) {
	if uint64(len(src)) > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	b := &Book{}
	b.state.Store(int32(StateConstructing))

	bld := newBuilder(len(src))
	n, err := seg.Run(src, bld)
	if err != nil {
		return nil, err
	}
	if err := bld.verify(); err != nil {
		return nil, err
	}

	b.src = append(make([]byte, 0, len(src)), src...)
	b.symbols = uint32(n)
	b.paragraphs = bld.paragraphs
	b.sentences = bld.sentences
	b.state.Store(int32(StateReady))
	return b, nil
}

// State reports the lifecycle stage.
func (b *Book) State() State {
	return State(b.state.Load())
}

func (b *Book) mustReady() {
	if State(b.state.Load()) != StateReady {
		panic(ErrDisposed)
	}
}

// Dispose releases the source copy and the index. Any later call on b,
// including a second Dispose, panics with ErrDisposed.
func (b *Book) Dispose() {
	if !b.state.CompareAndSwap(int32(StateReady), int32(StateDisposed)) {
		panic(ErrDisposed)
	}
	b.src = nil
	b.paragraphs = nil
	b.sentences = nil
}

// Info returns the unit counts and the size of the whole source.
func (b *Book) Info() BookInfo {
	b.mustReady()
	return BookInfo{
		Paragraphs: uint32(len(b.paragraphs)),
		Sentences:  uint32(len(b.sentences)),
		Size: StringSize{
			Bytes:   uint32(len(b.src)),
			Symbols: b.symbols,
		},
	}
}

// ParagraphInfo describes paragraph id.
func (b *Book) ParagraphInfo(id ParagraphID) (ParagraphInfo, error) {
	p, err := b.paragraph(id)
	if err != nil {
		return ParagraphInfo{}, err
	}
	return ParagraphInfo{
		Index:         uint32(id),
		SentenceFirst: p.sentenceFirst,
		Sentences:     p.sentences,
		Size:          p.size,
	}, nil
}

// SentenceInfo describes sentence id.
func (b *Book) SentenceInfo(id SentenceID) (SentenceInfo, error) {
	s, err := b.sentence(id)
	if err != nil {
		return SentenceInfo{}, err
	}
	return SentenceInfo{
		Index:              uint32(id),
		OrdinalInParagraph: s.ordinal,
		ParagraphIndex:     s.paragraph,
		Size:               s.size,
	}, nil
}

func (b *Book) paragraph(id ParagraphID) (*paragraphRecord, error) {
	b.mustReady()
	if int(id) >= len(b.paragraphs) {
		return nil, &OutOfRangeError{Kind: "paragraph", ID: uint32(id), Count: uint32(len(b.paragraphs))}
	}
	return &b.paragraphs[id], nil
}

func (b *Book) sentence(id SentenceID) (*sentenceRecord, error) {
	b.mustReady()
	if int(id) >= len(b.sentences) {
		return nil, &OutOfRangeError{Kind: "sentence", ID: uint32(id), Count: uint32(len(b.sentences))}
	}
	return &b.sentences[id], nil
}
